package main

import (
	"encoding/hex"
	"fmt"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/x/will"
	"github.com/spf13/cobra"
)

// run delivers the message and prints the result.
func (c *cli) run(msg bequest.Msg) error {
	res, err := c.deliver(msg)
	if err != nil {
		return err
	}
	if len(res.Data) != 0 {
		fmt.Fprintf(c.out, "id\t%s\n", hex.EncodeToString(res.Data))
	}
	if res.Log != "" {
		fmt.Fprintf(c.out, "log\t%s\n", res.Log)
	}
	for _, t := range res.Tags {
		fmt.Fprintf(c.out, "tag\t%s=%s\n", t.Key, t.Value)
	}
	return nil
}

func newCreateCmd(c *cli) *cobra.Command {
	var (
		duration int64
		deposit  []string
		memo     string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a will owned by the signer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			coins, err := parseCoins(deposit, c.cfg.DefaultTicker)
			if err != nil {
				return err
			}
			return c.run(&will.CreateMsg{Duration: duration, Deposit: coins, Memo: memo})
		},
	}
	cmd.Flags().Int64Var(&duration, "duration", 0, "seconds after which the will can be distributed")
	cmd.Flags().StringSliceVar(&deposit, "deposit", nil, "coins moved from the signer to the will")
	cmd.Flags().StringVar(&memo, "memo", "", "short description")
	return cmd
}

func newDepositCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <will> <amount>...",
		Short: "Move coins from the signer to a will",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseWillID(args[0])
			if err != nil {
				return err
			}
			coins, err := parseCoins(args[1:], c.cfg.DefaultTicker)
			if err != nil {
				return err
			}
			return c.run(&will.DepositMsg{WillID: id, Amount: coins})
		},
	}
}

func newBeneficiaryCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "beneficiary",
		Short: "Manage the equal split beneficiaries",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <will> <address>",
		Short: "Add a beneficiary, discarding any percent shares",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseWillID(args[0])
			if err != nil {
				return err
			}
			addr, err := resolveAddress(c.cfg.Home, args[1])
			if err != nil {
				return err
			}
			return c.run(&will.AddBeneficiaryMsg{WillID: id, Beneficiary: addr})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <will> <address>",
		Short: "Remove a beneficiary",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseWillID(args[0])
			if err != nil {
				return err
			}
			addr, err := resolveAddress(c.cfg.Home, args[1])
			if err != nil {
				return err
			}
			return c.run(&will.RemoveBeneficiaryMsg{WillID: id, Beneficiary: addr})
		},
	})
	return cmd
}

func newApproveCmd(c *cli) *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "approve <will> <address>...",
		Short: "Add many equal split beneficiaries at once",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseWillID(args[0])
			if err != nil {
				return err
			}
			addrs, err := resolveAddresses(c.cfg.Home, args[1:])
			if err != nil {
				return err
			}
			return c.run(&will.ApproveAddressesMsg{WillID: id, Addresses: addrs, Replace: replace})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "discard the current beneficiaries first")
	return cmd
}

func newSharesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "shares <will> <address>=<percent>...",
		Short: "Replace the beneficiaries with percent shares summing to 100",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseWillID(args[0])
			if err != nil {
				return err
			}
			msg := &will.SetSharesMsg{WillID: id}
			for _, a := range args[1:] {
				addr, percent, err := parseShare(c.cfg.Home, a)
				if err != nil {
					return err
				}
				msg.Beneficiaries = append(msg.Beneficiaries, addr)
				msg.Percents = append(msg.Percents, percent)
			}
			return c.run(msg)
		},
	}
}

func newExpiryCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "expiry <will> <seconds>",
		Short: "Set the deadline to given seconds from now",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseWillID(args[0])
			if err != nil {
				return err
			}
			var secs int64
			if _, err := fmt.Sscan(args[1], &secs); err != nil {
				return fmt.Errorf("invalid duration %q", args[1])
			}
			return c.run(&will.ChangeExpiryMsg{WillID: id, Duration: secs})
		},
	}
}

func newOwnerCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Transfer or renounce the ownership of a will",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "transfer <will> <address>",
		Short: "Hand the will over to a new owner",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseWillID(args[0])
			if err != nil {
				return err
			}
			addr, err := resolveAddress(c.cfg.Home, args[1])
			if err != nil {
				return err
			}
			return c.run(&will.TransferOwnershipMsg{WillID: id, NewOwner: addr})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "renounce <will>",
		Short: "Leave the will without an owner, this cannot be undone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseWillID(args[0])
			if err != nil {
				return err
			}
			return c.run(&will.RenounceOwnershipMsg{WillID: id})
		},
	})
	return cmd
}

func newDistributeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "distribute <will>",
		Short: "Pay out an expired will to its beneficiaries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseWillID(args[0])
			if err != nil {
				return err
			}
			return c.run(&will.DistributeMsg{WillID: id})
		},
	}
}
