package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/app"
	"github.com/iov-one/bequest/coin"
	"github.com/iov-one/bequest/x/cash"
	"github.com/iov-one/bequest/x/will"
	"github.com/spf13/cobra"
)

// query runs fn over the latest committed state.
func (c *cli) query(fn func(bequest.ReadOnlyKVStore) error) error {
	return c.withRunner(func(r *app.Runner) error {
		return r.Query(fn)
	})
}

type willView struct {
	ID      string     `json:"id"`
	Will    *will.Will `json:"will"`
	State   string     `json:"state"`
	Balance coin.Coins `json:"balance"`
}

func newShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <will>",
		Short: "Print a will with its balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseWillID(args[0])
			if err != nil {
				return err
			}
			return c.query(func(db bequest.ReadOnlyKVStore) error {
				var w will.Will
				if err := will.NewBucket().One(db, id, &w); err != nil {
					return err
				}
				balance, err := cash.NewController(cash.NewBucket()).Balance(db, w.Address)
				if err != nil {
					return err
				}
				return c.printJSON(willView{
					ID:      hex.EncodeToString(id),
					Will:    &w,
					State:   w.State.String(),
					Balance: balance,
				})
			})
		},
	}
}

func newListCmd(c *cli) *cobra.Command {
	var owner string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List wills, optionally only those of an owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ownerAddr bequest.Address
			if owner != "" {
				addr, err := resolveAddress(c.cfg.Home, owner)
				if err != nil {
					return err
				}
				ownerAddr = addr
			}
			return c.query(func(db bequest.ReadOnlyKVStore) error {
				var (
					wills []*will.Will
					keys  [][]byte
					err   error
				)
				if ownerAddr != nil {
					keys, err = will.NewBucket().ByIndex(db, "owner", ownerAddr, &wills)
				} else {
					keys, err = will.NewBucket().All(db, &wills)
				}
				if err != nil {
					return err
				}
				for i, w := range wills {
					fmt.Fprintf(c.out, "%s\t%s\t%s\t%d beneficiaries\n",
						hex.EncodeToString(keys[i]), w.State, w.Timer.GetDeadline(), w.Registry.Count())
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "address or key name of the owner")
	return cmd
}

func newBalanceCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <address>",
		Short: "Print the coins held by an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := resolveAddress(c.cfg.Home, args[0])
			if err != nil {
				return err
			}
			return c.query(func(db bequest.ReadOnlyKVStore) error {
				coins, err := cash.NewController(cash.NewBucket()).Balance(db, addr)
				if err != nil {
					return err
				}
				if len(coins) == 0 {
					fmt.Fprintln(c.out, "0")
					return nil
				}
				for _, co := range coins {
					fmt.Fprintln(c.out, co.String())
				}
				return nil
			})
		},
	}
}

func (c *cli) printJSON(v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, string(raw))
	return err
}
