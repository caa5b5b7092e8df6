package main

import (
	"fmt"

	"github.com/iov-one/bequest/app"
	"github.com/spf13/cobra"
)

func newGenesisCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "genesis <file>",
		Short: "Initialize the state with wallets and predefined wills",
		Long: `Initialize the state from a genesis file. This can be done only once.

The file declares the chain id and the application state:

  {
    "chain_id": "local-will",
    "app_state": {
      "cash": [{"address": "<hex>", "coins": ["1000 IOV"]}],
      "will": [{"owner": "<hex>", "duration": 60, "deadline": 1060,
                "beneficiaries": ["<hex>"]}]
    }
  }
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := app.LoadGenesis(args[0])
			if err != nil {
				return err
			}
			return c.withRunner(func(r *app.Runner) error {
				id, err := r.InitChain(gen, initializers())
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "chain %s initialized at height %d\n", gen.ChainID, id.Version)
				return nil
			})
		},
	}
}
