package cli

import (
	"github.com/spf13/cobra"

	"github.com/spritzen-labs/simply-staking/internal/types"
	"github.com/spritzen-labs/simply-staking/pkg"
)

var tokenSymbol string

// TokenCmd groups the ledger commands. Every subcommand works on the ledger
// selected with --symbol.
func TokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Query and move balances on a token ledger",
	}
	cmd.PersistentFlags().StringVar(&tokenSymbol, "symbol", pkg.Getenv("SIMPLY_STAKING_TOKEN", "SPR"), "token symbol")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "info",
			Short: "Show token metadata and supply",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				c, err := newClient()
				if err != nil {
					return err
				}
				resp, err := c.Token(cmd.Context(), tokenSymbol)
				if err != nil {
					return err
				}
				return printJSON(cmd, resp)
			},
		},
		&cobra.Command{
			Use:   "balance <account>",
			Short: "Show the balance of an account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := newClient()
				if err != nil {
					return err
				}
				resp, err := c.Balance(cmd.Context(), tokenSymbol, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, resp)
			},
		},
		&cobra.Command{
			Use:   "allowance <owner> <spender>",
			Short: "Show how much spender may move on behalf of owner",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := newClient()
				if err != nil {
					return err
				}
				resp, err := c.Allowance(cmd.Context(), tokenSymbol, args[0], args[1])
				if err != nil {
					return err
				}
				return printJSON(cmd, resp)
			},
		},
		callerCommand("transfer <to> <amount>", "Transfer from the caller", 2,
			func(cmd *cobra.Command, caller string, args []string) error {
				c, err := newClient()
				if err != nil {
					return err
				}
				return c.Transfer(cmd.Context(), caller, tokenSymbol, types.TransferRequest{To: args[0], Amount: args[1]})
			}),
		callerCommand("approve <spender> <amount>", "Set the caller's allowance for spender", 2,
			func(cmd *cobra.Command, caller string, args []string) error {
				c, err := newClient()
				if err != nil {
					return err
				}
				return c.Approve(cmd.Context(), caller, tokenSymbol, types.ApproveRequest{Spender: args[0], Amount: args[1]})
			}),
		callerCommand("transfer-from <from> <to> <amount>", "Transfer using the caller's allowance", 3,
			func(cmd *cobra.Command, caller string, args []string) error {
				c, err := newClient()
				if err != nil {
					return err
				}
				return c.TransferFrom(cmd.Context(), caller, tokenSymbol,
					types.TransferFromRequest{From: args[0], To: args[1], Amount: args[2]})
			}),
		callerCommand("mint <to> <amount>", "Mint new tokens, minter only", 2,
			func(cmd *cobra.Command, caller string, args []string) error {
				c, err := newClient()
				if err != nil {
					return err
				}
				return c.Mint(cmd.Context(), caller, tokenSymbol, types.MintRequest{To: args[0], Amount: args[1]})
			}),
		callerCommand("burn <from> <amount>", "Burn tokens, minter only", 2,
			func(cmd *cobra.Command, caller string, args []string) error {
				c, err := newClient()
				if err != nil {
					return err
				}
				return c.Burn(cmd.Context(), caller, tokenSymbol, types.BurnRequest{From: args[0], Amount: args[1]})
			}),
	)

	return cmd
}

// callerCommand builds a command that acts on behalf of --caller.
func callerCommand(
	use, short string, nargs int, run func(cmd *cobra.Command, caller string, args []string) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := requireCaller()
			if err != nil {
				return err
			}
			return run(cmd, caller, args)
		},
	}
}
