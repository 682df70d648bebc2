package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spritzen-labs/simply-staking/internal/clients/stakingclient"
	"github.com/spritzen-labs/simply-staking/internal/types"
	"github.com/spritzen-labs/simply-staking/pkg"
)

func StakeCmd() *cobra.Command {
	var (
		liquiditySymbol string
		engineAddress   string
		skipApprove     bool
		inUnits         bool
	)

	cmd := callerCommand("stake <amount>", "Approve the engine and stake liquidity", 1,
		func(cmd *cobra.Command, caller string, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			amount, err := baseAmount(cmd.Context(), c, liquiditySymbol, args[0], inUnits)
			if err != nil {
				return err
			}

			if !skipApprove {
				if engineAddress == "" {
					return fmt.Errorf("--engine is required unless --skip-approve is set")
				}
				err := c.Approve(cmd.Context(), caller, liquiditySymbol,
					types.ApproveRequest{Spender: engineAddress, Amount: amount})
				if err != nil {
					return fmt.Errorf("failed to approve engine: %w", err)
				}
			}

			resp, err := c.Stake(cmd.Context(), caller, amount)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		})
	cmd.Flags().StringVar(&liquiditySymbol, "liquidity", pkg.Getenv("SIMPLY_STAKING_LIQUIDITY", "LP"), "liquidity token symbol")
	cmd.Flags().StringVar(&engineAddress, "engine", pkg.Getenv("SIMPLY_STAKING_ENGINE", ""), "staking engine account")
	cmd.Flags().BoolVar(&skipApprove, "skip-approve", false, "stake against an existing allowance")
	cmd.Flags().BoolVar(&inUnits, "units", false, "read the amount in whole tokens and scale it by the liquidity decimals")

	return cmd
}

func UnstakeCmd() *cobra.Command {
	var (
		liquiditySymbol string
		inUnits         bool
	)

	cmd := callerCommand("unstake <amount>", "Withdraw staked liquidity", 1,
		func(cmd *cobra.Command, caller string, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			amount, err := baseAmount(cmd.Context(), c, liquiditySymbol, args[0], inUnits)
			if err != nil {
				return err
			}
			resp, err := c.Unstake(cmd.Context(), caller, amount)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		})
	cmd.Flags().StringVar(&liquiditySymbol, "liquidity", pkg.Getenv("SIMPLY_STAKING_LIQUIDITY", "LP"), "liquidity token symbol")
	cmd.Flags().BoolVar(&inUnits, "units", false, "read the amount in whole tokens and scale it by the liquidity decimals")

	return cmd
}

// baseAmount returns amount in base units. With inUnits set, amount is read
// as whole tokens of symbol, e.g. "1.5", and scaled by the token's decimals.
func baseAmount(ctx context.Context, c stakingclient.StakingInterface, symbol, amount string, inUnits bool) (string, error) {
	if !inUnits {
		return amount, nil
	}

	token, err := c.Token(ctx, symbol)
	if err != nil {
		return "", fmt.Errorf("failed to get token %s: %w", symbol, err)
	}
	base, err := types.ParseUnits(amount, token.Decimals)
	if err != nil {
		return "", err
	}

	return base.String(), nil
}

func ClaimCmd() *cobra.Command {
	return callerCommand("claim", "Claim the available reward", 0,
		func(cmd *cobra.Command, caller string, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			resp, err := c.Claim(cmd.Context(), caller)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		})
}

func PositionCmd() *cobra.Command {
	return callerCommand("position", "Show the caller's staking position", 0,
		func(cmd *cobra.Command, caller string, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			resp, err := c.Position(cmd.Context(), caller)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		})
}

func ParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Show the staking parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			resp, err := c.Params(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
}

func SetParamsCmd() *cobra.Command {
	var (
		rewardRate       uint64
		maturationWindow time.Duration
		unstakeLock      time.Duration
	)

	cmd := callerCommand("set-params", "Update staking parameters, admin only", 0,
		func(cmd *cobra.Command, caller string, _ []string) error {
			var req types.StakingParamsRequest
			flags := cmd.Flags()
			if flags.Changed("reward-rate") {
				req.RewardRate = pkg.Ptr(rewardRate)
			}
			if flags.Changed("maturation-window") {
				req.RewardMaturationWindow = pkg.Ptr(maturationWindow.String())
			}
			if flags.Changed("unstake-lock") {
				req.UnstakeLockDuration = pkg.Ptr(unstakeLock.String())
			}
			if req.RewardRate == nil && req.RewardMaturationWindow == nil && req.UnstakeLockDuration == nil {
				return fmt.Errorf("at least one parameter must be set")
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			resp, err := c.SetParams(cmd.Context(), caller, req)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		})
	cmd.Flags().Uint64Var(&rewardRate, "reward-rate", 0, "reward rate in percent of the staked amount")
	cmd.Flags().DurationVar(&maturationWindow, "maturation-window", 0, "time before accrued reward becomes claimable")
	cmd.Flags().DurationVar(&unstakeLock, "unstake-lock", 0, "time a position stays locked after staking")

	return cmd
}

func EventsCmd() *cobra.Command {
	var query stakingclient.EventsQuery

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List recorded events, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			evs, err := c.Events(cmd.Context(), query)
			if err != nil {
				return err
			}
			return printJSON(cmd, evs)
		},
	}
	cmd.Flags().StringVar(&query.Account, "account", "", "only events touching this account")
	cmd.Flags().StringVar(&query.Source, "source", "", "only events from this ledger or the engine")
	cmd.Flags().StringVar(&query.Type, "type", "", "only events of this type")
	cmd.Flags().Int64Var(&query.Limit, "limit", 0, "maximum number of events")

	return cmd
}
