package services

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/spritzen-labs/simply-staking/internal/observability/metrics"
	"github.com/spritzen-labs/simply-staking/internal/staking"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

// ParamsUpdate changes the fields that are set and leaves the others alone.
type ParamsUpdate struct {
	RewardRate      *uint64
	UnavailableTime *time.Duration
	UnstakeTime     *time.Duration
}

// PositionView is a participant's position as of now.
type PositionView struct {
	Account types.Address
	staking.Balance
	State       types.PositionState
	LockedUntil time.Time
}

func (s *Service) Params() staking.Params {
	return s.engine.Params()
}

func (s *Service) EngineAccount() types.Address {
	return s.engine.Account()
}

// SetParams applies every set field of the update in one step. An invalid
// field rejects the whole update.
func (s *Service) SetParams(ctx context.Context, caller types.Address, update ParamsUpdate) (staking.Params, error) {
	var params staking.Params
	err := metrics.TrackOperation("set_params", func() error {
		s.mu.Lock()
		defer s.mu.Unlock()

		err := s.engine.UpdateParams(caller, update.apply)
		if err != nil {
			return err
		}
		params = s.engine.Params()

		return s.persistParams(ctx)
	})
	if err != nil {
		return staking.Params{}, err
	}

	return params, nil
}

func (u ParamsUpdate) apply(p *staking.Params) {
	if u.RewardRate != nil {
		p.RewardRate = *u.RewardRate
	}
	if u.UnavailableTime != nil {
		p.RewardMaturationWindow = *u.UnavailableTime
	}
	if u.UnstakeTime != nil {
		p.UnstakeLockDuration = *u.UnstakeTime
	}
}

// Stake pulls amount of liquidity from the caller. The caller must have
// approved the engine account on the liquidity ledger.
func (s *Service) Stake(ctx context.Context, caller types.Address, amount sdkmath.Int) error {
	return s.exec(ctx, "stake", func(changes *changeSet) error {
		if err := s.engine.Stake(caller, amount); err != nil {
			return err
		}
		changes.addAllowance(s.liquidity, caller, s.engine.Account())
		return nil
	})
}

func (s *Service) Unstake(ctx context.Context, caller types.Address, amount sdkmath.Int) error {
	return s.exec(ctx, "unstake", func(*changeSet) error {
		return s.engine.Unstake(caller, amount)
	})
}

// Claim pays out the caller's whole available reward and returns it.
func (s *Service) Claim(ctx context.Context, caller types.Address) (sdkmath.Int, error) {
	var claimed sdkmath.Int
	err := s.exec(ctx, "claim", func(*changeSet) error {
		var err error
		claimed, err = s.engine.Claim(caller)
		return err
	})
	if err != nil {
		return sdkmath.Int{}, err
	}
	return claimed, nil
}

func (s *Service) Position(account types.Address) (*PositionView, error) {
	balance, err := s.engine.BalanceOf(account)
	if err != nil {
		return nil, err
	}

	view := &PositionView{
		Account: account,
		Balance: balance,
		State:   s.engine.State(account),
	}
	if pos, ok := s.engine.Position(account); ok && view.State == types.StateStakedLocked {
		view.LockedUntil = pos.LockedSince.Add(s.engine.Params().UnstakeLockDuration)
	}

	return view, nil
}
