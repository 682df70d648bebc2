package services

import (
	"context"
	"fmt"
	"net/http"

	sdkmath "cosmossdk.io/math"

	"github.com/spritzen-labs/simply-staking/internal/ledger"
	"github.com/spritzen-labs/simply-staking/internal/observability/metrics"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

type TokenInfo struct {
	ledger.Metadata
	TotalSupply sdkmath.Int `json:"total_supply"`
	Minter      string      `json:"minter"`
	Holders     int         `json:"holders"`
}

// exec runs a mutating call under the service lock and flushes what it
// committed. Events are published after the lock is released. f adds the rows
// it touches that its events do not name.
func (s *Service) exec(ctx context.Context, op string, f func(changes *changeSet) error) error {
	defer s.publishPending(ctx)

	return metrics.TrackOperation(op, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()

		changes := newChangeSet()
		if err := f(changes); err != nil {
			// a failed call commits nothing
			s.recorder.Drain()
			return err
		}

		return s.flush(ctx, changes)
	})
}

func (s *Service) ledger(symbol string) (*ledger.Ledger, error) {
	l := s.ledgerBySymbol(symbol)
	if l == nil {
		return nil, types.NewErrorWithMsg(http.StatusNotFound, types.NotFound, fmt.Sprintf("token %q not found", symbol))
	}
	return l, nil
}

func (s *Service) TokenInfo(symbol string) (*TokenInfo, error) {
	l, err := s.ledger(symbol)
	if err != nil {
		return nil, err
	}

	return &TokenInfo{
		Metadata:    l.Metadata(),
		TotalSupply: l.TotalSupply(),
		Minter:      l.Minter().String(),
		Holders:     l.Holders(),
	}, nil
}

func (s *Service) BalanceOf(symbol string, account types.Address) (sdkmath.Int, error) {
	l, err := s.ledger(symbol)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return l.BalanceOf(account)
}

func (s *Service) Allowance(symbol string, owner, spender types.Address) (sdkmath.Int, error) {
	l, err := s.ledger(symbol)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return l.Allowance(owner, spender)
}

func (s *Service) Transfer(ctx context.Context, symbol string, caller, to types.Address, amount sdkmath.Int) error {
	l, err := s.ledger(symbol)
	if err != nil {
		return err
	}
	return s.exec(ctx, "transfer", func(*changeSet) error {
		return l.Transfer(caller, to, amount)
	})
}

func (s *Service) Approve(ctx context.Context, symbol string, caller, spender types.Address, amount sdkmath.Int) error {
	l, err := s.ledger(symbol)
	if err != nil {
		return err
	}
	return s.exec(ctx, "approve", func(*changeSet) error {
		return l.Approve(caller, spender, amount)
	})
}

func (s *Service) TransferFrom(ctx context.Context, symbol string, caller, from, to types.Address, amount sdkmath.Int) error {
	l, err := s.ledger(symbol)
	if err != nil {
		return err
	}
	return s.exec(ctx, "transfer_from", func(changes *changeSet) error {
		if err := l.TransferFrom(caller, from, to, amount); err != nil {
			return err
		}
		changes.addAllowance(l, from, caller)
		return nil
	})
}

func (s *Service) Mint(ctx context.Context, symbol string, caller, to types.Address, amount sdkmath.Int) error {
	l, err := s.ledger(symbol)
	if err != nil {
		return err
	}
	return s.exec(ctx, "mint", func(*changeSet) error {
		return l.Mint(caller, to, amount)
	})
}

func (s *Service) Burn(ctx context.Context, symbol string, caller, from types.Address, amount sdkmath.Int) error {
	l, err := s.ledger(symbol)
	if err != nil {
		return err
	}
	return s.exec(ctx, "burn", func(*changeSet) error {
		return l.Burn(caller, from, amount)
	})
}
