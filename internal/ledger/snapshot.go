package ledger

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/spritzen-labs/simply-staking/internal/types"
)

// State is a point-in-time copy of a ledger's balances, allowances and supply.
type State struct {
	TotalSupply sdkmath.Int
	Balances    map[types.Address]sdkmath.Int
	Allowances  map[AllowanceKey]sdkmath.Int
}

func (l *Ledger) Snapshot() State {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := State{
		TotalSupply: l.totalSupply,
		Balances:    make(map[types.Address]sdkmath.Int, len(l.balances)),
		Allowances:  make(map[AllowanceKey]sdkmath.Int, len(l.allowances)),
	}
	for a, v := range l.balances {
		s.Balances[a] = v
	}
	for k, v := range l.allowances {
		s.Allowances[k] = v
	}

	return s
}

// Restore replaces the ledger contents with a previously persisted state.
// The state is rejected when its balances do not add up to its supply.
func (l *Ledger) Restore(s State) error {
	sum := sdkmath.ZeroInt()
	for a, v := range s.Balances {
		if a.IsZero() {
			return fmt.Errorf("%w: balance stored for zero address", types.ErrInvalidAddress)
		}
		if !types.IsValidAmount(v) {
			return fmt.Errorf("%w: balance of %s", types.ErrInvalidAmount, a)
		}
		var err error
		if sum, err = sum.SafeAdd(v); err != nil {
			return fmt.Errorf("%w: balances overflow: %w", types.ErrInvalidAmount, err)
		}
	}
	for k, v := range s.Allowances {
		if k.Owner.IsZero() || k.Spender.IsZero() {
			return fmt.Errorf("%w: allowance stored for zero address", types.ErrInvalidAddress)
		}
		if !types.IsValidAmount(v) {
			return fmt.Errorf("%w: allowance of %s for %s", types.ErrInvalidAmount, k.Owner, k.Spender)
		}
	}

	supply := s.TotalSupply
	if supply.IsNil() {
		supply = sdkmath.ZeroInt()
	}
	if !sum.Equal(supply) {
		return fmt.Errorf("balances sum %s does not match total supply %s", sum, supply)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.totalSupply = supply
	l.balances = make(map[types.Address]sdkmath.Int, len(s.Balances))
	l.allowances = make(map[AllowanceKey]sdkmath.Int, len(s.Allowances))
	for a, v := range s.Balances {
		if !v.IsZero() {
			l.balances[a] = v
		}
	}
	for k, v := range s.Allowances {
		if !v.IsZero() {
			l.allowances[k] = v
		}
	}

	return nil
}
