package ledger

import (
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/google/uuid"

	"github.com/spritzen-labs/simply-staking/internal/types"
)

// txn stages the writes of a single ledger call. Reads fall through to the
// committed state, nothing is visible outside until commit.
type txn struct {
	l          *Ledger
	now        time.Time
	balances   map[types.Address]sdkmath.Int
	allowances map[AllowanceKey]sdkmath.Int
	supply     *sdkmath.Int
	events     []types.Event
}

func (l *Ledger) begin() *txn {
	return &txn{
		l:          l,
		now:        l.clock.Now(),
		balances:   make(map[types.Address]sdkmath.Int),
		allowances: make(map[AllowanceKey]sdkmath.Int),
	}
}

func (t *txn) balanceOf(a types.Address) sdkmath.Int {
	if v, ok := t.balances[a]; ok {
		return v
	}
	return t.l.balanceOf(a)
}

func (t *txn) allowance(owner, spender types.Address) sdkmath.Int {
	key := AllowanceKey{Owner: owner, Spender: spender}
	if v, ok := t.allowances[key]; ok {
		return v
	}
	return t.l.allowance(key)
}

func (t *txn) totalSupply() sdkmath.Int {
	if t.supply != nil {
		return *t.supply
	}
	return t.l.totalSupply
}

func (t *txn) setAllowance(owner, spender types.Address, amount sdkmath.Int) {
	t.allowances[AllowanceKey{Owner: owner, Spender: spender}] = amount
}

func (t *txn) credit(a types.Address, amount sdkmath.Int) error {
	next, err := t.balanceOf(a).SafeAdd(amount)
	if err != nil {
		return fmt.Errorf("%w: balance overflow: %w", types.ErrInvalidAmount, err)
	}
	t.balances[a] = next
	return nil
}

func (t *txn) debit(a types.Address, amount sdkmath.Int) error {
	current := t.balanceOf(a)
	if current.LT(amount) {
		return types.ErrInsufficientBalance
	}
	t.balances[a] = current.Sub(amount)
	return nil
}

func (t *txn) move(from, to types.Address, amount sdkmath.Int) error {
	if err := t.debit(from, amount); err != nil {
		return err
	}
	return t.credit(to, amount)
}

func (t *txn) adjustSupply(delta sdkmath.Int) error {
	next, err := t.totalSupply().SafeAdd(delta)
	if err != nil {
		return fmt.Errorf("%w: supply overflow: %w", types.ErrInvalidAmount, err)
	}
	t.supply = &next
	return nil
}

func (t *txn) emit(ev types.Event) {
	ev.ID = uuid.NewString()
	ev.Source = t.l.meta.Symbol
	ev.Timestamp = t.now
	t.events = append(t.events, ev)
}

// commit applies staged writes and hands the events to the sink.
// The caller must hold l.mu.
func (t *txn) commit() {
	l := t.l
	for a, v := range t.balances {
		if v.IsZero() {
			delete(l.balances, a)
			continue
		}
		l.balances[a] = v
	}
	for k, v := range t.allowances {
		if v.IsZero() {
			delete(l.allowances, k)
			continue
		}
		l.allowances[k] = v
	}
	if t.supply != nil {
		l.totalSupply = *t.supply
	}
	for _, ev := range t.events {
		l.sink.Emit(ev)
	}
}
