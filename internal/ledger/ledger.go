package ledger

import (
	"errors"
	"fmt"
	"sync"

	sdkmath "cosmossdk.io/math"

	"github.com/spritzen-labs/simply-staking/internal/clock"
	"github.com/spritzen-labs/simply-staking/internal/events"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

// Metadata describes the token held by a ledger.
type Metadata struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

type AllowanceKey struct {
	Owner   types.Address
	Spender types.Address
}

// Ledger is a fungible token ledger with a single privileged minter.
// All calls are serialised and either fully applied or not applied at all.
type Ledger struct {
	mu sync.Mutex

	meta   Metadata
	minter types.Address
	clock  clock.Clock
	sink   events.Sink

	totalSupply sdkmath.Int
	balances    map[types.Address]sdkmath.Int
	allowances  map[AllowanceKey]sdkmath.Int
}

type Option func(*Ledger)

func WithClock(c clock.Clock) Option {
	return func(l *Ledger) {
		l.clock = c
	}
}

func WithEventSink(s events.Sink) Option {
	return func(l *Ledger) {
		l.sink = s
	}
}

func New(meta Metadata, minter types.Address, opts ...Option) (*Ledger, error) {
	if minter.IsZero() {
		return nil, fmt.Errorf("%w: minter", types.ErrInvalidAddress)
	}
	if meta.Symbol == "" {
		return nil, errors.New("token symbol must be set")
	}

	l := &Ledger{
		meta:        meta,
		minter:      minter,
		clock:       clock.NewSystemClock(),
		sink:        events.Discard,
		totalSupply: sdkmath.ZeroInt(),
		balances:    make(map[types.Address]sdkmath.Int),
		allowances:  make(map[AllowanceKey]sdkmath.Int),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

func (l *Ledger) Metadata() Metadata {
	return l.meta
}

func (l *Ledger) Minter() types.Address {
	return l.minter
}

func (l *Ledger) TotalSupply() sdkmath.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalSupply
}

func (l *Ledger) BalanceOf(account types.Address) (sdkmath.Int, error) {
	if account.IsZero() {
		return sdkmath.Int{}, types.ErrInvalidAddress
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balanceOf(account), nil
}

func (l *Ledger) Allowance(owner, spender types.Address) (sdkmath.Int, error) {
	if owner.IsZero() || spender.IsZero() {
		return sdkmath.Int{}, types.ErrInvalidAddress
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.allowance(AllowanceKey{Owner: owner, Spender: spender}), nil
}

// Transfer moves amount from the caller to `to`.
func (l *Ledger) Transfer(caller, to types.Address, amount sdkmath.Int) error {
	if caller.IsZero() || to.IsZero() {
		return types.ErrInvalidAddress
	}
	if !types.IsValidAmount(amount) {
		return types.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	t := l.begin()
	if err := t.move(caller, to, amount); err != nil {
		return err
	}
	t.emit(types.Event{Type: types.EventTransfer, From: caller, To: to, Amount: amount})
	t.commit()

	return nil
}

// Approve sets the spender's allowance over the caller's balance. The new
// value replaces the old one and may not exceed the caller's current balance.
func (l *Ledger) Approve(caller, spender types.Address, amount sdkmath.Int) error {
	if caller.IsZero() || spender.IsZero() {
		return types.ErrInvalidAddress
	}
	if !types.IsValidAmount(amount) {
		return types.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	t := l.begin()
	if t.balanceOf(caller).LT(amount) {
		return types.ErrInsufficientBalance
	}
	t.setAllowance(caller, spender, amount)
	t.emit(types.Event{Type: types.EventApproval, Owner: caller, Spender: spender, Amount: amount})
	t.commit()

	return nil
}

// TransferFrom moves amount from `from` to `to` spending the caller's allowance.
func (l *Ledger) TransferFrom(caller, from, to types.Address, amount sdkmath.Int) error {
	if caller.IsZero() || from.IsZero() || to.IsZero() {
		return types.ErrInvalidAddress
	}
	if !types.IsValidAmount(amount) {
		return types.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	t := l.begin()
	allowed := t.allowance(from, caller)
	if allowed.LT(amount) {
		return types.ErrAllowanceExceeded
	}
	if err := t.move(from, to, amount); err != nil {
		return err
	}
	t.setAllowance(from, caller, allowed.Sub(amount))
	t.emit(types.Event{Type: types.EventTransfer, From: from, To: to, Amount: amount})
	t.commit()

	return nil
}

func (l *Ledger) Mint(caller, to types.Address, amount sdkmath.Int) error {
	if caller != l.minter {
		return types.ErrUnauthorized
	}
	if to.IsZero() {
		return types.ErrInvalidAddress
	}
	if !types.IsValidAmount(amount) {
		return types.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	t := l.begin()
	if err := t.credit(to, amount); err != nil {
		return err
	}
	if err := t.adjustSupply(amount); err != nil {
		return err
	}
	t.emit(types.Event{Type: types.EventTransfer, From: types.ZeroAddress, To: to, Amount: amount})
	t.commit()

	return nil
}

func (l *Ledger) Burn(caller, from types.Address, amount sdkmath.Int) error {
	if caller != l.minter {
		return types.ErrUnauthorized
	}
	if from.IsZero() {
		return types.ErrInvalidAddress
	}
	if !types.IsValidAmount(amount) {
		return types.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	t := l.begin()
	if err := t.debit(from, amount); err != nil {
		return err
	}
	if err := t.adjustSupply(amount.Neg()); err != nil {
		return err
	}
	t.emit(types.Event{Type: types.EventTransfer, From: from, To: types.ZeroAddress, Amount: amount})
	t.commit()

	return nil
}

// Holders returns the number of accounts with a non-zero balance.
func (l *Ledger) Holders() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.balances)
}

func (l *Ledger) balanceOf(a types.Address) sdkmath.Int {
	if v, ok := l.balances[a]; ok {
		return v
	}
	return sdkmath.ZeroInt()
}

func (l *Ledger) allowance(key AllowanceKey) sdkmath.Int {
	if v, ok := l.allowances[key]; ok {
		return v
	}
	return sdkmath.ZeroInt()
}
