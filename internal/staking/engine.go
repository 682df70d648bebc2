package staking

import (
	"fmt"
	"sync"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/google/uuid"

	"github.com/spritzen-labs/simply-staking/internal/clock"
	"github.com/spritzen-labs/simply-staking/internal/events"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

const EventSource = "staking"

// LiquidityAsset is the token participants stake.
type LiquidityAsset interface {
	TransferFrom(caller, from, to types.Address, amount sdkmath.Int) error
	Transfer(caller, to types.Address, amount sdkmath.Int) error
}

// RewardToken pays claimed rewards out of the engine account.
type RewardToken interface {
	Transfer(caller, to types.Address, amount sdkmath.Int) error
}

// Engine keeps staking positions and pays rewards. The engine owns the
// account `account` on both ledgers: staked liquidity is held there and
// rewards are paid from there.
type Engine struct {
	mu sync.Mutex

	admin   types.Address
	account types.Address
	params  Params

	liquidity LiquidityAsset
	reward    RewardToken
	clock     clock.Clock
	sink      events.Sink

	positions map[types.Address]Position
}

type Option func(*Engine)

func WithParams(p Params) Option {
	return func(e *Engine) {
		e.params = p
	}
}

func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

func WithEventSink(s events.Sink) Option {
	return func(e *Engine) {
		e.sink = s
	}
}

func New(
	admin, account types.Address,
	liquidity LiquidityAsset,
	reward RewardToken,
	opts ...Option,
) (*Engine, error) {
	if admin.IsZero() {
		return nil, fmt.Errorf("%w: admin", types.ErrInvalidAddress)
	}
	if account.IsZero() {
		return nil, fmt.Errorf("%w: engine account", types.ErrInvalidAddress)
	}
	if liquidity == nil || reward == nil {
		return nil, fmt.Errorf("liquidity asset and reward token are required")
	}

	e := &Engine{
		admin:     admin,
		account:   account,
		params:    DefaultParams(),
		liquidity: liquidity,
		reward:    reward,
		clock:     clock.NewSystemClock(),
		sink:      events.Discard,
		positions: make(map[types.Address]Position),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.params.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Engine) Admin() types.Address {
	return e.admin
}

func (e *Engine) Account() types.Address {
	return e.account
}

func (e *Engine) Params() Params {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params
}

func (e *Engine) SetRewardRate(caller types.Address, rate uint64) error {
	return e.UpdateParams(caller, func(p *Params) {
		p.RewardRate = rate
	})
}

func (e *Engine) SetUnavailableTime(caller types.Address, window time.Duration) error {
	return e.UpdateParams(caller, func(p *Params) {
		p.RewardMaturationWindow = window
	})
}

func (e *Engine) SetUnstakeTime(caller types.Address, lock time.Duration) error {
	return e.UpdateParams(caller, func(p *Params) {
		p.UnstakeLockDuration = lock
	})
}

// UpdateParams applies update to a copy of the current params and commits the
// copy only if it is valid.
func (e *Engine) UpdateParams(caller types.Address, update func(p *Params)) error {
	if caller != e.admin {
		return types.ErrUnauthorized
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.params
	update(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	e.params = next

	return nil
}

// Stake pulls amount of liquidity from the caller, who must have approved the
// engine account beforehand.
func (e *Engine) Stake(caller types.Address, amount sdkmath.Int) error {
	if caller.IsZero() {
		return types.ErrInvalidAddress
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	pos, err := Settle(e.position(caller), e.params, now)
	if err != nil {
		return err
	}

	booked, err := BookedReward(amount, e.params.RewardRate)
	if err != nil {
		return err
	}
	if pos.Staked, err = pos.Staked.SafeAdd(amount); err != nil {
		return fmt.Errorf("%w: stake overflow: %w", types.ErrInvalidAmount, err)
	}
	if pos.UnavailableReward, err = pos.UnavailableReward.SafeAdd(booked); err != nil {
		return fmt.Errorf("%w: reward overflow: %w", types.ErrInvalidAmount, err)
	}
	pos.LockedSince = now

	if err := e.liquidity.TransferFrom(e.account, caller, e.account, amount); err != nil {
		return fmt.Errorf("%w: %w", types.ErrTransferFailed, err)
	}

	e.positions[caller] = pos
	e.emit(types.EventStake, caller, amount, now)

	return nil
}

func (e *Engine) Unstake(caller types.Address, amount sdkmath.Int) error {
	if caller.IsZero() {
		return types.ErrInvalidAddress
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	current := e.position(caller)
	if StateOf(current, e.params, now) == types.StateStakedLocked {
		return types.ErrLockActive
	}
	if current.Staked.LT(amount) {
		return types.ErrInsufficientStaked
	}

	pos, err := Settle(current, e.params, now)
	if err != nil {
		return err
	}
	pos.Staked = pos.Staked.Sub(amount)

	if err := e.liquidity.Transfer(e.account, caller, amount); err != nil {
		return fmt.Errorf("%w: %w", types.ErrTransferFailed, err)
	}

	e.positions[caller] = pos
	e.emit(types.EventUnstake, caller, amount, now)

	return nil
}

// Claim pays out the whole available reward.
func (e *Engine) Claim(caller types.Address) (sdkmath.Int, error) {
	if caller.IsZero() {
		return sdkmath.Int{}, types.ErrInvalidAddress
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	pos, err := Settle(e.position(caller), e.params, now)
	if err != nil {
		return sdkmath.Int{}, err
	}

	amount := pos.AvailableReward
	if !amount.IsPositive() {
		return sdkmath.Int{}, types.ErrNothingToClaim
	}

	if err := e.reward.Transfer(e.account, caller, amount); err != nil {
		return sdkmath.Int{}, fmt.Errorf("%w: %w", types.ErrTransferFailed, err)
	}

	pos.AvailableReward = sdkmath.ZeroInt()
	e.positions[caller] = pos
	e.emit(types.EventClaim, caller, amount, now)

	return amount, nil
}

// BalanceOf reports the caller's position as if it were settled now.
// Nothing is written.
func (e *Engine) BalanceOf(caller types.Address) (Balance, error) {
	if caller.IsZero() {
		return Balance{}, types.ErrInvalidAddress
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	pos, err := Settle(e.position(caller), e.params, e.clock.Now())
	if err != nil {
		return Balance{}, err
	}

	return pos.Balance(), nil
}

func (e *Engine) State(caller types.Address) types.PositionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return StateOf(e.position(caller), e.params, e.clock.Now())
}

// Position returns the stored, unsettled position.
func (e *Engine) Position(caller types.Address) (Position, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	pos, ok := e.positions[caller]
	return pos, ok
}

func (e *Engine) Positions() map[types.Address]Position {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[types.Address]Position, len(e.positions))
	for a, p := range e.positions {
		out[a] = p
	}
	return out
}

// TotalStaked is the sum of all staked liquidity.
func (e *Engine) TotalStaked() sdkmath.Int {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := sdkmath.ZeroInt()
	for _, p := range e.positions {
		total = total.Add(p.Staked)
	}
	return total
}

// Restore replaces parameters and positions with persisted ones.
func (e *Engine) Restore(p Params, positions map[types.Address]Position) error {
	if err := p.Validate(); err != nil {
		return err
	}
	for a := range positions {
		if a.IsZero() {
			return fmt.Errorf("%w: position stored for zero address", types.ErrInvalidAddress)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.params = p
	e.positions = make(map[types.Address]Position, len(positions))
	for a, pos := range positions {
		e.positions[a] = pos.normalized()
	}

	return nil
}

func (e *Engine) position(a types.Address) Position {
	if p, ok := e.positions[a]; ok {
		return p
	}
	return NewPosition()
}

func (e *Engine) emit(typ types.EventType, account types.Address, amount sdkmath.Int, now time.Time) {
	e.sink.Emit(types.Event{
		ID:        uuid.NewString(),
		Type:      typ,
		Source:    EventSource,
		Account:   account,
		Amount:    amount,
		Timestamp: now,
	})
}
