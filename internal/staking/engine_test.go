package staking

import (
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spritzen-labs/simply-staking/internal/clock"
	"github.com/spritzen-labs/simply-staking/internal/events"
	"github.com/spritzen-labs/simply-staking/internal/ledger"
	"github.com/spritzen-labs/simply-staking/internal/types"
	"github.com/spritzen-labs/simply-staking/testutil"
)

type engineFixture struct {
	engine    *Engine
	clock     *clock.ManualClock
	recorder  *events.Recorder
	reward    *ledger.Ledger
	liquidity *ledger.Ledger
	admin     types.Address
	staker    types.Address
	other     types.Address
}

func amt(v int64) sdkmath.Int {
	return sdkmath.NewInt(v)
}

// newEngineFixture deploys both ledgers and the engine the way the deploy
// command does: the admin mints the reward pool to the engine account and
// liquidity to the stakers.
func newEngineFixture(t *testing.T, rewardPool int64) *engineFixture {
	t.Helper()

	addrs := testutil.RandomAddresses(4)
	admin, account, staker, other := addrs[0], addrs[1], addrs[2], addrs[3]

	clk := clock.NewManualClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	rec := events.NewRecorder()

	reward, err := ledger.New(ledger.Metadata{Name: "Spritzen", Symbol: "SPR", Decimals: 18}, admin, ledger.WithClock(clk))
	require.NoError(t, err)
	liquidity, err := ledger.New(ledger.Metadata{Name: "Liquidity", Symbol: "LP", Decimals: 18}, admin, ledger.WithClock(clk))
	require.NoError(t, err)

	engine, err := New(admin, account, liquidity, reward, WithClock(clk), WithEventSink(rec))
	require.NoError(t, err)

	if rewardPool > 0 {
		require.NoError(t, reward.Mint(admin, account, amt(rewardPool)))
	}
	for _, a := range []types.Address{staker, other} {
		require.NoError(t, liquidity.Mint(admin, a, amt(1000)))
	}

	return &engineFixture{
		engine:    engine,
		clock:     clk,
		recorder:  rec,
		reward:    reward,
		liquidity: liquidity,
		admin:     admin,
		staker:    staker,
		other:     other,
	}
}

func (f *engineFixture) stake(t *testing.T, who types.Address, amount int64) {
	t.Helper()
	require.NoError(t, f.liquidity.Approve(who, f.engine.Account(), amt(amount)))
	require.NoError(t, f.engine.Stake(who, amt(amount)))
}

func requirePosition(t *testing.T, e *Engine, who types.Address, staked, available, unavailable int64) {
	t.Helper()
	b, err := e.BalanceOf(who)
	require.NoError(t, err)
	assert.Equal(t, amt(staked).String(), b.Staked.String(), "staked")
	assert.Equal(t, amt(available).String(), b.AvailableReward.String(), "available")
	assert.Equal(t, amt(unavailable).String(), b.UnavailableReward.String(), "unavailable")
}

func TestNewEngine(t *testing.T) {
	f := newEngineFixture(t, 0)

	_, err := New(types.ZeroAddress, f.engine.Account(), f.liquidity, f.reward)
	assert.ErrorIs(t, err, types.ErrInvalidAddress)
	_, err = New(f.admin, types.ZeroAddress, f.liquidity, f.reward)
	assert.ErrorIs(t, err, types.ErrInvalidAddress)
	_, err = New(f.admin, f.engine.Account(), nil, f.reward)
	assert.Error(t, err)
	_, err = New(f.admin, f.engine.Account(), f.liquidity, f.reward, WithParams(Params{RewardMaturationWindow: -1}))
	assert.ErrorIs(t, err, types.ErrInvalidAmount)

	assert.Equal(t, DefaultParams(), f.engine.Params())
	assert.Equal(t, f.admin, f.engine.Admin())
}

func TestAdminSetters(t *testing.T) {
	t.Run("admin updates params", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		require.NoError(t, f.engine.SetRewardRate(f.admin, 15))
		require.NoError(t, f.engine.SetUnavailableTime(f.admin, 3*time.Minute))
		require.NoError(t, f.engine.SetUnstakeTime(f.admin, 6*time.Minute))

		assert.Equal(t, Params{
			RewardRate:             15,
			RewardMaturationWindow: 3 * time.Minute,
			UnstakeLockDuration:    6 * time.Minute,
		}, f.engine.Params())
	})
	t.Run("non admin", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		assert.ErrorIs(t, f.engine.SetRewardRate(f.staker, 15), types.ErrUnauthorized)
		assert.ErrorIs(t, f.engine.SetUnavailableTime(f.staker, time.Minute), types.ErrUnauthorized)
		assert.ErrorIs(t, f.engine.SetUnstakeTime(f.staker, time.Minute), types.ErrUnauthorized)
		assert.Equal(t, DefaultParams(), f.engine.Params())
	})
	t.Run("negative durations", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		assert.ErrorIs(t, f.engine.SetUnavailableTime(f.admin, -time.Second), types.ErrInvalidAmount)
		assert.ErrorIs(t, f.engine.SetUnstakeTime(f.admin, -time.Second), types.ErrInvalidAmount)
		assert.Equal(t, DefaultParams(), f.engine.Params())
	})
	t.Run("combined update is all or nothing", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		err := f.engine.UpdateParams(f.admin, func(p *Params) {
			p.RewardRate = 99
			p.UnstakeLockDuration = -time.Second
		})
		assert.ErrorIs(t, err, types.ErrInvalidAmount)
		assert.Equal(t, DefaultParams(), f.engine.Params())

		require.NoError(t, f.engine.UpdateParams(f.admin, func(p *Params) {
			p.RewardRate = 99
			p.UnstakeLockDuration = time.Hour
		}))
		assert.Equal(t, uint64(99), f.engine.Params().RewardRate)
		assert.Equal(t, time.Hour, f.engine.Params().UnstakeLockDuration)
	})
}

func TestStake(t *testing.T) {
	t.Run("zero amount", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		assert.ErrorIs(t, f.engine.Stake(f.staker, amt(0)), types.ErrInvalidAmount)
		assert.ErrorIs(t, f.engine.Stake(f.staker, amt(-1)), types.ErrInvalidAmount)
	})
	t.Run("zero caller", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		assert.ErrorIs(t, f.engine.Stake(types.ZeroAddress, amt(1)), types.ErrInvalidAddress)
	})
	t.Run("stakes and books the first window reward", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		f.stake(t, f.staker, 10)

		requirePosition(t, f.engine, f.staker, 10, 0, 1)

		held, err := f.liquidity.BalanceOf(f.engine.Account())
		require.NoError(t, err)
		assert.Equal(t, "10", held.String())
		own, err := f.liquidity.BalanceOf(f.staker)
		require.NoError(t, err)
		assert.Equal(t, "990", own.String())

		evs := f.recorder.Events()
		require.Len(t, evs, 1)
		assert.Equal(t, types.EventStake, evs[0].Type)
		assert.Equal(t, f.staker, evs[0].Account)
		assert.Equal(t, "10", evs[0].Amount.String())
		assert.Equal(t, EventSource, evs[0].Source)
	})
	t.Run("second stake before maturation", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		f.stake(t, f.staker, 10)
		f.clock.Advance(6 * time.Minute)
		f.stake(t, f.staker, 10)

		requirePosition(t, f.engine, f.staker, 20, 0, 2)
	})
	t.Run("second stake after maturation", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		f.stake(t, f.staker, 10)
		f.clock.Advance(12 * time.Minute)
		f.stake(t, f.staker, 10)

		requirePosition(t, f.engine, f.staker, 20, 1, 1)
	})
	t.Run("without approval", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		err := f.engine.Stake(f.staker, amt(10))
		assert.ErrorIs(t, err, types.ErrTransferFailed)
		assert.ErrorIs(t, err, types.ErrAllowanceExceeded)

		_, ok := f.engine.Position(f.staker)
		assert.False(t, ok)
		assert.Empty(t, f.recorder.Events())
	})
	t.Run("more than liquidity balance", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		require.NoError(t, f.liquidity.Approve(f.staker, f.engine.Account(), amt(1000)))
		require.NoError(t, f.liquidity.Transfer(f.staker, f.other, amt(500)))

		err := f.engine.Stake(f.staker, amt(1000))
		assert.ErrorIs(t, err, types.ErrTransferFailed)
		assert.ErrorIs(t, err, types.ErrInsufficientBalance)
		requirePosition(t, f.engine, f.staker, 0, 0, 0)
	})
}

func TestUnstake(t *testing.T) {
	t.Run("lock active", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		f.stake(t, f.staker, 10)

		assert.ErrorIs(t, f.engine.Unstake(f.staker, amt(10)), types.ErrLockActive)
		f.clock.Advance(DefaultUnstakeLockDuration - time.Nanosecond)
		assert.ErrorIs(t, f.engine.Unstake(f.staker, amt(10)), types.ErrLockActive)
		assert.Equal(t, types.StateStakedLocked, f.engine.State(f.staker))
	})
	t.Run("after lock", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		f.stake(t, f.staker, 10)
		f.clock.Advance(12 * time.Minute)

		assert.Equal(t, types.StateStakedUnlocked, f.engine.State(f.staker))
		require.NoError(t, f.engine.Unstake(f.staker, amt(10)))
		requirePosition(t, f.engine, f.staker, 0, 1, 0)
		assert.Equal(t, types.StateUnstaked, f.engine.State(f.staker))

		own, err := f.liquidity.BalanceOf(f.staker)
		require.NoError(t, err)
		assert.Equal(t, "1000", own.String())

		evs := f.recorder.Events()
		require.Len(t, evs, 2)
		assert.Equal(t, types.EventUnstake, evs[1].Type)
	})
	t.Run("exactly at lock end", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		f.stake(t, f.staker, 10)
		f.clock.Advance(DefaultUnstakeLockDuration)
		require.NoError(t, f.engine.Unstake(f.staker, amt(4)))
		requirePosition(t, f.engine, f.staker, 6, 1, 0)
	})
	t.Run("never staked", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		assert.ErrorIs(t, f.engine.Unstake(f.admin, amt(1000)), types.ErrInsufficientStaked)
	})
	t.Run("more than staked", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		f.stake(t, f.staker, 10)
		f.clock.Advance(12 * time.Minute)
		assert.ErrorIs(t, f.engine.Unstake(f.staker, amt(11)), types.ErrInsufficientStaked)
		requirePosition(t, f.engine, f.staker, 10, 1, 0)
	})
	t.Run("zero amount", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		assert.ErrorIs(t, f.engine.Unstake(f.staker, amt(0)), types.ErrInvalidAmount)
	})
	t.Run("new stake restarts the lock", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		f.stake(t, f.staker, 10)
		f.clock.Advance(12 * time.Minute)
		f.stake(t, f.staker, 5)
		assert.ErrorIs(t, f.engine.Unstake(f.staker, amt(1)), types.ErrLockActive)
	})
	t.Run("claim does not restart the lock", func(t *testing.T) {
		f := newEngineFixture(t, 100)
		f.stake(t, f.staker, 10)
		f.clock.Advance(12 * time.Minute)
		_, err := f.engine.Claim(f.staker)
		require.NoError(t, err)
		require.NoError(t, f.engine.Unstake(f.staker, amt(10)))
	})
	t.Run("unstake does not restart the lock", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		f.stake(t, f.staker, 10)
		f.clock.Advance(DefaultUnstakeLockDuration)
		require.NoError(t, f.engine.Unstake(f.staker, amt(1)))
		require.NoError(t, f.engine.Unstake(f.staker, amt(1)))
		assert.Equal(t, types.StateStakedUnlocked, f.engine.State(f.staker))
	})
}

func TestClaim(t *testing.T) {
	t.Run("nothing to claim", func(t *testing.T) {
		f := newEngineFixture(t, 100)
		_, err := f.engine.Claim(f.staker)
		assert.ErrorIs(t, err, types.ErrNothingToClaim)

		f.stake(t, f.staker, 10)
		_, err = f.engine.Claim(f.staker)
		assert.ErrorIs(t, err, types.ErrNothingToClaim)
		requirePosition(t, f.engine, f.staker, 10, 0, 1)
	})
	t.Run("claims matured reward", func(t *testing.T) {
		f := newEngineFixture(t, 100)
		f.stake(t, f.staker, 10)
		f.clock.Advance(12 * time.Minute)

		claimed, err := f.engine.Claim(f.staker)
		require.NoError(t, err)
		assert.Equal(t, "1", claimed.String())

		got, err := f.reward.BalanceOf(f.staker)
		require.NoError(t, err)
		assert.Equal(t, "1", got.String())
		pool, err := f.reward.BalanceOf(f.engine.Account())
		require.NoError(t, err)
		assert.Equal(t, "99", pool.String())

		evs := f.recorder.Events()
		require.Len(t, evs, 2)
		assert.Equal(t, types.EventClaim, evs[1].Type)
		assert.Equal(t, f.staker, evs[1].Account)
		assert.Equal(t, "1", evs[1].Amount.String())
	})
	t.Run("leaves unavailable reward untouched", func(t *testing.T) {
		f := newEngineFixture(t, 100)
		f.stake(t, f.staker, 10)
		f.clock.Advance(12 * time.Minute)
		f.stake(t, f.staker, 10)
		f.clock.Advance(4 * time.Minute)

		claimed, err := f.engine.Claim(f.staker)
		require.NoError(t, err)
		assert.Equal(t, "1", claimed.String())
		requirePosition(t, f.engine, f.staker, 20, 0, 1)
	})
	t.Run("long hold earns every window", func(t *testing.T) {
		f := newEngineFixture(t, 100)
		f.stake(t, f.staker, 10)
		f.clock.Advance(30 * time.Minute)

		claimed, err := f.engine.Claim(f.staker)
		require.NoError(t, err)
		assert.Equal(t, "3", claimed.String())

		f.clock.Advance(10 * time.Minute)
		claimed, err = f.engine.Claim(f.staker)
		require.NoError(t, err)
		assert.Equal(t, "1", claimed.String())
	})
	t.Run("empty reward pool", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		f.stake(t, f.staker, 10)
		f.clock.Advance(12 * time.Minute)

		_, err := f.engine.Claim(f.staker)
		assert.ErrorIs(t, err, types.ErrTransferFailed)
		assert.ErrorIs(t, err, types.ErrInsufficientBalance)

		// nothing was committed, including the settlement
		pos, ok := f.engine.Position(f.staker)
		require.True(t, ok)
		assert.Equal(t, "1", pos.UnavailableReward.String())
		assert.True(t, pos.AvailableReward.IsZero())
	})
}

func TestBalanceOfDoesNotWrite(t *testing.T) {
	f := newEngineFixture(t, 0)
	f.stake(t, f.staker, 10)
	before, _ := f.engine.Position(f.staker)

	f.clock.Advance(12 * time.Minute)
	requirePosition(t, f.engine, f.staker, 10, 1, 0)

	after, _ := f.engine.Position(f.staker)
	assert.Equal(t, before, after)

	_, err := f.engine.BalanceOf(types.ZeroAddress)
	assert.ErrorIs(t, err, types.ErrInvalidAddress)
}

func TestZeroMaturationWindow(t *testing.T) {
	f := newEngineFixture(t, 100)
	require.NoError(t, f.engine.SetUnavailableTime(f.admin, 0))
	require.NoError(t, f.engine.SetUnstakeTime(f.admin, 0))

	f.stake(t, f.staker, 10)
	requirePosition(t, f.engine, f.staker, 10, 1, 0)

	claimed, err := f.engine.Claim(f.staker)
	require.NoError(t, err)
	assert.Equal(t, "1", claimed.String())
	require.NoError(t, f.engine.Unstake(f.staker, amt(10)))
}

func TestRestore(t *testing.T) {
	f := newEngineFixture(t, 100)
	f.stake(t, f.staker, 10)
	f.clock.Advance(12 * time.Minute)

	params := Params{RewardRate: 20, RewardMaturationWindow: time.Minute, UnstakeLockDuration: time.Minute}
	positions := f.engine.Positions()

	other, err := New(f.admin, f.engine.Account(), f.liquidity, f.reward, WithClock(f.clock))
	require.NoError(t, err)
	require.NoError(t, other.Restore(params, positions))

	assert.Equal(t, params, other.Params())
	assert.Equal(t, "10", other.TotalStaked().String())
	requirePosition(t, other, f.staker, 10, 24, 0)

	err = other.Restore(params, map[types.Address]Position{types.ZeroAddress: NewPosition()})
	assert.ErrorIs(t, err, types.ErrInvalidAddress)
}

func TestTotalStaked(t *testing.T) {
	f := newEngineFixture(t, 0)
	f.stake(t, f.staker, 10)
	f.stake(t, f.other, 15)
	assert.Equal(t, "25", f.engine.TotalStaked().String())
	assert.Len(t, f.engine.Positions(), 2)
}
