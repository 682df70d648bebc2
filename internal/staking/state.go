package staking

import (
	"time"

	"github.com/spritzen-labs/simply-staking/internal/types"
)

// StateOf classifies a position at `now`. The unstake lock runs from the last
// stake, so a staker can always withdraw once UnstakeLockDuration has passed
// since they last added liquidity. Claims and unstakes do not extend it.
func StateOf(pos Position, p Params, now time.Time) types.PositionState {
	pos = pos.normalized()
	if !pos.Staked.IsPositive() {
		return types.StateUnstaked
	}
	if now.Sub(pos.LockedSince) < p.UnstakeLockDuration {
		return types.StateStakedLocked
	}
	return types.StateStakedUnlocked
}
