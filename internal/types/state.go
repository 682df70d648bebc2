package types

// Enum values for staking position state
type PositionState string

const (
	StateUnstaked       PositionState = "UNSTAKED"
	StateStakedLocked   PositionState = "STAKED_LOCKED"
	StateStakedUnlocked PositionState = "STAKED_UNLOCKED"
)

func (s PositionState) String() string {
	return string(s)
}

// CanUnstake reports whether liquidity may be withdrawn in this state
func (s PositionState) CanUnstake() bool {
	return s == StateStakedUnlocked
}
