package types

import "errors"

// Ledger and staking failures. Every failed call leaves state untouched.
var (
	ErrInvalidAddress      = errors.New("zero address is not allowed")
	ErrInsufficientBalance = errors.New("not enough tokens")
	ErrAllowanceExceeded   = errors.New("allowed limit exceeded")
	ErrUnauthorized        = errors.New("only owner can do this")
	ErrInvalidAmount       = errors.New("amount value is not allowed")
	ErrLockActive          = errors.New("unstake is not available")
	ErrInsufficientStaked  = errors.New("insufficient amount to unstake")
	ErrNothingToClaim      = errors.New("not enough tokens to withdraw")
	ErrTransferFailed      = errors.New("asset transfer failed")
)
