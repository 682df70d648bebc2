package types

import (
	"fmt"
	"strings"

	sdkmath "cosmossdk.io/math"
)

// ParseAmount parses a base-10 non-negative integer amount.
func ParseAmount(s string) (sdkmath.Int, error) {
	amount, ok := sdkmath.NewIntFromString(s)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("%w: %q is not an integer", ErrInvalidAmount, s)
	}
	if amount.IsNegative() {
		return sdkmath.Int{}, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}

	return amount, nil
}

// ParseUnits parses a decimal amount of whole tokens, such as "1.5", into the
// base units of a token with the given decimals.
func ParseUnits(s string, decimals uint8) (sdkmath.Int, error) {
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return sdkmath.Int{}, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}
	if len(frac) > int(decimals) {
		return sdkmath.Int{}, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidAmount, s, decimals)
	}
	if whole == "" {
		whole = "0"
	}

	return ParseAmount(whole + frac + strings.Repeat("0", int(decimals)-len(frac)))
}

// IsValidAmount reports whether amount is initialised and not negative.
func IsValidAmount(amount sdkmath.Int) bool {
	return !amount.IsNil() && !amount.IsNegative()
}
