package testutil

import (
	sdkmath "cosmossdk.io/math"
	"github.com/brianvoe/gofakeit/v7"

	"github.com/spritzen-labs/simply-staking/internal/types"
)

// RandomAddress returns a random non-zero address
func RandomAddress() types.Address {
	var a types.Address
	for a.IsZero() {
		for i := range a {
			a[i] = gofakeit.Uint8()
		}
	}
	return a
}

// RandomAddresses returns n distinct random addresses
func RandomAddresses(n int) []types.Address {
	seen := make(map[types.Address]struct{}, n)
	out := make([]types.Address, 0, n)
	for len(out) < n {
		a := RandomAddress()
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

// RandomAmount returns an amount in [lo, hi]
func RandomAmount(lo, hi int) sdkmath.Int {
	return sdkmath.NewInt(int64(gofakeit.IntRange(lo, hi)))
}
