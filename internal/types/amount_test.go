package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount("1000000000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000000000", a.String())

	for _, s := range []string{"", "-1", "1.5", "abc"} {
		_, err := ParseAmount(s)
		assert.ErrorIs(t, err, ErrInvalidAmount, s)
	}
}

func TestParseUnits(t *testing.T) {
	cases := []struct {
		in       string
		decimals uint8
		want     string
	}{
		{"1", 18, "1000000000000000000"},
		{"1.5", 18, "1500000000000000000"},
		{".25", 2, "25"},
		{"7.", 3, "7000"},
		{"0.000000000000000001", 18, "1"},
		{"42", 0, "42"},
	}
	for _, c := range cases {
		got, err := ParseUnits(c.in, c.decimals)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got.String(), c.in)
	}

	invalid := []struct {
		in       string
		decimals uint8
	}{
		{"", 18},
		{".", 18},
		{"1.001", 2},
		{"1.5", 0},
		{"-1", 18},
		{"1.-5", 18},
		{"1e3", 18},
	}
	for _, c := range invalid {
		_, err := ParseUnits(c.in, c.decimals)
		assert.ErrorIs(t, err, ErrInvalidAmount, c.in)
	}
}
