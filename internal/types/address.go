package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const AddressLength = 20

// Address identifies a participant, a ledger minter or the staking engine account.
type Address [AddressLength]byte

// ZeroAddress is never a valid account in any role.
var ZeroAddress = Address{}

func ParseAddress(s string) (Address, error) {
	var a Address

	raw := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(raw) != AddressLength*2 {
		return a, fmt.Errorf("invalid address %q: expected %d hex characters", s, AddressLength*2)
	}

	if _, err := hex.Decode(a[:], []byte(raw)); err != nil {
		return a, fmt.Errorf("invalid address %q: %w", s, err)
	}

	return a, nil
}

func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) IsZero() bool {
	return a == ZeroAddress
}

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
