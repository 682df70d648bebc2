package pkg

import "math/rand/v2"

const lowerAlphaNum = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandString returns n random lowercase letters and digits. Used for docker
// container and queue name suffixes, which must not collide between runs.
func RandString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = lowerAlphaNum[rand.IntN(len(lowerAlphaNum))] //nolint:gosec
	}
	return string(b)
}
