package crypto

import (
	"crypto/rand"
	"crypto/subtle"
)

// RandomBytes returns n cryptographically random bytes from the OS CSPRNG.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// CtEq reports whether a and b are equal using a constant-time comparison.
// Inputs of unequal length are reported unequal immediately, without
// comparing any bytes; only the lengths are revealed by timing.
func CtEq(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
