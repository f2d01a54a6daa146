package common

import "crypto/rand"

// GenerateRandByteArray returns size random bytes. crypto/rand does not fail
// on supported platforms, so the error is not surfaced.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	_, _ = rand.Read(b)
	return b
}

// WipeByteArray zeroes b in place. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
