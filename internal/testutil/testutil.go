package testutil

import (
	"testing"

	"github.com/getlantern/detrand/xorshift"
)

// ReferenceBytes returns the first n bytes a fresh generator seeded with seed produces in a single
// fill. Bridges and readers under test should reproduce these exactly.
func ReferenceBytes(t *testing.T, seed xorshift.Seed, n int) []byte {
	t.Helper()

	b := make([]byte, n)
	xorshift.FromSeed(seed).FillBytes(b)
	return b
}

// Seed returns a seed whose bytes are first, first+1, ..., first+15.
func Seed(first byte) xorshift.Seed {
	var s xorshift.Seed
	for i := range s {
		s[i] = first + byte(i)
	}
	return s
}
