// Package detrand provides deterministic randomness for tests of code which consumes randomness
// through a callback, most notably native cryptography libraries.
//
// TestRNG is the entry point: it returns a bridge exposing a xorshift generator through the
// int (*)(void *, unsigned char *, size_t) randomness hook, seeded with a fixed seed so every run
// sees the same stream. The generator is NOT cryptographically secure.
package detrand

import (
	"github.com/getlantern/golog"

	"github.com/getlantern/detrand/rngcb"
	"github.com/getlantern/detrand/xorshift"
)

var log = golog.LoggerFor("detrand")

// TestRNG returns a bridge seeded with xorshift.DefaultSeed. Not cryptographically secure; use for
// testing only. The caller owns the bridge and should Close it.
func TestRNG() *rngcb.Bridge {
	return TestRNGFromSeed(xorshift.DefaultSeed())
}

// TestRNGFromSeed returns a bridge seeded with seed. Not cryptographically secure; use for testing
// only. The caller owns the bridge and should Close it.
func TestRNGFromSeed(seed xorshift.Seed) *rngcb.Bridge {
	// Reported so that a failing run can be reproduced.
	log.Debugf("seed words: %08x, seed bytes: %v", seed.Words(), seed)
	return rngcb.New(seed)
}
