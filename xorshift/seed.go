package xorshift

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// SeedSize is the size of a Seed in bytes.
const SeedSize = 16

// A Seed is four little-endian uint32 words, assigned to the generator state in order.
type Seed [SeedSize]byte

// DefaultSeed returns the byte form of the default seed. FromSeed(DefaultSeed()) and New() produce
// the same stream.
func DefaultSeed() Seed {
	var s Seed
	for i, word := range defaultState {
		binary.LittleEndian.PutUint32(s[i*4:], word)
	}
	return s
}

// Words returns the four state words encoded by s.
func (s Seed) Words() [4]uint32 {
	var words [4]uint32
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(s[i*4:])
	}
	return words
}

// String returns s as 32 lowercase hex digits.
func (s Seed) String() string {
	return hex.EncodeToString(s[:])
}

// ParseSeed parses 32 hex digits (the format produced by Seed.String). Surrounding whitespace is
// ignored.
func ParseSeed(str string) (Seed, error) {
	var s Seed
	b, err := hex.DecodeString(strings.TrimSpace(str))
	if err != nil {
		return s, fmt.Errorf("failed to decode seed: %w", err)
	}
	if len(b) != SeedSize {
		return s, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(b))
	}
	copy(s[:], b)
	return s, nil
}
