// Package xorshift implements the 128-bit xorshift pseudorandom number generator.
//
// The generator is NOT cryptographically secure. It exists so that code consuming randomness can be
// driven by a reproducible stream in tests. Output is bit-exact across platforms: words are
// serialized little-endian explicitly, never through native memory layout.
//
// https://en.wikipedia.org/wiki/Xorshift
package xorshift

import (
	"encoding/binary"
	"io"
)

// defaultState is the canonical default seed. DefaultSeed derives the byte form from it.
var defaultState = [4]uint32{0x193a6754, 0xa8a7d469, 0x97830e05, 0x113ba7bb}

// Rng is a xorshift128 generator. The zero value produces a constant stream of zeros; use New or
// FromSeed.
//
// Rng holds no pointers, so it may live in memory not managed by Go.
type Rng struct {
	x, y, z, w uint32
}

var _ io.Reader = (*Rng)(nil)

// New returns a generator seeded with the default seed.
func New() *Rng {
	return &Rng{defaultState[0], defaultState[1], defaultState[2], defaultState[3]}
}

// FromSeed returns a generator seeded with s. The seed is read as four little-endian uint32 words
// assigned to x, y, z and w in order. An all-zero seed yields an all-zero stream.
func FromSeed(s Seed) *Rng {
	return &Rng{
		binary.LittleEndian.Uint32(s[0:]),
		binary.LittleEndian.Uint32(s[4:]),
		binary.LittleEndian.Uint32(s[8:]),
		binary.LittleEndian.Uint32(s[12:]),
	}
}

// Uint32 advances the state and returns the next 32-bit word.
func (r *Rng) Uint32() uint32 {
	t := r.x ^ (r.x << 11)
	r.x, r.y, r.z = r.y, r.z, r.w
	r.w = r.w ^ (r.w >> 19) ^ t ^ (t >> 8)
	return r.w
}

// Uint64 returns two consecutive words: the first in the high half, the second in the low half.
// Downstream fills depend on this order.
func (r *Rng) Uint64() uint64 {
	hi := uint64(r.Uint32())
	lo := uint64(r.Uint32())
	return hi<<32 | lo
}

// FillBytes fills dst from the stream. A fresh 64-bit word is drawn for every 8 bytes and emitted
// least significant byte first. When len(dst) is not a multiple of 8, the unused bytes of the last
// word are discarded; the next call starts on a new word.
func (r *Rng) FillBytes(dst []byte) {
	var word [8]byte
	for len(dst) >= 8 {
		binary.LittleEndian.PutUint64(dst, r.Uint64())
		dst = dst[8:]
	}
	if len(dst) > 0 {
		binary.LittleEndian.PutUint64(word[:], r.Uint64())
		copy(dst, word[:])
	}
}

// Read fills p from the stream. It always returns len(p), nil.
func (r *Rng) Read(p []byte) (int, error) {
	r.FillBytes(p)
	return len(p), nil
}
