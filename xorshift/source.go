package xorshift

import "math/rand"

// Source adapts an Rng to math/rand. Re-seeding is not supported: create a new Rng instead.
type Source struct {
	rng *Rng
}

var _ rand.Source64 = Source{}

// NewSource returns a math/rand source drawing from r. The source shares r's state.
func NewSource(r *Rng) Source {
	return Source{r}
}

// Seed panics. A seeded generator cannot be re-seeded.
func (s Source) Seed(seed int64) {
	panic("xorshift: re-seeding is not supported, use FromSeed")
}

func (s Source) Int63() int64 {
	return int64(s.Uint64() >> 1)
}

func (s Source) Uint64() uint64 {
	return s.rng.Uint64()
}
