// Package random is the entropy source behind the CHIP-8 RND instruction.
//
// The source is owned by one machine and is seedable, so a run started with
// the same seed and the same input produces the same sequence of bytes. Use
// New with a fixed seed in tests and NewFromTime in hosts.
package random

import (
	"math/rand/v2"
	"time"
)

// Random is a uniform byte generator.
type Random struct {
	seed uint64
	pcg  *rand.PCG
	rng  *rand.Rand
}

// New returns a Random seeded with seed.
func New(seed uint64) *Random {
	r := &Random{}
	r.Reseed(seed)
	return r
}

// NewFromTime returns a Random seeded from the wall clock.
func NewFromTime() *Random {
	return New(uint64(time.Now().UnixNano()))
}

// Reseed restarts the sequence from seed.
func (r *Random) Reseed(seed uint64) {
	r.seed = seed
	r.pcg = rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)
	r.rng = rand.New(r.pcg)
}

// Seed returns the seed the current sequence started from.
func (r *Random) Seed() uint64 { return r.seed }

// Byte returns the next uniformly distributed byte.
func (r *Random) Byte() byte {
	return byte(r.rng.UintN(256))
}

// MarshalBinary captures the generator position for machine snapshots.
func (r *Random) MarshalBinary() ([]byte, error) {
	state, err := r.pcg.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return state, nil
}

// UnmarshalBinary restores a position captured by MarshalBinary.
func (r *Random) UnmarshalBinary(data []byte) error {
	return r.pcg.UnmarshalBinary(data)
}
