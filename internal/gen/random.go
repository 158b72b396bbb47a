// Package gen provides the deterministic generators behind every benchmark
// workload: a reproducible pseudo-random source, compressible value payloads,
// and key sequences.
package gen

const (
	// randModulus is 2^31-1, a Mersenne prime.
	randModulus = 2147483647
	// randMultiplier is a primitive root modulo randModulus (bits 14, 8, 7, 5, 2, 1, 0).
	randMultiplier = 16807
)

// Random is a multiplicative linear-congruential pseudo-random generator
// producing 31-bit values. For a fixed seed the sequence is identical
// across runs and platforms, which keeps random key orders reproducible.
type Random struct {
	state uint32
}

// NewRandom returns a generator seeded with s.
func NewRandom(s uint32) *Random {
	r := &Random{}
	r.Seed(s)
	return r
}

// Seed resets the generator state. The seed is normalized into (0, 2^31-1):
// 0 and 2^31-1 are absorbing states of the recurrence and must be avoided.
func (r *Random) Seed(s uint32) {
	s &= 0x7fffffff
	if s == 0 || s == randModulus {
		s = 1
	}
	r.state = s
}

// Next advances the generator and returns the next value in [1, 2^31-1).
func (r *Random) Next() uint32 {
	// Compute (state * randMultiplier) % randModulus without 64-bit division:
	// the product fits in 62 bits, and for p = a*2^31 + b,
	// p mod (2^31-1) == a + b (mod 2^31-1).
	product := uint64(r.state) * randMultiplier
	r.state = uint32((product >> 31) + (product & randModulus))
	if r.state > randModulus {
		r.state -= randModulus
	}
	return r.state
}

// Uniform returns a value uniformly distributed in [0, n). n must be positive.
func (r *Random) Uniform(n int) int {
	return int(r.Next() % uint32(n))
}
