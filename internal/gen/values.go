package gen

import (
	"github.com/golang/snappy"
	"github.com/spaolacci/murmur3"
)

// poolSize is the size of the pre-materialized value pool. Values are cut
// from this pool instead of being synthesized per call, so value generation
// never shows up in the measured engine latency.
const poolSize = 1000000

// pieceSize is the granularity at which compressibility is synthesized.
const pieceSize = 100

// MaxValueSize is the largest length Generate can serve; requested windows
// must be smaller than the pool.
const MaxValueSize = poolSize - 1

// ValueGenerator produces byte payloads whose compressibility matches a
// configured ratio. A ratio of 0.5 yields data that a generic compressor
// shrinks to roughly half its original size, modelling partially-redundant
// real-world payloads rather than pure noise.
//
// Returned slices are windows into the shared pool and are only valid until
// the pool is released; callers must not modify them.
type ValueGenerator struct {
	data []byte
	pos  int
}

// NewValueGenerator builds the value pool from rnd. Each piece of the pool
// contains a fraction ratio of freshly random bytes, with the remainder
// repeating them.
func NewValueGenerator(rnd *Random, ratio float64) *ValueGenerator {
	if ratio <= 0 {
		ratio = 0.01
	}
	if ratio > 1 {
		ratio = 1
	}
	data := make([]byte, 0, poolSize+pieceSize)
	for len(data) < poolSize {
		data = appendCompressible(data, rnd, ratio, pieceSize)
	}
	return &ValueGenerator{data: data}
}

// appendCompressible appends n bytes to dst of which a fraction ratio is
// fresh random data and the rest repeats it.
func appendCompressible(dst []byte, rnd *Random, ratio float64, n int) []byte {
	raw := int(float64(n) * ratio)
	if raw < 1 {
		raw = 1
	}
	if raw > n {
		raw = n
	}
	start := len(dst)
	for i := 0; i < raw; i++ {
		dst = append(dst, byte(' '+rnd.Uniform(95)))
	}
	fragment := dst[start : start+raw]
	for len(dst)-start < n {
		rem := n - (len(dst) - start)
		if rem > raw {
			rem = raw
		}
		dst = append(dst, fragment[:rem]...)
	}
	return dst
}

// Generate returns n contiguous bytes from the pool and advances the cursor,
// wrapping to the start when the window would overrun the pool. n must be
// smaller than the pool size.
func (g *ValueGenerator) Generate(n int) []byte {
	if n <= 0 {
		return nil
	}
	if g.pos+n > len(g.data) {
		g.pos = 0
	}
	v := g.data[g.pos : g.pos+n]
	g.pos += n
	return v
}

// PoolSize returns the number of bytes in the pool.
func (g *ValueGenerator) PoolSize() int {
	return len(g.data)
}

// Fingerprint returns a 64-bit hash of the pool contents. Two runs with the
// same seed and compression ratio report the same fingerprint.
func (g *ValueGenerator) Fingerprint() uint64 {
	return murmur3.Sum64(g.data)
}

// CompressedSize returns the snappy-compressed size of the pool, the
// measured counterpart of the configured compression ratio.
func (g *ValueGenerator) CompressedSize() int {
	return len(snappy.Encode(nil, g.data))
}
