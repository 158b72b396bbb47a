package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateExactLength(t *testing.T) {
	g := NewValueGenerator(NewRandom(301), 0.5)
	for _, n := range []int{1, 100, 128, 4096, 100000} {
		v := g.Generate(n)
		require.Len(t, v, n)
	}
}

func TestGenerateWrapsAtPoolEnd(t *testing.T) {
	g := NewValueGenerator(NewRandom(301), 0.5)
	// Walk the cursor close to the end of the pool, then request a window
	// that would overrun it.
	step := g.PoolSize() - 10
	g.Generate(step)
	v := g.Generate(100)
	require.Len(t, v, 100)
	// The wrap restarts at offset 0.
	assert.Equal(t, g.data[:100], v)
}

func TestGenerateDeterministic(t *testing.T) {
	a := NewValueGenerator(NewRandom(301), 0.5)
	b := NewValueGenerator(NewRandom(301), 0.5)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, a.Generate(128), b.Generate(128))
}

// TestCompressionRatio verifies the compressibility contract: a pool built
// with ratio r compresses to roughly r of its original size.
func TestCompressionRatio(t *testing.T) {
	incompressible := NewValueGenerator(NewRandom(301), 1.0)
	redundant := NewValueGenerator(NewRandom(301), 0.1)

	full := incompressible.CompressedSize()
	tenth := redundant.CompressedSize()

	// Fully random printable bytes do not compress meaningfully.
	assert.Greater(t, full, incompressible.PoolSize()*8/10,
		"ratio 1.0 pool should be nearly incompressible")

	// A 10%-fresh pool compresses far below half its size.
	assert.Less(t, tenth, redundant.PoolSize()/2,
		"ratio 0.1 pool should compress well")
	assert.Less(t, tenth, full)
}

func TestGenerateRejectsNonPositive(t *testing.T) {
	g := NewValueGenerator(NewRandom(301), 0.5)
	assert.Nil(t, g.Generate(0))
	assert.Nil(t, g.Generate(-5))
}

func TestGenerateLargestWindow(t *testing.T) {
	// MaxValueSize is the boundary of the Generate contract: the largest
	// window still strictly smaller than the pool.
	g := NewValueGenerator(NewRandom(301), 0.5)
	require.Less(t, MaxValueSize, g.PoolSize())
	v := g.Generate(MaxValueSize)
	assert.Len(t, v, MaxValueSize)
	// A second maximal request wraps and serves again.
	v = g.Generate(MaxValueSize)
	assert.Len(t, v, MaxValueSize)
}

func TestPoolSize(t *testing.T) {
	g := NewValueGenerator(NewRandom(301), 0.5)
	assert.GreaterOrEqual(t, g.PoolSize(), poolSize)
}
