package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeysSequential(t *testing.T) {
	keys := Keys(NewRandom(1), 5, Sequential)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, keys)
}

func TestKeysRandomReproducible(t *testing.T) {
	a := Keys(NewRandom(99), 5, RandomOrder)
	b := Keys(NewRandom(99), 5, RandomOrder)
	require.Len(t, a, 5)
	assert.Equal(t, a, b)
	for _, k := range a {
		assert.GreaterOrEqual(t, k, 0)
		assert.Less(t, k, 5)
	}
}

func TestKeysRandomAllowsDuplicates(t *testing.T) {
	// With 10000 draws from [0, 10000) a collision is all but certain;
	// duplicates are an intentional part of the overwrite workload.
	keys := Keys(NewRandom(7), 10000, RandomOrder)
	seen := make(map[int]bool, len(keys))
	dup := false
	for _, k := range keys {
		if seen[k] {
			dup = true
			break
		}
		seen[k] = true
	}
	assert.True(t, dup)
}

func TestKeysEmpty(t *testing.T) {
	assert.Empty(t, Keys(NewRandom(1), 0, Sequential))
	assert.Empty(t, Keys(NewRandom(1), 0, RandomOrder))
}
