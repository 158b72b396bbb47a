package workload

import (
	"testing"

	"github.com/benchkit/sqlbench/internal/gen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAllKnownNames(t *testing.T) {
	names := []string{
		"fillseq", "fillseqsync", "fillseqbatch",
		"fillrandom", "fillrandsync", "fillrandbatch",
		"overwrite", "overwritesync", "overwritebatch",
		"fillrand100K", "fillseq100K",
		"readseq", "readrandom", "readrand100K",
		"delete", "deletesync",
	}
	for _, name := range names {
		d, ok := Resolve(name)
		require.True(t, ok, "name %q must resolve", name)
		assert.Equal(t, name, d.Name)
	}
	assert.Len(t, Names(), len(names))
}

func TestResolveUnknown(t *testing.T) {
	_, ok := Resolve("bogus")
	assert.False(t, ok)

	_, ok = Resolve("")
	assert.False(t, ok)

	// Lookup is exact match, not prefix or case-insensitive.
	_, ok = Resolve("FillSeq")
	assert.False(t, ok)
	_, ok = Resolve("fillseq ")
	assert.False(t, ok)
}

func TestWriteParameters(t *testing.T) {
	d, _ := Resolve("fillseq")
	assert.Equal(t, OpWrite, d.Op)
	assert.Equal(t, gen.Sequential, d.Order)
	assert.Equal(t, 1, d.EntriesPerBatch)
	assert.False(t, d.Sync)
	assert.True(t, d.FreshTable)

	batch, _ := Resolve("fillseqbatch")
	assert.Equal(t, 1000, batch.EntriesPerBatch)

	sync, _ := Resolve("fillrandsync")
	assert.True(t, sync.Sync)
	assert.Equal(t, gen.RandomOrder, sync.Order)
}

func TestOverwriteFamilyKeepsTable(t *testing.T) {
	for _, name := range []string{"overwrite", "overwritesync", "overwritebatch"} {
		d, ok := Resolve(name)
		require.True(t, ok)
		assert.False(t, d.FreshTable, "%s must not recreate the table", name)
		assert.Equal(t, OpWrite, d.Op)
	}
}

func TestLargeValueVariants(t *testing.T) {
	for _, name := range []string{"fillrand100K", "fillseq100K"} {
		d, ok := Resolve(name)
		require.True(t, ok)
		assert.Equal(t, 1000, d.NumDiv)
		assert.Equal(t, 100000, d.ValueSize)
		assert.True(t, d.FreshTable)
	}
}

func TestReadParameters(t *testing.T) {
	seq, _ := Resolve("readseq")
	assert.Equal(t, OpRead, seq.Op)
	assert.Equal(t, gen.Sequential, seq.Order)
	assert.False(t, seq.FreshTable)

	rand100K, _ := Resolve("readrand100K")
	assert.Equal(t, 1000, rand100K.ReadsDiv)
	assert.Equal(t, gen.RandomOrder, rand100K.Order)
}

func TestDeleteParameters(t *testing.T) {
	d, _ := Resolve("delete")
	assert.Equal(t, OpDelete, d.Op)
	assert.False(t, d.Sync)
	assert.False(t, d.FreshTable)

	ds, _ := Resolve("deletesync")
	assert.True(t, ds.Sync)
}
