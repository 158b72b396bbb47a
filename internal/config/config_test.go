package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/benchkit/sqlbench/internal/gen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1000000, cfg.Num)
	assert.Equal(t, -1, cfg.Reads)
	assert.Equal(t, 128, cfg.ValueSize)
	assert.Equal(t, 0.5, cfg.CompressionRatio)
	assert.Equal(t, 1024, cfg.PageSize)
	assert.Equal(t, 4096, cfg.NumPages)
	assert.True(t, cfg.Transaction)
	assert.True(t, cfg.WALEnabled)
	assert.False(t, cfg.UseSQLCipher)
	assert.Contains(t, cfg.Benchmarks, "fillseq,")
}

func TestReadCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Num = 5000

	cfg.Reads = -1
	assert.Equal(t, 5000, cfg.ReadCount())

	cfg.Reads = 100
	assert.Equal(t, 100, cfg.ReadCount())

	cfg.Reads = 0
	assert.Equal(t, 0, cfg.ReadCount())
}

func TestDatabaseFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolve()
	assert.Equal(t, filepath.Join("./", DefaultDBFile), cfg.DatabaseFile())

	cfg.DBPath = "/data/bench"
	assert.Equal(t, filepath.Join("/data/bench", DefaultDBFile), cfg.DatabaseFile())

	cfg.UseExistingDB = true
	cfg.DBPath = "/data/bench/existing.db"
	assert.Equal(t, "/data/bench/existing.db", cfg.DatabaseFile())
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cipher := DefaultConfig()
	cipher.UseSQLCipher = true
	assert.Error(t, cipher.Validate(), "encryption without a key must fail")
	cipher.EncryptionKey = "secret"
	assert.NoError(t, cipher.Validate())

	bad := DefaultConfig()
	bad.CompressionRatio = 0
	assert.Error(t, bad.Validate())
	bad.CompressionRatio = 1.5
	assert.Error(t, bad.Validate())

	neg := DefaultConfig()
	neg.Num = -1
	assert.Error(t, neg.Validate())
}

func TestValidateRejectsOversizedValues(t *testing.T) {
	// Values are cut from a fixed-size pool; a value size at or beyond the
	// pool bound must fail validation instead of reaching the generator.
	cfg := DefaultConfig()
	cfg.ValueSize = 2000000
	assert.Error(t, cfg.Validate())

	cfg.ValueSize = gen.MaxValueSize + 1
	assert.Error(t, cfg.Validate())

	cfg.ValueSize = gen.MaxValueSize
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.yaml")
	data := "num: 2000\nvalue_size: 64\nwal_enabled: false\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.Num)
	assert.Equal(t, 64, cfg.ValueSize)
	assert.False(t, cfg.WALEnabled)
	// Untouched fields keep their defaults.
	assert.Equal(t, 0.5, cfg.CompressionRatio)
}

func TestLoadFromFileJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.json")
	data := `{"benchmarks": "fillseq,readseq", "reads": 500}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fillseq,readseq", cfg.Benchmarks)
	assert.Equal(t, 500, cfg.Reads)
}

func TestLoadFromFileUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.toml")
	require.NoError(t, os.WriteFile(path, []byte("num = 1"), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}
