// Package config provides the run configuration for the benchmark driver.
// A Config is created once at startup, resolved, and read-only thereafter;
// all workloads in a run share it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/benchkit/sqlbench/internal/gen"
	"gopkg.in/yaml.v3"
)

// DefaultDBFile is the database file created under the target directory
// when no existing database is supplied.
const DefaultDBFile = "dbbench_sqlite3.db"

// Config holds all tunables for one benchmark run.
type Config struct {
	// Benchmarks is the comma-separated list of workload names to run,
	// executed left to right.
	Benchmarks string `json:"benchmarks" yaml:"benchmarks"`

	// Num is the number of key/value entries to place in the database.
	Num int `json:"num" yaml:"num"`

	// Reads is the number of read operations. Negative means use Num.
	Reads int `json:"reads" yaml:"reads"`

	// ValueSize is the size of each value in bytes.
	ValueSize int `json:"value_size" yaml:"value_size"`

	// CompressionRatio is the fraction of original size values should
	// shrink to under generic compression.
	CompressionRatio float64 `json:"compression_ratio" yaml:"compression_ratio"`

	// PageSize is the database page size in bytes.
	PageSize int `json:"page_size" yaml:"page_size"`

	// NumPages is the page cache size in pages. The default cache is
	// PageSize * NumPages = 4 MB.
	NumPages int `json:"num_pages" yaml:"num_pages"`

	// UseExistingDB reuses the database at DBPath instead of creating a
	// fresh one. A workload that wants a fresh table will fail against an
	// incompatible existing database; that is a caller error.
	UseExistingDB bool `json:"use_existing_db" yaml:"use_existing_db"`

	// Transaction groups statements into transactions when true.
	Transaction bool `json:"transaction" yaml:"transaction"`

	// WALEnabled turns on write-ahead-log journaling.
	WALEnabled bool `json:"wal_enabled" yaml:"wal_enabled"`

	// UseSQLCipher applies EncryptionKey to the database at open.
	UseSQLCipher bool `json:"use_sqlcipher" yaml:"use_sqlcipher"`

	// EncryptionKey is the SQLCipher key; required when UseSQLCipher is set.
	EncryptionKey string `json:"key" yaml:"key"`

	// DBPath is the directory databases are created under, or the path of
	// the existing database when UseExistingDB is set.
	DBPath string `json:"db" yaml:"db"`

	// Seed pins the pseudo-random sequence for reproducible key orders.
	// Zero derives the seed from the current time.
	Seed int64 `json:"seed" yaml:"seed"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Benchmarks: "fillseq," +
			"fillseqsync," +
			"fillrandom," +
			"fillrandsync," +
			"overwrite," +
			"overwritesync," +
			"readrandom," +
			"readseq," +
			"fillrand100K," +
			"fillseq100K," +
			"readseq," +
			"readrand100K," +
			"delete," +
			"deletesync",
		Num:              1000000,
		Reads:            -1,
		ValueSize:        128,
		CompressionRatio: 0.5,
		PageSize:         1024,
		NumPages:         4096,
		UseExistingDB:    false,
		Transaction:      true,
		WALEnabled:       true,
		UseSQLCipher:     false,
		DBPath:           "",
		Seed:             0,
	}
}

// LoadFromFile loads configuration from a YAML or JSON file, starting from
// the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return cfg, nil
}

// Resolve normalizes paths and derived values after flags are applied.
func (c *Config) Resolve() {
	if c.DBPath == "" {
		c.DBPath = "./"
	}
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if c.UseSQLCipher && c.EncryptionKey == "" {
		return fmt.Errorf("config: --key is required when --use_sqlcipher=1")
	}
	if c.Num < 0 {
		return fmt.Errorf("config: --num must be non-negative, got %d", c.Num)
	}
	if c.ValueSize <= 0 {
		return fmt.Errorf("config: --value_size must be positive, got %d", c.ValueSize)
	}
	if c.ValueSize > gen.MaxValueSize {
		return fmt.Errorf("config: --value_size must be at most %d, got %d", gen.MaxValueSize, c.ValueSize)
	}
	if c.CompressionRatio <= 0 || c.CompressionRatio > 1 {
		return fmt.Errorf("config: --compression_ratio must be in (0, 1], got %g", c.CompressionRatio)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("config: --page_size must be positive, got %d", c.PageSize)
	}
	if c.NumPages <= 0 {
		return fmt.Errorf("config: --num_pages must be positive, got %d", c.NumPages)
	}
	return nil
}

// ReadCount resolves the configured read count: a negative Reads falls back
// to Num.
func (c *Config) ReadCount() int {
	if c.Reads < 0 {
		return c.Num
	}
	return c.Reads
}

// DatabaseFile returns the path of the database to open. With UseExistingDB
// the configured path is used directly; otherwise a fresh database file is
// placed under the configured directory.
func (c *Config) DatabaseFile() string {
	if c.UseExistingDB {
		return c.DBPath
	}
	return filepath.Join(c.DBPath, DefaultDBFile)
}
