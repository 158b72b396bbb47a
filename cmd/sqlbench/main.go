// Package main implements the sqlbench binary, a micro-benchmark driver for
// SQLite and SQLCipher. It runs a configurable sequence of write, read, and
// delete workloads against one database and reports throughput and latency.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/benchkit/sqlbench/internal/bench"
	"github.com/benchkit/sqlbench/internal/config"
	"github.com/benchkit/sqlbench/internal/workload"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, out io.Writer) int {
	defaults := config.DefaultConfig()

	fs := flag.NewFlagSet("sqlbench", flag.ContinueOnError)
	fs.SetOutput(out)

	var (
		configFile    string
		benchmarks    string
		num           int
		reads         int
		valueSize     int
		ratio         float64
		pageSize      int
		numPages      int
		useExistingDB bool
		noTransaction bool
		walEnabled    bool
		useSQLCipher  bool
		key           string
		dbPath        string
		seed          int64
	)

	fs.StringVar(&configFile, "config", "", "Path to configuration file (YAML or JSON)")
	fs.StringVar(&benchmarks, "benchmarks", defaults.Benchmarks, "Comma-separated list of workloads to run in order")
	fs.IntVar(&num, "num", defaults.Num, "Number of entries to place in the database")
	fs.IntVar(&reads, "reads", defaults.Reads, "Number of read operations (negative: use --num)")
	fs.IntVar(&valueSize, "value_size", defaults.ValueSize, "Size of each value in bytes")
	fs.Float64Var(&ratio, "compression_ratio", defaults.CompressionRatio, "Fraction of original size values compress to")
	fs.IntVar(&pageSize, "page_size", defaults.PageSize, "Database page size in bytes")
	fs.IntVar(&numPages, "num_pages", defaults.NumPages, "Page cache size in pages")
	fs.BoolVar(&useExistingDB, "use_existing_db", defaults.UseExistingDB, "Reuse the existing database; required for overwrite and read-only runs")
	fs.BoolVar(&noTransaction, "no_transaction", false, "Disable grouping statements into transactions")
	fs.BoolVar(&walEnabled, "WAL_enabled", defaults.WALEnabled, "Enable write-ahead logging")
	fs.BoolVar(&useSQLCipher, "use_sqlcipher", defaults.UseSQLCipher, "Open the database with SQLCipher encryption")
	fs.StringVar(&key, "key", "", "SQLCipher key; required with --use_sqlcipher")
	fs.StringVar(&dbPath, "db", "", "Directory for database files, or the existing database path")
	fs.Int64Var(&seed, "seed", 0, "Random seed for reproducible key orders (0: derive from time)")

	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: sqlbench [OPTION]...\n\n")
		fmt.Fprintf(out, "SQLite benchmark tool\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nWorkloads:\n")
		for _, name := range workload.Names() {
			fmt.Fprintf(out, "  %s\n", name)
		}
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	cfg := defaults
	if configFile != "" {
		loaded, err := config.LoadFromFile(configFile)
		if err != nil {
			fmt.Fprintf(out, "sqlbench: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	// Flags given on the command line override config-file values.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "benchmarks":
			cfg.Benchmarks = benchmarks
		case "num":
			cfg.Num = num
		case "reads":
			cfg.Reads = reads
		case "value_size":
			cfg.ValueSize = valueSize
		case "compression_ratio":
			cfg.CompressionRatio = ratio
		case "page_size":
			cfg.PageSize = pageSize
		case "num_pages":
			cfg.NumPages = numPages
		case "use_existing_db":
			cfg.UseExistingDB = useExistingDB
		case "no_transaction":
			cfg.Transaction = !noTransaction
		case "WAL_enabled":
			cfg.WALEnabled = walEnabled
		case "use_sqlcipher":
			cfg.UseSQLCipher = useSQLCipher
		case "key":
			cfg.EncryptionKey = key
		case "db":
			cfg.DBPath = dbPath
		case "seed":
			cfg.Seed = seed
		}
	})

	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(out, "sqlbench: %v\n", err)
		return 1
	}

	runner := bench.New(cfg, out)
	if err := runner.Run(context.Background()); err != nil {
		fmt.Fprintf(out, "sqlbench: %v\n", err)
		return 1
	}
	return 0
}
