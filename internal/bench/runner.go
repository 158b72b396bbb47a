// Package bench implements the benchmark driver: workload sequencing,
// chunked execution against the storage backend, and timing.
package bench

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/benchkit/sqlbench/internal/config"
	"github.com/benchkit/sqlbench/internal/errors"
	"github.com/benchkit/sqlbench/internal/gen"
	"github.com/benchkit/sqlbench/internal/stats"
	"github.com/benchkit/sqlbench/internal/storage"
	"github.com/benchkit/sqlbench/internal/workload"
)

// maxKeysPerChunk bounds the key and value batches generated per chunk so
// peak memory stays flat even for multi-million-entry workloads.
const maxKeysPerChunk = 500000

// keyBytes is the per-operation key overhead counted toward throughput.
const keyBytes = 4

// Runner owns all state for one benchmark run: configuration, generators,
// the timing accumulator, and the open database. Nothing is shared between
// runs, so independent runs may execute in parallel (each with its own
// Runner).
type Runner struct {
	cfg    *config.Config
	out    io.Writer
	rnd    *gen.Random
	values *gen.ValueGenerator
	acc    *stats.Accumulator
	db     *storage.DB

	runID        string
	tableCreated bool
}

// New creates a runner for one pass over cfg.Benchmarks. Progress lines and
// summaries are written to out. The PRNG is seeded from cfg.Seed, or from
// the current time when the seed is zero.
func New(cfg *config.Config, out io.Writer) *Runner {
	seed := uint32(cfg.Seed)
	if cfg.Seed == 0 {
		seed = uint32(time.Now().Unix())
	}
	rnd := gen.NewRandom(seed)
	return &Runner{
		cfg:    cfg,
		out:    out,
		rnd:    rnd,
		values: gen.NewValueGenerator(rnd, cfg.CompressionRatio),
		acc:    stats.New(out),
		runID:  newRunID(),
	}
}

// Stats exposes the accumulator; after Run returns it holds the counters of
// the last executed workload.
func (r *Runner) Stats() *stats.Accumulator {
	return r.acc
}

// Run executes the configured workload list left to right. Any engine
// failure aborts the run and is returned to the caller; unknown workload
// names only produce a warning.
func (r *Runner) Run(ctx context.Context) error {
	r.printHeader()

	if !r.cfg.UseExistingDB {
		if err := storage.CleanDatabaseDir(r.cfg.DBPath); err != nil {
			return err
		}
	}

	db, err := storage.Open(ctx, r.cfg)
	if err != nil {
		return err
	}
	r.db = db
	defer func() {
		if r.db != nil {
			r.db.Close()
			r.db = nil
		}
	}()

	for _, name := range strings.Split(r.cfg.Benchmarks, ",") {
		if name == "" {
			continue
		}
		desc, ok := workload.Resolve(name)
		if !ok {
			fmt.Fprintf(r.out, "unknown benchmark '%s'\n", name)
			continue
		}

		if desc.FreshTable && !r.tableCreated {
			if err := r.db.CreateTable(ctx); err != nil {
				return err
			}
			r.tableCreated = true
		}

		r.acc.Start()
		var runErr error
		switch desc.Op {
		case workload.OpWrite:
			runErr = r.runWrite(ctx, desc)
		case workload.OpRead:
			runErr = r.runRead(ctx, desc)
		case workload.OpDelete:
			runErr = r.runDelete(ctx, desc)
		}
		if runErr != nil {
			return runErr
		}

		// Flush WAL before the next workload measures a clean state.
		if desc.Op != workload.OpRead {
			if err := r.db.Checkpoint(ctx); err != nil {
				return err
			}
		}

		r.acc.Stop(name)
	}

	if err := r.db.Close(); err != nil {
		return err
	}
	r.db = nil
	return nil
}

// runWrite replaces entries by key in the configured order, batching
// desc.EntriesPerBatch rows per transaction.
func (r *Runner) runWrite(ctx context.Context, desc workload.Descriptor) error {
	entries := r.cfg.Num
	if desc.NumDiv > 0 {
		entries /= desc.NumDiv
	}
	valueSize := r.cfg.ValueSize
	if desc.ValueSize > 0 {
		valueSize = desc.ValueSize
	}
	if entries != r.cfg.Num {
		r.acc.SetMessage(fmt.Sprintf("(%d ops)", entries))
	}

	if err := r.db.SetSync(ctx, desc.Sync); err != nil {
		return err
	}

	replace, err := r.db.PrepareReplace(ctx)
	if err != nil {
		return err
	}
	defer replace.Close()

	for _, n := range chunkSizes(entries) {
		keys := gen.Keys(r.rnd, n, desc.Order)
		values := make([][]byte, n)
		for i := range values {
			values[i] = r.values.Generate(valueSize)
		}

		start := time.Now()
		for i := 0; i < n; i += desc.EntriesPerBatch {
			if err := r.beginBatch(ctx); err != nil {
				return err
			}
			end := i + desc.EntriesPerBatch
			if end > n {
				end = n
			}
			for j := i; j < end; j++ {
				if _, err := replace.ExecContext(ctx, keys[j], values[j]); err != nil {
					return wrapStep("replace", err)
				}
				r.acc.AddBytes(int64(valueSize) + keyBytes)
				r.acc.FinishOp()
			}
			if err := r.endBatch(ctx); err != nil {
				return err
			}
		}
		r.acc.AddTime(time.Since(start))
	}

	return nil
}

// runRead issues point reads over the resolved read count. A key with no
// row is a miss, not an error.
func (r *Runner) runRead(ctx context.Context, desc workload.Descriptor) error {
	reads := r.cfg.ReadCount()
	if desc.ReadsDiv > 0 {
		// Workload-run configuration only; r.cfg is never mutated, so any
		// later workload sees the full read count again.
		reads /= desc.ReadsDiv
	}

	read, err := r.db.PrepareRead(ctx)
	if err != nil {
		return err
	}
	defer read.Close()

	for _, n := range chunkSizes(reads) {
		keys := gen.Keys(r.rnd, n, desc.Order)

		start := time.Now()
		for i := 0; i < n; i += desc.EntriesPerBatch {
			if err := r.beginBatch(ctx); err != nil {
				return err
			}
			end := i + desc.EntriesPerBatch
			if end > n {
				end = n
			}
			for j := i; j < end; j++ {
				rows, err := read.QueryContext(ctx, keys[j])
				if err != nil {
					return wrapStep("read", err)
				}
				for rows.Next() {
				}
				if err := rows.Err(); err != nil {
					rows.Close()
					return wrapStep("read", err)
				}
				if err := rows.Close(); err != nil {
					return wrapStep("read", err)
				}
				r.acc.FinishOp()
			}
			if err := r.endBatch(ctx); err != nil {
				return err
			}
		}
		r.acc.AddTime(time.Since(start))
	}

	return nil
}

// runDelete deletes by key over the full entry count.
func (r *Runner) runDelete(ctx context.Context, desc workload.Descriptor) error {
	if err := r.db.SetSync(ctx, desc.Sync); err != nil {
		return err
	}

	del, err := r.db.PrepareDelete(ctx)
	if err != nil {
		return err
	}
	defer del.Close()

	for _, n := range chunkSizes(r.cfg.Num) {
		keys := gen.Keys(r.rnd, n, desc.Order)

		start := time.Now()
		for i := 0; i < n; i += desc.EntriesPerBatch {
			if err := r.beginBatch(ctx); err != nil {
				return err
			}
			end := i + desc.EntriesPerBatch
			if end > n {
				end = n
			}
			for j := i; j < end; j++ {
				if _, err := del.ExecContext(ctx, keys[j]); err != nil {
					return wrapStep("delete", err)
				}
				r.acc.FinishOp()
			}
			if err := r.endBatch(ctx); err != nil {
				return err
			}
		}
		r.acc.AddTime(time.Since(start))
	}

	return nil
}

func wrapStep(op string, err error) error {
	return errors.NewEngineError(errors.CodeStepFailed, op+" step", err)
}

func (r *Runner) beginBatch(ctx context.Context) error {
	if !r.cfg.Transaction {
		return nil
	}
	return r.db.BeginTransaction(ctx)
}

func (r *Runner) endBatch(ctx context.Context) error {
	if !r.cfg.Transaction {
		return nil
	}
	return r.db.EndTransaction(ctx)
}

// chunkSizes splits total into chunks of at most maxKeysPerChunk entries.
func chunkSizes(total int) []int {
	var sizes []int
	for total > 0 {
		n := total
		if n > maxKeysPerChunk {
			n = maxKeysPerChunk
		}
		sizes = append(sizes, n)
		total -= n
	}
	return sizes
}
