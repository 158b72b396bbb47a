// Package storage adapts the embedded SQLite engine behind the statement
// API the benchmark driver measures. All access goes through one pinned
// connection: the driver is single-threaded and the database is opened in
// exclusive locking mode.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/benchkit/sqlbench/internal/config"
	"github.com/benchkit/sqlbench/internal/errors"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// Statement texts for the benchmark table.
const (
	createTableSQL = "CREATE TABLE test (key INTEGER PRIMARY KEY, value BLOB)"
	replaceSQL     = "REPLACE INTO test (key, value) VALUES (?, ?)"
	readSQL        = "SELECT * FROM test WHERE key = ?"
	deleteSQL      = "DELETE FROM test WHERE key = ?"
)

// DB is the benchmark's handle to one open SQLite database.
type DB struct {
	db   *sql.DB
	conn *sql.Conn
	wal  bool
}

// Version returns the version string of the linked SQLite library.
func Version() string {
	v, _, _ := sqlite3.Version()
	return v
}

// CleanDatabaseDir removes benchmark database files (main file, journal,
// WAL, shm) under dir, matching the dbbench_sqlite3 prefix. Called before
// a fresh run; reused databases are never touched.
func CleanDatabaseDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("storage: failed to read database directory: %w", err)
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "dbbench_sqlite3") {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("storage: failed to remove %s: %w", e.Name(), err)
		}
	}
	return nil
}

// Open opens the configured database and applies its pragmas: cache size,
// optional non-default page size, optional WAL journaling with a fixed
// autocheckpoint threshold, and exclusive locking mode.
func Open(ctx context.Context, cfg *config.Config) (*DB, error) {
	path := cfg.DatabaseFile()

	sqlDB, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.NewEngineError(errors.CodeOpenFailed, fmt.Sprintf("open %s", path), err)
	}
	// One exclusive connection for the whole run; prepared statements and
	// BEGIN/END must observe the same session.
	sqlDB.SetMaxOpenConns(1)

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		sqlDB.Close()
		return nil, errors.NewEngineError(errors.CodeOpenFailed, fmt.Sprintf("connect %s", path), err)
	}

	d := &DB{db: sqlDB, conn: conn, wal: cfg.WALEnabled}

	if cfg.UseSQLCipher {
		if err := d.pragma(ctx, fmt.Sprintf("PRAGMA key = '%s'", strings.ReplaceAll(cfg.EncryptionKey, "'", "''"))); err != nil {
			d.Close()
			return nil, err
		}
	}

	if err := d.pragma(ctx, fmt.Sprintf("PRAGMA cache_size = %d", cfg.NumPages)); err != nil {
		d.Close()
		return nil, err
	}

	// page_size defaults to 1024; only a non-default size needs the pragma.
	if cfg.PageSize != 1024 {
		if err := d.pragma(ctx, fmt.Sprintf("PRAGMA page_size = %d", cfg.PageSize)); err != nil {
			d.Close()
			return nil, err
		}
	}

	if cfg.WALEnabled {
		// Default WAL cache is a combined 4 MB.
		if err := d.pragma(ctx, "PRAGMA journal_mode = WAL"); err != nil {
			d.Close()
			return nil, err
		}
		if err := d.pragma(ctx, "PRAGMA wal_autocheckpoint = 4096"); err != nil {
			d.Close()
			return nil, err
		}
	}

	if err := d.pragma(ctx, "PRAGMA locking_mode = EXCLUSIVE"); err != nil {
		d.Close()
		return nil, err
	}

	return d, nil
}

func (d *DB) pragma(ctx context.Context, stmt string) error {
	if err := d.execDrain(ctx, stmt); err != nil {
		return errors.NewEngineError(errors.CodePragmaFailed, stmt, err)
	}
	return nil
}

// execDrain runs stmt and discards its result rows. journal_mode and
// wal_checkpoint pragmas return a result row; Exec would discard it but
// some drivers report an error, so drain via Query.
func (d *DB) execDrain(ctx context.Context, stmt string) error {
	rows, err := d.conn.QueryContext(ctx, stmt)
	if err != nil {
		return err
	}
	for rows.Next() {
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}

// CreateTable creates the benchmark table. Running it against a database
// that already has one is an engine error.
func (d *DB) CreateTable(ctx context.Context) error {
	if _, err := d.conn.ExecContext(ctx, createTableSQL); err != nil {
		return errors.NewEngineError(errors.CodeExecFailed, "create table", err)
	}
	return nil
}

// SetSync switches write durability: FULL forces every write to stable
// storage, OFF leaves flushing to the OS.
func (d *DB) SetSync(ctx context.Context, full bool) error {
	if full {
		return d.pragma(ctx, "PRAGMA synchronous = FULL")
	}
	return d.pragma(ctx, "PRAGMA synchronous = OFF")
}

// PrepareReplace prepares the replace statement for a write workload. The
// caller finalizes it with Stmt.Close at workload exit.
func (d *DB) PrepareReplace(ctx context.Context) (*sql.Stmt, error) {
	return d.prepare(ctx, replaceSQL)
}

// PrepareRead prepares the point-read statement for a read workload.
func (d *DB) PrepareRead(ctx context.Context) (*sql.Stmt, error) {
	return d.prepare(ctx, readSQL)
}

// PrepareDelete prepares the delete statement for a delete workload.
func (d *DB) PrepareDelete(ctx context.Context) (*sql.Stmt, error) {
	return d.prepare(ctx, deleteSQL)
}

func (d *DB) prepare(ctx context.Context, query string) (*sql.Stmt, error) {
	stmt, err := d.conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, errors.NewEngineError(errors.CodePrepareFailed, query, err)
	}
	return stmt, nil
}

// BeginTransaction starts an explicit transaction on the connection.
func (d *DB) BeginTransaction(ctx context.Context) error {
	if _, err := d.conn.ExecContext(ctx, "BEGIN TRANSACTION"); err != nil {
		return errors.NewEngineError(errors.CodeStepFailed, "begin transaction", err)
	}
	return nil
}

// EndTransaction commits the current explicit transaction.
func (d *DB) EndTransaction(ctx context.Context) error {
	if _, err := d.conn.ExecContext(ctx, "END TRANSACTION"); err != nil {
		return errors.NewEngineError(errors.CodeStepFailed, "end transaction", err)
	}
	return nil
}

// Checkpoint flushes all buffered WAL records into the main database file.
// A no-op when WAL journaling is disabled.
func (d *DB) Checkpoint(ctx context.Context) error {
	if !d.wal {
		return nil
	}
	if err := d.execDrain(ctx, "PRAGMA wal_checkpoint(FULL)"); err != nil {
		return errors.NewEngineError(errors.CodeCheckpointFailed, "wal checkpoint", err)
	}
	return nil
}

// Close releases the connection and the database handle.
func (d *DB) Close() error {
	var firstErr error
	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			firstErr = errors.NewEngineError(errors.CodeCloseFailed, "close connection", err)
		}
		d.conn = nil
	}
	if d.db != nil {
		if err := d.db.Close(); err != nil && firstErr == nil {
			firstErr = errors.NewEngineError(errors.CodeCloseFailed, "close database", err)
		}
		d.db = nil
	}
	return firstErr
}
