package kv

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/visadesk/internal/filex"
	"github.com/dmitrijs2005/visadesk/internal/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Options configure Open.
type Options struct {
	Backend     string
	DSN         string
	QuotaBytes  int64
	BusyTimeout time.Duration
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the Store selected by opts. The returned closer releases the
// database handle, if any.
func Open(ctx context.Context, opts Options) (Store, io.Closer, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		db, err := InitDatabase(ctx, opts.DSN, opts.BusyTimeout)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLiteStore(db), db, nil
	case BackendMemory:
		return NewMemoryStore(opts.QuotaBytes), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %s", opts.Backend)
	}
}

// RunMigrations applies the embedded migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite file at dsn and migrates it. A single
// connection is kept so that ":memory:" databases behave as one database.
func InitDatabase(ctx context.Context, dsn string, busyTimeout time.Duration) (*sql.DB, error) {
	if filex.IsFilePath(dsn) {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, fmt.Errorf("failed to prepare database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if busyTimeout > 0 {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout.Milliseconds())); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set busy timeout: %w", err)
		}
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}
