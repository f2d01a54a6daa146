package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/visadesk/internal/dbx"
)

// SQLiteStore implements Store over the kv table using a DBTX (either
// *sql.DB or *sql.Tx).
type SQLiteStore struct {
	db dbx.DBTX
	tx dbx.TxBeginner // nil inside a transaction
}

// NewSQLiteStore returns a store bound to db. Atomic opens a transaction on
// db.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, tx: db}
}

func (r *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv`); err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	return nil
}

func (r *SQLiteStore) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM kv`)
	if err != nil {
		return nil, fmt.Errorf("failed to list kv: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan kv row: %w", err)
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kv rows: %w", err)
	}
	return result, nil
}

// Atomic runs fn inside a transaction. Nested calls join the outer one.
func (r *SQLiteStore) Atomic(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	if r.tx == nil {
		return fn(ctx, r)
	}
	return dbx.WithTx(ctx, r.tx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &SQLiteStore{db: tx})
	})
}
