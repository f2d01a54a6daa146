// Package kv provides the key-value substrate the record store is built on.
//
// # Overview
//
// A Store maps string keys to opaque byte values (JSON documents in
// practice). Two implementations exist: SQLiteStore persists to a local
// SQLite file through dbx.DBTX, and MemoryStore keeps everything in a map
// with an optional byte quota, mirroring browser local storage.
//
// # Atomicity
//
// Atomic runs a function against a Store whose writes become visible all at
// once, or not at all if the function fails. SQLiteStore uses a transaction;
// MemoryStore works on a copy that replaces the live map on success.
//
// Typical Usage
//
//	s, closer, err := kv.Open(ctx, kv.Options{Backend: "sqlite", DSN: "visadesk.db"})
//	defer closer.Close()
//	_ = kv.SetJSON(ctx, s, kv.KeyUsers, users)
//	found, _ := kv.GetJSON(ctx, s, kv.KeyUsers, &users)
package kv

import (
	"context"
	"errors"
)

var (
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrSerialization = errors.New("serialization failed")
)

// Store is the substrate contract. Get returns (nil, nil) for absent keys and
// Delete of an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error

	// Atomic runs fn with a Store whose writes are applied all-or-nothing.
	Atomic(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}
