package kv

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDatabase(context.Background(), ":memory:", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteStore_SetGetUpsert(t *testing.T) {
	r := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "users", []byte(`[]`)))
	require.NoError(t, r.Set(ctx, "users", []byte(`[{"id":"u1"}]`)))

	v, err := r.Get(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"u1"}]`), v)
}

func TestSQLiteStore_GetAbsentReturnsNilNil(t *testing.T) {
	r := NewSQLiteStore(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLiteStore_DeleteIsIdempotent(t *testing.T) {
	r := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{1}))
	require.NoError(t, r.Delete(ctx, "x"))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLiteStore_ListAndClear(t *testing.T) {
	r := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte{0xAA}))
	require.NoError(t, r.Set(ctx, "documents:u1", []byte{0xBB, 0xCC}))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a": {0xAA}, "documents:u1": {0xBB, 0xCC}}, m)

	require.NoError(t, r.Clear(ctx))
	m, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestSQLiteStore_AtomicCommits(t *testing.T) {
	r := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	err := r.Atomic(ctx, func(ctx context.Context, s Store) error {
		if err := s.Set(ctx, "users", []byte("1")); err != nil {
			return err
		}
		return s.Set(ctx, "applications", []byte("2"))
	})
	require.NoError(t, err)

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, m, 2)
}

func TestSQLiteStore_AtomicRollsBack(t *testing.T) {
	r := NewSQLiteStore(setupDB(t))
	ctx := context.Background()
	require.NoError(t, r.Set(ctx, "users", []byte("old")))

	boom := errors.New("boom")
	err := r.Atomic(ctx, func(ctx context.Context, s Store) error {
		require.NoError(t, s.Set(ctx, "users", []byte("new")))
		require.NoError(t, s.Set(ctx, "applications", []byte("new")))

		// nested calls join the outer transaction
		return s.Atomic(ctx, func(ctx context.Context, s Store) error { return boom })
	})
	require.ErrorIs(t, err, boom)

	v, err := r.Get(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), v)
	v, err = r.Get(ctx, "applications")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSQLiteStore_ErrorsWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteStore(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get kv[k]")
	require.ErrorContains(t, r.Set(ctx, "k", []byte("v")), "failed to set kv[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete kv[k]")
	require.ErrorContains(t, r.Clear(ctx), "failed to clear kv")
	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list kv")
}
