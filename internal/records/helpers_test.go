package records

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrijs2005/visadesk/internal/cryptox"
	"github.com/dmitrijs2005/visadesk/internal/kv"
	"github.com/dmitrijs2005/visadesk/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testHashParams = cryptox.Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 16, SaltLen: 8}

func testClock() func() time.Time {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func testIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

func newTestStore(t *testing.T, backend kv.Store, opts ...Option) *Store {
	t.Helper()
	if backend == nil {
		backend = kv.NewMemoryStore(0)
	}
	base := []Option{WithHashParams(testHashParams), WithClock(testClock()), WithIDGenerator(testIDs())}
	return New(backend, append(base, opts...)...)
}

func newSQLiteBackend(t *testing.T) kv.Store {
	t.Helper()
	st, closer, err := kv.Open(context.Background(), kv.Options{Backend: kv.BackendSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer.Close() })
	return st
}

func register(t *testing.T, s *Store, email, password, name string) models.SessionUser {
	t.Helper()
	u, err := s.Register(context.Background(), Registration{Email: email, Password: password, Name: name})
	require.NoError(t, err)
	return u
}

// canonicalUser reads the stored user record, password included.
func canonicalUser(t *testing.T, st kv.Store, id string) models.User {
	t.Helper()
	users, err := loadUsers(context.Background(), st)
	require.NoError(t, err)
	for _, u := range users {
		if u.ID == id {
			return u
		}
	}
	t.Fatalf("user %s not stored", id)
	return models.User{}
}

func summaryIDs(sum []models.ApplicationSummary) []string {
	ids := make([]string, 0, len(sum))
	for _, a := range sum {
		ids = append(ids, a.ID)
	}
	return ids
}

var errInjected = errors.New("injected write failure")

// failingStore fails every Set of failKey, inside Atomic too.
type failingStore struct {
	kv.Store
	failKey string
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if key == f.failKey {
		return errInjected
	}
	return f.Store.Set(ctx, key, value)
}

func (f *failingStore) Atomic(ctx context.Context, fn func(ctx context.Context, s kv.Store) error) error {
	return f.Store.Atomic(ctx, func(ctx context.Context, s kv.Store) error {
		return fn(ctx, &failingStore{Store: s, failKey: f.failKey})
	})
}
