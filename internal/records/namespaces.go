package records

import (
	"context"

	"github.com/dmitrijs2005/visadesk/internal/kv"
)

// requireUser fails with not found unless userID is registered. Namespaced
// blobs are only reachable through an existing user.
func requireUser(ctx context.Context, st kv.Store, userID string) error {
	users, err := loadUsers(ctx, st)
	if err != nil {
		return err
	}
	x := &state{users: users}
	if x.userIndex(userID) < 0 {
		return errUserNotFound(userID)
	}
	return nil
}

// loadBlob reads the userID blob of namespace ns into dst, which keeps its
// default value when nothing is stored yet.
func loadBlob(ctx context.Context, st kv.Store, ns, userID string, dst any) error {
	if err := requireUser(ctx, st, userID); err != nil {
		return err
	}
	_, err := kv.GetJSON(ctx, st, kv.UserKey(ns, userID), dst)
	return err
}

func saveBlob(ctx context.Context, st kv.Store, ns, userID string, v any) error {
	return kv.SetJSON(ctx, st, kv.UserKey(ns, userID), v)
}

func clearBlob(ctx context.Context, st kv.Store, ns, userID string) error {
	if err := requireUser(ctx, st, userID); err != nil {
		return err
	}
	return st.Delete(ctx, kv.UserKey(ns, userID))
}
