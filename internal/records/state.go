package records

import (
	"context"
	"slices"
	"strings"

	"github.com/dmitrijs2005/visadesk/internal/kv"
	"github.com/dmitrijs2005/visadesk/internal/models"
)

// state is the in-memory copy of the canonical collections that a single
// operation reads and writes back.
type state struct {
	users []models.User
	apps  []models.Application
}

func loadUsers(ctx context.Context, st kv.Store) ([]models.User, error) {
	var users []models.User
	if _, err := kv.GetJSON(ctx, st, kv.KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func loadApplications(ctx context.Context, st kv.Store) ([]models.Application, error) {
	var apps []models.Application
	if _, err := kv.GetJSON(ctx, st, kv.KeyApplications, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func loadState(ctx context.Context, st kv.Store) (*state, error) {
	users, err := loadUsers(ctx, st)
	if err != nil {
		return nil, err
	}
	apps, err := loadApplications(ctx, st)
	if err != nil {
		return nil, err
	}
	return &state{users: users, apps: apps}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (x *state) userIndex(id string) int {
	for i := range x.users {
		if x.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (x *state) emailIndex(email string) int {
	email = normalizeEmail(email)
	for i := range x.users {
		if normalizeEmail(x.users[i].Email) == email {
			return i
		}
	}
	return -1
}

// appIndex finds an application by id. A non-empty userID also requires
// ownership.
func (x *state) appIndex(appID, userID string) int {
	for i := range x.apps {
		if x.apps[i].ID != appID {
			continue
		}
		if userID != "" && x.apps[i].UserID != userID {
			return -1
		}
		return i
	}
	return -1
}

// rebuild recomputes the embedded summary of user i from the canonical
// application collection, in insertion order.
func (x *state) rebuild(i int) {
	id := x.users[i].ID
	summary := make([]models.ApplicationSummary, 0)
	for _, a := range x.apps {
		if a.UserID == id {
			summary = append(summary, a.Summary())
		}
	}
	x.users[i].Applications = summary
}

// commit derives the copies of the touched users and writes the canonical
// collections plus every affected session snapshot.
func (x *state) commit(ctx context.Context, st kv.Store, touched ...string) error {
	for _, id := range touched {
		if i := x.userIndex(id); i >= 0 {
			x.rebuild(i)
		}
	}
	if x.users == nil {
		x.users = []models.User{}
	}
	if x.apps == nil {
		x.apps = []models.Application{}
	}
	if err := kv.SetJSON(ctx, st, kv.KeyUsers, x.users); err != nil {
		return err
	}
	if err := kv.SetJSON(ctx, st, kv.KeyApplications, x.apps); err != nil {
		return err
	}
	return x.syncSessions(ctx, st, touched)
}

// syncSessions refreshes every session snapshot that belongs to one of the
// touched users, and drops snapshots of users that no longer exist.
func (x *state) syncSessions(ctx context.Context, st kv.Store, touched []string) error {
	if len(touched) == 0 {
		return nil
	}
	keys, err := sessionKeys(ctx, st)
	if err != nil {
		return err
	}
	for _, key := range keys {
		var snap models.SessionUser
		found, err := kv.GetJSON(ctx, st, key, &snap)
		if err != nil {
			return err
		}
		if !found || !slices.Contains(touched, snap.ID) {
			continue
		}
		i := x.userIndex(snap.ID)
		if i < 0 {
			if err := st.Delete(ctx, key); err != nil {
				return err
			}
			continue
		}
		if err := kv.SetJSON(ctx, st, key, x.users[i].Snapshot()); err != nil {
			return err
		}
	}
	return nil
}

func sessionKeys(ctx context.Context, st kv.Store) ([]string, error) {
	all, err := st.List(ctx)
	if err != nil {
		return nil, err
	}
	var keys []string
	for k := range all {
		if k == kv.KeyCurrentUser || strings.HasPrefix(k, kv.KeyCurrentUser+":") {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
