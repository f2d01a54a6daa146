package records

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/visadesk/internal/common"
	"github.com/dmitrijs2005/visadesk/internal/cryptox"
	"github.com/dmitrijs2005/visadesk/internal/kv"
	"github.com/dmitrijs2005/visadesk/internal/models"
)

// Registration is the input of Register.
type Registration struct {
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required"`
	Name     string         `json:"name" validate:"required"`
	Profile  models.Profile `json:"profile"`
}

// Register creates a user and logs them in.
func (s *Store) Register(ctx context.Context, in Registration) (models.SessionUser, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := s.check(in); err != nil {
		return models.SessionUser{}, err
	}
	hash := cryptox.HashPassword([]byte(in.Password), s.hashParams)

	var snap models.SessionUser
	err := s.update(ctx, "register", func(ctx context.Context, st kv.Store) error {
		x, err := loadState(ctx, st)
		if err != nil {
			return err
		}
		if x.emailIndex(in.Email) >= 0 {
			return common.DuplicateEmail(in.Email)
		}

		now := s.timestamp()
		u := models.User{
			ID:           s.newID(),
			Email:        in.Email,
			Name:         in.Name,
			Password:     hash,
			CreatedAt:    now,
			UpdatedAt:    now,
			Profile:      in.Profile,
			Applications: []models.ApplicationSummary{},
		}
		x.users = append(x.users, u)
		if err := x.commit(ctx, st); err != nil {
			return err
		}
		snap = u.Snapshot()
		return kv.SetJSON(ctx, st, s.session, snap)
	})
	if err != nil {
		return models.SessionUser{}, err
	}
	s.log.Info(ctx, "user registered", "user_id", snap.ID)
	return snap, nil
}

// Login checks the credentials and stores the session snapshot. On failure
// the current session is left as it was.
func (s *Store) Login(ctx context.Context, email, password string) (models.SessionUser, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.SessionUser{}, common.Validation("email and password are required")
	}

	var snap models.SessionUser
	err := s.update(ctx, "login", func(ctx context.Context, st kv.Store) error {
		x, err := loadState(ctx, st)
		if err != nil {
			return err
		}
		i := x.emailIndex(email)
		if i < 0 {
			return common.NotFound("no account registered for %s", email)
		}
		ok, err := cryptox.VerifyPassword(x.users[i].Password, []byte(password))
		if err != nil {
			return err
		}
		if !ok {
			return common.InvalidCredentials()
		}
		snap = x.users[i].Snapshot()
		return kv.SetJSON(ctx, st, s.session, snap)
	})
	if err != nil {
		return models.SessionUser{}, err
	}
	return snap, nil
}

// Logout clears the session snapshot. Logging out twice is fine.
func (s *Store) Logout(ctx context.Context) error {
	return s.update(ctx, "logout", func(ctx context.Context, st kv.Store) error {
		return st.Delete(ctx, s.session)
	})
}

// CurrentUser returns the session snapshot, or a not-found error when nobody
// is logged in.
func (s *Store) CurrentUser(ctx context.Context) (models.SessionUser, error) {
	var snap models.SessionUser
	err := s.view(ctx, "current user", func(ctx context.Context, st kv.Store) error {
		found, err := kv.GetJSON(ctx, st, s.session, &snap)
		if err != nil {
			return err
		}
		if !found {
			return common.NotFound("no user is logged in")
		}
		return nil
	})
	return snap, err
}

func (s *Store) GetUser(ctx context.Context, userID string) (models.SessionUser, error) {
	var snap models.SessionUser
	err := s.view(ctx, "get user", func(ctx context.Context, st kv.Store) error {
		users, err := loadUsers(ctx, st)
		if err != nil {
			return err
		}
		x := &state{users: users}
		i := x.userIndex(userID)
		if i < 0 {
			return errUserNotFound(userID)
		}
		snap = users[i].Snapshot()
		return nil
	})
	return snap, err
}

// ListUsers returns every registered user without credentials.
func (s *Store) ListUsers(ctx context.Context) ([]models.SessionUser, error) {
	out := []models.SessionUser{}
	err := s.view(ctx, "list users", func(ctx context.Context, st kv.Store) error {
		users, err := loadUsers(ctx, st)
		if err != nil {
			return err
		}
		for _, u := range users {
			out = append(out, u.Snapshot())
		}
		return nil
	})
	return out, err
}

// UpdateProfile merges the patch into the user's profile. The stored email
// never changes; a full name also becomes the display name.
func (s *Store) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (models.SessionUser, error) {
	var snap models.SessionUser
	err := s.update(ctx, "update profile", func(ctx context.Context, st kv.Store) error {
		x, err := loadState(ctx, st)
		if err != nil {
			return err
		}
		i := x.userIndex(userID)
		if i < 0 {
			return errUserNotFound(userID)
		}

		u := &x.users[i]
		if patch.FullName != nil {
			u.Profile.FullName = strings.TrimSpace(*patch.FullName)
			if u.Profile.FullName != "" {
				u.Name = u.Profile.FullName
			}
		}
		if patch.Phone != nil {
			u.Profile.Phone = strings.TrimSpace(*patch.Phone)
		}
		if patch.Nationality != nil {
			u.Profile.Nationality = strings.TrimSpace(*patch.Nationality)
		}
		if patch.Location != nil {
			u.Profile.Location = strings.TrimSpace(*patch.Location)
		}
		u.UpdatedAt = s.timestamp()

		if err := x.commit(ctx, st, userID); err != nil {
			return err
		}
		snap = x.users[i].Snapshot()
		return nil
	})
	if err != nil {
		return models.SessionUser{}, err
	}
	return snap, nil
}

// UpdatePassword replaces the stored password hash.
func (s *Store) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	if newPassword == "" {
		return common.Validation("password is required")
	}
	hash := cryptox.HashPassword([]byte(newPassword), s.hashParams)

	return s.update(ctx, "update password", func(ctx context.Context, st kv.Store) error {
		x, err := loadState(ctx, st)
		if err != nil {
			return err
		}
		i := x.userIndex(userID)
		if i < 0 {
			return errUserNotFound(userID)
		}
		x.users[i].Password = hash
		x.users[i].UpdatedAt = s.timestamp()
		return x.commit(ctx, st, userID)
	})
}

// DeleteAccount removes the user after checking the password, together with
// their applications, namespaced blobs and session snapshots.
func (s *Store) DeleteAccount(ctx context.Context, userID, password string) error {
	err := s.update(ctx, "delete account", func(ctx context.Context, st kv.Store) error {
		x, err := loadState(ctx, st)
		if err != nil {
			return err
		}
		i := x.userIndex(userID)
		if i < 0 {
			return errUserNotFound(userID)
		}
		ok, err := cryptox.VerifyPassword(x.users[i].Password, []byte(password))
		if err != nil {
			return err
		}
		if !ok {
			return common.InvalidCredentials()
		}

		x.users = append(x.users[:i], x.users[i+1:]...)
		apps := x.apps[:0]
		for _, a := range x.apps {
			if a.UserID != userID {
				apps = append(apps, a)
			}
		}
		x.apps = apps

		for _, ns := range kv.UserNamespaces {
			if err := st.Delete(ctx, kv.UserKey(ns, userID)); err != nil {
				return err
			}
		}
		return x.commit(ctx, st, userID)
	})
	if err != nil {
		return err
	}
	s.log.Info(ctx, "account deleted", "user_id", userID)
	return nil
}

func errUserNotFound(userID string) error {
	return common.NotFound("user %s not found", userID)
}
