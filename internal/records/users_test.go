package records

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/visadesk/internal/common"
	"github.com/dmitrijs2005/visadesk/internal/cryptox"
	"github.com/dmitrijs2005/visadesk/internal/kv"
	"github.com/dmitrijs2005/visadesk/internal/models"
)

func TestRegister_SetsSessionWithoutPassword(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryStore(0)
	s := newTestStore(t, backend)

	u, err := s.Register(ctx, Registration{
		Email:    "  Ann@X.com ",
		Password: "secret1",
		Name:     "Ann",
		Profile:  models.Profile{Nationality: "FR"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", u.Email)
	assert.Equal(t, "Ann", u.Name)
	assert.Empty(t, u.Applications)

	cur, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, u.ID, cur.ID)
	assert.Equal(t, "FR", cur.Profile.Nationality)

	raw, err := backend.Get(ctx, kv.KeyCurrentUser)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "secret1")

	stored := canonicalUser(t, backend, u.ID)
	assert.NotEqual(t, "secret1", stored.Password)
	ok, err := cryptox.VerifyPassword(stored.Password, []byte("secret1"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   Registration
	}{
		{"missing email", Registration{Password: "p", Name: "Ann"}},
		{"blank email", Registration{Email: "   ", Password: "p", Name: "Ann"}},
		{"malformed email", Registration{Email: "not-an-email", Password: "p", Name: "Ann"}},
		{"missing password", Registration{Email: "a@x.com", Name: "Ann"}},
		{"missing name", Registration{Email: "a@x.com", Password: "p", Name: "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, nil)
			_, err := s.Register(context.Background(), tt.in)
			require.ErrorIs(t, err, common.ErrValidation)

			users, err := s.ListUsers(context.Background())
			require.NoError(t, err)
			assert.Empty(t, users)
		})
	}
}

func TestRegister_DuplicateEmailAnyCase(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	register(t, s, "a@x.com", "secret1", "Ann")

	_, err := s.Register(ctx, Registration{Email: "A@X.COM", Password: "other", Name: "Impostor"})
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
	assert.Equal(t, common.KindDuplicateEmail, common.KindOf(err))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ann", users[0].Name)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	ann := register(t, s, "a@x.com", "secret1", "Ann")
	require.NoError(t, s.Logout(ctx))

	t.Run("unknown email", func(t *testing.T) {
		_, err := s.Login(ctx, "nobody@x.com", "secret1")
		require.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("wrong password keeps session absent", func(t *testing.T) {
		_, err := s.Login(ctx, "a@x.com", "wrong")
		require.ErrorIs(t, err, common.ErrInvalidCredentials)
		_, err = s.CurrentUser(ctx)
		require.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := s.Login(ctx, "", "")
		require.ErrorIs(t, err, common.ErrValidation)
	})

	t.Run("success is case insensitive", func(t *testing.T) {
		u, err := s.Login(ctx, " A@x.COM", "secret1")
		require.NoError(t, err)
		assert.Equal(t, ann.ID, u.ID)
		cur, err := s.CurrentUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, ann.ID, cur.ID)
	})

	t.Run("wrong password keeps existing session", func(t *testing.T) {
		register(t, s, "b@x.com", "secret2", "Bob")
		_, err := s.Login(ctx, "a@x.com", "secret1")
		require.NoError(t, err)

		_, err = s.Login(ctx, "b@x.com", "nope")
		require.ErrorIs(t, err, common.ErrInvalidCredentials)

		cur, err := s.CurrentUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, ann.ID, cur.ID)
	})
}

func TestLogout_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	register(t, s, "a@x.com", "secret1", "Ann")

	require.NoError(t, s.Logout(ctx))
	require.NoError(t, s.Logout(ctx))
	_, err := s.CurrentUser(ctx)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	ann := register(t, s, "a@x.com", "secret1", "Ann")

	fullName := "Ann Smith"
	phone := "+33 1 23"
	hijack := "evil@x.com"
	u, err := s.UpdateProfile(ctx, ann.ID, models.ProfilePatch{FullName: &fullName, Phone: &phone, Email: &hijack})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
	assert.Equal(t, "Ann Smith", u.Name)
	assert.Equal(t, models.Profile{FullName: "Ann Smith", Phone: "+33 1 23"}, u.Profile)

	cur, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", cur.Email)
	assert.Equal(t, "Ann Smith", cur.Name)
	assert.Equal(t, "+33 1 23", cur.Profile.Phone)

	got, err := s.GetUser(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)

	_, err = s.UpdateProfile(ctx, "missing", models.ProfilePatch{Phone: &phone})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateProfile_OtherUserSessionUntouched(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	ann := register(t, s, "a@x.com", "secret1", "Ann")
	bob := register(t, s, "b@x.com", "secret2", "Bob")

	loc := "Paris"
	_, err := s.UpdateProfile(ctx, ann.ID, models.ProfilePatch{Location: &loc})
	require.NoError(t, err)

	cur, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, cur.ID)
	assert.Empty(t, cur.Profile.Location)
}

func TestUpdatePassword(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	ann := register(t, s, "a@x.com", "secret1", "Ann")

	require.ErrorIs(t, s.UpdatePassword(ctx, ann.ID, ""), common.ErrValidation)
	require.ErrorIs(t, s.UpdatePassword(ctx, "missing", "x"), common.ErrNotFound)
	require.NoError(t, s.UpdatePassword(ctx, ann.ID, "secret2"))

	_, err := s.Login(ctx, "a@x.com", "secret1")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	_, err = s.Login(ctx, "a@x.com", "secret2")
	require.NoError(t, err)
}

func TestDeleteAccount_Cascades(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryStore(0)
	s := newTestStore(t, backend)
	bob := register(t, s, "b@x.com", "secret2", "Bob")
	ann := register(t, s, "a@x.com", "secret1", "Ann")

	_, err := s.AddApplication(ctx, ann.ID, models.ApplicationInput{Destination: "France"})
	require.NoError(t, err)
	bobApp, err := s.AddApplication(ctx, bob.ID, models.ApplicationInput{Destination: "Japan"})
	require.NoError(t, err)
	_, err = s.AddDocument(ctx, ann.ID, DocumentInput{Name: "passport.pdf"})
	require.NoError(t, err)
	_, err = s.AppendChatMessage(ctx, ann.ID, models.RoleUser, "hi")
	require.NoError(t, err)
	_, err = s.RecordQuizResult(ctx, ann.ID, 8)
	require.NoError(t, err)
	_, err = s.AddDocument(ctx, bob.ID, DocumentInput{Name: "visa.pdf"})
	require.NoError(t, err)

	err = s.DeleteAccount(ctx, ann.ID, "wrong")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	_, err = s.GetUser(ctx, ann.ID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteAccount(ctx, ann.ID, "secret1"))

	_, err = s.GetUser(ctx, ann.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
	_, err = s.CurrentUser(ctx)
	require.ErrorIs(t, err, common.ErrNotFound)

	all, err := s.ListAllApplications(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, bobApp.ID, all[0].ID)

	for _, ns := range kv.UserNamespaces {
		raw, err := backend.Get(ctx, kv.UserKey(ns, ann.ID))
		require.NoError(t, err)
		assert.Nil(t, raw, ns)
	}
	docs, err := s.ListDocuments(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	require.ErrorIs(t, s.DeleteAccount(ctx, ann.ID, "secret1"), common.ErrNotFound)
}

func TestWithSession_IsolatesSnapshots(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	tab := s.WithSession("tab2")

	ann := register(t, s, "a@x.com", "secret1", "Ann")
	bob := register(t, tab, "b@x.com", "secret2", "Bob")

	cur, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, ann.ID, cur.ID)
	cur, err = tab.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, cur.ID)

	app, err := tab.AddApplication(ctx, ann.ID, models.ApplicationInput{Destination: "Spain"})
	require.NoError(t, err)

	cur, err = s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{app.ID}, summaryIDs(cur.Applications))
	cur, err = tab.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Empty(t, cur.Applications)

	require.NoError(t, tab.Logout(ctx))
	_, err = s.CurrentUser(ctx)
	require.NoError(t, err)
}

func TestStorageFailure_IsReportedGenerically(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemoryStore(64))

	_, err := s.Register(ctx, Registration{Email: "a@x.com", Password: "secret1", Name: "Ann"})
	require.ErrorIs(t, err, common.ErrStorage)
	require.ErrorIs(t, err, kv.ErrQuotaExceeded)

	res := common.ResultOf(models.SessionUser{}, err)
	assert.False(t, res.OK)
	assert.Equal(t, common.KindStorage, res.Kind)
	assert.Equal(t, common.StorageMessage, res.Message)
}
