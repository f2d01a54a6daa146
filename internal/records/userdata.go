package records

import (
	"context"
	"maps"

	"github.com/dmitrijs2005/visadesk/internal/kv"
	"github.com/dmitrijs2005/visadesk/internal/models"
)

func (s *Store) GetUserData(ctx context.Context, userID string) (models.UserData, error) {
	d := models.NewUserData()
	err := s.view(ctx, "get user data", func(ctx context.Context, st kv.Store) error {
		return loadBlob(ctx, st, kv.NamespaceUserData, userID, &d)
	})
	if err != nil {
		return models.UserData{}, err
	}
	return fillUserData(d), nil
}

// SaveUserData overwrites the user's data blob.
func (s *Store) SaveUserData(ctx context.Context, userID string, d models.UserData) (models.UserData, error) {
	d = fillUserData(d)
	d.UpdatedAt = s.timestamp()
	err := s.update(ctx, "save user data", func(ctx context.Context, st kv.Store) error {
		if err := requireUser(ctx, st, userID); err != nil {
			return err
		}
		return saveBlob(ctx, st, kv.NamespaceUserData, userID, d)
	})
	if err != nil {
		return models.UserData{}, err
	}
	return d, nil
}

// UpdateUserData merges the maps of patch into the stored blob key by key.
func (s *Store) UpdateUserData(ctx context.Context, userID string, patch models.UserData) (models.UserData, error) {
	d := models.NewUserData()
	err := s.update(ctx, "update user data", func(ctx context.Context, st kv.Store) error {
		if err := loadBlob(ctx, st, kv.NamespaceUserData, userID, &d); err != nil {
			return err
		}
		d = fillUserData(d)
		maps.Copy(d.Profile, patch.Profile)
		maps.Copy(d.Settings, patch.Settings)
		maps.Copy(d.Progress, patch.Progress)
		d.UpdatedAt = s.timestamp()
		return saveBlob(ctx, st, kv.NamespaceUserData, userID, d)
	})
	if err != nil {
		return models.UserData{}, err
	}
	return d, nil
}

func fillUserData(d models.UserData) models.UserData {
	if d.Profile == nil {
		d.Profile = map[string]any{}
	}
	if d.Settings == nil {
		d.Settings = map[string]any{}
	}
	if d.Progress == nil {
		d.Progress = map[string]any{}
	}
	return d
}
