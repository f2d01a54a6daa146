package records

import (
	"context"

	"github.com/dmitrijs2005/visadesk/internal/kv"
	"github.com/dmitrijs2005/visadesk/internal/models"
)

// GetSettings returns the global settings, empty when none were saved.
func (s *Store) GetSettings(ctx context.Context) (models.Settings, error) {
	settings := models.Settings{}
	err := s.view(ctx, "get settings", func(ctx context.Context, st kv.Store) error {
		_, err := kv.GetJSON(ctx, st, kv.KeySettings, &settings)
		return err
	})
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = models.Settings{}
	}
	return settings, nil
}

// SaveSettings merges patch into the global settings. A nil value removes
// the key.
func (s *Store) SaveSettings(ctx context.Context, patch models.Settings) (models.Settings, error) {
	settings := models.Settings{}
	err := s.update(ctx, "save settings", func(ctx context.Context, st kv.Store) error {
		if _, err := kv.GetJSON(ctx, st, kv.KeySettings, &settings); err != nil {
			return err
		}
		if settings == nil {
			settings = models.Settings{}
		}
		for k, v := range patch {
			if v == nil {
				delete(settings, k)
				continue
			}
			settings[k] = v
		}
		return kv.SetJSON(ctx, st, kv.KeySettings, settings)
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}
