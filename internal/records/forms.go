package records

import (
	"context"
	"maps"
	"strings"

	"github.com/dmitrijs2005/visadesk/internal/common"
	"github.com/dmitrijs2005/visadesk/internal/kv"
	"github.com/dmitrijs2005/visadesk/internal/models"
)

// formKey is how a form type is stored: surrounding whitespace is not part of it.
func formKey(formType string) string {
	return strings.TrimSpace(formType)
}

func (s *Store) ListForms(ctx context.Context, userID string) (models.Forms, error) {
	forms := models.Forms{}
	err := s.view(ctx, "list forms", func(ctx context.Context, st kv.Store) error {
		return loadBlob(ctx, st, kv.NamespaceForms, userID, &forms)
	})
	if err != nil {
		return nil, err
	}
	return forms, nil
}

func (s *Store) GetForm(ctx context.Context, userID, formType string) (models.FormEntry, error) {
	forms, err := s.ListForms(ctx, userID)
	if err != nil {
		return models.FormEntry{}, err
	}
	f, ok := forms[formKey(formType)]
	if !ok {
		return models.FormEntry{}, common.NotFound("form %s not found", formType)
	}
	return f, nil
}

// SaveForm stores the latest state of a form, replacing what was there.
func (s *Store) SaveForm(ctx context.Context, userID, formType string, data map[string]any) (models.FormEntry, error) {
	formType = formKey(formType)
	if formType == "" {
		return models.FormEntry{}, common.Validation("form type is required")
	}
	entry := models.FormEntry{Data: maps.Clone(data), UpdatedAt: s.timestamp()}
	if entry.Data == nil {
		entry.Data = map[string]any{}
	}

	err := s.update(ctx, "save form", func(ctx context.Context, st kv.Store) error {
		forms := models.Forms{}
		if err := loadBlob(ctx, st, kv.NamespaceForms, userID, &forms); err != nil {
			return err
		}
		if forms == nil {
			forms = models.Forms{}
		}
		forms[formType] = entry
		return saveBlob(ctx, st, kv.NamespaceForms, userID, forms)
	})
	if err != nil {
		return models.FormEntry{}, err
	}
	return entry, nil
}

func (s *Store) DeleteForm(ctx context.Context, userID, formType string) error {
	formType = formKey(formType)
	return s.update(ctx, "delete form", func(ctx context.Context, st kv.Store) error {
		forms := models.Forms{}
		if err := loadBlob(ctx, st, kv.NamespaceForms, userID, &forms); err != nil {
			return err
		}
		if _, ok := forms[formType]; !ok {
			return common.NotFound("form %s not found", formType)
		}
		delete(forms, formType)
		return saveBlob(ctx, st, kv.NamespaceForms, userID, forms)
	})
}
