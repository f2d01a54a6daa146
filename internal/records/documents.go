package records

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/visadesk/internal/common"
	"github.com/dmitrijs2005/visadesk/internal/kv"
	"github.com/dmitrijs2005/visadesk/internal/models"
)

const defaultDocumentCategory = "other"

// DocumentInput describes an uploaded document. Only metadata is stored.
type DocumentInput struct {
	Name     string `json:"name" validate:"required"`
	Type     string `json:"type"`
	Size     int64  `json:"size" validate:"gte=0"`
	Category string `json:"category"`
}

func (s *Store) ListDocuments(ctx context.Context, userID string) ([]models.Document, error) {
	docs := []models.Document{}
	err := s.view(ctx, "list documents", func(ctx context.Context, st kv.Store) error {
		return loadBlob(ctx, st, kv.NamespaceDocuments, userID, &docs)
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *Store) AddDocument(ctx context.Context, userID string, in DocumentInput) (models.Document, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.check(in); err != nil {
		return models.Document{}, err
	}
	doc := models.Document{
		ID:         s.newID(),
		Name:       in.Name,
		Type:       in.Type,
		Size:       in.Size,
		UploadDate: s.timestamp(),
		Category:   strings.TrimSpace(in.Category),
	}
	if doc.Category == "" {
		doc.Category = defaultDocumentCategory
	}

	err := s.update(ctx, "add document", func(ctx context.Context, st kv.Store) error {
		var docs []models.Document
		if err := loadBlob(ctx, st, kv.NamespaceDocuments, userID, &docs); err != nil {
			return err
		}
		return saveBlob(ctx, st, kv.NamespaceDocuments, userID, append(docs, doc))
	})
	if err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

// UpdateDocument renames or recategorizes a document.
func (s *Store) UpdateDocument(ctx context.Context, userID, docID string, patch models.DocumentPatch) (models.Document, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return models.Document{}, common.Validation("name is required")
	}

	var doc models.Document
	err := s.update(ctx, "update document", func(ctx context.Context, st kv.Store) error {
		var docs []models.Document
		if err := loadBlob(ctx, st, kv.NamespaceDocuments, userID, &docs); err != nil {
			return err
		}
		i := documentIndex(docs, docID)
		if i < 0 {
			return common.NotFound("document %s not found", docID)
		}
		if patch.Name != nil {
			docs[i].Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Category != nil {
			docs[i].Category = strings.TrimSpace(*patch.Category)
			if docs[i].Category == "" {
				docs[i].Category = defaultDocumentCategory
			}
		}
		doc = docs[i]
		return saveBlob(ctx, st, kv.NamespaceDocuments, userID, docs)
	})
	if err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

func (s *Store) DeleteDocument(ctx context.Context, userID, docID string) error {
	return s.update(ctx, "delete document", func(ctx context.Context, st kv.Store) error {
		var docs []models.Document
		if err := loadBlob(ctx, st, kv.NamespaceDocuments, userID, &docs); err != nil {
			return err
		}
		i := documentIndex(docs, docID)
		if i < 0 {
			return common.NotFound("document %s not found", docID)
		}
		return saveBlob(ctx, st, kv.NamespaceDocuments, userID, append(docs[:i], docs[i+1:]...))
	})
}

func (s *Store) ClearDocuments(ctx context.Context, userID string) error {
	return s.update(ctx, "clear documents", func(ctx context.Context, st kv.Store) error {
		return clearBlob(ctx, st, kv.NamespaceDocuments, userID)
	})
}

func documentIndex(docs []models.Document, id string) int {
	for i := range docs {
		if docs[i].ID == id {
			return i
		}
	}
	return -1
}
