package records

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/visadesk/internal/common"
	"github.com/dmitrijs2005/visadesk/internal/kv"
	"github.com/dmitrijs2005/visadesk/internal/models"
)

func (s *Store) ChatHistory(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	history := []models.ChatMessage{}
	err := s.view(ctx, "chat history", func(ctx context.Context, st kv.Store) error {
		return loadBlob(ctx, st, kv.NamespaceChatHistory, userID, &history)
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

// AppendChatMessage adds a message to the user's history, dropping the
// oldest messages beyond the configured limit.
func (s *Store) AppendChatMessage(ctx context.Context, userID string, role models.ChatRole, content string) (models.ChatMessage, error) {
	switch role {
	case models.RoleUser, models.RoleAssistant, models.RoleSystem:
	default:
		return models.ChatMessage{}, common.Validation("unknown chat role %q", role)
	}
	if strings.TrimSpace(content) == "" {
		return models.ChatMessage{}, common.Validation("content is required")
	}
	msg := models.ChatMessage{Role: role, Content: content, Timestamp: s.timestamp()}

	err := s.update(ctx, "append chat message", func(ctx context.Context, st kv.Store) error {
		var history []models.ChatMessage
		if err := loadBlob(ctx, st, kv.NamespaceChatHistory, userID, &history); err != nil {
			return err
		}
		history = append(history, msg)
		if n := len(history) - s.chatLimit; n > 0 {
			history = history[n:]
		}
		return saveBlob(ctx, st, kv.NamespaceChatHistory, userID, history)
	})
	if err != nil {
		return models.ChatMessage{}, err
	}
	return msg, nil
}

func (s *Store) ClearChatHistory(ctx context.Context, userID string) error {
	return s.update(ctx, "clear chat history", func(ctx context.Context, st kv.Store) error {
		return clearBlob(ctx, st, kv.NamespaceChatHistory, userID)
	})
}
