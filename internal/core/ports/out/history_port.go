package out

import (
	"context"

	"github.com/suchimauz/healthchat-backend/internal/core/domain"
)

// HistoryPort — хранилище переписки, ключ — идентификатор пользователя
type HistoryPort interface {
	GetMessages(ctx context.Context, userID string) ([]domain.ChatMessage, error)
	SaveMessages(ctx context.Context, userID string, messages []domain.ChatMessage) error
}
