package in

import (
	"context"

	"github.com/suchimauz/healthchat-backend/internal/core/domain"
)

type ChatUseCase interface {
	// Обработка реплики пользователя: определение языка, запрос к модели,
	// дозапись обеих реплик в переписку. Ошибки модели наружу не выходят —
	// вместо них возвращается заготовленный ответ
	SendMessage(ctx context.Context, userID, displayName, text string) (domain.ChatMessage, error)

	// История переписки. Для пустой истории синтезируется приветствие
	History(ctx context.Context, userID, displayName string) ([]domain.ChatMessage, error)

	// Сброс истории до одного приветственного сообщения
	ClearHistory(ctx context.Context, userID, displayName string) (domain.ChatMessage, error)
}
