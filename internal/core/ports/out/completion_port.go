package out

import "context"

type CompletionRequest struct {
	SystemPrompt string
	UserText     string
}

// CompletionPort — удаленный chat-completions эндпоинт.
// Одна попытка, без ретраев: обработка ошибок лежит на вызывающем сервисе
type CompletionPort interface {
	Complete(ctx context.Context, request CompletionRequest) (string, error)
}
