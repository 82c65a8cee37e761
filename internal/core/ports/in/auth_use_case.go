package in

import (
	"context"

	"github.com/suchimauz/healthchat-backend/internal/core/domain"
)

// Subscription — подписка на смену состояния аутентификации.
// Cancel освобождает подписку, вызов идемпотентен
type Subscription interface {
	Cancel()
}

type AuthUseCase interface {
	Register(ctx context.Context, email, password, displayName string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.AuthSession, error)
	Logout(ctx context.Context, accessToken string) error
	CurrentUser(ctx context.Context, accessToken string) (*domain.User, error)

	// Подписка на смену состояния аутентификации: callback получает
	// пользователя при входе и nil при выходе
	Subscribe(callback func(user *domain.User)) Subscription
}
