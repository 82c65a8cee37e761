package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/suchimauz/healthchat-backend/internal/core/domain"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/in"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/out"
)

// AuthService проксирует аутентификацию в шлюз и ведет реестр подписок
// на смену состояния: подписчики получают пользователя при входе и nil
// при выходе
type AuthService struct {
	gatewayPort out.GatewayPort
	logger      out.LoggerPort

	mu          sync.RWMutex
	subscribers map[uuid.UUID]func(user *domain.User)
}

func NewAuthService(gatewayPort out.GatewayPort, logger out.LoggerPort) *AuthService {
	return &AuthService{
		gatewayPort: gatewayPort,
		logger:      logger.WithModule("AuthService"),
		subscribers: make(map[uuid.UUID]func(user *domain.User)),
	}
}

type authSubscription struct {
	id      uuid.UUID
	service *AuthService
	once    sync.Once
}

func (s *authSubscription) Cancel() {
	s.once.Do(func() {
		s.service.unsubscribe(s.id)
	})
}

// Subscribe регистрирует подписку; хэндл нужно освободить через Cancel
func (s *AuthService) Subscribe(callback func(user *domain.User)) in.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.subscribers[id] = callback

	return &authSubscription{id: id, service: s}
}

func (s *AuthService) unsubscribe(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.subscribers, id)
}

func (s *AuthService) notify(user *domain.User) {
	s.mu.RLock()
	callbacks := make([]func(user *domain.User), 0, len(s.subscribers))
	for _, callback := range s.subscribers {
		callbacks = append(callbacks, callback)
	}
	s.mu.RUnlock()

	for _, callback := range callbacks {
		callback(user)
	}
}

// Close освобождает все подписки при остановке приложения
func (s *AuthService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers = make(map[uuid.UUID]func(user *domain.User))
}

func (s *AuthService) Register(ctx context.Context, email, password, displayName string) (*domain.User, error) {
	user, err := s.gatewayPort.RegisterUser(ctx, email, password, displayName)
	if err != nil {
		s.logger.Warn("auth.register.failed", out.LogFields{
			"email": email,
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("auth.register.success", out.LogFields{
		"uid": user.UID,
	})
	s.notify(user)

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	session, err := s.gatewayPort.LoginUser(ctx, email, password)
	if err != nil {
		s.logger.Warn("auth.login.failed", out.LogFields{
			"email": email,
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("auth.login.success", out.LogFields{
		"uid": session.User.UID,
	})
	s.notify(&session.User)

	return session, nil
}

func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	if err := s.gatewayPort.LogoutUser(ctx, accessToken); err != nil {
		s.logger.Warn("auth.logout.failed", out.LogFields{
			"error": err.Error(),
		})
		return err
	}

	s.logger.Info("auth.logout.success", out.LogFields{})
	s.notify(nil)

	return nil
}

func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	return s.gatewayPort.CurrentUser(ctx, accessToken)
}
