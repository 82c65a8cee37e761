package out

import (
	"context"

	"github.com/suchimauz/healthchat-backend/internal/core/domain"
)

// CachePort — кэш данных шлюза: окна приема по врачу и список врачей.
// Инвалидация приходит из RabbitMQ при изменении ресурсов на стороне хранилища
type CachePort interface {
	// Кэширование окон приема врача
	GetAvailability(ctx context.Context, doctorID string) ([]domain.AvailabilityWindow, bool)
	StoreAvailability(ctx context.Context, doctorID string, windows []domain.AvailabilityWindow)
	InvalidateAvailabilityCache(ctx context.Context, doctorID string)

	// Кэширование списка врачей
	GetDoctors(ctx context.Context) ([]domain.Doctor, bool)
	StoreDoctors(ctx context.Context, doctors []domain.Doctor)
	InvalidateDoctorsCache(ctx context.Context)
}
