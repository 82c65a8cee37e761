package out

import (
	"context"

	"github.com/suchimauz/healthchat-backend/internal/core/domain"
)

// GatewayPort — хостинговый провайдер аутентификации и данных.
// Две реализации: Supabase (GoTrue + PostgREST) и Firebase (Auth + Firestore),
// конкретная выбирается при старте через конфигурацию
type GatewayPort interface {
	// Методы аутентификации
	RegisterUser(ctx context.Context, email, password, displayName string) (*domain.User, error)
	LoginUser(ctx context.Context, email, password string) (*domain.AuthSession, error)
	LogoutUser(ctx context.Context, accessToken string) error
	CurrentUser(ctx context.Context, accessToken string) (*domain.User, error)

	// Методы для работы с врачами и их доступностью
	GetDoctors(ctx context.Context) ([]domain.Doctor, error)
	GetDoctorAvailability(ctx context.Context, doctorID string) ([]domain.AvailabilityWindow, error)

	// Методы для работы с записями на прием
	CreateAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error)
	GetUserAppointments(ctx context.Context, patientID string) ([]domain.AppointmentWithDoctor, error)
}
