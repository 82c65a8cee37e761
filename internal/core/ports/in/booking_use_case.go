package in

import (
	"context"
	"time"

	"github.com/suchimauz/healthchat-backend/internal/core/domain"
	"github.com/suchimauz/healthchat-backend/internal/core/json_types"
)

type BookAppointmentRequest struct {
	PatientID string
	DoctorID  string
	Date      json_types.Date
	StartTime json_types.TimeOfDay
	EndTime   json_types.TimeOfDay
	Notes     string
}

type BookingUseCase interface {
	// Список врачей
	Doctors(ctx context.Context) ([]domain.Doctor, error)

	// Даты, на которые можно записаться: 14 дней начиная с завтрашнего,
	// отфильтрованные по дням недели из окон приема врача
	CandidateDates(ctx context.Context, doctorID string, referenceDate time.Time) ([]domain.DateCandidate, []domain.DebugInfo, error)

	// 30-минутные слоты внутри окон приема врача на выбранную дату
	TimeSlots(ctx context.Context, doctorID string, date json_types.Date) ([]domain.TimeSlot, error)

	// Создание записи на прием
	BookAppointment(ctx context.Context, request BookAppointmentRequest) (*domain.Appointment, error)

	// Записи пользователя вместе с краткой информацией о врачах
	UserAppointments(ctx context.Context, patientID string) ([]domain.AppointmentWithDoctor, error)

	// Инвалидация кэша при изменении ресурсов на стороне хранилища
	InvalidateAvailabilityCache(ctx context.Context, doctorID string)
	InvalidateDoctorsCache(ctx context.Context)
}
