package services

import (
	"context"
	"errors"

	"github.com/suchimauz/healthchat-backend/internal/core/domain"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/out"
)

type nopLogger struct{}

func (l *nopLogger) Debug(event string, fields out.LogFields) {}
func (l *nopLogger) Info(event string, fields out.LogFields) {}
func (l *nopLogger) Warn(event string, fields out.LogFields) {}
func (l *nopLogger) Error(event string, fields out.LogFields) {}
func (l *nopLogger) WithFields(fields out.LogFields) out.LoggerPort { return l }
func (l *nopLogger) WithModule(module string) out.LoggerPort { return l }

// stubCompletion отдает фиксированный ответ или ошибку
type stubCompletion struct {
	reply string
	err   error
}

func (s *stubCompletion) Complete(ctx context.Context, request out.CompletionRequest) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

// memoryHistory хранит переписки в памяти
type memoryHistory struct {
	store map[string][]domain.ChatMessage
}

func newMemoryHistory() *memoryHistory {
	return &memoryHistory{store: make(map[string][]domain.ChatMessage)}
}

func (h *memoryHistory) GetMessages(ctx context.Context, userID string) ([]domain.ChatMessage, error) {
	return h.store[userID], nil
}

func (h *memoryHistory) SaveMessages(ctx context.Context, userID string, messages []domain.ChatMessage) error {
	h.store[userID] = messages
	return nil
}

// stubGateway — управляемая реализация шлюза для тестов сервисов
type stubGateway struct {
	doctors      []domain.Doctor
	windows      []domain.AvailabilityWindow
	appointments []domain.AppointmentWithDoctor

	availabilityCalls int
	doctorsCalls      int
	created           []domain.Appointment

	err error
}

var errStubGateway = errors.New("gateway unavailable")

func (g *stubGateway) RegisterUser(ctx context.Context, email, password, displayName string) (*domain.User, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &domain.User{UID: "uid-1", Email: email, DisplayName: displayName}, nil
}

func (g *stubGateway) LoginUser(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &domain.AuthSession{
		User:        domain.User{UID: "uid-1", Email: email},
		AccessToken: "token-1",
	}, nil
}

func (g *stubGateway) LogoutUser(ctx context.Context, accessToken string) error {
	return g.err
}

func (g *stubGateway) CurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &domain.User{UID: "uid-1"}, nil
}

func (g *stubGateway) GetDoctors(ctx context.Context) ([]domain.Doctor, error) {
	g.doctorsCalls++
	if g.err != nil {
		return nil, g.err
	}
	return g.doctors, nil
}

func (g *stubGateway) GetDoctorAvailability(ctx context.Context, doctorID string) ([]domain.AvailabilityWindow, error) {
	g.availabilityCalls++
	if g.err != nil {
		return nil, g.err
	}
	return g.windows, nil
}

func (g *stubGateway) CreateAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.created = append(g.created, appointment)
	return &appointment, nil
}

func (g *stubGateway) GetUserAppointments(ctx context.Context, patientID string) ([]domain.AppointmentWithDoctor, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.appointments, nil
}
