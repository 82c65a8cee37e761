package http

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/healthchat-backend/internal/core/domain"
	"github.com/suchimauz/healthchat-backend/internal/core/json_types"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/in"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const validToken = "valid-token"

type stubAuthUseCase struct {
	user      *domain.User
	loginErr  error
	logoutErr error
}

func (s *stubAuthUseCase) Register(ctx context.Context, email, password, displayName string) (*domain.User, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &domain.User{UID: "uid-1", Email: email, DisplayName: displayName}, nil
}

func (s *stubAuthUseCase) Login(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &domain.AuthSession{
		User:        domain.User{UID: "uid-1", Email: email},
		AccessToken: validToken,
	}, nil
}

func (s *stubAuthUseCase) Logout(ctx context.Context, accessToken string) error {
	return s.logoutErr
}

func (s *stubAuthUseCase) CurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	if accessToken != validToken || s.user == nil {
		return nil, domain.NewAuthError(domain.AuthErrorInvalidCredential, errors.New("bad token"))
	}
	return s.user, nil
}

func (s *stubAuthUseCase) Subscribe(callback func(user *domain.User)) in.Subscription {
	return nopSubscription{}
}

type nopSubscription struct{}

func (nopSubscription) Cancel() {}

type stubChatUseCase struct {
	err error
}

func (s *stubChatUseCase) SendMessage(ctx context.Context, userID, displayName, text string) (domain.ChatMessage, error) {
	if s.err != nil {
		return domain.ChatMessage{}, s.err
	}
	return domain.ChatMessage{
		Text:      "reply to: " + text,
		Sender:    domain.MessageSenderBot,
		Timestamp: time.Now(),
	}, nil
}

func (s *stubChatUseCase) History(ctx context.Context, userID, displayName string) ([]domain.ChatMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.ChatMessage{
		{Text: "Hello there!", Sender: domain.MessageSenderBot, Timestamp: time.Now()},
	}, nil
}

func (s *stubChatUseCase) ClearHistory(ctx context.Context, userID, displayName string) (domain.ChatMessage, error) {
	if s.err != nil {
		return domain.ChatMessage{}, s.err
	}
	return domain.ChatMessage{Text: "Hello there!", Sender: domain.MessageSenderBot, Timestamp: time.Now()}, nil
}

type stubBookingUseCase struct {
	err error
}

func (s *stubBookingUseCase) Doctors(ctx context.Context) ([]domain.Doctor, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Doctor{{ID: "doc-1", FullName: "Dr. Hassan Ali", Specialization: "Cardiology"}}, nil
}

func (s *stubBookingUseCase) CandidateDates(ctx context.Context, doctorID string, referenceDate time.Time) ([]domain.DateCandidate, []domain.DebugInfo, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	date, _ := json_types.ParseDate("2026-03-04")
	return []domain.DateCandidate{{Date: date, DayOfWeek: time.Wednesday}},
		[]domain.DebugInfo{{Event: "booking.dates.generate"}}, nil
}

func (s *stubBookingUseCase) TimeSlots(ctx context.Context, doctorID string, date json_types.Date) ([]domain.TimeSlot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.TimeSlot{
		{
			StartTime: json_types.NewTimeOfDay(9, 0),
			EndTime:   json_types.NewTimeOfDay(9, 30),
			Label:     "09:00 - 09:30",
		},
	}, nil
}

func (s *stubBookingUseCase) BookAppointment(ctx context.Context, request in.BookAppointmentRequest) (*domain.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Appointment{
		ID:        "appt-1",
		PatientID: request.PatientID,
		DoctorID:  request.DoctorID,
		Date:      request.Date,
		StartTime: request.StartTime,
		EndTime:   request.EndTime,
		Status:    domain.AppointmentStatusScheduled,
	}, nil
}

func (s *stubBookingUseCase) UserAppointments(ctx context.Context, patientID string) ([]domain.AppointmentWithDoctor, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.AppointmentWithDoctor{}, nil
}

func (s *stubBookingUseCase) InvalidateAvailabilityCache(ctx context.Context, doctorID string) {}

func (s *stubBookingUseCase) InvalidateDoctorsCache(ctx context.Context) {}

func newTestRouter(auth *stubAuthUseCase, chat *stubChatUseCase, booking *stubBookingUseCase) *gin.Engine {
	router := gin.New()
	NewAuthController(auth).RegisterRoutes(router)
	NewChatController(chat, auth).RegisterRoutes(router)
	NewBookingController(booking, auth).RegisterRoutes(router)
	return router
}

func performRequest(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}
