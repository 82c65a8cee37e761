package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/healthchat-backend/internal/core/domain"
	"github.com/suchimauz/healthchat-backend/internal/core/json_types"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/in"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/out"
	"github.com/suchimauz/healthchat-backend/internal/utils"
)

const (
	// Горизонт записи: 14 дней начиная с завтрашнего
	candidateDateDays = 14
	// Длительность слота фиксированная
	slotDuration = 30 * time.Minute
)

type BookingService struct {
	gatewayPort out.GatewayPort
	cachePort   out.CachePort
	logger      out.LoggerPort
	location    *time.Location
}

func NewBookingService(
	gatewayPort out.GatewayPort,
	cachePort out.CachePort,
	logger out.LoggerPort,
	location *time.Location,
) *BookingService {
	if location == nil {
		location = time.UTC
	}

	return &BookingService{
		gatewayPort: gatewayPort,
		cachePort:   cachePort,
		logger:      logger.WithModule("BookingService"),
		location:    location,
	}
}

// GenerateCandidateDates перебирает 14 дат начиная с referenceDate + 1 день
// и оставляет те, чей день недели встречается хотя бы в одном окне приема.
// Чистая функция от входов, результат не кэшируется
func GenerateCandidateDates(windows []domain.AvailabilityWindow, referenceDate time.Time) []domain.DateCandidate {
	candidates := make([]domain.DateCandidate, 0)

	day := utils.StartNextDay(referenceDate)
	for i := 0; i < candidateDateDays; i++ {
		weekday := day.Weekday()
		if weekdayHasWindow(windows, weekday) {
			candidates = append(candidates, domain.DateCandidate{
				Date:      json_types.NewDate(day),
				DayOfWeek: weekday,
			})
		}
		day = day.AddDate(0, 0, 1)
	}

	return candidates
}

// GenerateTimeSlots режет окна приема выбранной даты на 30-минутные слоты.
// Окна обрабатываются независимо; неполный хвост короче 30 минут не выдается
func GenerateTimeSlots(windows []domain.AvailabilityWindow, date json_types.Date) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)
	weekday := date.Weekday()

	for _, window := range windows {
		if window.DayOfWeek != weekday {
			continue
		}

		cursor := window.StartTime
		for {
			next := cursor.Add(slotDuration)
			// Слот выдается, только если сдвинутый курсор не выходит за конец окна
			if next.After(window.EndTime) {
				break
			}

			slots = append(slots, domain.TimeSlot{
				StartTime: cursor,
				EndTime:   next,
				Label:     cursor.Short() + " - " + next.Short(),
			})
			cursor = next
		}
	}

	return slots
}

func weekdayHasWindow(windows []domain.AvailabilityWindow, weekday time.Weekday) bool {
	for _, window := range windows {
		if window.DayOfWeek == weekday {
			return true
		}
	}
	return false
}

// Doctors возвращает список врачей, по возможности из кэша
func (s *BookingService) Doctors(ctx context.Context) ([]domain.Doctor, error) {
	if s.cachePort != nil {
		if doctors, exists := s.cachePort.GetDoctors(ctx); exists {
			s.logger.Debug("booking.doctors.cache.hit", out.LogFields{
				"count": len(doctors),
			})
			return doctors, nil
		}
	}

	doctors, err := s.gatewayPort.GetDoctors(ctx)
	if err != nil {
		s.logger.Error("booking.doctors.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("booking.doctors.fetch_failed: %w", err)
	}

	if s.cachePort != nil {
		s.cachePort.StoreDoctors(ctx, doctors)
	}

	return doctors, nil
}

func (s *BookingService) doctorAvailability(ctx context.Context, doctorID string) ([]domain.AvailabilityWindow, error) {
	if s.cachePort != nil {
		if windows, exists := s.cachePort.GetAvailability(ctx, doctorID); exists {
			s.logger.Debug("booking.availability.cache.hit", out.LogFields{
				"doctorId": doctorID,
				"count":    len(windows),
			})
			return windows, nil
		}
	}

	windows, err := s.gatewayPort.GetDoctorAvailability(ctx, doctorID)
	if err != nil {
		s.logger.Error("booking.availability.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("booking.availability.fetch_failed: %w", err)
	}

	if s.cachePort != nil {
		s.cachePort.StoreAvailability(ctx, doctorID, windows)
	}

	return windows, nil
}

// CandidateDates возвращает даты, на которые можно записаться к врачу
func (s *BookingService) CandidateDates(ctx context.Context, doctorID string, referenceDate time.Time) ([]domain.DateCandidate, []domain.DebugInfo, error) {
	debugInfo := make([]domain.DebugInfo, 0)

	if referenceDate.IsZero() {
		referenceDate = time.Now().In(s.location)
	}

	fetchDebug := domain.DebugInfo{Event: "booking.dates.availability.fetch"}
	fetchDebug.Start()
	windows, err := s.doctorAvailability(ctx, doctorID)
	if err != nil {
		return nil, nil, err
	}
	fetchDebug.Elapse()
	debugInfo = append(debugInfo, fetchDebug)

	generateDebug := domain.DebugInfo{Event: "booking.dates.generate"}
	generateDebug.Start()
	candidates := GenerateCandidateDates(windows, referenceDate)
	generateDebug.Elapse()
	debugInfo = append(debugInfo, generateDebug)

	s.logger.Debug("booking.dates.generated", out.LogFields{
		"doctorId": doctorID,
		"count":    len(candidates),
	})

	return candidates, debugInfo, nil
}

// TimeSlots возвращает слоты врача на выбранную дату
func (s *BookingService) TimeSlots(ctx context.Context, doctorID string, date json_types.Date) ([]domain.TimeSlot, error) {
	windows, err := s.doctorAvailability(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	slots := GenerateTimeSlots(windows, date)

	s.logger.Debug("booking.slots.generated", out.LogFields{
		"doctorId": doctorID,
		"date":     date.String(),
		"count":    len(slots),
	})

	return slots, nil
}

// BookAppointment создает запись на прием в статусе scheduled.
// Запрошенный слот сверяется со сгенерированными для этой даты
func (s *BookingService) BookAppointment(ctx context.Context, request in.BookAppointmentRequest) (*domain.Appointment, error) {
	windows, err := s.doctorAvailability(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}

	if !slotMatches(GenerateTimeSlots(windows, request.Date), request.StartTime, request.EndTime) {
		s.logger.Warn("booking.appointment.slot_mismatch", out.LogFields{
			"doctorId":  request.DoctorID,
			"date":      request.Date.String(),
			"startTime": request.StartTime.Short(),
		})
		return nil, fmt.Errorf("booking.appointment.slot_mismatch: %s on %s: %w", request.StartTime.Short(), request.Date.String(), domain.ErrSlotUnavailable)
	}

	appointment := domain.Appointment{
		ID:        uuid.NewString(),
		PatientID: request.PatientID,
		DoctorID:  request.DoctorID,
		Date:      request.Date,
		StartTime: request.StartTime,
		EndTime:   request.EndTime,
		Notes:     request.Notes,
		Status:    domain.AppointmentStatusScheduled,
	}

	created, err := s.gatewayPort.CreateAppointment(ctx, appointment)
	if err != nil {
		s.logger.Error("booking.appointment.create_failed", out.LogFields{
			"doctorId": request.DoctorID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("booking.appointment.create_failed: %w", err)
	}

	s.logger.Info("booking.appointment.created", out.LogFields{
		"appointmentId": created.ID,
		"doctorId":      created.DoctorID,
		"date":          created.Date.String(),
	})

	return created, nil
}

func slotMatches(slots []domain.TimeSlot, startTime, endTime json_types.TimeOfDay) bool {
	for _, slot := range slots {
		if slot.StartTime.Equal(startTime) && slot.EndTime.Equal(endTime) {
			return true
		}
	}
	return false
}

// UserAppointments возвращает записи пользователя, отсортированные
// по дате, затем по времени начала
func (s *BookingService) UserAppointments(ctx context.Context, patientID string) ([]domain.AppointmentWithDoctor, error) {
	appointments, err := s.gatewayPort.GetUserAppointments(ctx, patientID)
	if err != nil {
		s.logger.Error("booking.appointments.fetch_failed", out.LogFields{
			"patientId": patientID,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("booking.appointments.fetch_failed: %w", err)
	}

	return AppointmentSlice(appointments).quickSort(), nil
}

// InvalidateAvailabilityCache сбрасывает кэш окон приема врача
func (s *BookingService) InvalidateAvailabilityCache(ctx context.Context, doctorID string) {
	if s.cachePort == nil {
		return
	}

	s.cachePort.InvalidateAvailabilityCache(ctx, doctorID)
	s.logger.Info("booking.availability.cache.invalidated", out.LogFields{
		"doctorId": doctorID,
	})
}

// InvalidateDoctorsCache сбрасывает кэш списка врачей
func (s *BookingService) InvalidateDoctorsCache(ctx context.Context) {
	if s.cachePort == nil {
		return
	}

	s.cachePort.InvalidateDoctorsCache(ctx)
	s.logger.Info("booking.doctors.cache.invalidated", out.LogFields{})
}
