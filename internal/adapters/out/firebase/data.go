package firebase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/suchimauz/healthchat-backend/internal/core/domain"
	"github.com/suchimauz/healthchat-backend/internal/core/json_types"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/out"
)

// Документы Firestore хранят время и даты строками,
// поэтому в адаптере свои структуры с конвертацией в доменные типы

type doctorDoc struct {
	FullName       string `firestore:"full_name"`
	Specialization string `firestore:"specialization"`
}

type availabilityDoc struct {
	DoctorID  string `firestore:"doctor_id"`
	DayOfWeek int    `firestore:"day_of_week"`
	StartTime string `firestore:"start_time"`
	EndTime   string `firestore:"end_time"`
}

type appointmentDoc struct {
	PatientID string `firestore:"patient_id"`
	DoctorID  string `firestore:"doctor_id"`
	Date      string `firestore:"appointment_date"`
	StartTime string `firestore:"start_time"`
	EndTime   string `firestore:"end_time"`
	Notes     string `firestore:"notes"`
	Status    string `firestore:"status"`
}

func (a *FirebaseAdapter) GetDoctors(ctx context.Context) ([]domain.Doctor, error) {
	a.logger.Info("firebase.doctors.fetch", out.LogFields{})

	iter := a.firestoreClient.Collection(doctorsCollection).
		OrderBy("full_name", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var doctors []domain.Doctor
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			a.logger.Error("firebase.doctors.fetch_failed", out.LogFields{
				"error": err.Error(),
			})
			return nil, err
		}

		var data doctorDoc
		if err := doc.DataTo(&data); err != nil {
			return nil, err
		}

		doctors = append(doctors, domain.Doctor{
			ID:             doc.Ref.ID,
			FullName:       data.FullName,
			Specialization: data.Specialization,
		})
	}

	a.logger.Debug("firebase.doctors.fetch_success", out.LogFields{
		"count": len(doctors),
	})

	return doctors, nil
}

func (a *FirebaseAdapter) GetDoctorAvailability(ctx context.Context, doctorID string) ([]domain.AvailabilityWindow, error) {
	a.logger.Info("firebase.availability.fetch", out.LogFields{
		"doctorId": doctorID,
	})

	iter := a.firestoreClient.Collection(availabilityCollection).
		Where("doctor_id", "==", doctorID).
		Documents(ctx)
	defer iter.Stop()

	var windows []domain.AvailabilityWindow
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			a.logger.Error("firebase.availability.fetch_failed", out.LogFields{
				"doctorId": doctorID,
				"error":    err.Error(),
			})
			return nil, err
		}

		var data availabilityDoc
		if err := doc.DataTo(&data); err != nil {
			return nil, err
		}

		window, err := data.toDomain()
		if err != nil {
			a.logger.Warn("firebase.availability.invalid_document", out.LogFields{
				"doctorId":   doctorID,
				"documentId": doc.Ref.ID,
				"error":      err.Error(),
			})
			continue
		}

		windows = append(windows, *window)
	}

	a.logger.Debug("firebase.availability.fetch_success", out.LogFields{
		"doctorId":     doctorID,
		"windowsCount": len(windows),
	})

	return windows, nil
}

func (d *availabilityDoc) toDomain() (*domain.AvailabilityWindow, error) {
	startTime, err := json_types.ParseTimeOfDay(d.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parse start_time: %w", err)
	}

	endTime, err := json_types.ParseTimeOfDay(d.EndTime)
	if err != nil {
		return nil, fmt.Errorf("parse end_time: %w", err)
	}

	return &domain.AvailabilityWindow{
		DoctorID:  d.DoctorID,
		DayOfWeek: time.Weekday(d.DayOfWeek),
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

func (a *FirebaseAdapter) CreateAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error) {
	a.logger.Info("firebase.appointment.create", out.LogFields{
		"doctorId":  appointment.DoctorID,
		"patientId": appointment.PatientID,
		"date":      appointment.Date.String(),
	})

	doc := appointmentDoc{
		PatientID: appointment.PatientID,
		DoctorID:  appointment.DoctorID,
		Date:      appointment.Date.String(),
		StartTime: appointment.StartTime.Short(),
		EndTime:   appointment.EndTime.Short(),
		Notes:     appointment.Notes,
		Status:    string(appointment.Status),
	}

	_, err := a.firestoreClient.Collection(appointmentsCollection).
		Doc(appointment.ID).
		Set(ctx, doc)
	if err != nil {
		a.logger.Error("firebase.appointment.create_failed", out.LogFields{
			"doctorId": appointment.DoctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	a.logger.Info("firebase.appointment.create_success", out.LogFields{
		"appointmentId": appointment.ID,
	})

	return &appointment, nil
}

func (a *FirebaseAdapter) GetUserAppointments(ctx context.Context, patientID string) ([]domain.AppointmentWithDoctor, error) {
	a.logger.Info("firebase.appointments.fetch", out.LogFields{
		"patientId": patientID,
	})

	iter := a.firestoreClient.Collection(appointmentsCollection).
		Where("patient_id", "==", patientID).
		Documents(ctx)
	defer iter.Stop()

	var appointments []domain.AppointmentWithDoctor
	doctorCache := make(map[string]domain.DoctorSummary)

	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			a.logger.Error("firebase.appointments.fetch_failed", out.LogFields{
				"patientId": patientID,
				"error":     err.Error(),
			})
			return nil, err
		}

		var data appointmentDoc
		if err := doc.DataTo(&data); err != nil {
			return nil, err
		}

		appointment, err := data.toDomain(doc.Ref.ID)
		if err != nil {
			a.logger.Warn("firebase.appointments.invalid_document", out.LogFields{
				"documentId": doc.Ref.ID,
				"error":      err.Error(),
			})
			continue
		}

		doctor, err := a.doctorSummary(ctx, data.DoctorID, doctorCache)
		if err != nil {
			return nil, err
		}

		appointments = append(appointments, domain.AppointmentWithDoctor{
			Appointment: *appointment,
			Doctor:      doctor,
		})
	}

	a.logger.Debug("firebase.appointments.fetch_success", out.LogFields{
		"patientId": patientID,
		"count":     len(appointments),
	})

	return appointments, nil
}

func (d *appointmentDoc) toDomain(id string) (*domain.Appointment, error) {
	date, err := json_types.ParseDate(d.Date)
	if err != nil {
		return nil, fmt.Errorf("parse appointment_date: %w", err)
	}

	startTime, err := json_types.ParseTimeOfDay(d.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parse start_time: %w", err)
	}

	endTime, err := json_types.ParseTimeOfDay(d.EndTime)
	if err != nil {
		return nil, fmt.Errorf("parse end_time: %w", err)
	}

	return &domain.Appointment{
		ID:        id,
		PatientID: d.PatientID,
		DoctorID:  d.DoctorID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Notes:     d.Notes,
		Status:    domain.AppointmentStatus(d.Status),
	}, nil
}

// doctorSummary подтягивает врача по ссылке из записи, с кэшем на время выборки
func (a *FirebaseAdapter) doctorSummary(ctx context.Context, doctorID string, cache map[string]domain.DoctorSummary) (domain.DoctorSummary, error) {
	if doctor, ok := cache[doctorID]; ok {
		return doctor, nil
	}

	doc, err := a.firestoreClient.Collection(doctorsCollection).Doc(doctorID).Get(ctx)
	if err != nil {
		return domain.DoctorSummary{}, err
	}

	var data doctorDoc
	if err := doc.DataTo(&data); err != nil {
		return domain.DoctorSummary{}, err
	}

	doctor := domain.DoctorSummary{
		ID:             doc.Ref.ID,
		FullName:       data.FullName,
		Specialization: data.Specialization,
	}
	cache[doctorID] = doctor

	return doctor, nil
}
