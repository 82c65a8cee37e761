package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	nurl "net/url"

	"github.com/suchimauz/healthchat-backend/internal/core/domain"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/out"
)

func (a *SupabaseAdapter) GetDoctors(ctx context.Context) ([]domain.Doctor, error) {
	a.logger.Info("supabase.doctors.fetch", out.LogFields{})

	url := fmt.Sprintf("%s/rest/v1/doctors?select=*&order=full_name.asc", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	a.setHeaders(req, "")

	body, err := a.do(req, http.StatusOK)
	if err != nil {
		a.logger.Error("supabase.doctors.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	var doctors []domain.Doctor
	if err := json.Unmarshal(body, &doctors); err != nil {
		a.logger.Error("supabase.doctors.decode_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("supabase.doctors.fetch_success", out.LogFields{
		"count": len(doctors),
	})

	return doctors, nil
}

func (a *SupabaseAdapter) GetDoctorAvailability(ctx context.Context, doctorID string) ([]domain.AvailabilityWindow, error) {
	a.logger.Info("supabase.availability.fetch", out.LogFields{
		"doctorId": doctorID,
	})

	url := fmt.Sprintf("%s/rest/v1/availability?select=*&doctor_id=eq.%s",
		a.baseURL, nurl.QueryEscape(doctorID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	a.setHeaders(req, "")

	body, err := a.do(req, http.StatusOK)
	if err != nil {
		a.logger.Error("supabase.availability.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	var windows []domain.AvailabilityWindow
	if err := json.Unmarshal(body, &windows); err != nil {
		a.logger.Error("supabase.availability.decode_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("supabase.availability.fetch_success", out.LogFields{
		"doctorId":     doctorID,
		"windowsCount": len(windows),
	})

	return windows, nil
}

func (a *SupabaseAdapter) CreateAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error) {
	a.logger.Info("supabase.appointment.create", out.LogFields{
		"doctorId":  appointment.DoctorID,
		"patientId": appointment.PatientID,
		"date":      appointment.Date.String(),
	})

	payload, err := json.Marshal(appointment)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/rest/v1/appointments", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	a.setHeaders(req, "")
	req.Header.Set("Prefer", "return=representation")

	body, err := a.do(req, http.StatusCreated)
	if err != nil {
		a.logger.Error("supabase.appointment.create_failed", out.LogFields{
			"doctorId": appointment.DoctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	// PostgREST с return=representation отдает массив вставленных строк
	var created []domain.Appointment
	if err := json.Unmarshal(body, &created); err != nil {
		a.logger.Error("supabase.appointment.decode_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	if len(created) == 0 {
		return nil, fmt.Errorf("appointment insert returned no rows")
	}

	a.logger.Info("supabase.appointment.create_success", out.LogFields{
		"appointmentId": created[0].ID,
	})

	return &created[0], nil
}

func (a *SupabaseAdapter) GetUserAppointments(ctx context.Context, patientID string) ([]domain.AppointmentWithDoctor, error) {
	a.logger.Info("supabase.appointments.fetch", out.LogFields{
		"patientId": patientID,
	})

	url := fmt.Sprintf("%s/rest/v1/appointments?select=*,doctors(id,full_name,specialization)&patient_id=eq.%s",
		a.baseURL, nurl.QueryEscape(patientID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	a.setHeaders(req, "")

	body, err := a.do(req, http.StatusOK)
	if err != nil {
		a.logger.Error("supabase.appointments.fetch_failed", out.LogFields{
			"patientId": patientID,
			"error":     err.Error(),
		})
		return nil, err
	}

	var appointments []domain.AppointmentWithDoctor
	if err := json.Unmarshal(body, &appointments); err != nil {
		a.logger.Error("supabase.appointments.decode_failed", out.LogFields{
			"patientId": patientID,
			"error":     err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("supabase.appointments.fetch_success", out.LogFields{
		"patientId": patientID,
		"count":     len(appointments),
	})

	return appointments, nil
}
