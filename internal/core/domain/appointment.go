package domain

import (
	"github.com/suchimauz/healthchat-backend/internal/core/json_types"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment — запись на прием. Статус меняется только на стороне
// хранилища, сервис создает записи исключительно в статусе scheduled
type Appointment struct {
	ID        string               `json:"id"`
	PatientID string               `json:"patient_id"`
	DoctorID  string               `json:"doctor_id"`
	Date      json_types.Date      `json:"appointment_date"`
	StartTime json_types.TimeOfDay `json:"start_time"`
	EndTime   json_types.TimeOfDay `json:"end_time"`
	Notes     string               `json:"notes"`
	Status    AppointmentStatus    `json:"status"`
}

// AppointmentWithDoctor — запись на прием вместе с краткой информацией
// о враче, как отдает Supabase при select с вложенной таблицей
type AppointmentWithDoctor struct {
	Appointment
	Doctor DoctorSummary `json:"doctors"`
}
