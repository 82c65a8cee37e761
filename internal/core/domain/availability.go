package domain

import (
	"time"

	"github.com/suchimauz/healthchat-backend/internal/core/json_types"
)

// AvailabilityWindow — еженедельное окно приема врача.
// DayOfWeek: 0 = воскресенье, как в Supabase-схеме
type AvailabilityWindow struct {
	DoctorID  string               `json:"doctor_id"`
	DayOfWeek time.Weekday         `json:"day_of_week"`
	StartTime json_types.TimeOfDay `json:"start_time"`
	EndTime   json_types.TimeOfDay `json:"end_time"`
}

// DateCandidate — дата, на которую можно записаться.
// Действительна только в пределах 14 дней от момента генерации
type DateCandidate struct {
	Date      json_types.Date `json:"date"`
	DayOfWeek time.Weekday    `json:"dayOfWeek"`
}

// TimeSlot — 30-минутный слот внутри окна приема
type TimeSlot struct {
	StartTime json_types.TimeOfDay `json:"startTime"`
	EndTime   json_types.TimeOfDay `json:"endTime"`
	Label     string               `json:"label"`
}
