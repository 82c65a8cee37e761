package json_types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDayFormats(t *testing.T) {
	// Supabase отдает время с секундами, клиент присылает без
	withSeconds, err := ParseTimeOfDay("09:30:00")
	require.NoError(t, err)

	withoutSeconds, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)

	assert.True(t, withSeconds.Equal(withoutSeconds))
	assert.Equal(t, "09:30", withSeconds.Short())

	_, err = ParseTimeOfDay("half past nine")
	assert.Error(t, err)
}

func TestTimeOfDayAdd(t *testing.T) {
	start := NewTimeOfDay(9, 45)
	end := start.Add(30 * time.Minute)

	assert.Equal(t, "10:15", end.Short())
	assert.True(t, start.Before(end))
	assert.True(t, end.After(start))
}

func TestParseDateFormats(t *testing.T) {
	plain, err := ParseDate("2026-03-04")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-04", plain.String())
	assert.Equal(t, time.Wednesday, plain.Weekday())

	// Дата со временем усекается до полуночи
	withTime, err := ParseDate("2026-03-04T15:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, plain.String(), withTime.String())

	_, err = ParseDate("next wednesday")
	assert.Error(t, err)
}

func TestDateJSONRoundTrip(t *testing.T) {
	var payload struct {
		Date      Date      `json:"appointment_date"`
		StartTime TimeOfDay `json:"start_time"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"appointment_date":"2026-03-04","start_time":"09:00:00"}`), &payload))
	assert.Equal(t, "2026-03-04", payload.Date.String())
	assert.Equal(t, "09:00", payload.StartTime.Short())

	encoded, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"appointment_date":"2026-03-04","start_time":"09:00:00"}`, string(encoded))
}
