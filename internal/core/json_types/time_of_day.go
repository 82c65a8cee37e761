package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDay — время дня без даты и таймзоны
// Supabase отдает колонки типа time в формате "09:00:00",
// клиент присылает слоты в формате "09:00"
type TimeOfDay struct {
	Time time.Time
}

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay{Time: time.Date(0, time.January, 1, hour, minute, 0, 0, time.UTC)}
}

func ParseTimeOfDay(str string) (TimeOfDay, error) {
	parsedTime, err := time.Parse("15:04:05", str)
	// Если не удалось, пробуем формат без секунд
	if err != nil {
		parsedTime, err = time.Parse("15:04", str)
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("failed to parse time of day: %v", err)
		}
	}

	return TimeOfDay{Time: parsedTime}, nil
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	// Убираем кавычки вокруг строки
	str := string(data[1 : len(data)-1])
	parsed, err := ParseTimeOfDay(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format("15:04:05"))
}

// Short возвращает время в формате "HH:MM" для подписей слотов
func (t TimeOfDay) Short() string {
	return t.Time.Format("15:04")
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Time.Before(other.Time)
}

func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.Time.After(other.Time)
}

func (t TimeOfDay) Equal(other TimeOfDay) bool {
	return t.Time.Equal(other.Time)
}

// Add возвращает время дня, сдвинутое на d вперед
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return TimeOfDay{Time: t.Time.Add(d)}
}
