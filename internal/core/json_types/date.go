package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date — календарная дата без времени, сериализуется как "2006-01-02"
type Date struct {
	Date time.Time
}

func NewDate(t time.Time) Date {
	return Date{Date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func ParseDate(str string) (Date, error) {
	parsedDate, err := time.Parse("2006-01-02", str)
	// Если не удалось, пробуем дату со временем в формате RFC3339
	if err != nil {
		parsedDate, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return Date{}, fmt.Errorf("failed to parse date: %v", err)
		}
	}

	return NewDate(parsedDate), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	// Убираем кавычки вокруг строки
	str := string(data[1 : len(data)-1])

	parsed, err := ParseDate(str)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Date.Format("2006-01-02"))
}

func (d Date) String() string {
	return d.Date.Format("2006-01-02")
}

// Weekday — день недели даты, 0 = воскресенье
func (d Date) Weekday() time.Weekday {
	return d.Date.Weekday()
}

func (d Date) Before(other Date) bool {
	return d.Date.Before(other.Date)
}
