package utils

import "time"

// StartCurrentDay возвращает дату с временем 00:00, таймзона остается прежней.
func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartNextDay возвращает новую дату, где день увеличен на 1, время установлено на 00:00, а таймзона остается прежней.
func StartNextDay(t time.Time) time.Time {
	// Увеличиваем день на 1
	newDate := t.AddDate(0, 0, 1)
	// Устанавливаем время на 00:00
	return StartCurrentDay(newDate)
}
