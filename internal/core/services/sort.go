package services

import "github.com/suchimauz/healthchat-backend/internal/core/domain"

type AppointmentSlice []domain.AppointmentWithDoctor

// quickSort — сортировка записей на прием по дате, затем по времени начала
func (s AppointmentSlice) quickSort() AppointmentSlice {
	if len(s) < 2 {
		return s
	}

	// Выбираем опорный элемент
	pivot := s[len(s)/2]

	// Разделяем слайс на три части
	less := AppointmentSlice{}
	equal := AppointmentSlice{}
	greater := AppointmentSlice{}

	for _, appointment := range s {
		switch compareAppointments(appointment, pivot) {
		case -1:
			less = append(less, appointment)
		case 0:
			equal = append(equal, appointment)
		case 1:
			greater = append(greater, appointment)
		}
	}

	// Рекурсивно сортируем подмассивы и объединяем их
	return append(append(less.quickSort(), equal...), greater.quickSort()...)
}

func compareAppointments(a, b domain.AppointmentWithDoctor) int {
	if a.Date.Before(b.Date) {
		return -1
	}
	if b.Date.Before(a.Date) {
		return 1
	}
	if a.StartTime.Before(b.StartTime) {
		return -1
	}
	if b.StartTime.Before(a.StartTime) {
		return 1
	}
	return 0
}
