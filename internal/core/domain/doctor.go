package domain

type Doctor struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	Specialization string `json:"specialization"`
}

// DoctorSummary — краткая информация о враче,
// вкладывается в записи на прием при выборке списка
type DoctorSummary struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	Specialization string `json:"specialization"`
}
