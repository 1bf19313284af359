package models

// SummaryRecord - итоги одного сотрудника за выбранный период
// (порядок полей = порядок колонок)
type SummaryRecord struct {
	EmployeeID     int     `json:"employee_id"`
	Name           string  `json:"name"`
	DaysPresent    int     `json:"days_present"`
	DaysAbsent     int     `json:"days_absent"`
	IrregularDays  int     `json:"irregular_days"`
	TotalLateMin   int     `json:"total_late_min"`
	TotalOTMin     int     `json:"total_ot_min"`
	TotalWorkHours float64 `json:"total_work_hours"`
}

// SummaryTotals - итоговая строка месячной сводки: осмысленны только общие
// часы работы и общие минуты переработки, остальные колонки пустые
type SummaryTotals struct {
	TotalWorkHours float64 `json:"total_work_hours"`
	TotalOTMin     int     `json:"total_ot_min"`
}

// MonthOption - один месяц, встречающийся в данных (ключ yyyy-mm, метка mm/yyyy)
type MonthOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// EmployeeReport - отчёт по одному сотруднику за выбранный период
type EmployeeReport struct {
	EmployeeID  int     `json:"employee_id"`
	Name        string  `json:"name"`
	DaysPresent int     `json:"days_present"`
	DaysAbsent  int     `json:"days_absent"`
	LateMinutes int     `json:"late_minutes"`
	OTMinutes   int     `json:"ot_minutes"`
	WorkHours   float64 `json:"work_hours"`
	FirstPunch  string  `json:"first_punch"`
	LastPunch   string  `json:"last_punch"`

	Daily   []DailyRecord `json:"daily"`
	Punches []PunchRow    `json:"punches"`
}
