package models

import (
	"fmt"
)

// Статусы дневных записей
const (
	StatusRegular   = "REGULAR"   // есть пара приход/уход
	StatusIrregular = "IRREGULAR" // одна отметка за смену
	StatusAbsent    = "ABSENT"    // запланированный день без отметок
)

// NoTime - заполнитель для отсутствующего фактического времени
const NoTime = "—"

// DailyRecord - итог одного сотрудника за одну смену
// (порядок полей = порядок колонок)
type DailyRecord struct {
	EmployeeID  int    `json:"employee_id"`
	Name        string `json:"name"`
	ShiftDate   string `json:"shift_date"`
	DayName     string `json:"day_name"`
	Status      string `json:"status"`
	SchedStart  string `json:"sched_start"`
	SchedEnd    string `json:"sched_end"`
	ActualIn    string `json:"actual_in"`
	ActualOut   string `json:"actual_out"`
	WorkMinutes int    `json:"work_minutes"`
	LateMinutes int    `json:"late_minutes"`
	OTMinutes   int    `json:"ot_minutes"`
	Present     string `json:"present"`
	Absent      string `json:"absent"`
}

// IsPresent проверяет, отмечен ли день как присутствие
func (r *DailyRecord) IsPresent() bool {
	return r.Present == "YES"
}

// IsAbsent проверяет, отмечен ли день как отсутствие
func (r *DailyRecord) IsAbsent() bool {
	return r.Absent == "YES"
}

// DailyTotals - итоговая строка дневного отчёта; поля, не имеющие смысла
// в сумме, остаются пустыми при выводе
type DailyTotals struct {
	WorkMinutes   int `json:"work_minutes"`
	LateMinutes   int `json:"late_minutes"`
	OTMinutes     int `json:"ot_minutes"`
	PresentDays   int `json:"present_days"`
	AbsentDays    int `json:"absent_days"`
	IrregularDays int `json:"irregular_days"`
}

// StatusText возвращает сводку счётчиков для колонки Status
func (t *DailyTotals) StatusText() string {
	return fmt.Sprintf("Present=%d, Absent=%d, Irregular=%d",
		t.PresentDays, t.AbsentDays, t.IrregularDays)
}
