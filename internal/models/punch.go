package models

import (
	"time"
)

// PunchEvent - одно событие прихода/ухода, считанное с устройства
type PunchEvent struct {
	EmployeeID int       `json:"employee_id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	DeviceID   string    `json:"device_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// IsValid проверяет валидность данных
func (p *PunchEvent) IsValid() bool {
	if p.EmployeeID <= 0 {
		return false
	}
	if p.Timestamp.IsZero() {
		return false
	}
	return true
}

// PunchRow - строка отчёта по отметкам (порядок полей = порядок колонок)
type PunchRow struct {
	EmployeeID int    `json:"employee_id"`
	Name       string `json:"name"`
	Dept       string `json:"dept"`
	DeviceID   string `json:"device_id"`
	DateTime   string `json:"date_time"`
	ShiftDate  string `json:"shift_date"`
	DayName    string `json:"day_name"`
	Time12h    string `json:"time_12h"`
}
