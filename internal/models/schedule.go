package models

import (
	"time"

	"attendance-engine/pkg/timeutil"
)

// ScheduleRecord - недельные правила работы одного сотрудника.
// Дни недели хранятся отдельными колонками Sun..Sat (Sunday=0).
type ScheduleRecord struct {
	EmployeeID uint   `gorm:"primarykey" json:"employee_id"`
	Name       string `json:"name"`
	IsManager  bool   `gorm:"not null;default:false" json:"is_manager"`

	WeekdayStart string `gorm:"type:varchar(5);not null" json:"weekday_start"`
	WeekdayEnd   string `gorm:"type:varchar(5);not null" json:"weekday_end"`
	WeekendStart string `gorm:"type:varchar(5);not null" json:"weekend_start"`
	WeekendEnd   string `gorm:"type:varchar(5);not null" json:"weekend_end"`

	Sun bool `gorm:"not null;default:true" json:"sun"`
	Mon bool `gorm:"not null;default:true" json:"mon"`
	Tue bool `gorm:"not null;default:true" json:"tue"`
	Wed bool `gorm:"not null;default:true" json:"wed"`
	Thu bool `gorm:"not null;default:true" json:"thu"`
	Fri bool `gorm:"not null;default:true" json:"fri"`
	Sat bool `gorm:"not null;default:true" json:"sat"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName задает имя таблицы в БД
func (ScheduleRecord) TableName() string {
	return "schedule_records"
}

// WorkDays возвращает рабочие дни как массив Sunday=0..Saturday=6
func (s *ScheduleRecord) WorkDays() [7]bool {
	return [7]bool{s.Sun, s.Mon, s.Tue, s.Wed, s.Thu, s.Fri, s.Sat}
}

// SetWorkDays устанавливает рабочие дни из массива Sunday=0..Saturday=6
func (s *ScheduleRecord) SetWorkDays(days [7]bool) {
	s.Sun, s.Mon, s.Tue, s.Wed, s.Thu, s.Fri, s.Sat =
		days[0], days[1], days[2], days[3], days[4], days[5], days[6]
}

// WorksOn проверяет, является ли день недели рабочим
func (s *ScheduleRecord) WorksOn(wd time.Weekday) bool {
	return s.WorkDays()[int(wd)]
}

// TimeField - именованное поле времени графика
type TimeField struct {
	Name  string
	Value string
}

// TimeFields возвращает четыре поля времени в фиксированном порядке
func (s *ScheduleRecord) TimeFields() []TimeField {
	return []TimeField{
		{"WeekdayStart", s.WeekdayStart},
		{"WeekdayEnd", s.WeekdayEnd},
		{"WeekendStart", s.WeekendStart},
		{"WeekendEnd", s.WeekendEnd},
	}
}

// IsValid проверяет валидность данных
func (s *ScheduleRecord) IsValid() bool {
	if s.EmployeeID == 0 {
		return false
	}
	for _, f := range s.TimeFields() {
		if !timeutil.HHMMOk(f.Value) {
			return false
		}
	}
	return true
}

// ScheduleImportRow - одна строка импорта графика; пустые поля не трогают
// сохранённое значение
type ScheduleImportRow struct {
	EmployeeID   int       `json:"employee_id"`
	Name         string    `json:"name"`
	IsManager    string    `json:"is_manager"`
	WeekdayStart string    `json:"weekday_start"`
	WeekdayEnd   string    `json:"weekday_end"`
	WeekendStart string    `json:"weekend_start"`
	WeekendEnd   string    `json:"weekend_end"`
	Days         [7]string `json:"days"`
	HasDays      bool      `json:"has_days"`
}

// ScheduleExportRow - строка экспорта графика (порядок полей = порядок колонок)
type ScheduleExportRow struct {
	EmployeeID   int    `json:"employee_id"`
	Name         string `json:"name"`
	IsManager    string `json:"is_manager"`
	WeekdayStart string `json:"weekday_start"`
	WeekdayEnd   string `json:"weekday_end"`
	WeekendStart string `json:"weekend_start"`
	WeekendEnd   string `json:"weekend_end"`
	Sun          int    `json:"sun"`
	Mon          int    `json:"mon"`
	Tue          int    `json:"tue"`
	Wed          int    `json:"wed"`
	Thu          int    `json:"thu"`
	Fri          int    `json:"fri"`
	Sat          int    `json:"sat"`
}
