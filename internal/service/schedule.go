package service

import (
	"fmt"
	"strings"

	"attendance-engine/internal/models"
	"attendance-engine/internal/repository"
	"attendance-engine/pkg/timeutil"

	"github.com/sirupsen/logrus"
)

// DefaultSchedulePolicy строит запись графика по умолчанию для сотрудника
type DefaultSchedulePolicy func(employeeID int) models.ScheduleRecord

// BuiltinDefaultPolicy - встроенный демонстрационный график: сотрудник 1 -
// руководитель, 3 и 4 - вечерняя смена, 7 - раздельные часы, остальные -
// стандартное окно; все семь дней рабочие
func BuiltinDefaultPolicy(employeeID int) models.ScheduleRecord {
	rec := models.ScheduleRecord{
		IsManager:    employeeID == 1,
		WeekdayStart: "14:30",
		WeekdayEnd:   "01:00",
		WeekendStart: "14:30",
		WeekendEnd:   "01:00",
	}
	rec.SetWorkDays([7]bool{true, true, true, true, true, true, true})

	switch employeeID {
	case 3, 4:
		rec.WeekdayStart, rec.WeekdayEnd = "16:00", "01:00"
		rec.WeekendStart, rec.WeekendEnd = "16:00", "01:00"
	case 7:
		rec.WeekdayStart, rec.WeekdayEnd = "05:00", "16:00"
		rec.WeekendStart, rec.WeekendEnd = "12:00", "16:00"
	}
	return rec
}

// ValidationError описывает первое некорректное поле графика
type ValidationError struct {
	EmployeeID int
	Field      string
	Value      string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("некорректное время в графике: EmployeeID=%d field=%s value=%q (ожидается HH:MM)",
		e.EmployeeID, e.Field, e.Value)
}

type ScheduleService struct {
	repo     repository.ScheduleRepository
	defaults DefaultSchedulePolicy
	logger   *logrus.Logger
}

func NewScheduleService(repo repository.ScheduleRepository, defaults DefaultSchedulePolicy) *ScheduleService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if defaults == nil {
		defaults = BuiltinDefaultPolicy
	}

	return &ScheduleService{
		repo:     repo,
		defaults: defaults,
		logger:   logger,
	}
}

// Ensure создаёт недостающие записи графика для всех ID в [1, maxID] и
// дозаполняет пустые поля существующих записей значениями по умолчанию;
// значения, выставленные пользователем, не перезаписываются
func (s *ScheduleService) Ensure(names map[int]string, maxID int) error {
	s.logger.WithField("max_id", maxID).Debug("Ensuring schedule records")

	for id := 1; id <= maxID; id++ {
		existing, err := s.repo.GetByEmployeeID(uint(id))
		if err != nil {
			s.logger.WithError(err).Error("Failed to get schedule record during ensure")
			return err
		}

		if existing == nil {
			rec := s.defaults(id)
			rec.EmployeeID = uint(id)
			rec.Name = names[id]
			if err := s.repo.Save(&rec); err != nil {
				return err
			}
			continue
		}

		def := s.defaults(id)
		changed := false
		if existing.Name == "" && names[id] != "" {
			existing.Name = names[id]
			changed = true
		}
		if existing.WeekdayStart == "" {
			existing.WeekdayStart = def.WeekdayStart
			changed = true
		}
		if existing.WeekdayEnd == "" {
			existing.WeekdayEnd = def.WeekdayEnd
			changed = true
		}
		if existing.WeekendStart == "" {
			existing.WeekendStart = def.WeekendStart
			changed = true
		}
		if existing.WeekendEnd == "" {
			existing.WeekendEnd = def.WeekendEnd
			changed = true
		}
		if changed {
			if err := s.repo.Save(existing); err != nil {
				return err
			}
		}
	}

	return nil
}

// Get возвращает запись графика либо вычисленную запись по умолчанию,
// если сотрудник ещё не заведён
func (s *ScheduleService) Get(employeeID int) models.ScheduleRecord {
	rec, err := s.repo.GetByEmployeeID(uint(employeeID))
	if err != nil {
		s.logger.WithError(err).WithField("employee_id", employeeID).
			Warn("Failed to get schedule record, falling back to default")
	}
	if err != nil || rec == nil {
		def := s.defaults(employeeID)
		def.EmployeeID = uint(employeeID)
		return def
	}
	return *rec
}

// Validate проверяет все четыре поля времени каждого сотрудника в [1, maxID];
// при первой же ошибке возвращается ValidationError с виновным полем
func (s *ScheduleService) Validate(maxID int) error {
	for id := 1; id <= maxID; id++ {
		rec := s.Get(id)
		for _, f := range rec.TimeFields() {
			if !timeutil.HHMMOk(f.Value) {
				s.logger.WithFields(logrus.Fields{
					"employee_id": id,
					"field":       f.Name,
					"value":       f.Value,
				}).Warn("Schedule validation failed")
				return &ValidationError{EmployeeID: id, Field: f.Name, Value: f.Value}
			}
		}
	}
	return nil
}

// ImportBulk применяет строки импорта: обновляются только присутствующие и
// корректные поля; строки с ID вне [1, maxID] пропускаются (maxID <= 0
// отключает верхнюю границу). Возвращает число обновлённых сотрудников
func (s *ScheduleService) ImportBulk(rows []models.ScheduleImportRow, maxID int) (int, error) {
	updated := 0

	for _, row := range rows {
		if row.EmployeeID < 1 {
			continue
		}
		if maxID > 0 && row.EmployeeID > maxID {
			continue
		}

		rec := s.Get(row.EmployeeID)

		if row.Name != "" {
			rec.Name = row.Name
		}
		if row.IsManager != "" {
			rec.IsManager = truthy(row.IsManager)
		}
		if timeutil.HHMMOk(row.WeekdayStart) {
			rec.WeekdayStart = row.WeekdayStart
		}
		if timeutil.HHMMOk(row.WeekdayEnd) {
			rec.WeekdayEnd = row.WeekdayEnd
		}
		if timeutil.HHMMOk(row.WeekendStart) {
			rec.WeekendStart = row.WeekendStart
		}
		if timeutil.HHMMOk(row.WeekendEnd) {
			rec.WeekendEnd = row.WeekendEnd
		}
		if row.HasDays {
			var days [7]bool
			for i, v := range row.Days {
				days[i] = truthy(v)
			}
			rec.SetWorkDays(days)
		}

		if err := s.repo.Save(&rec); err != nil {
			s.logger.WithError(err).WithField("employee_id", row.EmployeeID).
				Error("Failed to save imported schedule record")
			return updated, err
		}
		updated++
	}

	s.logger.WithField("updated", updated).Info("Schedule import applied")
	return updated, nil
}

// ExportRows строит таблицу графика для экспорта
func (s *ScheduleService) ExportRows(maxID int) []models.ScheduleExportRow {
	rows := make([]models.ScheduleExportRow, 0, maxID)
	for id := 1; id <= maxID; id++ {
		rec := s.Get(id)
		days := rec.WorkDays()
		rows = append(rows, models.ScheduleExportRow{
			EmployeeID:   id,
			Name:         rec.Name,
			IsManager:    yesNo(rec.IsManager),
			WeekdayStart: rec.WeekdayStart,
			WeekdayEnd:   rec.WeekdayEnd,
			WeekendStart: rec.WeekendStart,
			WeekendEnd:   rec.WeekendEnd,
			Sun:          boolToInt(days[0]),
			Mon:          boolToInt(days[1]),
			Tue:          boolToInt(days[2]),
			Wed:          boolToInt(days[3]),
			Thu:          boolToInt(days[4]),
			Fri:          boolToInt(days[5]),
			Sat:          boolToInt(days[6]),
		})
	}
	return rows
}

func truthy(v string) bool {
	v = strings.ToUpper(strings.TrimSpace(v))
	return v == "YES" || v == "1" || v == "TRUE"
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
