package handler

import (
	"math"

	"attendance-engine/internal/models"
)

// EmployeeReport собирает отчёт по одному сотруднику из результата прогона
func (h *Handler) EmployeeReport(res *ProcessResult, employeeID int) *models.EmployeeReport {
	report := &models.EmployeeReport{
		EmployeeID: employeeID,
		Name:       h.schedules.Get(employeeID).Name,
		FirstPunch: models.NoTime,
		LastPunch:  models.NoTime,
		Daily:      []models.DailyRecord{},
		Punches:    []models.PunchRow{},
	}

	workMin := 0
	for i := range res.Daily {
		r := res.Daily[i]
		if r.EmployeeID != employeeID {
			continue
		}
		report.Daily = append(report.Daily, r)
		if r.IsPresent() {
			report.DaysPresent++
		}
		if r.IsAbsent() {
			report.DaysAbsent++
		}
		report.LateMinutes += r.LateMinutes
		report.OTMinutes += r.OTMinutes
		workMin += r.WorkMinutes
	}
	report.WorkHours = math.Round(float64(workMin)/60*100) / 100

	for i := range res.Punches {
		if res.Punches[i].EmployeeID == employeeID {
			report.Punches = append(report.Punches, res.Punches[i])
		}
	}
	if len(report.Punches) > 0 {
		first := report.Punches[0]
		last := report.Punches[len(report.Punches)-1]
		report.FirstPunch = first.DateTime + " (" + first.Time12h + ")"
		report.LastPunch = last.DateTime + " (" + last.Time12h + ")"
	}

	if report.Name == "" && len(report.Punches) > 0 {
		report.Name = report.Punches[0].Name
	}

	h.logger.WithField("employee_id", employeeID).Debug("Employee report built")
	return report
}
