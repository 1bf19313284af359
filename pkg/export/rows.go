package export

import (
	"strconv"

	"attendance-engine/internal/models"
)

// TotalLabel - подпись итоговой строки
const TotalLabel = "المجموع"

// PunchTable строит заголовок и ячейки отчёта по отметкам
func PunchTable(rows []models.PunchRow) ([]string, [][]string) {
	header := []string{"EmployeeID", "Name", "Dept", "DeviceID", "DateTime", "ShiftDate", "DayName", "Time12h"}
	cells := make([][]string, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		cells = append(cells, []string{
			strconv.Itoa(r.EmployeeID), r.Name, r.Dept, r.DeviceID,
			r.DateTime, r.ShiftDate, r.DayName, r.Time12h,
		})
	}
	return header, cells
}

// DailyTable строит заголовок и ячейки дневного отчёта; если переданы итоги,
// добавляется строка TOTAL с пустыми неосмысленными колонками
func DailyTable(rows []models.DailyRecord, totals *models.DailyTotals) ([]string, [][]string) {
	header := []string{
		"EmployeeID", "Name", "ShiftDate", "DayName", "Status",
		"SchedStart", "SchedEnd", "ActualIn", "ActualOut",
		"WorkMinutes", "LateMinutes", "OTMinutes", "Present", "Absent",
	}
	cells := make([][]string, 0, len(rows)+1)
	for i := range rows {
		r := &rows[i]
		cells = append(cells, []string{
			strconv.Itoa(r.EmployeeID), r.Name, r.ShiftDate, r.DayName, r.Status,
			r.SchedStart, r.SchedEnd, r.ActualIn, r.ActualOut,
			strconv.Itoa(r.WorkMinutes), strconv.Itoa(r.LateMinutes), strconv.Itoa(r.OTMinutes),
			r.Present, r.Absent,
		})
	}
	if totals != nil && len(rows) > 0 {
		cells = append(cells, []string{
			"TOTAL", TotalLabel, "", "", totals.StatusText(),
			"", "", "", "",
			strconv.Itoa(totals.WorkMinutes), strconv.Itoa(totals.LateMinutes), strconv.Itoa(totals.OTMinutes),
			"", "",
		})
	}
	return header, cells
}

// SummaryTable строит заголовок и ячейки месячной сводки; итоговая строка
// заполняет только общие часы работы и минуты переработки
func SummaryTable(rows []models.SummaryRecord, totals *models.SummaryTotals) ([]string, [][]string) {
	header := []string{
		"EmployeeID", "Name", "DaysPresent", "DaysAbsent", "IrregularDays",
		"TotalLateMin", "TotalOTMin", "TotalWorkHours",
	}
	cells := make([][]string, 0, len(rows)+1)
	for i := range rows {
		r := &rows[i]
		cells = append(cells, []string{
			strconv.Itoa(r.EmployeeID), r.Name,
			strconv.Itoa(r.DaysPresent), strconv.Itoa(r.DaysAbsent), strconv.Itoa(r.IrregularDays),
			strconv.Itoa(r.TotalLateMin), strconv.Itoa(r.TotalOTMin),
			formatHours(r.TotalWorkHours),
		})
	}
	if totals != nil && len(rows) > 0 {
		cells = append(cells, []string{
			"TOTAL", TotalLabel, "", "", "", "",
			strconv.Itoa(totals.TotalOTMin),
			formatHours(totals.TotalWorkHours),
		})
	}
	return header, cells
}

// ScheduleTable строит заголовок и ячейки таблицы графика
func ScheduleTable(rows []models.ScheduleExportRow) ([]string, [][]string) {
	header := []string{
		"EmployeeID", "Name", "IsManager",
		"WeekdayStart", "WeekdayEnd", "WeekendStart", "WeekendEnd",
		"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat",
	}
	cells := make([][]string, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		cells = append(cells, []string{
			strconv.Itoa(r.EmployeeID), r.Name, r.IsManager,
			r.WeekdayStart, r.WeekdayEnd, r.WeekendStart, r.WeekendEnd,
			strconv.Itoa(r.Sun), strconv.Itoa(r.Mon), strconv.Itoa(r.Tue), strconv.Itoa(r.Wed),
			strconv.Itoa(r.Thu), strconv.Itoa(r.Fri), strconv.Itoa(r.Sat),
		})
	}
	return header, cells
}

func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
