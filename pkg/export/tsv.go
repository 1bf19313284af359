package export

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"attendance-engine/internal/models"
)

var newlineRegexp = regexp.MustCompile(`\r?\n`)

// escapeCell заменяет табуляции и переводы строк пробелами
func escapeCell(v string) string {
	v = strings.ReplaceAll(v, "\t", " ")
	return newlineRegexp.ReplaceAllString(v, " ")
}

// WriteTSV пишет таблицу в файл с табуляцией в качестве разделителя
func WriteTSV(path string, header []string, rows [][]string) error {
	var b strings.Builder

	for i, c := range header {
		if i > 0 {
			b.WriteByte('\t')
		}
		b.WriteString(escapeCell(c))
	}
	b.WriteByte('\n')

	for _, row := range rows {
		for i, c := range row {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(escapeCell(c))
		}
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write TSV %s: %w", path, err)
	}
	return nil
}

// ParseScheduleTSV разбирает экспортированную таблицу графика обратно в
// строки импорта; колонки ищутся по заголовку, частичные строки допустимы
func ParseScheduleTSV(text string) ([]models.ScheduleImportRow, error) {
	lines := []string{}
	for _, l := range newlineRegexp.Split(text, -1) {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("файл графика пуст")
	}

	header := strings.Split(lines[0], "\t")
	idx := map[string]int{}
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	idCol, ok := idx["EmployeeID"]
	if !ok {
		return nil, fmt.Errorf("некорректный формат: нет колонки EmployeeID")
	}

	get := func(cols []string, name string) string {
		j, ok := idx[name]
		if !ok || j >= len(cols) {
			return ""
		}
		return strings.TrimSpace(cols[j])
	}

	dayCols := [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	rows := []models.ScheduleImportRow{}

	for _, line := range lines[1:] {
		cols := strings.Split(line, "\t")
		if idCol >= len(cols) {
			continue
		}

		row := models.ScheduleImportRow{
			Name:         get(cols, "Name"),
			IsManager:    get(cols, "IsManager"),
			WeekdayStart: get(cols, "WeekdayStart"),
			WeekdayEnd:   get(cols, "WeekdayEnd"),
			WeekendStart: get(cols, "WeekendStart"),
			WeekendEnd:   get(cols, "WeekendEnd"),
		}

		empID, err := strconv.Atoi(strings.TrimSpace(cols[idCol]))
		if err != nil {
			continue
		}
		row.EmployeeID = empID

		hasDays := false
		for i, name := range dayCols {
			row.Days[i] = get(cols, name)
			if _, ok := idx[name]; ok {
				hasDays = true
			}
		}
		row.HasDays = hasDays

		rows = append(rows, row)
	}

	return rows, nil
}
