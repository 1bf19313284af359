package service

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"attendance-engine/internal/models"
	"attendance-engine/pkg/timeutil"

	"github.com/sirupsen/logrus"
)

var (
	multiSpaceRegexp = regexp.MustCompile(`\s{2,}`)
	anySpaceRegexp   = regexp.MustCompile(`\s+`)
	dateRegexp       = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	combinedRegexp   = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{4})\s+(.+)$`)
)

type PunchService struct {
	logger *logrus.Logger
}

func NewPunchService() *PunchService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &PunchService{
		logger: logger,
	}
}

// ParseRaw разбирает сырой текст выгрузки устройства в события отметок.
// Некорректные строки молча пропускаются, партия никогда не прерывается.
func (s *PunchService) ParseRaw(text string) []models.PunchEvent {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := []models.PunchEvent{}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := splitNonEmpty(line, "\t")
		if len(parts) < 5 {
			parts = splitFieldsBySpaces(line)
		}
		if len(parts) < 5 {
			continue
		}

		var datePart, timePart, deviceID string
		name := parts[1]
		dept := parts[2]
		if len(parts) >= 6 {
			datePart, timePart, deviceID = parts[3], parts[4], parts[5]
		} else {
			// время внутри поля даты
			datePart, timePart, deviceID = parts[3], "", parts[4]
		}

		empID, err := strconv.Atoi(parts[0])
		if err != nil || empID <= 0 {
			continue
		}

		dt, ok := parseDateTimeFlexible(datePart, timePart)
		if !ok {
			continue
		}

		out = append(out, models.PunchEvent{
			EmployeeID: empID,
			Name:       name,
			Department: dept,
			DeviceID:   deviceID,
			Timestamp:  dt,
		})
	}

	s.logger.WithFields(logrus.Fields{
		"lines":  len(lines),
		"parsed": len(out),
	}).Debug("Parsed raw punch text")

	return out
}

// Dedup убирает почти одинаковые отметки: события сортируются по
// (сотрудник, время), и событие отбрасывается, если оно ближе окна к
// последнему оставленному событию того же сотрудника
func (s *PunchService) Dedup(punches []models.PunchEvent, windowSeconds int) []models.PunchEvent {
	sorted := make([]models.PunchEvent, len(punches))
	copy(sorted, punches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].EmployeeID != sorted[j].EmployeeID {
			return sorted[i].EmployeeID < sorted[j].EmployeeID
		}
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	out := []models.PunchEvent{}
	lastKept := map[int]time.Time{}

	for _, p := range sorted {
		if last, ok := lastKept[p.EmployeeID]; ok {
			diff := p.Timestamp.Sub(last).Seconds()
			if diff >= 0 && diff < float64(windowSeconds) {
				continue
			}
		}
		out = append(out, p)
		lastKept[p.EmployeeID] = p.Timestamp
	}

	s.logger.WithFields(logrus.Fields{
		"raw":    len(punches),
		"clean":  len(out),
		"window": windowSeconds,
	}).Debug("Deduplicated punches")

	return out
}

// BuildPunchRows строит строки отчёта по отметкам
func (s *PunchService) BuildPunchRows(clean []models.PunchEvent, rollHour int) []models.PunchRow {
	rows := make([]models.PunchRow, 0, len(clean))
	for _, p := range clean {
		sd := ShiftDateFor(p.Timestamp, rollHour)
		rows = append(rows, models.PunchRow{
			EmployeeID: p.EmployeeID,
			Name:       p.Name,
			Dept:       p.Department,
			DeviceID:   p.DeviceID,
			DateTime:   timeutil.FormatDateTime(p.Timestamp),
			ShiftDate:  timeutil.FormatDate(sd),
			DayName:    timeutil.DayName(sd),
			Time12h:    timeutil.FormatTime12(p.Timestamp),
		})
	}
	return rows
}

// EmployeeNameMap собирает первое непустое имя каждого сотрудника
func (s *PunchService) EmployeeNameMap(punches []models.PunchEvent) map[int]string {
	names := map[int]string{}
	for _, p := range punches {
		if cur, ok := names[p.EmployeeID]; !ok {
			names[p.EmployeeID] = p.Name
		} else if cur == "" && p.Name != "" {
			names[p.EmployeeID] = p.Name
		}
	}
	return names
}

// MaxEmployeeID возвращает максимальный ID сотрудника, не меньше 1
func MaxEmployeeID(punches []models.PunchEvent) int {
	maxID := 1
	for _, p := range punches {
		if p.EmployeeID > maxID {
			maxID = p.EmployeeID
		}
	}
	return maxID
}

func splitNonEmpty(line, sep string) []string {
	parts := []string{}
	for _, p := range strings.Split(line, sep) {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func splitFieldsBySpaces(line string) []string {
	parts := []string{}
	for _, p := range multiSpaceRegexp.Split(line, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// parseTimeString разбирает "H:M[:S]" с необязательной арабской меткой
// ص (до полудня) или م (после полудня); 12-часовые значения приводятся к 24
func parseTimeString(t string) (hh, mm, ss int, ok bool) {
	t = strings.TrimSpace(t)
	isPM := strings.Contains(t, "م")
	isAM := strings.Contains(t, "ص")
	t = strings.ReplaceAll(t, "م", "")
	t = strings.ReplaceAll(t, "ص", "")
	t = strings.TrimSpace(t)

	parts := splitNonEmpty(t, ":")
	if len(parts) < 2 {
		return 0, 0, 0, false
	}

	var err error
	if hh, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, false
	}
	if mm, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, false
	}
	if len(parts) >= 3 {
		if ss, err = strconv.Atoi(parts[2]); err != nil {
			return 0, 0, 0, false
		}
	}

	if isPM && hh < 12 {
		hh += 12
	}
	if isAM && hh == 12 {
		hh = 0
	}
	return hh, mm, ss, true
}

// parseDateString разбирает дату "D/M/YYYY"
func parseDateString(ds string) (day, month, year int, ok bool) {
	m := dateRegexp.FindStringSubmatch(strings.TrimSpace(ds))
	if m == nil {
		return 0, 0, 0, false
	}
	day, _ = strconv.Atoi(m[1])
	month, _ = strconv.Atoi(m[2])
	year, _ = strconv.Atoi(m[3])
	return day, month, year, true
}

// parseDateTimeFlexible разбирает дату и время из раздельных полей либо из
// одного объединённого поля (дата, пробелы, время)
func parseDateTimeFlexible(datePart, timePart string) (time.Time, bool) {
	if strings.TrimSpace(timePart) == "" {
		txt := anySpaceRegexp.ReplaceAllString(strings.TrimSpace(datePart), " ")
		m := combinedRegexp.FindStringSubmatch(txt)
		if m == nil {
			return time.Time{}, false
		}
		datePart, timePart = m[1], m[2]
	}

	day, month, year, ok := parseDateString(datePart)
	if !ok {
		return time.Time{}, false
	}
	hh, mm, ss, ok := parseTimeString(timePart)
	if !ok {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, hh, mm, ss, 0, time.Local), true
}
