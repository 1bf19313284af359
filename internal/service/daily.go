package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"attendance-engine/internal/config"
	"attendance-engine/internal/models"
	"attendance-engine/pkg/timeutil"

	"github.com/sirupsen/logrus"
)

// MonthAll - значение фильтра "все месяцы"
const MonthAll = "ALL"

type DailyService struct {
	schedules *ScheduleService
	resolver  *ShiftResolver
	opts      config.Options
	logger    *logrus.Logger
}

func NewDailyService(schedules *ScheduleService, resolver *ShiftResolver, opts config.Options) *DailyService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &DailyService{
		schedules: schedules,
		resolver:  resolver,
		opts:      opts,
		logger:    logger,
	}
}

type punchGroup struct {
	empID     int
	name      string
	shiftDate time.Time
	punches   []time.Time
}

// ParseMonthKey разбирает ключ месяца "yyyy-mm"
func ParseMonthKey(key string) (year, month int, ok bool) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

// Aggregate группирует отметки по (сотрудник, дата смены), выводит статус и
// минуты работы/опоздания/переработки и дополняет диапазон строками ABSENT
// для запланированных рабочих дней без отметок.
// monthKey равен MonthAll либо "yyyy-mm": в первом случае диапазон - от
// самой ранней до самой поздней наблюдаемой даты смены, во втором - весь
// запрошенный календарный месяц независимо от данных
func (s *DailyService) Aggregate(punches []models.PunchEvent, monthKey string, maxID int) []models.DailyRecord {
	groups := map[string]*punchGroup{}
	var minSD, maxSD time.Time

	for _, p := range punches {
		sd := ShiftDateFor(p.Timestamp, s.opts.RollHour)
		if minSD.IsZero() || sd.Before(minSD) {
			minSD = sd
		}
		if maxSD.IsZero() || sd.After(maxSD) {
			maxSD = sd
		}

		key := groupKey(p.EmployeeID, sd)
		g, ok := groups[key]
		if !ok {
			g = &punchGroup{empID: p.EmployeeID, name: p.Name, shiftDate: sd}
			groups[key] = g
		}
		g.punches = append(g.punches, p.Timestamp)
		if g.name == "" && p.Name != "" {
			g.name = p.Name
		}
	}
	if len(groups) == 0 {
		return []models.DailyRecord{}
	}

	rangeStart, rangeEnd := minSD, maxSD
	filterYear, filterMonth := 0, 0
	if monthKey != MonthAll {
		year, month, ok := ParseMonthKey(monthKey)
		if ok {
			filterYear, filterMonth = year, month
			rangeStart = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
			// день 0 следующего месяца - последний день запрошенного
			rangeEnd = time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local)
		}
	}

	daily := []models.DailyRecord{}
	presentSet := map[string]struct{}{}

	// дни с отметками
	for key, g := range groups {
		presentSet[key] = struct{}{}

		if filterMonth != 0 {
			if g.shiftDate.Year() != filterYear || int(g.shiftDate.Month()) != filterMonth {
				continue
			}
		}

		sort.Slice(g.punches, func(i, j int) bool { return g.punches[i].Before(g.punches[j]) })

		win, ok := s.resolver.WindowFor(g.empID, g.shiftDate)
		if !ok {
			continue
		}

		punchCount := len(g.punches)
		actualIn := g.punches[0]
		actualOutRaw := g.punches[punchCount-1]

		status := models.StatusRegular
		if punchCount == 1 {
			status = models.StatusIrregular
		}

		actualOut := actualOutRaw
		if actualOut.Before(actualIn) {
			actualOut = timeutil.AddDays(actualOut, 1)
		}
		workMin := 0
		if punchCount > 1 {
			workMin = maxInt(0, timeutil.MinutesDiff(actualOut, actualIn))
		}

		lateMin := 0
		if !win.IsManager {
			rawLate := maxInt(0, timeutil.MinutesDiff(actualIn, win.Start))
			lateMin = maxInt(0, rawLate-s.opts.GraceMinutes)
		}

		otMin := 0
		if !win.IsManager && punchCount > 1 {
			outForOT := actualOutRaw
			if outForOT.Before(win.Start) {
				outForOT = timeutil.AddDays(outForOT, 1)
			}
			otMin = maxInt(0, timeutil.MinutesDiff(outForOT, win.End))
		}

		name := s.schedules.Get(g.empID).Name
		if name == "" {
			name = g.name
		}

		actualOutText := timeutil.FormatTime12(actualOutRaw)
		if punchCount == 1 {
			actualOutText = models.NoTime
		}

		present, absent := "YES", "NO"
		if win.IsManager {
			present, absent = "", ""
		}

		daily = append(daily, models.DailyRecord{
			EmployeeID:  g.empID,
			Name:        name,
			ShiftDate:   timeutil.FormatDate(g.shiftDate),
			DayName:     timeutil.DayName(g.shiftDate),
			Status:      status,
			SchedStart:  timeutil.FormatTime12(win.Start),
			SchedEnd:    timeutil.FormatTime12(win.End),
			ActualIn:    timeutil.FormatTime12(actualIn),
			ActualOut:   actualOutText,
			WorkMinutes: workMin,
			LateMinutes: lateMin,
			OTMinutes:   otMin,
			Present:     present,
			Absent:      absent,
		})
	}

	// отсутствия по графику
	for empID := 1; empID <= maxID; empID++ {
		rec := s.schedules.Get(empID)
		if rec.IsManager {
			continue
		}
		for d := rangeStart; !d.After(rangeEnd); d = timeutil.AddDays(d, 1) {
			sd := timeutil.Midnight(d)
			win, ok := s.resolver.WindowFor(empID, sd)
			if !ok || !win.IsWorkday {
				continue
			}
			if _, seen := presentSet[groupKey(empID, sd)]; seen {
				continue
			}

			daily = append(daily, models.DailyRecord{
				EmployeeID: empID,
				Name:       rec.Name,
				ShiftDate:  timeutil.FormatDate(sd),
				DayName:    timeutil.DayName(sd),
				Status:     models.StatusAbsent,
				SchedStart: timeutil.FormatTime12(win.Start),
				SchedEnd:   timeutil.FormatTime12(win.End),
				ActualIn:   models.NoTime,
				ActualOut:  models.NoTime,
				Present:    "NO",
				Absent:     "YES",
			})
		}
	}

	// порядок: по сотруднику, затем по отображаемой дате смены
	sort.SliceStable(daily, func(i, j int) bool {
		if daily[i].EmployeeID != daily[j].EmployeeID {
			return daily[i].EmployeeID < daily[j].EmployeeID
		}
		return daily[i].ShiftDate < daily[j].ShiftDate
	})

	s.logger.WithFields(logrus.Fields{
		"month":  monthKey,
		"groups": len(groups),
		"rows":   len(daily),
	}).Debug("Daily aggregation complete")

	return daily
}

// Totals суммирует минуты и счётчики по строкам дневного отчёта
func (s *DailyService) Totals(rows []models.DailyRecord) models.DailyTotals {
	var t models.DailyTotals
	for i := range rows {
		r := &rows[i]
		t.WorkMinutes += r.WorkMinutes
		t.LateMinutes += r.LateMinutes
		t.OTMinutes += r.OTMinutes
		if r.IsPresent() {
			t.PresentDays++
		}
		if r.IsAbsent() {
			t.AbsentDays++
		}
		if r.Status == models.StatusIrregular {
			t.IrregularDays++
		}
	}
	return t
}

func groupKey(empID int, shiftDate time.Time) string {
	return fmt.Sprintf("%d|%s", empID, timeutil.YMD(shiftDate))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
