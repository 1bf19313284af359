package handler

import (
	"errors"
	"strconv"
	"strings"

	"attendance-engine/internal/models"
	"attendance-engine/internal/service"

	"github.com/sirupsen/logrus"
)

// ErrNoRows - в сыром тексте не распознано ни одной строки
var ErrNoRows = errors.New("не распознано ни одной строки: ожидается 5 или 6 колонок и дата dd/mm/yyyy")

// ProcessResult - все артефакты одного прогона конвейера
type ProcessResult struct {
	RawCount      int
	CleanCount    int
	MaxEmployeeID int

	Punches []models.PunchRow
	Daily   []models.DailyRecord
	Summary []models.SummaryRecord
	Months  []models.MonthOption

	DailyTotals   models.DailyTotals
	SummaryTotals models.SummaryTotals

	BestID   int
	BestName string
	HasBest  bool
}

// Process прогоняет полный конвейер: разбор, дедупликация, дозаполнение и
// проверка графика, затем два прохода агрегации - полный для списка месяцев
// и отфильтрованный для отчётных строк
func (h *Handler) Process(rawText, monthKey string) (*ProcessResult, error) {
	raw := h.punches.ParseRaw(rawText)
	if len(raw) == 0 {
		return nil, ErrNoRows
	}

	clean := h.punches.Dedup(raw, h.opts.DedupSeconds)
	maxID := service.MaxEmployeeID(clean)

	if err := h.schedules.Ensure(h.punches.EmployeeNameMap(clean), maxID); err != nil {
		return nil, err
	}
	if err := h.schedules.Validate(maxID); err != nil {
		return nil, err
	}

	res := &ProcessResult{
		RawCount:      len(raw),
		CleanCount:    len(clean),
		MaxEmployeeID: maxID,
	}

	res.Punches = h.punches.BuildPunchRows(clean, h.opts.RollHour)

	dailyAll := h.daily.Aggregate(clean, service.MonthAll, maxID)
	res.Months = h.summary.MonthOptions(dailyAll)

	if monthKey == service.MonthAll {
		res.Daily = dailyAll
	} else {
		res.Daily = h.daily.Aggregate(clean, monthKey, maxID)
		res.Punches = filterPunchesByMonth(res.Punches, monthKey)
	}

	res.Summary = h.summary.Summarize(res.Daily)
	res.DailyTotals = h.daily.Totals(res.Daily)
	res.SummaryTotals = h.summary.Totals(res.Summary)
	res.BestID, res.BestName, res.HasBest = h.summary.BestPerformer(res.Summary)

	h.logger.WithFields(logrus.Fields{
		"raw":    res.RawCount,
		"clean":  res.CleanCount,
		"daily":  len(res.Daily),
		"max_id": res.MaxEmployeeID,
		"month":  monthKey,
	}).Info("Processing complete")

	return res, nil
}

func filterPunchesByMonth(rows []models.PunchRow, monthKey string) []models.PunchRow {
	year, month, ok := service.ParseMonthKey(monthKey)
	if !ok {
		return rows
	}

	out := []models.PunchRow{}
	for _, r := range rows {
		parts := strings.Split(r.ShiftDate, "/")
		if len(parts) != 3 {
			continue
		}
		y, _ := strconv.Atoi(parts[2])
		m, _ := strconv.Atoi(parts[1])
		if y == year && m == month {
			out = append(out, r)
		}
	}
	return out
}
