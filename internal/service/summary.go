package service

import (
	"math"
	"sort"
	"strings"

	"attendance-engine/internal/models"

	"github.com/sirupsen/logrus"
)

type SummaryService struct {
	schedules *ScheduleService
	logger    *logrus.Logger
}

func NewSummaryService(schedules *ScheduleService) *SummaryService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &SummaryService{
		schedules: schedules,
		logger:    logger,
	}
}

// Summarize сворачивает дневные строки в итоги по сотрудникам;
// руководители в сводку не попадают
func (s *SummaryService) Summarize(daily []models.DailyRecord) []models.SummaryRecord {
	byEmp := map[int]*models.SummaryRecord{}

	for i := range daily {
		r := &daily[i]
		rec := s.schedules.Get(r.EmployeeID)
		if rec.IsManager {
			continue
		}

		sr, ok := byEmp[r.EmployeeID]
		if !ok {
			name := rec.Name
			if name == "" {
				name = r.Name
			}
			sr = &models.SummaryRecord{EmployeeID: r.EmployeeID, Name: name}
			byEmp[r.EmployeeID] = sr
		}

		if r.IsPresent() {
			sr.DaysPresent++
		}
		if r.IsAbsent() {
			sr.DaysAbsent++
		}
		if r.Status == models.StatusIrregular {
			sr.IrregularDays++
		}
		sr.TotalLateMin += r.LateMinutes
		sr.TotalOTMin += r.OTMinutes
		sr.TotalWorkHours += float64(r.WorkMinutes) / 60
	}

	out := make([]models.SummaryRecord, 0, len(byEmp))
	for _, sr := range byEmp {
		sr.TotalWorkHours = round2(sr.TotalWorkHours)
		out = append(out, *sr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })

	s.logger.WithField("employees", len(out)).Debug("Summary built")
	return out
}

// Totals суммирует осмысленные итоги сводки: общие часы и минуты переработки
func (s *SummaryService) Totals(rows []models.SummaryRecord) models.SummaryTotals {
	var t models.SummaryTotals
	for i := range rows {
		t.TotalOTMin += rows[i].TotalOTMin
		t.TotalWorkHours += rows[i].TotalWorkHours
	}
	t.TotalWorkHours = round2(t.TotalWorkHours)
	return t
}

// MonthOptions собирает список месяцев, встречающихся в дневных строках
func (s *SummaryService) MonthOptions(daily []models.DailyRecord) []models.MonthOption {
	seen := map[string]models.MonthOption{}
	for i := range daily {
		parts := strings.Split(daily[i].ShiftDate, "/")
		if len(parts) != 3 {
			continue
		}
		key := parts[2] + "-" + parts[1]
		if _, ok := seen[key]; !ok {
			seen[key] = models.MonthOption{Key: key, Label: parts[1] + "/" + parts[2]}
		}
	}

	out := make([]models.MonthOption, 0, len(seen))
	for _, m := range seen {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// BestPerformer выбирает лучшего сотрудника по формуле
// 10*присутствия - 20*отсутствия - опоздания/10 - 2*неполные дни.
// При равенстве очков побеждает меньший ID. Руководители не участвуют
func (s *SummaryService) BestPerformer(rows []models.SummaryRecord) (int, string, bool) {
	type scored struct {
		id    int
		name  string
		score float64
	}

	candidates := []scored{}
	for i := range rows {
		r := &rows[i]
		if s.schedules.Get(r.EmployeeID).IsManager {
			continue
		}
		score := float64(r.DaysPresent*10) - float64(r.DaysAbsent*20) -
			float64(r.TotalLateMin)/10 - float64(r.IrregularDays*2)
		candidates = append(candidates, scored{id: r.EmployeeID, name: r.Name, score: score})
	}

	if len(candidates) == 0 {
		return 0, "", false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].id < candidates[j].id
	})

	best := candidates[0]
	s.logger.WithFields(logrus.Fields{
		"employee_id": best.id,
		"score":       best.score,
	}).Debug("Best performer selected")

	return best.id, best.name, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
