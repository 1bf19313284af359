package service

import (
	"time"

	"attendance-engine/internal/config"
	"attendance-engine/pkg/timeutil"

	"github.com/sirupsen/logrus"
)

// ShiftDateFor возвращает логическую дату смены: отметки раньше часа
// переноса относятся к смене предыдущего календарного дня
func ShiftDateFor(ts time.Time, rollHour int) time.Time {
	mid := timeutil.Midnight(ts)
	threshold := time.Date(ts.Year(), ts.Month(), ts.Day(), rollHour, 0, 0, 0, ts.Location())
	if ts.Before(threshold) {
		return timeutil.AddDays(mid, -1)
	}
	return mid
}

// ShiftWindow - плановое окно смены для конкретной даты
type ShiftWindow struct {
	Start     time.Time
	End       time.Time
	IsWorkday bool
	IsManager bool
}

type ShiftResolver struct {
	schedules *ScheduleService
	opts      config.Options
	logger    *logrus.Logger
}

func NewShiftResolver(schedules *ScheduleService, opts config.Options) *ShiftResolver {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &ShiftResolver{
		schedules: schedules,
		opts:      opts,
		logger:    logger,
	}
}

// WindowFor строит плановое окно сотрудника на дату смены.
// Если плановый конец не позже начала, смена переходит через полночь и
// конец сдвигается на следующий день. При некорректных строках времени
// возвращается ok=false (вызывающий должен заранее пройти Validate)
func (r *ShiftResolver) WindowFor(employeeID int, shiftDate time.Time) (ShiftWindow, bool) {
	rec := r.schedules.Get(employeeID)

	wd := shiftDate.Weekday()
	startStr, endStr := rec.WeekdayStart, rec.WeekdayEnd
	if r.opts.IsWeekend(wd) {
		startStr, endStr = rec.WeekendStart, rec.WeekendEnd
	}

	sh, sm, ok := timeutil.ParseHHMM(startStr)
	if !ok {
		return ShiftWindow{}, false
	}
	eh, em, ok := timeutil.ParseHHMM(endStr)
	if !ok {
		return ShiftWindow{}, false
	}

	start := time.Date(shiftDate.Year(), shiftDate.Month(), shiftDate.Day(), sh, sm, 0, 0, shiftDate.Location())
	end := time.Date(shiftDate.Year(), shiftDate.Month(), shiftDate.Day(), eh, em, 0, 0, shiftDate.Location())
	if !end.After(start) {
		end = timeutil.AddDays(end, 1)
	}

	return ShiftWindow{
		Start:     start,
		End:       end,
		IsWorkday: rec.WorksOn(wd),
		IsManager: rec.IsManager,
	}, true
}
