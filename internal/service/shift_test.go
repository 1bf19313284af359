package service

import (
	"testing"
	"time"

	"attendance-engine/internal/config"
)

func TestShiftDateFor(t *testing.T) {
	cases := []struct {
		ts       string
		rollHour int
		wantDay  int
	}{
		{"2025-01-07 05:59:59", 6, 6}, // до часа переноса - предыдущая смена
		{"2025-01-07 06:00:00", 6, 7}, // ровно час переноса - текущая
		{"2025-01-07 23:00:00", 6, 7},
		{"2025-01-07 00:10:00", 0, 7}, // перенос отключён
	}

	for _, c := range cases {
		ts, err := time.ParseInLocation("2006-01-02 15:04:05", c.ts, time.Local)
		if err != nil {
			t.Fatalf("bad timestamp %q: %v", c.ts, err)
		}
		sd := ShiftDateFor(ts, c.rollHour)
		if sd.Day() != c.wantDay {
			t.Errorf("ShiftDateFor(%s, %d) = %v, want day %d", c.ts, c.rollHour, sd, c.wantDay)
		}
		if sd.Hour() != 0 || sd.Minute() != 0 {
			t.Errorf("shift date should be midnight, got %v", sd)
		}
	}
}

func TestWindowForOvernightShift(t *testing.T) {
	schedules := newTestScheduleService(t)
	resolver := NewShiftResolver(schedules, config.DefaultOptions())

	// понедельник, график по умолчанию 14:30-01:00
	monday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.Local)
	win, ok := resolver.WindowFor(2, monday)
	if !ok {
		t.Fatal("WindowFor returned ok=false")
	}

	if win.Start.Hour() != 14 || win.Start.Minute() != 30 || win.Start.Day() != 6 {
		t.Errorf("Start = %v", win.Start)
	}
	// конец раньше начала - смена через полночь
	if win.End.Hour() != 1 || win.End.Day() != 7 {
		t.Errorf("End = %v, want 01:00 next day", win.End)
	}
	if !win.IsWorkday {
		t.Error("Monday should be a workday")
	}
	if win.IsManager {
		t.Error("employee 2 is not a manager")
	}
}

func TestWindowForWeekendHours(t *testing.T) {
	schedules := newTestScheduleService(t)
	resolver := NewShiftResolver(schedules, config.DefaultOptions())

	// сотрудник 7: будни 05:00-16:00, выходные 12:00-16:00
	monday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.Local)
	win, ok := resolver.WindowFor(7, monday)
	if !ok {
		t.Fatal("WindowFor returned ok=false")
	}
	if win.Start.Hour() != 5 || win.End.Hour() != 16 {
		t.Errorf("weekday window = %v - %v", win.Start, win.End)
	}
	if win.End.Day() != 6 {
		t.Errorf("same-day window should not roll over: %v", win.End)
	}

	friday := time.Date(2025, 1, 10, 0, 0, 0, 0, time.Local)
	win, ok = resolver.WindowFor(7, friday)
	if !ok {
		t.Fatal("WindowFor returned ok=false")
	}
	if win.Start.Hour() != 12 || win.End.Hour() != 16 {
		t.Errorf("weekend window = %v - %v", win.Start, win.End)
	}
}

func TestWindowForManager(t *testing.T) {
	schedules := newTestScheduleService(t)
	resolver := NewShiftResolver(schedules, config.DefaultOptions())

	monday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.Local)
	win, ok := resolver.WindowFor(1, monday)
	if !ok {
		t.Fatal("WindowFor returned ok=false")
	}
	if !win.IsManager {
		t.Error("employee 1 should be a manager")
	}
}

func TestWindowForCustomWeekendDays(t *testing.T) {
	schedules := newTestScheduleService(t)
	opts := config.DefaultOptions()
	opts.WeekendDays = []int{0} // только воскресенье
	resolver := NewShiftResolver(schedules, opts)

	sunday := time.Date(2025, 1, 5, 0, 0, 0, 0, time.Local)
	win, ok := resolver.WindowFor(7, sunday)
	if !ok {
		t.Fatal("WindowFor returned ok=false")
	}
	if win.Start.Hour() != 12 {
		t.Errorf("Sunday should use weekend hours, start = %v", win.Start)
	}

	friday := time.Date(2025, 1, 10, 0, 0, 0, 0, time.Local)
	win, _ = resolver.WindowFor(7, friday)
	if win.Start.Hour() != 5 {
		t.Errorf("Friday should use weekday hours, start = %v", win.Start)
	}
}
