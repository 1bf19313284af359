package service

import (
	"strings"
	"testing"

	"attendance-engine/internal/config"
	"attendance-engine/internal/models"
)

func newTestDailyService(t *testing.T) *DailyService {
	t.Helper()
	schedules := newTestScheduleService(t)
	opts := config.DefaultOptions()
	resolver := NewShiftResolver(schedules, opts)
	return NewDailyService(schedules, resolver, opts)
}

func TestParseMonthKey(t *testing.T) {
	if y, m, ok := ParseMonthKey("2025-01"); !ok || y != 2025 || m != 1 {
		t.Errorf("ParseMonthKey(2025-01) = (%d, %d, %v)", y, m, ok)
	}
	for _, bad := range []string{"ALL", "2025", "2025-13", "2025-00", "abcd-ef"} {
		if _, _, ok := ParseMonthKey(bad); ok {
			t.Errorf("ParseMonthKey(%q) should fail", bad)
		}
	}
}

func TestAggregateSinglePunchIrregular(t *testing.T) {
	svc := newTestDailyService(t)

	// понедельник, график 14:30-01:00, отметка в 15:15
	punches := []models.PunchEvent{punchAt(t, 2, "2025-01-06 15:15:00")}
	daily := svc.Aggregate(punches, MonthAll, 2)
	if len(daily) != 1 {
		t.Fatalf("len(daily) = %d, want 1", len(daily))
	}

	r := daily[0]
	if r.Status != models.StatusIrregular {
		t.Errorf("Status = %q, want %q", r.Status, models.StatusIrregular)
	}
	if r.WorkMinutes != 0 {
		t.Errorf("WorkMinutes = %d, want 0 for a single punch", r.WorkMinutes)
	}
	// опоздание 45 минут минус льготные 15
	if r.LateMinutes != 30 {
		t.Errorf("LateMinutes = %d, want 30", r.LateMinutes)
	}
	if r.OTMinutes != 0 {
		t.Errorf("OTMinutes = %d, want 0 for a single punch", r.OTMinutes)
	}
	if r.ActualOut != models.NoTime {
		t.Errorf("ActualOut = %q, want %q", r.ActualOut, models.NoTime)
	}
	if r.Present != "YES" || r.Absent != "NO" {
		t.Errorf("Present/Absent = %q/%q", r.Present, r.Absent)
	}
}

func TestAggregateOvernightShift(t *testing.T) {
	svc := newTestDailyService(t)

	// вход в начало смены, выход после полуночи: обе отметки - одна смена
	punches := []models.PunchEvent{
		punchAt(t, 2, "2025-01-06 14:30:00"),
		punchAt(t, 2, "2025-01-07 01:55:00"),
	}
	daily := svc.Aggregate(punches, MonthAll, 2)
	if len(daily) != 1 {
		t.Fatalf("len(daily) = %d, want 1", len(daily))
	}

	r := daily[0]
	if r.ShiftDate != "06/01/2025" {
		t.Errorf("ShiftDate = %q, want 06/01/2025", r.ShiftDate)
	}
	if r.Status != models.StatusRegular {
		t.Errorf("Status = %q, want %q", r.Status, models.StatusRegular)
	}
	if r.WorkMinutes != 685 {
		t.Errorf("WorkMinutes = %d, want 685", r.WorkMinutes)
	}
	if r.LateMinutes != 0 {
		t.Errorf("LateMinutes = %d, want 0", r.LateMinutes)
	}
	// плановый конец 01:00, фактический выход 01:55
	if r.OTMinutes != 55 {
		t.Errorf("OTMinutes = %d, want 55", r.OTMinutes)
	}
}

func TestAggregateGracePeriod(t *testing.T) {
	svc := newTestDailyService(t)

	// опоздание на 10 минут в пределах льготного периода
	punches := []models.PunchEvent{
		punchAt(t, 2, "2025-01-06 14:40:00"),
		punchAt(t, 2, "2025-01-06 23:00:00"),
	}
	daily := svc.Aggregate(punches, MonthAll, 2)
	if len(daily) != 1 {
		t.Fatalf("len(daily) = %d, want 1", len(daily))
	}
	if daily[0].LateMinutes != 0 {
		t.Errorf("LateMinutes = %d, want 0 within grace", daily[0].LateMinutes)
	}
}

func TestAggregateFillsAbsentDays(t *testing.T) {
	svc := newTestDailyService(t)

	punches := []models.PunchEvent{
		punchAt(t, 2, "2025-01-06 15:00:00"),
		punchAt(t, 2, "2025-01-08 15:00:00"),
	}
	daily := svc.Aggregate(punches, MonthAll, 2)
	if len(daily) != 3 {
		t.Fatalf("len(daily) = %d, want 3 (two punches + one absence)", len(daily))
	}

	absent := daily[1]
	if absent.ShiftDate != "07/01/2025" {
		t.Errorf("absent ShiftDate = %q, want 07/01/2025", absent.ShiftDate)
	}
	if absent.Status != models.StatusAbsent {
		t.Errorf("Status = %q, want %q", absent.Status, models.StatusAbsent)
	}
	if absent.ActualIn != models.NoTime || absent.ActualOut != models.NoTime {
		t.Errorf("ActualIn/Out = %q/%q", absent.ActualIn, absent.ActualOut)
	}
	if absent.Present != "NO" || absent.Absent != "YES" {
		t.Errorf("Present/Absent = %q/%q", absent.Present, absent.Absent)
	}
}

func TestAggregateManagerExempt(t *testing.T) {
	svc := newTestDailyService(t)

	// сотрудник 1 - руководитель: нет опозданий, переработок и отсутствий
	punches := []models.PunchEvent{
		punchAt(t, 1, "2025-01-06 18:00:00"),
		punchAt(t, 2, "2025-01-06 15:00:00"),
		punchAt(t, 2, "2025-01-08 15:00:00"),
	}
	daily := svc.Aggregate(punches, MonthAll, 2)

	var managerRows, managerAbsent int
	for _, r := range daily {
		if r.EmployeeID != 1 {
			continue
		}
		managerRows++
		if r.Status == models.StatusAbsent {
			managerAbsent++
		}
		if r.LateMinutes != 0 || r.OTMinutes != 0 {
			t.Errorf("manager row has late/OT: %+v", r)
		}
		if r.Present != "" || r.Absent != "" {
			t.Errorf("manager Present/Absent should be blank: %+v", r)
		}
	}
	if managerRows != 1 {
		t.Errorf("manager rows = %d, want 1 (punch day only)", managerRows)
	}
	if managerAbsent != 0 {
		t.Errorf("manager should never be marked absent")
	}
}

func TestAggregateMonthFilter(t *testing.T) {
	svc := newTestDailyService(t)

	punches := []models.PunchEvent{
		punchAt(t, 2, "2025-01-06 15:00:00"),
		punchAt(t, 2, "2025-02-10 15:00:00"),
	}
	daily := svc.Aggregate(punches, "2025-01", 2)

	// весь январь: одна отметка + 30 отсутствий
	if len(daily) != 31 {
		t.Fatalf("len(daily) = %d, want 31", len(daily))
	}
	for _, r := range daily {
		if strings.HasSuffix(r.ShiftDate, "/02/2025") {
			t.Errorf("February row leaked into January filter: %+v", r)
		}
	}

	present := 0
	for _, r := range daily {
		if r.Status != models.StatusAbsent {
			present++
		}
	}
	if present != 1 {
		t.Errorf("present rows = %d, want 1", present)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	svc := newTestDailyService(t)
	daily := svc.Aggregate(nil, MonthAll, 5)
	if len(daily) != 0 {
		t.Errorf("len(daily) = %d, want 0 for no punches", len(daily))
	}
}

func TestAggregateSortOrder(t *testing.T) {
	svc := newTestDailyService(t)

	punches := []models.PunchEvent{
		punchAt(t, 3, "2025-01-06 17:00:00"),
		punchAt(t, 2, "2025-01-07 15:00:00"),
		punchAt(t, 2, "2025-01-06 15:00:00"),
	}
	daily := svc.Aggregate(punches, MonthAll, 3)

	for i := 1; i < len(daily); i++ {
		prev, cur := daily[i-1], daily[i]
		if prev.EmployeeID > cur.EmployeeID {
			t.Fatalf("rows not sorted by employee: %d before %d", prev.EmployeeID, cur.EmployeeID)
		}
		if prev.EmployeeID == cur.EmployeeID && prev.ShiftDate > cur.ShiftDate {
			t.Fatalf("rows not sorted by shift date: %s before %s", prev.ShiftDate, cur.ShiftDate)
		}
	}
}

func TestTotals(t *testing.T) {
	svc := newTestDailyService(t)

	rows := []models.DailyRecord{
		{Status: models.StatusRegular, WorkMinutes: 480, LateMinutes: 10, OTMinutes: 30, Present: "YES", Absent: "NO"},
		{Status: models.StatusIrregular, LateMinutes: 20, Present: "YES", Absent: "NO"},
		{Status: models.StatusAbsent, Present: "NO", Absent: "YES"},
	}
	totals := svc.Totals(rows)

	if totals.WorkMinutes != 480 || totals.LateMinutes != 30 || totals.OTMinutes != 30 {
		t.Errorf("totals = %+v", totals)
	}
	if totals.PresentDays != 2 || totals.AbsentDays != 1 || totals.IrregularDays != 1 {
		t.Errorf("day counters = %+v", totals)
	}
}
