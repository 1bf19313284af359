package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.GraceMinutes != DefaultGraceMinutes {
		t.Errorf("GraceMinutes = %d, want %d", opts.GraceMinutes, DefaultGraceMinutes)
	}
	if opts.DedupSeconds != DefaultDedupSeconds {
		t.Errorf("DedupSeconds = %d, want %d", opts.DedupSeconds, DefaultDedupSeconds)
	}
	if opts.RollHour != DefaultRollHour {
		t.Errorf("RollHour = %d, want %d", opts.RollHour, DefaultRollHour)
	}
	if len(opts.WeekendDays) != 2 || opts.WeekendDays[0] != 5 || opts.WeekendDays[1] != 6 {
		t.Errorf("WeekendDays = %v, want [5 6]", opts.WeekendDays)
	}
}

func TestLoadOptionsMissingPath(t *testing.T) {
	opts, err := LoadOptions("")
	if err != nil {
		t.Fatalf("LoadOptions(\"\") error: %v", err)
	}
	if opts.GraceMinutes != DefaultGraceMinutes || opts.DedupSeconds != DefaultDedupSeconds {
		t.Errorf("empty path should yield defaults, got %+v", opts)
	}

	opts, err = LoadOptions(filepath.Join(t.TempDir(), "no-such-file.toml"))
	if err != nil {
		t.Fatalf("LoadOptions(missing) error: %v", err)
	}
	if opts.RollHour != DefaultRollHour {
		t.Errorf("missing file should yield defaults, got %+v", opts)
	}
}

func TestLoadOptionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.toml")
	body := "grace_minutes = 20\nweekend_days = [0]\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write options file: %v", err)
	}

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions error: %v", err)
	}
	if opts.GraceMinutes != 20 {
		t.Errorf("GraceMinutes = %d, want 20", opts.GraceMinutes)
	}
	// незаданные поля остаются значениями по умолчанию
	if opts.DedupSeconds != DefaultDedupSeconds {
		t.Errorf("DedupSeconds = %d, want %d", opts.DedupSeconds, DefaultDedupSeconds)
	}
	if len(opts.WeekendDays) != 1 || opts.WeekendDays[0] != 0 {
		t.Errorf("WeekendDays = %v, want [0]", opts.WeekendDays)
	}
	if !opts.IsWeekend(time.Sunday) {
		t.Error("Sunday should be a weekend with weekend_days = [0]")
	}
	if opts.IsWeekend(time.Friday) {
		t.Error("Friday should not be a weekend with weekend_days = [0]")
	}
}

func TestOptionsValidate(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}

	opts.RollHour = 30
	if err := opts.Validate(); err == nil {
		t.Error("RollHour = 30 should fail validation")
	}

	opts = DefaultOptions()
	opts.WeekendDays = []int{9}
	if err := opts.Validate(); err == nil {
		t.Error("weekend day 9 should fail validation")
	}
}

func TestOptionsNormalize(t *testing.T) {
	opts := Options{
		GraceMinutes: -5,
		DedupSeconds: -1,
		RollHour:     99,
		WeekendDays:  []int{7, -1, 5},
	}
	opts.Normalize()

	if opts.GraceMinutes != DefaultGraceMinutes {
		t.Errorf("GraceMinutes = %d, want %d", opts.GraceMinutes, DefaultGraceMinutes)
	}
	if opts.DedupSeconds != DefaultDedupSeconds {
		t.Errorf("DedupSeconds = %d, want %d", opts.DedupSeconds, DefaultDedupSeconds)
	}
	if opts.RollHour != DefaultRollHour {
		t.Errorf("RollHour = %d, want %d", opts.RollHour, DefaultRollHour)
	}
	if len(opts.WeekendDays) != 1 || opts.WeekendDays[0] != 5 {
		t.Errorf("WeekendDays = %v, want [5]", opts.WeekendDays)
	}

	opts.WeekendDays = []int{8}
	opts.Normalize()
	if len(opts.WeekendDays) != 2 || opts.WeekendDays[0] != 5 || opts.WeekendDays[1] != 6 {
		t.Errorf("all-invalid weekend days should reset to [5 6], got %v", opts.WeekendDays)
	}
}
