package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Настройки движка по умолчанию
const (
	DefaultGraceMinutes = 15
	DefaultDedupSeconds = 60
	DefaultRollHour     = 6
)

// Options - числовые настройки расчёта посещаемости.
// weekend_days задаёт дни "выходного" графика (Sunday=0..Saturday=6);
// по умолчанию пятница и суббота.
type Options struct {
	GraceMinutes int   `toml:"grace_minutes" validate:"gte=0"`
	DedupSeconds int   `toml:"dedup_seconds" validate:"gte=0"`
	RollHour     int   `toml:"roll_hour" validate:"gte=0,lte=23"`
	WeekendDays  []int `toml:"weekend_days" validate:"max=7,dive,gte=0,lte=6"`
}

func DefaultOptions() Options {
	return Options{
		GraceMinutes: DefaultGraceMinutes,
		DedupSeconds: DefaultDedupSeconds,
		RollHour:     DefaultRollHour,
		WeekendDays:  []int{5, 6},
	}
}

// LoadOptions читает файл настроек поверх значений по умолчанию.
// Отсутствующий путь - не ошибка: возвращаются значения по умолчанию.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	if path == "" {
		return opts, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return opts, nil
	}

	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return DefaultOptions(), err
	}
	return opts, nil
}

// Validate проверяет диапазоны настроек
func (o *Options) Validate() error {
	return validator.New().Struct(o)
}

// Normalize приводит некорректные значения к значениям по умолчанию
func (o *Options) Normalize() {
	if o.GraceMinutes < 0 {
		o.GraceMinutes = DefaultGraceMinutes
	}
	if o.DedupSeconds < 0 {
		o.DedupSeconds = DefaultDedupSeconds
	}
	if o.RollHour < 0 || o.RollHour > 23 {
		o.RollHour = DefaultRollHour
	}

	days := make([]int, 0, len(o.WeekendDays))
	for _, d := range o.WeekendDays {
		if d >= 0 && d <= 6 {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		days = []int{5, 6}
	}
	o.WeekendDays = days
}

// IsWeekend проверяет, относится ли день недели к выходному графику
func (o *Options) IsWeekend(wd time.Weekday) bool {
	for _, d := range o.WeekendDays {
		if int(wd) == d {
			return true
		}
	}
	return false
}
