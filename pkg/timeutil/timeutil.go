package timeutil

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

// DayNamesAr - имена дней недели, как их печатает устройство (Sunday=0)
var DayNamesAr = [7]string{"الأحد", "الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت"}

var hhmmRegexp = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// DayName возвращает имя дня недели для даты
func DayName(d time.Time) string {
	return DayNamesAr[int(d.Weekday())]
}

// Midnight обрезает время до полуночи того же календарного дня
func Midnight(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// AddDays сдвигает дату на n календарных дней
func AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// MinutesDiff возвращает округлённую разницу в минутах (later - earlier)
func MinutesDiff(later, earlier time.Time) int {
	return int(math.Round(later.Sub(earlier).Minutes()))
}

// FormatDate форматирует дату как dd/mm/yyyy
func FormatDate(d time.Time) string {
	return d.Format("02/01/2006")
}

// YMD форматирует дату как yyyy-mm-dd (ключ для группировок)
func YMD(d time.Time) string {
	return d.Format("2006-01-02")
}

// FormatDateTime форматирует дату и время как dd/mm/yyyy hh:mm:ss
func FormatDateTime(d time.Time) string {
	return d.Format("02/01/2006 15:04:05")
}

// FormatTime12 форматирует время в 12-часовом виде с AM/PM
func FormatTime12(d time.Time) string {
	return d.Format("03:04:05 PM")
}

// ParseHHMM разбирает строку вида "H:MM"/"HH:MM" с проверкой диапазонов
func ParseHHMM(s string) (hh, mm int, ok bool) {
	m := hhmmRegexp.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	hh, _ = strconv.Atoi(m[1])
	mm, _ = strconv.Atoi(m[2])
	if hh > 23 || mm > 59 {
		return 0, 0, false
	}
	return hh, mm, true
}

// HHMMOk проверяет, что строка является корректным временем "HH:MM"
func HHMMOk(s string) bool {
	_, _, ok := ParseHHMM(s)
	return ok
}
