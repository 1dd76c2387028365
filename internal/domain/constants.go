package domain

import "time"

// Default template values (выдаются тренеру при онбординге)
const (
	DefaultDurationMinutes   = 60
	DefaultBufferMinutes     = 0
	DefaultBookingWindowDays = 30
	DefaultCurrency          = "BRL"
)

// Business validation constants
const (
	MinDurationMinutes          = 5
	MaxDurationMinutes          = 480 // 8 hours
	MinBufferMinutes            = 0
	MaxBufferMinutes            = 240 // 4 hours
	MinBookingWindowDays        = 0
	MaxBookingWindowDays        = 365 // 1 year
	MaxCancellationReasonLength = 500
	MaxClientNameLength         = 255
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DayKeys ключи дней недели в недельном расписании, в порядке Mon..Sun.
// Трёхбуквенные английские аббревиатуры в нижнем регистре - формат хранения,
// менять нельзя.
var DayKeys = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

var weekdayKeys = map[time.Weekday]string{
	time.Monday:    "mon",
	time.Tuesday:   "tue",
	time.Wednesday: "wed",
	time.Thursday:  "thu",
	time.Friday:    "fri",
	time.Saturday:  "sat",
	time.Sunday:    "sun",
}

// DayKeyFor возвращает ключ расписания для дня недели
func DayKeyFor(weekday time.Weekday) string {
	return weekdayKeys[weekday]
}

// ValidDayKey проверяет, что строка - допустимый ключ дня недели
func ValidDayKey(key string) bool {
	for _, k := range DayKeys {
		if k == key {
			return true
		}
	}
	return false
}
