package domain

import (
	"time"

	"github.com/m04kA/CSP-BookingService/pkg/types"
)

// TimeRange интервал рабочего времени внутри дня, [Start, End)
type TimeRange struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// WeeklyHours недельное расписание: ключи "mon".."sun", значения - упорядоченные
// списки интервалов. Формат ключей и времени фиксирован для совместимости
// с уже сохранёнными шаблонами.
type WeeklyHours map[string][]TimeRange

// RangesFor возвращает интервалы для дня недели.
// Отсутствующий ключ означает полностью закрытый день.
func (w WeeklyHours) RangesFor(weekday time.Weekday) []TimeRange {
	return w[DayKeyFor(weekday)]
}

// AvailabilityTemplate represents a coach's recurring weekly availability
// plus slot parameters. Один активный шаблон на тренера; сохраняется целиком
// (без частичных обновлений полей), Version увеличивается при каждом сохранении.
type AvailabilityTemplate struct {
	CoachID int64

	WeeklyHours            WeeklyHours
	DefaultDurationMinutes int
	BufferMinutes          int
	BookingWindowDays      int

	SessionPriceCents int64
	Currency          string

	IsPublicListing          bool
	IsExternalBookingEnabled bool

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SlotStepMinutes шаг генерации слотов: длительность сессии плюс буфер
func (t *AvailabilityTemplate) SlotStepMinutes() int {
	return t.DefaultDurationMinutes + t.BufferMinutes
}

// HasBookingWindowLimit returns true if there's a limit on how far ahead booking is permitted
func (t *AvailabilityTemplate) HasBookingWindowLimit() bool {
	return t.BookingWindowDays > 0
}

// NewDefaultTemplate шаблон с дефолтными параметрами, создаётся при онбординге тренера
func NewDefaultTemplate(coachID int64) *AvailabilityTemplate {
	return &AvailabilityTemplate{
		CoachID:                  coachID,
		WeeklyHours:              WeeklyHours{},
		DefaultDurationMinutes:   DefaultDurationMinutes,
		BufferMinutes:            DefaultBufferMinutes,
		BookingWindowDays:        DefaultBookingWindowDays,
		Currency:                 DefaultCurrency,
		IsPublicListing:          false,
		IsExternalBookingEnabled: false,
	}
}
