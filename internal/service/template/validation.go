package template

import (
	"fmt"

	"github.com/m04kA/CSP-BookingService/internal/domain"
)

// validateTemplate проверяет сохраняемый шаблон целиком.
// Генератор слотов терпим к уже сохранённым данным, но новые записи
// должны быть корректными: известные ключи дней, валидные интервалы
// без пересечений, параметры в допустимых границах.
func validateTemplate(t *domain.AvailabilityTemplate) error {
	if t.CoachID <= 0 {
		return fmt.Errorf("%w: coachID must be positive", ErrInvalidInput)
	}

	if t.DefaultDurationMinutes < domain.MinDurationMinutes || t.DefaultDurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: defaultDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if t.BufferMinutes < domain.MinBufferMinutes || t.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	if t.BookingWindowDays < domain.MinBookingWindowDays || t.BookingWindowDays > domain.MaxBookingWindowDays {
		return fmt.Errorf("%w: bookingWindowDays must be between %d and %d",
			ErrInvalidInput, domain.MinBookingWindowDays, domain.MaxBookingWindowDays)
	}

	if t.SessionPriceCents < 0 {
		return fmt.Errorf("%w: sessionPriceCents must not be negative", ErrInvalidInput)
	}

	if len(t.Currency) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter code", ErrInvalidInput)
	}

	for day, ranges := range t.WeeklyHours {
		if !domain.ValidDayKey(day) {
			return fmt.Errorf("%w: unknown day key %q", ErrInvalidInput, day)
		}
		if err := validateDayRanges(day, ranges); err != nil {
			return err
		}
	}

	return nil
}

// validateDayRanges проверяет интервалы одного дня: корректный формат,
// start < end, сортировка по возрастанию без пересечений.
// Граничащие интервалы (конец одного равен началу следующего) допустимы.
func validateDayRanges(day string, ranges []domain.TimeRange) error {
	for i, r := range ranges {
		if err := r.Start.Validate(); err != nil {
			return fmt.Errorf("%w: %s[%d].start: %v", ErrInvalidInput, day, i, err)
		}
		if err := r.End.Validate(); err != nil {
			return fmt.Errorf("%w: %s[%d].end: %v", ErrInvalidInput, day, i, err)
		}
		if !r.Start.IsBefore(r.End) {
			return fmt.Errorf("%w: %s[%d]: start must be before end", ErrInvalidInput, day, i)
		}

		if i > 0 && ranges[i-1].End.IsAfter(r.Start) {
			return fmt.Errorf("%w: %s[%d]: ranges must be sorted and non-overlapping", ErrInvalidInput, day, i)
		}
	}

	return nil
}
