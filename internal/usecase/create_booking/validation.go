package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/CSP-BookingService/internal/domain"
	"github.com/m04kA/CSP-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CoachID <= 0 {
		return fmt.Errorf("%w: coachID must be positive", ErrInvalidInput)
	}

	if req.AthleteID != nil && *req.AthleteID <= 0 {
		return fmt.Errorf("%w: athleteID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if !domain.ValidAppointmentType(req.Type) {
		return fmt.Errorf("%w: unknown appointment type %q", ErrInvalidInput, req.Type)
	}

	if !domain.ValidBillingIntent(req.BillingIntent) {
		return fmt.Errorf("%w: unknown billing intent %q", ErrInvalidInput, req.BillingIntent)
	}

	// Для внешнего бронирования обязательны контакты клиента
	if req.AthleteID == nil {
		if req.ClientName == nil || strings.TrimSpace(*req.ClientName) == "" {
			return fmt.Errorf("%w: clientName is required for external booking", ErrInvalidInput)
		}
		if len(*req.ClientName) > domain.MaxClientNameLength {
			return fmt.Errorf("%w: clientName is too long", ErrInvalidInput)
		}
		hasEmail := req.ClientEmail != nil && strings.TrimSpace(*req.ClientEmail) != ""
		hasPhone := req.ClientPhone != nil && strings.TrimSpace(*req.ClientPhone) != ""
		if !hasEmail && !hasPhone {
			return fmt.Errorf("%w: clientEmail or clientPhone is required for external booking", ErrInvalidInput)
		}
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не выходит за окно бронирования
func validateDate(bookingDate time.Time, now time.Time, bookingWindowDays int) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	// bookingWindowDays = 0 означает отсутствие ограничений
	if bookingWindowDays <= 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, bookingWindowDays)

	bookingDateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())

	if bookingDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, bookingWindowDays)
	}

	return nil
}

// validateSlotInGrid проверяет, что время начала совпадает с одним из слотов,
// которые шаблон порождает на этот день: шаги duration+buffer от начала каждого
// интервала плюс слот, прижатый к концу интервала, когда шаг его перепрыгнул.
// Произвольные интервалы, даже свободные, бронировать нельзя.
func validateSlotInGrid(tmpl *domain.AvailabilityTemplate, date time.Time, startTime types.TimeString) error {
	ranges := tmpl.WeeklyHours.RangesFor(date.Weekday())

	duration := tmpl.DefaultDurationMinutes
	step := tmpl.SlotStepMinutes()

	want, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	for _, r := range ranges {
		rangeStart, err := r.Start.Minutes()
		if err != nil {
			continue
		}
		rangeEnd, err := r.End.Minutes()
		if err != nil {
			continue
		}

		lastEmitted := -1
		for pos := rangeStart; pos+duration <= rangeEnd; pos += step {
			if pos == want {
				return nil
			}
			lastEmitted = pos
		}

		if clamped := rangeEnd - duration; lastEmitted >= 0 && clamped > lastEmitted && clamped == want {
			return nil
		}
	}

	return fmt.Errorf("%w: %s is not a slot on this day", ErrInvalidTimeSlot, startTime)
}

// findOverlapping возвращает первую неотменённую запись, пересекающуюся
// с полуоткрытым интервалом [start, end). Граничащие интервалы не пересекаются.
func findOverlapping(start, end time.Time, appointments []*domain.Appointment) *domain.Appointment {
	for _, appt := range appointments {
		if appt.IsCancelled() {
			continue
		}
		if appt.Overlaps(start, end) {
			return appt
		}
	}
	return nil
}

// billingStatusFor выводит биллинговый статус записи из намерения оплаты
func billingStatusFor(intent domain.BillingIntent) domain.BillingStatus {
	switch intent {
	case domain.BillingIntentDirect:
		return domain.BillingPaid
	case domain.BillingIntentPackage:
		return domain.BillingIncluded
	default:
		return domain.BillingPending
	}
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
