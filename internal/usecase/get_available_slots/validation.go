package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CoachID <= 0 {
		return fmt.Errorf("%w: coachID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateBookingWindow проверяет, что дата не превышает окно бронирования тренера.
// Даты в прошлом допустимы: прошедшие слоты просто помечаются недоступными.
func validateBookingWindow(requestDate time.Time, now time.Time, bookingWindowDays int) error {
	// bookingWindowDays = 0 означает отсутствие ограничений
	if bookingWindowDays <= 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, bookingWindowDays)

	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())

	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only view %d days in advance", ErrDateTooFarInFuture, bookingWindowDays)
	}

	return nil
}
