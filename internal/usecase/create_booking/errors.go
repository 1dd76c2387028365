package create_booking

import "errors"

var (
	// ErrTemplateNotFound возвращается, когда у тренера нет шаблона доступности
	ErrTemplateNotFound = errors.New("create_booking: coach has no availability template")

	// ErrExternalBookingDisabled возвращается, когда тренер не принимает внешние бронирования
	ErrExternalBookingDisabled = errors.New("create_booking: external booking is disabled for this coach")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает окно бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда время начала не совпадает
	// ни с одним слотом из сетки шаблона на этот день
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается при попытке забронировать уже начавшийся слот
	ErrTooLateToBook = errors.New("create_booking: slot start time has already passed")

	// ErrSlotConflict возвращается, когда слот пересекается с подтверждённой записью
	ErrSlotConflict = errors.New("create_booking: slot conflicts with an existing appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
