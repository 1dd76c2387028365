package get_available_slots

import "errors"

var (
	// ErrDateTooFarInFuture возвращается, когда дата превышает окно бронирования тренера
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrListingNotPublic возвращается, когда расписание тренера скрыто
	// и запрос пришёл без аутентификации
	ErrListingNotPublic = errors.New("get_available_slots: coach listing is not public")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
