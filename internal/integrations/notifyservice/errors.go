package notifyservice

import "errors"

var (
	// ErrPreferencesNotFound возвращается, когда у тренера нет настроек уведомлений.
	// Вызывающий код трактует отсутствие настроек как "уведомления включены".
	ErrPreferencesNotFound = errors.New("notifyservice client: coach preferences not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notifyservice client: invalid response")
)
