package billingservice

import "errors"

var (
	// ErrCaptureDeclined возвращается, когда платёж отклонён
	ErrCaptureDeclined = errors.New("billingservice client: payment capture declined")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("billingservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("billingservice client: invalid response")
)
