package billingservice

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CaptureRequest запрос на списание оплаты за сессию
type CaptureRequest struct {
	AppointmentID int64   `json:"appointment_id"`
	CoachID       int64   `json:"coach_id"`
	AmountCents   int64   `json:"amount_cents"`
	Currency      string  `json:"currency"`
	ClientEmail   *string `json:"client_email,omitempty"`
}

// CaptureResponse результат списания
type CaptureResponse struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
}

// ErrorResponse модель ошибки от BillingService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
