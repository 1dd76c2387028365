package notifyservice

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CoachPreferences настройки уведомлений тренера из NotifyService
type CoachPreferences struct {
	CoachID                 int64 `json:"coach_id"`
	BookingConfirmedEnabled bool  `json:"booking_confirmed_enabled"`
	BookingCancelledEnabled bool  `json:"booking_cancelled_enabled"`
}

// BookingNotification уведомление о событии бронирования
type BookingNotification struct {
	AppointmentID  int64   `json:"appointment_id"`
	CoachID        int64   `json:"coach_id"`
	AthleteID      *int64  `json:"athlete_id,omitempty"`
	ClientName     *string `json:"client_name,omitempty"`
	ClientEmail    *string `json:"client_email,omitempty"`
	ClientPhone    *string `json:"client_phone,omitempty"`
	StartTime      string  `json:"start_time"` // RFC3339
	EndTime        string  `json:"end_time"`   // RFC3339
	Kind           string  `json:"kind"`       // booking_confirmed | booking_cancelled
	CancelledBy    *string `json:"cancelled_by,omitempty"`
	CancelReason   *string `json:"cancel_reason,omitempty"`
}

// ErrorResponse модель ошибки от NotifyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
