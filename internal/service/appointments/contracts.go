package appointments

import (
	"context"

	"github.com/m04kA/CSP-BookingService/internal/domain"
	"github.com/m04kA/CSP-BookingService/internal/events"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByAthleteID(ctx context.Context, athleteID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByCoachWithFilter(ctx context.Context, filter domain.CoachAppointmentsFilter) ([]*domain.Appointment, error)
	Cancel(ctx context.Context, id int64, actor domain.CancelActor, reason *string) error
}

// EventDispatcher публикация доменных событий
type EventDispatcher interface {
	Dispatch(event events.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
