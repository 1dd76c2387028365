package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/CSP-BookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetByCoachWithFilter получает записи тренера за период
	GetByCoachWithFilter(ctx context.Context, filter domain.CoachAppointmentsFilter) ([]*domain.Appointment, error)
}

// TemplateRepository интерфейс репозитория шаблонов доступности
type TemplateRepository interface {
	GetByCoachID(ctx context.Context, coachID int64) (*domain.AvailabilityTemplate, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
