package template

import (
	"context"

	"github.com/m04kA/CSP-BookingService/internal/domain"
)

// TemplateRepository интерфейс репозитория шаблонов доступности
type TemplateRepository interface {
	GetByCoachID(ctx context.Context, coachID int64) (*domain.AvailabilityTemplate, error)
	Save(ctx context.Context, tmpl *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
