package get_template

import (
	"context"

	"github.com/m04kA/CSP-BookingService/internal/service/template/models"
)

type TemplateService interface {
	Get(ctx context.Context, coachID int64, userID int64) (*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
