package update_template

import (
	"context"

	"github.com/m04kA/CSP-BookingService/internal/service/template/models"
)

type TemplateService interface {
	Save(ctx context.Context, req *models.UpdateTemplateRequest) (*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
