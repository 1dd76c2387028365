package get_coach_appointments

import (
	"context"

	"github.com/m04kA/CSP-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetCoachAppointments(ctx context.Context, req *models.GetCoachAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
