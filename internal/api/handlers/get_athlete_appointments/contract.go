package get_athlete_appointments

import (
	"context"

	"github.com/m04kA/CSP-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetAthleteAppointments(ctx context.Context, req *models.GetAthleteAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
