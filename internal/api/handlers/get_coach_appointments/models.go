package get_coach_appointments

import (
	"time"

	"github.com/m04kA/CSP-BookingService/internal/domain"
	"github.com/m04kA/CSP-BookingService/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос к сервису из параметров маршрута.
// Даты from/to трактуются как полуоткрытый период [from, to+1d) по дням.
func ToServiceRequest(coachID, userID int64, query map[string]string) (*models.GetCoachAppointmentsRequest, error) {
	req := &models.GetCoachAppointmentsRequest{
		CoachID: coachID,
		UserID:  userID,
	}

	if fromStr := query["from"]; fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr := query["to"]; toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		// Включаем записи последнего дня периода
		toExclusive := to.AddDate(0, 0, 1)
		req.To = &toExclusive
	}

	if status := query["status"]; status != "" {
		req.Status = &status
	}

	req.IncludeCancelled = query["includeCancelled"] == "true"

	return req, nil
}
