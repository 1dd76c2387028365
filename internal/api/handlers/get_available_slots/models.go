package get_available_slots

import (
	"time"

	"github.com/m04kA/CSP-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/CSP-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	CoachID         int64  `json:"coachId"`
	Date            string `json:"date"`
	DurationMinutes int    `json:"durationMinutes"`
	Slots           []Slot `json:"slots"`
}

// Slot модель слота: время начала и пометка доступности.
// Недоступные слоты остаются в списке.
type Slot struct {
	Time        string `json:"time"`
	IsAvailable bool   `json:"isAvailable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			Time:        slot.Time.String(),
			IsAvailable: slot.IsAvailable,
		}
	}

	return &AvailableSlotsResponse{
		CoachID:         resp.CoachID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров маршрута
func ToUseCaseRequest(coachID int64, dateStr string, requesterID *int64) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		CoachID:     coachID,
		Date:        date,
		RequesterID: requesterID,
	}, nil
}
