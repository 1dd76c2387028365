package create_external_booking

import (
	"time"

	"github.com/m04kA/CSP-BookingService/internal/domain"
	createBooking "github.com/m04kA/CSP-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/CSP-BookingService/pkg/types"
)

// CreateExternalBookingRequest HTTP request model.
// Внешний клиент не имеет аккаунта - вместо athleteId передаются контакты.
type CreateExternalBookingRequest struct {
	Date          string  `json:"date"`      // "2026-09-07"
	StartTime     string  `json:"startTime"` // "10:00"
	Type          string  `json:"type"`      // video | presencial
	BillingIntent string  `json:"billingIntent"`
	ClientName    string  `json:"clientName"`
	ClientEmail   *string `json:"clientEmail,omitempty"`
	ClientPhone   *string `json:"clientPhone,omitempty"`
}

// ExternalAppointmentResponse HTTP response model
type ExternalAppointmentResponse struct {
	ID      int64 `json:"id"`
	CoachID int64 `json:"coachId"`

	StartTime string `json:"startTime"` // RFC 3339
	EndTime   string `json:"endTime"`   // RFC 3339

	Status        string `json:"status"`
	Type          string `json:"type"`
	BillingStatus string `json:"billingStatus"`

	SessionPriceCents int64  `json:"sessionPriceCents"`
	Currency          string `json:"currency"`

	ClientName  *string `json:"clientName,omitempty"`
	ClientEmail *string `json:"clientEmail,omitempty"`
	ClientPhone *string `json:"clientPhone,omitempty"`

	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateExternalBookingRequest) ToUseCaseRequest(coachID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		CoachID:       coachID,
		Date:          date,
		StartTime:     startTime,
		Type:          domain.AppointmentType(r.Type),
		BillingIntent: domain.BillingIntent(r.BillingIntent),
		ClientEmail:   r.ClientEmail,
		ClientPhone:   r.ClientPhone,
	}
	if r.ClientName != "" {
		clientName := r.ClientName
		req.ClientName = &clientName
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *ExternalAppointmentResponse {
	return &ExternalAppointmentResponse{
		ID:                resp.ID,
		CoachID:           resp.CoachID,
		StartTime:         resp.StartTime.Format(time.RFC3339),
		EndTime:           resp.EndTime.Format(time.RFC3339),
		Status:            resp.Status,
		Type:              resp.Type,
		BillingStatus:     resp.BillingStatus,
		SessionPriceCents: resp.SessionPriceCents,
		Currency:          resp.Currency,
		ClientName:        resp.ClientName,
		ClientEmail:       resp.ClientEmail,
		ClientPhone:       resp.ClientPhone,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
	}
}
