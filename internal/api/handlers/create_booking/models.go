package create_booking

import (
	"time"

	"github.com/m04kA/CSP-BookingService/internal/domain"
	createBooking "github.com/m04kA/CSP-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/CSP-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CoachID       int64  `json:"coachId"`
	Date          string `json:"date"`      // "2026-09-07"
	StartTime     string `json:"startTime"` // "10:00"
	Type          string `json:"type"`      // video | presencial
	BillingIntent string `json:"billingIntent"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID        int64  `json:"id"`
	CoachID   int64  `json:"coachId"`
	AthleteID *int64 `json:"athleteId,omitempty"`

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
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(athleteID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CoachID:       r.CoachID,
		AthleteID:     &athleteID,
		Date:          date,
		StartTime:     startTime,
		Type:          domain.AppointmentType(r.Type),
		BillingIntent: domain.BillingIntent(r.BillingIntent),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                resp.ID,
		CoachID:           resp.CoachID,
		AthleteID:         resp.AthleteID,
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
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}
}
