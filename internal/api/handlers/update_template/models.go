package update_template

import (
	"github.com/m04kA/CSP-BookingService/internal/domain"
	"github.com/m04kA/CSP-BookingService/internal/service/template/models"
)

// UpdateTemplateRequest HTTP request model.
// Шаблон передаётся целиком - отсутствующие поля означают нулевые значения.
type UpdateTemplateRequest struct {
	WeeklyHours            domain.WeeklyHours `json:"weeklyHours"`
	DefaultDurationMinutes int                `json:"defaultDurationMinutes"`
	BufferMinutes          int                `json:"bufferMinutes"`
	BookingWindowDays      int                `json:"bookingWindowDays"`

	SessionPriceCents int64  `json:"sessionPriceCents"`
	Currency          string `json:"currency"`

	IsPublicListing          bool `json:"isPublicListing"`
	IsExternalBookingEnabled bool `json:"isExternalBookingEnabled"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateTemplateRequest) ToServiceRequest(coachID, userID int64) *models.UpdateTemplateRequest {
	return &models.UpdateTemplateRequest{
		UserID:                   userID,
		CoachID:                  coachID,
		WeeklyHours:              r.WeeklyHours,
		DefaultDurationMinutes:   r.DefaultDurationMinutes,
		BufferMinutes:            r.BufferMinutes,
		BookingWindowDays:        r.BookingWindowDays,
		SessionPriceCents:        r.SessionPriceCents,
		Currency:                 r.Currency,
		IsPublicListing:          r.IsPublicListing,
		IsExternalBookingEnabled: r.IsExternalBookingEnabled,
	}
}
