package models

import (
	"time"

	"github.com/m04kA/CSP-BookingService/internal/domain"
)

// Request модели

// UpdateTemplateRequest запрос на сохранение шаблона доступности.
// Шаблон сохраняется целиком - частичные обновления полей не поддерживаются.
type UpdateTemplateRequest struct {
	UserID  int64 `json:"userId"`
	CoachID int64 `json:"coachId"`

	WeeklyHours            domain.WeeklyHours `json:"weeklyHours"`
	DefaultDurationMinutes int                `json:"defaultDurationMinutes"`
	BufferMinutes          int                `json:"bufferMinutes"`
	BookingWindowDays      int                `json:"bookingWindowDays"`

	SessionPriceCents int64  `json:"sessionPriceCents"`
	Currency          string `json:"currency"`

	IsPublicListing          bool `json:"isPublicListing"`
	IsExternalBookingEnabled bool `json:"isExternalBookingEnabled"`
}

// ToDomainTemplate конвертирует request в domain модель
func (r *UpdateTemplateRequest) ToDomainTemplate() *domain.AvailabilityTemplate {
	weeklyHours := r.WeeklyHours
	if weeklyHours == nil {
		weeklyHours = domain.WeeklyHours{}
	}

	return &domain.AvailabilityTemplate{
		CoachID:                  r.CoachID,
		WeeklyHours:              weeklyHours,
		DefaultDurationMinutes:   r.DefaultDurationMinutes,
		BufferMinutes:            r.BufferMinutes,
		BookingWindowDays:        r.BookingWindowDays,
		SessionPriceCents:        r.SessionPriceCents,
		Currency:                 r.Currency,
		IsPublicListing:          r.IsPublicListing,
		IsExternalBookingEnabled: r.IsExternalBookingEnabled,
	}
}

// Response модели

// TemplateResponse ответ с шаблоном доступности
type TemplateResponse struct {
	CoachID int64 `json:"coachId"`

	WeeklyHours            domain.WeeklyHours `json:"weeklyHours"`
	DefaultDurationMinutes int                `json:"defaultDurationMinutes"`
	BufferMinutes          int                `json:"bufferMinutes"`
	BookingWindowDays      int                `json:"bookingWindowDays"`

	SessionPriceCents int64  `json:"sessionPriceCents"`
	Currency          string `json:"currency"`

	IsPublicListing          bool `json:"isPublicListing"`
	IsExternalBookingEnabled bool `json:"isExternalBookingEnabled"`

	Version   int64      `json:"version"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainTemplate конвертирует domain модель в DTO
func FromDomainTemplate(t *domain.AvailabilityTemplate) *TemplateResponse {
	if t == nil {
		return nil
	}

	resp := &TemplateResponse{
		CoachID:                  t.CoachID,
		WeeklyHours:              t.WeeklyHours,
		DefaultDurationMinutes:   t.DefaultDurationMinutes,
		BufferMinutes:            t.BufferMinutes,
		BookingWindowDays:        t.BookingWindowDays,
		SessionPriceCents:        t.SessionPriceCents,
		Currency:                 t.Currency,
		IsPublicListing:          t.IsPublicListing,
		IsExternalBookingEnabled: t.IsExternalBookingEnabled,
		Version:                  t.Version,
	}

	if !t.CreatedAt.IsZero() {
		createdAt := t.CreatedAt
		resp.CreatedAt = &createdAt
	}
	if !t.UpdatedAt.IsZero() {
		updatedAt := t.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
