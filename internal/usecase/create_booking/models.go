package create_booking

import (
	"time"

	"github.com/m04kA/CSP-BookingService/internal/domain"
	"github.com/m04kA/CSP-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования.
// AthleteID == nil означает внешнее бронирование: тогда обязательны
// контактные данные клиента, а у тренера должен быть включён
// приём внешних бронирований.
type Request struct {
	CoachID   int64            // ID тренера
	AthleteID *int64           // ID атлета (nil для внешнего бронирования)
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")

	Type          domain.AppointmentType // Формат сессии: video / presencial
	BillingIntent domain.BillingIntent   // Намерение оплаты: direct / package / none

	// Контакты внешнего клиента (только при AthleteID == nil)
	ClientName  *string
	ClientEmail *string
	ClientPhone *string
}

// Response модель ответа с созданной записью
type Response struct {
	ID        int64
	CoachID   int64
	AthleteID *int64

	StartTime time.Time
	EndTime   time.Time

	Status        string
	Type          string
	BillingStatus string

	// Снимок цены из шаблона на момент бронирования
	SessionPriceCents int64
	Currency          string

	ClientName  *string
	ClientEmail *string
	ClientPhone *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:                a.ID,
		CoachID:           a.CoachID,
		AthleteID:         a.AthleteID,
		StartTime:         a.StartTime,
		EndTime:           a.EndTime,
		Status:            string(a.Status),
		Type:              string(a.Type),
		BillingStatus:     string(a.BillingStatus),
		SessionPriceCents: a.SessionPriceCents,
		Currency:          a.Currency,
		ClientName:        a.ClientName,
		ClientEmail:       a.ClientEmail,
		ClientPhone:       a.ClientPhone,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}
