package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	// StatusConfirmed бронирование подтверждается синхронно при создании
	StatusConfirmed AppointmentStatus = "confirmed"
	// StatusCancelled терминальный статус, повторное бронирование записи невозможно
	StatusCancelled AppointmentStatus = "cancelled"
)

// BillingStatus represents the billing state of an appointment.
// Не влияет на доступность слотов.
type BillingStatus string

const (
	BillingPending  BillingStatus = "pending"
	BillingPaid     BillingStatus = "paid"
	BillingIncluded BillingStatus = "included"
)

// BillingIntent намерение оплаты, передаётся клиентом при создании бронирования
type BillingIntent string

const (
	// BillingIntentDirect прямая оплата (внешний клиент платит за сессию)
	BillingIntentDirect BillingIntent = "direct"
	// BillingIntentPackage сессия покрывается действующим пакетом тренера
	BillingIntentPackage BillingIntent = "package"
	// BillingIntentNone оплата будет урегулирована позже
	BillingIntentNone BillingIntent = "none"
)

// CancelActor кто отменил бронирование
type CancelActor string

const (
	CancelledByCoach    CancelActor = "coach"
	CancelledByAthlete  CancelActor = "athlete"
	CancelledByExternal CancelActor = "external"
)

// AppointmentType represents the session format
type AppointmentType string

const (
	TypeVideo      AppointmentType = "video"
	TypePresencial AppointmentType = "presencial"
)

// Appointment represents a booked session between a coach and a client.
// AthleteID пуст для внешних бронирований - тогда заполняются ClientName/Email/Phone.
type Appointment struct {
	ID        int64
	CoachID   int64
	AthleteID *int64

	StartTime time.Time // UTC
	EndTime   time.Time // UTC, StartTime + длительность слота на момент создания

	Status        AppointmentStatus
	Type          AppointmentType
	BillingStatus BillingStatus

	SessionPriceCents int64
	Currency          string

	// Контакты внешнего клиента (только при AthleteID == nil)
	ClientName  *string
	ClientEmail *string
	ClientPhone *string

	CancelledBy        *CancelActor
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IsExternal returns true for bookings made without an athlete account
func (a *Appointment) IsExternal() bool {
	return a.AthleteID == nil
}

// Overlaps проверяет пересечение с полуоткрытым интервалом [start, end).
// Граничащие интервалы (конец одного равен началу другого) НЕ пересекаются.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && start.Before(a.EndTime)
}

// CoachAppointmentsFilter фильтр для получения записей тренера
type CoachAppointmentsFilter struct {
	CoachID          int64      // Обязательный параметр
	From             *time.Time // Начало периода (опционально)
	To               *time.Time // Конец периода, не включается (опционально)
	Status           *AppointmentStatus
	IncludeCancelled bool // Включать ли отменённые записи
}

// ValidCancelActor проверяет допустимость значения актора отмены
func ValidCancelActor(actor CancelActor) bool {
	switch actor {
	case CancelledByCoach, CancelledByAthlete, CancelledByExternal:
		return true
	default:
		return false
	}
}

// ValidAppointmentType проверяет допустимость формата сессии
func ValidAppointmentType(t AppointmentType) bool {
	return t == TypeVideo || t == TypePresencial
}

// ValidBillingIntent проверяет допустимость намерения оплаты
func ValidBillingIntent(i BillingIntent) bool {
	switch i {
	case BillingIntentDirect, BillingIntentPackage, BillingIntentNone:
		return true
	default:
		return false
	}
}
