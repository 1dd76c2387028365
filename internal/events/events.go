package events

import "github.com/m04kA/CSP-BookingService/internal/domain"

// Event доменное событие, публикуемое после коммита транзакции.
// Движок бронирования не знает про уведомления и биллинг - он только
// публикует события, подписчики решают, что с ними делать.
type Event interface {
	Name() string
}

// BookingConfirmed публикуется после успешного создания записи
type BookingConfirmed struct {
	Appointment *domain.Appointment
}

// Name возвращает имя события
func (BookingConfirmed) Name() string { return "booking_confirmed" }

// BookingCancelled публикуется после отмены записи
type BookingCancelled struct {
	Appointment *domain.Appointment
}

// Name возвращает имя события
func (BookingCancelled) Name() string { return "booking_cancelled" }
