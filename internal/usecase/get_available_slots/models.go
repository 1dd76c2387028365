package get_available_slots

import (
	"time"

	"github.com/m04kA/CSP-BookingService/internal/domain"
)

// Request модель запроса на получение слотов тренера
type Request struct {
	CoachID     int64     // ID тренера
	Date        time.Time // Дата, на которую запрашиваются слоты (без времени)
	RequesterID *int64    // ID аутентифицированного пользователя (nil для публичного запроса)
}

// Response модель ответа со списком слотов на день.
// Слоты никогда не выбрасываются из сетки - недоступные помечаются
// IsAvailable=false, чтобы вызывающая сторона видела полную сетку шаблона.
type Response struct {
	CoachID         int64         // ID тренера
	Date            time.Time     // Дата, на которую запрашивались слоты
	DurationMinutes int           // Длительность одного слота
	Slots           []domain.Slot // Полная сетка слотов с пометкой доступности
}
