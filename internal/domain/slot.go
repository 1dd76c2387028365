package domain

import "github.com/m04kA/CSP-BookingService/pkg/types"

// Slot represents a candidate time position within a day.
// Эфемерная модель: генерируется заново на каждый запрос доступности
// и не имеет идентичности между запросами.
type Slot struct {
	Time        types.TimeString
	IsAvailable bool
}
