package get_available_slots

import (
	"time"

	"github.com/m04kA/CSP-BookingService/internal/domain"
	"github.com/m04kA/CSP-BookingService/pkg/types"
)

// generateCandidates разворачивает недельный шаблон в сетку слотов-кандидатов
// на указанную дату. Чистая функция: одинаковые (шаблон, дата) всегда дают
// одинаковый упорядоченный список.
//
// Каждый интервал дня обходится независимо, в порядке объявления, с шагом
// duration+buffer от начала интервала. Слот попадает в сетку, если его конец
// не выходит за конец интервала (конец ровно на границе допустим). Если шаг
// перепрыгнул последнюю помещающуюся сессию, в конец интервала добавляется
// прижатый слот (end-duration) - сетка 09:00-12:00 при 60+15 даёт
// 09:00, 10:15 и 11:00. Пересекающиеся интервалы шаблона не сливаются
// и не дедуплицируются.
func generateCandidates(tmpl *domain.AvailabilityTemplate, date time.Time) []domain.Slot {
	ranges := tmpl.WeeklyHours.RangesFor(date.Weekday())

	duration := tmpl.DefaultDurationMinutes
	step := tmpl.SlotStepMinutes()

	slots := make([]domain.Slot, 0)
	for _, r := range ranges {
		rangeStart, err := r.Start.Minutes()
		if err != nil {
			continue
		}
		rangeEnd, err := r.End.Minutes()
		if err != nil {
			continue
		}

		lastEmitted := -1
		for pos := rangeStart; pos+duration <= rangeEnd; pos += step {
			slotTime, err := types.NewTimeStringFromMinutes(pos)
			if err != nil {
				break
			}
			slots = append(slots, domain.Slot{
				Time:        slotTime,
				IsAvailable: true,
			})
			lastEmitted = pos
		}

		// Прижатый к концу интервала слот: начинается строго позже последнего
		// выданного, заканчивается ровно на границе
		if clamped := rangeEnd - duration; lastEmitted >= 0 && clamped > lastEmitted {
			slotTime, err := types.NewTimeStringFromMinutes(clamped)
			if err == nil {
				slots = append(slots, domain.Slot{
					Time:        slotTime,
					IsAvailable: true,
				})
			}
		}
	}

	return slots
}

// annotateSlots пересчитывает доступность каждого кандидата.
// Слоты не удаляются - только помечаются. Порядок входа сохраняется.
//
// Слот недоступен, если:
//  1. его начало строго раньше now, либо
//  2. он пересекается с неотменённой записью.
//
// Пересечение полуоткрытых интервалов [s1,e1) и [s2,e2):
// s1 < e2 && s2 < e1. Граничащие интервалы не пересекаются:
// запись 10:00-11:00 оставляет слот 11:00-12:00 доступным.
func annotateSlots(
	candidates []domain.Slot,
	date time.Time,
	durationMinutes int,
	appointments []*domain.Appointment,
	now time.Time,
) []domain.Slot {
	result := make([]domain.Slot, len(candidates))

	for i, candidate := range candidates {
		slotStart, err := candidate.Time.OnDate(date)
		if err != nil {
			result[i] = domain.Slot{Time: candidate.Time, IsAvailable: false}
			continue
		}
		slotEnd := slotStart.Add(time.Duration(durationMinutes) * time.Minute)

		available := !slotStart.Before(now) && !overlapsAny(slotStart, slotEnd, appointments)

		result[i] = domain.Slot{
			Time:        candidate.Time,
			IsAvailable: available,
		}
	}

	return result
}

// overlapsAny проверяет пересечение интервала с неотменёнными записями
func overlapsAny(start, end time.Time, appointments []*domain.Appointment) bool {
	for _, appt := range appointments {
		if appt.IsCancelled() {
			continue
		}
		if appt.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// dayBounds возвращает полуоткрытый период суток [00:00, +24h) для даты
func dayBounds(date time.Time) (time.Time, time.Time) {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return from, from.AddDate(0, 0, 1)
}
