package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CSP-BookingService/internal/domain"
	"github.com/m04kA/CSP-BookingService/pkg/ptr"
	"github.com/m04kA/CSP-BookingService/pkg/types"
)

func mustRange(t *testing.T, start, end string) domain.TimeRange {
	t.Helper()
	s, err := types.NewTimeStringFromString(start)
	require.NoError(t, err)
	e, err := types.NewTimeStringFromString(end)
	require.NoError(t, err)
	return domain.TimeRange{Start: s, End: e}
}

func slotTimes(slots []domain.Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time.String())
	}
	return out
}

// Понедельник
var testMonday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func TestGenerateCandidates_Grid(t *testing.T) {
	// 60 минут + 15 минут буфера на интервале 09:00-12:00:
	// шаги дают 09:00 и 10:15, следующий шаг 11:30 заканчивался бы в 12:30.
	// Последняя сессия прижимается к концу интервала: 11:00-12:00
	tmpl := &domain.AvailabilityTemplate{
		CoachID: 1,
		WeeklyHours: domain.WeeklyHours{
			"mon": {mustRange(t, "09:00", "12:00")},
		},
		DefaultDurationMinutes: 60,
		BufferMinutes:          15,
	}

	slots := generateCandidates(tmpl, testMonday)

	assert.Equal(t, []string{"09:00", "10:15", "11:00"}, slotTimes(slots))
	for _, s := range slots {
		assert.True(t, s.IsAvailable)
	}
}

func TestGenerateCandidates_ClampedSlotNotDuplicated(t *testing.T) {
	// Сетка заканчивается ровно на границе интервала - прижатый слот
	// совпал бы с последним выданным и не добавляется
	tmpl := &domain.AvailabilityTemplate{
		CoachID: 1,
		WeeklyHours: domain.WeeklyHours{
			"mon": {mustRange(t, "09:00", "10:00")},
		},
		DefaultDurationMinutes: 60,
		BufferMinutes:          15,
	}

	slots := generateCandidates(tmpl, testMonday)

	assert.Equal(t, []string{"09:00"}, slotTimes(slots))
}

func TestGenerateCandidates_SlotEndOnRangeBoundary(t *testing.T) {
	// Слот, заканчивающийся ровно на границе интервала, входит в сетку
	tmpl := &domain.AvailabilityTemplate{
		CoachID: 1,
		WeeklyHours: domain.WeeklyHours{
			"mon": {mustRange(t, "09:00", "11:00")},
		},
		DefaultDurationMinutes: 60,
		BufferMinutes:          0,
	}

	slots := generateCandidates(tmpl, testMonday)

	assert.Equal(t, []string{"09:00", "10:00"}, slotTimes(slots))
}

func TestGenerateCandidates_ClosedDay(t *testing.T) {
	tmpl := &domain.AvailabilityTemplate{
		CoachID: 1,
		WeeklyHours: domain.WeeklyHours{
			"tue": {mustRange(t, "09:00", "18:00")},
		},
		DefaultDurationMinutes: 60,
	}

	slots := generateCandidates(tmpl, testMonday)

	assert.Empty(t, slots)
}

func TestGenerateCandidates_RangeShorterThanDuration(t *testing.T) {
	tmpl := &domain.AvailabilityTemplate{
		CoachID: 1,
		WeeklyHours: domain.WeeklyHours{
			"mon": {mustRange(t, "09:00", "09:30")},
		},
		DefaultDurationMinutes: 60,
	}

	slots := generateCandidates(tmpl, testMonday)

	assert.Empty(t, slots)
}

func TestGenerateCandidates_MultipleRanges(t *testing.T) {
	// Интервалы обходятся независимо, в порядке объявления
	tmpl := &domain.AvailabilityTemplate{
		CoachID: 1,
		WeeklyHours: domain.WeeklyHours{
			"mon": {
				mustRange(t, "09:00", "11:00"),
				mustRange(t, "14:00", "16:00"),
			},
		},
		DefaultDurationMinutes: 60,
	}

	slots := generateCandidates(tmpl, testMonday)

	assert.Equal(t, []string{"09:00", "10:00", "14:00", "15:00"}, slotTimes(slots))
}

func TestGenerateCandidates_OverlappingRangesNotDeduplicated(t *testing.T) {
	// Пересекающиеся интервалы шаблона не сливаются: дубликаты слотов допустимы
	tmpl := &domain.AvailabilityTemplate{
		CoachID: 1,
		WeeklyHours: domain.WeeklyHours{
			"mon": {
				mustRange(t, "09:00", "11:00"),
				mustRange(t, "10:00", "12:00"),
			},
		},
		DefaultDurationMinutes: 60,
	}

	slots := generateCandidates(tmpl, testMonday)

	assert.Equal(t, []string{"09:00", "10:00", "10:00", "11:00"}, slotTimes(slots))
}

func TestGenerateCandidates_Deterministic(t *testing.T) {
	tmpl := &domain.AvailabilityTemplate{
		CoachID: 1,
		WeeklyHours: domain.WeeklyHours{
			"mon": {
				mustRange(t, "08:00", "12:00"),
				mustRange(t, "13:30", "17:45"),
			},
		},
		DefaultDurationMinutes: 45,
		BufferMinutes:          5,
	}

	first := generateCandidates(tmpl, testMonday)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, generateCandidates(tmpl, testMonday))
	}
}

func TestAnnotateSlots_PastSlotsUnavailable(t *testing.T) {
	candidates := []domain.Slot{
		{Time: "09:00", IsAvailable: true},
		{Time: "10:00", IsAvailable: true},
		{Time: "11:00", IsAvailable: true},
	}
	// Сейчас 10:00 - слот ровно на now доступен, более ранний нет
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	slots := annotateSlots(candidates, testMonday, 60, nil, now)

	require.Len(t, slots, 3)
	assert.False(t, slots[0].IsAvailable)
	assert.True(t, slots[1].IsAvailable)
	assert.True(t, slots[2].IsAvailable)
}

func TestAnnotateSlots_OverlapFlagsNotRemoves(t *testing.T) {
	candidates := []domain.Slot{
		{Time: "09:00", IsAvailable: true},
		{Time: "10:00", IsAvailable: true},
		{Time: "11:00", IsAvailable: true},
	}
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	appointments := []*domain.Appointment{
		{
			ID:        1,
			CoachID:   1,
			StartTime: time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC),
			Status:    domain.StatusConfirmed,
		},
	}

	slots := annotateSlots(candidates, testMonday, 60, appointments, now)

	// Сетка сохраняется целиком, занятый слот помечен
	require.Len(t, slots, 3)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slotTimes(slots))
	assert.True(t, slots[0].IsAvailable)
	assert.False(t, slots[1].IsAvailable)
	assert.True(t, slots[2].IsAvailable)
}

func TestAnnotateSlots_TouchingIntervalsDoNotOverlap(t *testing.T) {
	// Запись 10:00-11:00: слот 09:00-10:00 и слот 11:00-12:00 доступны
	candidates := []domain.Slot{
		{Time: "09:00", IsAvailable: true},
		{Time: "11:00", IsAvailable: true},
	}
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	appointments := []*domain.Appointment{
		{
			ID:        1,
			CoachID:   1,
			StartTime: time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC),
			Status:    domain.StatusConfirmed,
		},
	}

	slots := annotateSlots(candidates, testMonday, 60, appointments, now)

	assert.True(t, slots[0].IsAvailable)
	assert.True(t, slots[1].IsAvailable)
}

func TestAnnotateSlots_PartialOverlapBlocks(t *testing.T) {
	candidates := []domain.Slot{
		{Time: "09:00", IsAvailable: true},
	}
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// Запись 09:30-10:30 частично перекрывает слот 09:00-10:00
	appointments := []*domain.Appointment{
		{
			ID:        1,
			CoachID:   1,
			StartTime: time.Date(2026, 9, 7, 9, 30, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 9, 7, 10, 30, 0, 0, time.UTC),
			Status:    domain.StatusConfirmed,
		},
	}

	slots := annotateSlots(candidates, testMonday, 60, appointments, now)

	assert.False(t, slots[0].IsAvailable)
}

func TestAnnotateSlots_CancelledAppointmentDoesNotBlock(t *testing.T) {
	candidates := []domain.Slot{
		{Time: "10:00", IsAvailable: true},
	}
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	appointments := []*domain.Appointment{
		{
			ID:          1,
			CoachID:     1,
			StartTime:   time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
			EndTime:     time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC),
			Status:      domain.StatusCancelled,
			CancelledBy: ptr.Ptr(domain.CancelledByAthlete),
		},
	}

	slots := annotateSlots(candidates, testMonday, 60, appointments, now)

	assert.True(t, slots[0].IsAvailable)
}

func TestDayBounds(t *testing.T) {
	from, to := dayBounds(time.Date(2026, 9, 7, 15, 30, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC), to)
}
