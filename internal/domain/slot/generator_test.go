package slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/domain/barber"
)

func clock(t *testing.T, hm string) calendar.TimeOfDay {
	t.Helper()
	tod, err := calendar.ParseClock(hm)
	require.NoError(t, err)
	return tod
}

func TestCandidatesMorningShift(t *testing.T) {
	s := barber.Schedule{
		WorkStart:    clock(t, "09:00"),
		WorkEnd:      clock(t, "12:00"),
		SlotDuration: 30 * time.Minute,
	}
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	got := Candidates(s, day, day)

	require.Len(t, got, 6)
	want := []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	for i, at := range got {
		assert.Equal(t, want[i], at.Format("15:04"))
		assert.True(t, calendar.SameDate(day, at))
	}
}

func TestCandidatesSkipsLunchAndDayOff(t *testing.T) {
	ls, le := clock(t, "12:00"), clock(t, "13:00")
	sunday := time.Sunday
	s := barber.Schedule{
		DayOff:       &sunday,
		WorkStart:    clock(t, "10:00"),
		WorkEnd:      clock(t, "14:00"),
		LunchStart:   &ls,
		LunchEnd:     &le,
		SlotDuration: time.Hour,
	}

	// 2024-06-08 é sábado, 2024-06-09 domingo
	from := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)

	got := Candidates(s, from, to)

	require.Len(t, got, 3)
	assert.Equal(t, "10:00", got[0].Format("15:04"))
	assert.Equal(t, "11:00", got[1].Format("15:04"))
	assert.Equal(t, "13:00", got[2].Format("15:04"))
}

func TestCandidatesShiftShorterThanSlot(t *testing.T) {
	s := barber.Schedule{
		WorkStart:    clock(t, "09:00"),
		WorkEnd:      clock(t, "09:20"),
		SlotDuration: 30 * time.Minute,
	}
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, Candidates(s, day, day))
}

func TestCandidatesLunchOutsideWorkHours(t *testing.T) {
	ls, le := clock(t, "19:00"), clock(t, "20:00")
	s := barber.Schedule{
		WorkStart:    clock(t, "09:00"),
		WorkEnd:      clock(t, "11:00"),
		LunchStart:   &ls,
		LunchEnd:     &le,
		SlotDuration: 30 * time.Minute,
	}
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	assert.Len(t, Candidates(s, day, day), 4)
}

func TestCandidatesReversedRange(t *testing.T) {
	s := barber.Schedule{
		WorkStart:    clock(t, "09:00"),
		WorkEnd:      clock(t, "12:00"),
		SlotDuration: 30 * time.Minute,
	}
	from := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, Candidates(s, from, to))
}
