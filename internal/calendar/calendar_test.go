package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tod, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(570), tod)
	assert.Equal(t, "09:30", tod.String())

	_, err = ParseClock("9h30")
	assert.Error(t, err)
}

func TestTimeOfDayOn(t *testing.T) {
	day := time.Date(2024, 6, 10, 17, 45, 0, 0, time.UTC)
	tod := TimeOfDay(14 * 60)

	assert.Equal(t, time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC), tod.On(day))
	assert.Equal(t, TimeOfDay(14*60+30), tod.Add(30*time.Minute))
	assert.Equal(t, TimeOfDay(17*60+45), ClockOf(day))
}

func TestDaysInclusive(t *testing.T) {
	from := time.Date(2024, 6, 29, 10, 0, 0, 0, time.UTC)
	to := time.Date(2024, 7, 2, 8, 0, 0, 0, time.UTC)

	days := Days(from, to)
	require.Len(t, days, 4)
	assert.Equal(t, time.Date(2024, 6, 29, 0, 0, 0, 0, time.UTC), days[0])
	assert.Equal(t, time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC), days[3])

	assert.Empty(t, Days(to, from))
	assert.Len(t, Days(from, from), 1)
}

func TestDateWithin(t *testing.T) {
	from := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)

	assert.True(t, DateWithin(time.Date(2024, 6, 12, 23, 59, 0, 0, time.UTC), from, to))
	assert.True(t, DateWithin(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), from, to))
	assert.False(t, DateWithin(time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC), from, to))
	assert.False(t, DateWithin(time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC), from, to))
}
