package barber

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestScheduleOfDefaults(t *testing.T) {
	b := models.NewBarber(1, "degradê")

	s, err := ScheduleOf(&b)
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	assert.Equal(t, 30*time.Minute, s.SlotDuration)
	require.NotNil(t, s.DayOff)
	assert.Equal(t, time.Sunday, *s.DayOff)
	assert.True(t, s.InLunch(13*60))
	assert.False(t, s.InLunch(14*60))
}

func TestScheduleOfMissingHours(t *testing.T) {
	b := models.Barber{SlotDurationMinutes: 30}

	_, err := ScheduleOf(&b)
	assert.True(t, httperr.IsKind(err, httperr.KindConfiguration))
}

func TestScheduleValidate(t *testing.T) {
	b := models.NewBarber(1, "")
	b.WorkStart, b.WorkEnd = "18:00", "09:00"

	s, err := ScheduleOf(&b)
	require.NoError(t, err)
	assert.True(t, httperr.IsBusiness(s.Validate(), "invalid_time_range"))

	b = models.NewBarber(1, "")
	b.SlotDurationMinutes = 1
	s, err = ScheduleOf(&b)
	require.NoError(t, err)
	assert.True(t, httperr.IsBusiness(s.Validate(), "invalid_slot_duration"))

	b = models.NewBarber(1, "")
	b.LunchStart, b.LunchEnd = "14:00", "13:00"
	s, err = ScheduleOf(&b)
	require.NoError(t, err)
	assert.True(t, httperr.IsKind(s.Validate(), httperr.KindValidation))
}
