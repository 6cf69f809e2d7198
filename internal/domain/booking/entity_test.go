package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var now = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func TestCompleteOnlyFromPending(t *testing.T) {
	b := &models.Booking{Status: string(StatusPending)}
	require.NoError(t, Complete(b, now))
	assert.Equal(t, string(StatusCompleted), b.Status)
	require.NotNil(t, b.CompletedAt)

	assert.True(t, httperr.IsKind(Complete(b, now), httperr.KindInvalidState))
	assert.True(t, httperr.IsKind(Cancel(b, now, ""), httperr.KindInvalidState))
}

func TestCancelFromPending(t *testing.T) {
	b := &models.Booking{Status: string(StatusPending)}
	require.NoError(t, Cancel(b, now, "cliente desistiu"))
	assert.Equal(t, string(StatusCancelled), b.Status)
	assert.Equal(t, "cliente desistiu", b.CancellationReason)

	assert.True(t, httperr.IsKind(Complete(b, now), httperr.KindInvalidState))
}

func TestCancelForAbsenceIsIdempotent(t *testing.T) {
	done := &models.Booking{Status: string(StatusCompleted)}
	assert.True(t, CancelForAbsence(done, now, "ausência"))
	assert.Equal(t, string(StatusCancelled), done.Status)

	assert.False(t, CancelForAbsence(done, now, "ausência"))
}

func TestValidateComments(t *testing.T) {
	assert.NoError(t, ValidateComments(strings.Repeat("á", MaxCommentsLength)))
	assert.True(t, httperr.IsBusiness(ValidateComments(strings.Repeat("a", MaxCommentsLength+1)), "comments_too_long"))
}
