package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/testutil"
)

func TestDispatcherDrainsOnClose(t *testing.T) {
	gdb := testutil.NewDB(t)
	store := New(gdb)
	d := NewDispatcher(store, zap.NewNop())

	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	userID := uint(9)
	for i := uint(1); i <= 3; i++ {
		id := i
		d.Dispatch(Event{
			At:       base.Add(time.Duration(i) * time.Hour),
			UserID:   &userID,
			Action:   "booking_created",
			Entity:   "booking",
			EntityID: &id,
			Metadata: map[string]any{"slot_id": id * 10},
		})
	}
	d.Dispatch(Event{At: base, Action: "absence_approved", Entity: "absence_request"})
	d.Close()

	logs, total, err := store.List(context.Background(), Filter{Entity: "booking"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, logs, 3)
	// mais recente primeiro
	assert.EqualValues(t, 3, *logs[0].EntityID)
	assert.JSONEq(t, `{"slot_id":30}`, logs[0].Metadata)
}

func TestStoreListFiltersAndPages(t *testing.T) {
	gdb := testutil.NewDB(t)
	store := New(gdb)

	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Log(Event{
			At:     base.AddDate(0, 0, i),
			Action: "slot_deleted",
			Entity: "slot",
		}))
	}

	from := base.AddDate(0, 0, 1)
	to := base.AddDate(0, 0, 4)
	logs, total, err := store.List(context.Background(), Filter{
		Action: "slot_deleted",
		From:   &from,
		To:     &to,
		Page:   2,
		Limit:  2,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, logs, 1)
	assert.True(t, logs[0].CreatedAt.Equal(from))

	f := Filter{Limit: 1000}
	f.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 50, f.Limit)
}
