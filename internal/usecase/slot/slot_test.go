package slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain"
	slotdomain "github.com/BruksfildServices01/barber-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	absenceuc "github.com/BruksfildServices01/barber-booking/internal/usecase/absence"
)

var now = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func morningShift(b *models.Barber) {
	b.WorkStart = "09:00"
	b.WorkEnd = "12:00"
	b.LunchStart = ""
	b.LunchEnd = ""
	b.DayOff = nil
	b.SlotDurationMinutes = 30
}

type env struct {
	db       *gorm.DB
	tx       *repository.TxManager
	slots    *repository.SlotGormRepository
	bookings *repository.BookingGormRepository
	barbers  *repository.BarberGormRepository
	generate *GenerateSlots
}

func newEnv(t *testing.T) *env {
	t.Helper()

	gdb := testutil.NewDB(t)
	e := &env{
		db:       gdb,
		tx:       repository.NewTxManager(gdb),
		slots:    repository.NewSlotGormRepository(gdb),
		bookings: repository.NewBookingGormRepository(gdb),
		barbers:  repository.NewBarberGormRepository(gdb),
	}
	e.generate = NewGenerateSlots(e.barbers, e.slots, nil, zap.NewNop())
	return e
}

func date(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateMorningShift(t *testing.T) {
	e := newEnv(t)
	b := testutil.CreateBarber(t, e.db, "joao", morningShift)

	created, err := e.generate.Execute(context.Background(), b.ID, date(10), date(10))
	require.NoError(t, err)

	require.Len(t, created, 6)
	want := []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	for i, s := range created {
		assert.Equal(t, want[i], s.DateTime.Format("15:04"))
		assert.Equal(t, string(slotdomain.StatusAvailable), s.Status)
		assert.Equal(t, b.ID, s.BarberID)
		assert.NotZero(t, s.ID)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	e := newEnv(t)
	b := testutil.CreateBarber(t, e.db, "joao", morningShift)
	ctx := context.Background()

	first, err := e.generate.Execute(ctx, b.ID, date(10), date(11))
	require.NoError(t, err)
	assert.Len(t, first, 12)

	second, err := e.generate.Execute(ctx, b.ID, date(11), date(12))
	require.NoError(t, err)
	require.Len(t, second, 6)
	for _, s := range second {
		assert.Equal(t, 12, s.DateTime.Day())
	}

	again, err := e.generate.Execute(ctx, b.ID, date(10), date(12))
	require.NoError(t, err)
	assert.Empty(t, again)

	var dupes int64
	require.NoError(t, e.db.Raw(`
		SELECT COUNT(*) FROM (
			SELECT barber_id, date_time FROM slots GROUP BY barber_id, date_time HAVING COUNT(*) > 1
		) d`).Scan(&dupes).Error)
	assert.Zero(t, dupes)

	var total int64
	require.NoError(t, e.db.Model(&models.Slot{}).Count(&total).Error)
	assert.EqualValues(t, 18, total)
}

func TestGenerateErrors(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	unconfigured := testutil.CreateBarber(t, e.db, "pedro", func(b *models.Barber) {
		b.WorkStart = ""
	})
	_, err := e.generate.Execute(ctx, unconfigured.ID, date(10), date(10))
	assert.True(t, httperr.IsBusiness(err, "schedule_not_configured"), "got %v", err)
	assert.True(t, httperr.IsKind(err, httperr.KindConfiguration))

	b := testutil.CreateBarber(t, e.db, "joao", morningShift)
	_, err = e.generate.Execute(ctx, b.ID, date(11), date(10))
	assert.True(t, httperr.IsBusiness(err, "invalid_date_range"))

	_, err = e.generate.Execute(ctx, 9999, date(10), date(10))
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))
}

func TestGenerateDefaultScheduleSkipsLunchAndSunday(t *testing.T) {
	e := newEnv(t)
	b := testutil.CreateBarber(t, e.db, "joao", nil)

	// 2024-06-09 é domingo
	created, err := e.generate.Execute(context.Background(), b.ID, date(9), date(10))
	require.NoError(t, err)

	// 09:00-18:00 em passos de 30 min, menos 13:00-14:00
	require.Len(t, created, 16)
	for _, s := range created {
		assert.Equal(t, 10, s.DateTime.Day())
		assert.NotEqual(t, 13, s.DateTime.Hour())
	}
}

func TestCreateSlotRejectsDuplicate(t *testing.T) {
	e := newEnv(t)
	b := testutil.CreateBarber(t, e.db, "joao", morningShift)
	actor := domain.Actor{UserID: b.UserID, Role: models.RoleBarber, BarberID: b.ID}
	uc := NewCreateSlot(e.barbers, e.slots, audit.Discard{})

	at := time.Date(2024, 6, 10, 19, 0, 0, 0, time.UTC)
	s, err := uc.Execute(context.Background(), actor, b.ID, at)
	require.NoError(t, err)
	assert.Equal(t, string(slotdomain.StatusAvailable), s.Status)

	_, err = uc.Execute(context.Background(), actor, b.ID, at)
	assert.True(t, httperr.IsBusiness(err, "slot_already_exists"))

	client := domain.Actor{UserID: 99, Role: models.RoleClient}
	_, err = uc.Execute(context.Background(), client, b.ID, at.Add(time.Hour))
	assert.True(t, httperr.IsKind(err, httperr.KindPermission))
}

func bookSlot(t *testing.T, gdb *gorm.DB, b *models.Barber, s *models.Slot) *models.Booking {
	t.Helper()

	client := testutil.CreateUser(t, gdb, models.RoleClient, "ana@client.test")
	svc := testutil.CreateService(t, gdb, "Corte")
	require.NoError(t, gdb.Model(s).Update("status", "unavailable").Error)

	bk := &models.Booking{
		ClientID: client.ID, BarberID: b.ID, ServiceID: svc.ID,
		SlotID: &s.ID, BookedAt: now, SlotDateTime: s.DateTime, Status: "pending",
	}
	require.NoError(t, gdb.Omit("Client", "Barber", "Service", "Slot").Create(bk).Error)
	return bk
}

func TestSetSlotAvailability(t *testing.T) {
	e := newEnv(t)
	b := testutil.CreateBarber(t, e.db, "joao", morningShift)
	actor := domain.Actor{UserID: b.UserID, Role: models.RoleBarber, BarberID: b.ID}
	uc := NewSetSlotAvailability(e.tx, e.slots, e.bookings, audit.Discard{})
	ctx := context.Background()

	free := testutil.CreateSlot(t, e.db, b.ID, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))

	blocked, err := uc.Execute(ctx, actor, free.ID, slotdomain.StatusUnavailable)
	require.NoError(t, err)
	assert.Equal(t, "unavailable", blocked.Status)
	assert.Equal(t, "unavailable", testutil.Reload[models.Slot](t, e.db, free.ID).Status)

	_, err = uc.Execute(ctx, actor, free.ID, slotdomain.StatusAvailable)
	require.NoError(t, err)

	taken := testutil.CreateSlot(t, e.db, b.ID, time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC))
	pending := bookSlot(t, e.db, b, taken)

	// liberar turno com reserva pendente quebraria a coerência turno/reserva
	_, err = uc.Execute(ctx, actor, taken.ID, slotdomain.StatusAvailable)
	assert.True(t, httperr.IsBusiness(err, "slot_has_active_booking"))
	assert.Equal(t, "unavailable", testutil.Reload[models.Slot](t, e.db, taken.ID).Status)

	// concluída também segura o turno; bloquear continua permitido
	require.NoError(t, e.db.Model(&models.Booking{}).Where("id = ?", pending.ID).Update("status", "completed").Error)

	_, err = uc.Execute(ctx, actor, taken.ID, slotdomain.StatusAvailable)
	assert.True(t, httperr.IsBusiness(err, "slot_has_active_booking"))
	_, err = uc.Execute(ctx, actor, taken.ID, slotdomain.StatusUnavailable)
	require.NoError(t, err)

	_, err = uc.Execute(ctx, actor, free.ID, slotdomain.Status("busy"))
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))

	_, err = uc.Execute(ctx, actor, 9999, slotdomain.StatusAvailable)
	assert.True(t, httperr.IsBusiness(err, "slot_not_found"))
}

func TestDeleteSlot(t *testing.T) {
	e := newEnv(t)
	b := testutil.CreateBarber(t, e.db, "joao", morningShift)
	actor := domain.Actor{UserID: b.UserID, Role: models.RoleBarber, BarberID: b.ID}
	uc := NewDeleteSlot(e.tx, e.slots, e.bookings, audit.Discard{})
	ctx := context.Background()

	taken := testutil.CreateSlot(t, e.db, b.ID, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))
	bk := bookSlot(t, e.db, b, taken)

	err := uc.Execute(ctx, actor, taken.ID)
	assert.True(t, httperr.IsBusiness(err, "slot_has_active_booking"))

	// depois de concluída, a reserva sobrevive à remoção do turno
	require.NoError(t, e.db.Model(bk).Update("status", "completed").Error)
	require.NoError(t, uc.Execute(ctx, actor, taken.ID))

	stored := testutil.Reload[models.Booking](t, e.db, bk.ID)
	assert.Nil(t, stored.SlotID)
	assert.True(t, stored.SlotDateTime.Equal(taken.DateTime))

	err = uc.Execute(ctx, actor, taken.ID)
	assert.True(t, httperr.IsBusiness(err, "slot_not_found"))
}

func TestListBookableSlots(t *testing.T) {
	e := newEnv(t)
	b := testutil.CreateBarber(t, e.db, "joao", morningShift)
	clock := timezone.FixedClock{At: time.Date(2024, 6, 10, 9, 45, 0, 0, time.UTC)}
	absences := repository.NewAbsenceGormRepository(e.db)
	uc := NewListSlots(e.slots, absenceuc.NewAvailability(absences, clock, zap.NewNop()), clock)
	ctx := context.Background()

	_, err := e.generate.Execute(ctx, b.ID, date(10), date(11))
	require.NoError(t, err)

	var blocked models.Slot
	require.NoError(t, e.db.Where("date_time = ?", time.Date(2024, 6, 10, 11, 0, 0, 0, time.UTC)).First(&blocked).Error)
	require.NoError(t, e.db.Model(&blocked).Update("status", "unavailable").Error)

	d := date(11)
	require.NoError(t, e.db.Create(&models.AbsenceRequest{
		BarberID: b.ID, Type: "full_day", StartDate: &d, EndDate: &d, Status: "approved",
	}).Error)

	all, err := uc.Execute(ctx, ListSlotsInput{BarberID: b.ID, From: date(10), To: date(11)})
	require.NoError(t, err)
	assert.Len(t, all, 12)

	bookable, err := uc.Execute(ctx, ListSlotsInput{BarberID: b.ID, From: date(10), To: date(11), Bookable: true})
	require.NoError(t, err)

	// dia 10: 10:00, 10:30, 11:30 (09:xx já passou, 11:00 bloqueado); dia 11 ausente
	got := make([]string, 0, len(bookable))
	for _, s := range bookable {
		got = append(got, s.DateTime.Format("02 15:04"))
	}
	assert.Equal(t, []string{"10 10:00", "10 10:30", "10 11:30"}, got)

	_, err = uc.Execute(ctx, ListSlotsInput{BarberID: b.ID, From: date(11), To: date(10)})
	assert.True(t, httperr.IsBusiness(err, "invalid_date_range"))
}
