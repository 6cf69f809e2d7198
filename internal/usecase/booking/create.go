package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain"
	"github.com/BruksfildServices01/barber-booking/internal/domain/barber"
	bookingdomain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/domain/service"
	slotdomain "github.com/BruksfildServices01/barber-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/lock"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const displayLayout = "02/01/2006 15:04"

// AvailabilityChecker responde se o barbeiro atende naquele instante.
type AvailabilityChecker interface {
	IsBarberAvailableAt(ctx context.Context, barberID uint, at time.Time) (bool, error)
}

// Deps agrupa os colaboradores comuns aos casos de uso de reserva.
type Deps struct {
	Tx       domain.Transactor
	Bookings bookingdomain.Repository
	Slots    slotdomain.Repository
	Barbers  barber.Repository
	Services service.Repository
	Users    user.Repository
	Absences AvailabilityChecker
	Locker   lock.Locker
	Notifier *notification.Notifier
	Clock    timezone.Clock
	Audit    audit.Recorder
	Metrics  *metrics.Metrics
	Log      *zap.Logger
}

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ClientID  uint
	BarberID  uint
	ServiceID uint
	SlotID    uint
	Comments  string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	Deps
}

func NewCreateBooking(deps Deps) *CreateBooking {
	return &CreateBooking{Deps: deps}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1️⃣ Entrada
	// --------------------------------------------------
	if err := bookingdomain.ValidateComments(in.Comments); err != nil {
		return nil, err
	}

	svc, err := uc.Services.GetService(ctx, in.ServiceID)
	if err != nil || !svc.Active {
		if err == nil || httperr.IsRecordNotFound(err) {
			return nil, httperr.ErrNotFound("service_not_found")
		}
		return nil, err
	}

	b, err := uc.Barbers.GetByID(ctx, in.BarberID)
	if err != nil || !b.Active {
		if err == nil || httperr.IsRecordNotFound(err) {
			return nil, httperr.ErrNotFound("barber_not_found")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Trava do turno (Redis, consultiva)
	// --------------------------------------------------
	release, err := uc.Locker.Acquire(ctx, lock.SlotKey(in.SlotID))
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, httperr.ErrConflict("slot_unavailable")
		}
		return nil, err
	}
	defer release()

	now := uc.Clock.Now()

	// --------------------------------------------------
	// 3️⃣ Transação: turno travado + reserva + turno indisponível
	// --------------------------------------------------
	var bk *models.Booking
	err = uc.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// barbeiro antes do turno: mesma ordem da aprovação de ausência
		if _, err := uc.Barbers.GetByIDForUpdate(ctx, in.BarberID); err != nil {
			return err
		}

		s, err := uc.Slots.GetByIDForUpdate(ctx, in.SlotID)
		if err != nil {
			if httperr.IsRecordNotFound(err) {
				return httperr.ErrNotFound("slot_not_found")
			}
			return err
		}

		if s.BarberID != in.BarberID {
			return httperr.ErrValidation("slot_barber_mismatch")
		}

		if err := slotdomain.CanBook(slotdomain.Status(s.Status)); err != nil {
			return err
		}

		if !s.DateTime.After(now) {
			return httperr.ErrValidation("slot_in_past")
		}

		available, err := uc.Absences.IsBarberAvailableAt(ctx, in.BarberID, s.DateTime)
		if err != nil {
			return err
		}
		if !available {
			return httperr.ErrConflict("barber_absent")
		}

		// concluída também ocupa o turno
		taken, err := uc.Bookings.SlotOccupied(ctx, s.ID)
		if err != nil {
			return err
		}
		if taken {
			return httperr.ErrConflict("slot_unavailable")
		}

		slotID := s.ID
		bk = &models.Booking{
			ClientID:     in.ClientID,
			BarberID:     in.BarberID,
			ServiceID:    in.ServiceID,
			SlotID:       &slotID,
			BookedAt:     now,
			SlotDateTime: s.DateTime,
			Status:       string(bookingdomain.InitialStatus()),
			Comments:     in.Comments,
		}

		if err := uc.Bookings.Create(ctx, bk); err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrConflict("slot_unavailable")
			}
			return err
		}

		return uc.Slots.UpdateStatus(ctx, s.ID, slotdomain.StatusUnavailable)
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Pós-commit: métricas, auditoria, aviso
	// --------------------------------------------------
	uc.Metrics.BookingTransition("created")
	uc.Audit.Dispatch(audit.Event{
		UserID:   &in.ClientID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	if client, err := uc.Users.GetUser(ctx, in.ClientID); err == nil {
		uc.Notifier.Send(ctx, client, notification.KindBookingConfirmed, map[string]string{
			"service":   svc.Name,
			"barber":    b.User.Name,
			"date_time": bk.SlotDateTime.In(now.Location()).Format(displayLayout),
		})
	} else {
		uc.Log.Warn("client lookup for notification failed", zap.Uint("booking_id", bk.ID), zap.Error(err))
	}

	return bk, nil
}
