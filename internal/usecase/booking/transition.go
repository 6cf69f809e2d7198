package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain"
	bookingdomain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	slotdomain "github.com/BruksfildServices01/barber-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
)

// load trava a reserva; chamar dentro de WithinTransaction.
func (d Deps) load(ctx context.Context, id uint) (*models.Booking, error) {
	bk, err := d.Bookings.GetByIDForUpdate(ctx, id)
	if err != nil {
		if httperr.IsRecordNotFound(err) {
			return nil, httperr.ErrNotFound("booking_not_found")
		}
		return nil, err
	}
	return bk, nil
}

// releaseSlot devolve o turno ainda vinculado para AVAILABLE.
func (d Deps) releaseSlot(ctx context.Context, bk *models.Booking) error {
	if bk.SlotID == nil {
		return nil
	}
	err := d.Slots.UpdateStatus(ctx, *bk.SlotID, slotdomain.StatusAvailable)
	if httperr.IsRecordNotFound(err) {
		return nil
	}
	return err
}

// ======================================================
// COMPLETE
// ======================================================

type CompleteBooking struct {
	Deps
}

func NewCompleteBooking(deps Deps) *CompleteBooking {
	return &CompleteBooking{Deps: deps}
}

// Execute conclui a reserva; o turno continua indisponível.
func (uc *CompleteBooking) Execute(ctx context.Context, actor domain.Actor, bookingID uint) (*models.Booking, error) {
	var bk *models.Booking
	err := uc.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		bk, err = uc.load(ctx, bookingID)
		if err != nil {
			return err
		}

		if !actor.CanManageBarber(bk.BarberID) {
			return httperr.ErrPermission("not_owner")
		}

		if err := bookingdomain.Complete(bk, uc.Clock.Now()); err != nil {
			return err
		}

		return uc.Bookings.Update(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	uc.Metrics.BookingTransition("completed")
	uc.Audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "booking_completed",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	return bk, nil
}

// ======================================================
// CANCEL
// ======================================================

type CancelBooking struct {
	Deps
}

func NewCancelBooking(deps Deps) *CancelBooking {
	return &CancelBooking{Deps: deps}
}

// Execute cancela uma reserva pendente e libera o turno. Cliente só cancela
// a própria reserva, barbeiro só as da sua agenda.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	actor domain.Actor,
	bookingID uint,
	reason string,
) (*models.Booking, error) {

	var bk *models.Booking
	err := uc.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		bk, err = uc.load(ctx, bookingID)
		if err != nil {
			return err
		}

		if !canCancel(actor, bk) {
			return httperr.ErrPermission("not_owner")
		}

		if err := bookingdomain.Cancel(bk, uc.Clock.Now(), reason); err != nil {
			return err
		}

		if err := uc.Bookings.Update(ctx, bk); err != nil {
			return err
		}

		return uc.releaseSlot(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	uc.Metrics.BookingTransition("cancelled")
	uc.Audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	// cliente que cancelou já sabe
	if actor.UserID != bk.ClientID {
		uc.notifyCancelled(ctx, bk)
	}

	return bk, nil
}

func canCancel(actor domain.Actor, bk *models.Booking) bool {
	if actor.IsAdmin() || actor.IsBarber(bk.BarberID) {
		return true
	}
	return actor.Role == models.RoleClient && actor.UserID == bk.ClientID
}

func (uc *CancelBooking) notifyCancelled(ctx context.Context, bk *models.Booking) {
	client, err := uc.Users.GetUser(ctx, bk.ClientID)
	if err != nil {
		uc.Log.Warn("client lookup for notification failed", zap.Uint("booking_id", bk.ID), zap.Error(err))
		return
	}

	fields := map[string]string{
		"date_time": bk.SlotDateTime.In(uc.Clock.Now().Location()).Format(displayLayout),
	}
	if b, err := uc.Barbers.GetByID(ctx, bk.BarberID); err == nil {
		fields["barber"] = b.User.Name
	}

	uc.Notifier.Send(ctx, client, notification.KindBookingCancelled, fields)
}

// ======================================================
// DELETE
// ======================================================

type DeleteBooking struct {
	Deps
}

func NewDeleteBooking(deps Deps) *DeleteBooking {
	return &DeleteBooking{Deps: deps}
}

// Execute apaga a reserva. Se ainda estava pendente, o turno volta a ficar
// disponível antes.
func (uc *DeleteBooking) Execute(ctx context.Context, actor domain.Actor, bookingID uint) error {
	if !actor.IsAdmin() {
		return httperr.ErrPermission("not_owner")
	}

	err := uc.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		bk, err := uc.load(ctx, bookingID)
		if err != nil {
			return err
		}

		if bookingdomain.Status(bk.Status) == bookingdomain.StatusPending {
			if err := uc.releaseSlot(ctx, bk); err != nil {
				return err
			}
		}

		return uc.Bookings.Delete(ctx, bk.ID)
	})
	if err != nil {
		return err
	}

	uc.Audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &bookingID,
	})

	return nil
}
