package slot

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain"
	"github.com/BruksfildServices01/barber-booking/internal/domain/barber"
	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	slotdomain "github.com/BruksfildServices01/barber-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// CREATE
// ======================================================

type CreateSlot struct {
	barbers barber.Repository
	slots   slotdomain.Repository
	audit   audit.Recorder
}

func NewCreateSlot(barbers barber.Repository, slots slotdomain.Repository, rec audit.Recorder) *CreateSlot {
	return &CreateSlot{barbers: barbers, slots: slots, audit: rec}
}

func (uc *CreateSlot) Execute(ctx context.Context, actor domain.Actor, barberID uint, at time.Time) (*models.Slot, error) {
	if !actor.CanManageBarber(barberID) {
		return nil, httperr.ErrPermission("not_owner")
	}

	if _, err := uc.barbers.GetByID(ctx, barberID); err != nil {
		if httperr.IsRecordNotFound(err) {
			return nil, httperr.ErrNotFound("barber_not_found")
		}
		return nil, err
	}

	exists, err := uc.slots.ExistsAt(ctx, barberID, at)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, httperr.ErrConflict("slot_already_exists")
	}

	s := &models.Slot{
		BarberID: barberID,
		DateTime: at,
		Status:   string(slotdomain.StatusAvailable),
	}
	if err := uc.slots.Create(ctx, s); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrConflict("slot_already_exists")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "slot_created",
		Entity:   "slot",
		EntityID: &s.ID,
	})

	return s, nil
}

// ======================================================
// BLOCK / UNBLOCK
// ======================================================

type SetSlotAvailability struct {
	tx       domain.Transactor
	slots    slotdomain.Repository
	bookings booking.Repository
	audit    audit.Recorder
}

func NewSetSlotAvailability(
	tx domain.Transactor,
	slots slotdomain.Repository,
	bookings booking.Repository,
	rec audit.Recorder,
) *SetSlotAvailability {
	return &SetSlotAvailability{tx: tx, slots: slots, bookings: bookings, audit: rec}
}

// Execute bloqueia ou libera um turno manualmente. Turno com reserva
// pendente só muda pelo fluxo de reservas; com reserva concluída não volta
// a ficar disponível.
func (uc *SetSlotAvailability) Execute(
	ctx context.Context,
	actor domain.Actor,
	slotID uint,
	status slotdomain.Status,
) (*models.Slot, error) {

	if !status.Valid() {
		return nil, httperr.ErrValidation("invalid_status")
	}

	var out *models.Slot
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		s, err := uc.slots.GetByIDForUpdate(ctx, slotID)
		if err != nil {
			if httperr.IsRecordNotFound(err) {
				return httperr.ErrNotFound("slot_not_found")
			}
			return err
		}

		if !actor.CanManageBarber(s.BarberID) {
			return httperr.ErrPermission("not_owner")
		}

		// liberar um turno de reserva concluída abriria dupla reserva
		check := uc.bookings.ExistsActiveForSlot
		if status == slotdomain.StatusAvailable {
			check = uc.bookings.SlotOccupied
		}
		active, err := check(ctx, s.ID)
		if err != nil {
			return err
		}
		if active {
			return httperr.ErrConflict("slot_has_active_booking")
		}

		if err := uc.slots.UpdateStatus(ctx, s.ID, status); err != nil {
			return err
		}

		s.Status = string(status)
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "slot_status_changed",
		Entity:   "slot",
		EntityID: &out.ID,
		Metadata: map[string]string{"status": out.Status},
	})

	return out, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteSlot struct {
	tx       domain.Transactor
	slots    slotdomain.Repository
	bookings booking.Repository
	audit    audit.Recorder
}

func NewDeleteSlot(
	tx domain.Transactor,
	slots slotdomain.Repository,
	bookings booking.Repository,
	rec audit.Recorder,
) *DeleteSlot {
	return &DeleteSlot{tx: tx, slots: slots, bookings: bookings, audit: rec}
}

// Execute remove o turno. Reservas antigas continuam com SlotDateTime e
// perdem o vínculo (SlotID nulo).
func (uc *DeleteSlot) Execute(ctx context.Context, actor domain.Actor, slotID uint) error {
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		s, err := uc.slots.GetByIDForUpdate(ctx, slotID)
		if err != nil {
			if httperr.IsRecordNotFound(err) {
				return httperr.ErrNotFound("slot_not_found")
			}
			return err
		}

		if !actor.CanManageBarber(s.BarberID) {
			return httperr.ErrPermission("not_owner")
		}

		active, err := uc.bookings.ExistsActiveForSlot(ctx, s.ID)
		if err != nil {
			return err
		}
		if active {
			return httperr.ErrConflict("slot_has_active_booking")
		}

		if err := uc.bookings.DetachSlot(ctx, s.ID); err != nil {
			return err
		}
		return uc.slots.Delete(ctx, s.ID)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "slot_deleted",
		Entity:   "slot",
		EntityID: &slotID,
	})

	return nil
}
