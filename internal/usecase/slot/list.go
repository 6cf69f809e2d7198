package slot

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/domain/absence"
	slotdomain "github.com/BruksfildServices01/barber-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// AbsenceCalendar devolve os períodos aprovados de ausência do barbeiro.
type AbsenceCalendar interface {
	ApprovedPeriods(ctx context.Context, barberID uint) ([]absence.Period, error)
}

type ListSlotsInput struct {
	BarberID uint
	From     time.Time
	To       time.Time // inclusivo, por data
	Status   *slotdomain.Status

	// Bookable restringe ao que um cliente pode reservar agora: disponível,
	// no futuro e fora de ausências aprovadas.
	Bookable bool
}

type ListSlots struct {
	slots    slotdomain.Repository
	absences AbsenceCalendar
	clock    timezone.Clock
}

func NewListSlots(slots slotdomain.Repository, absences AbsenceCalendar, clock timezone.Clock) *ListSlots {
	return &ListSlots{slots: slots, absences: absences, clock: clock}
}

func (uc *ListSlots) Execute(ctx context.Context, in ListSlotsInput) ([]models.Slot, error) {
	if calendar.DateOf(in.To).Before(calendar.DateOf(in.From)) {
		return nil, httperr.ErrValidation("invalid_date_range")
	}

	f := slotdomain.Filter{
		BarberID: in.BarberID,
		From:     calendar.DateOf(in.From),
		To:       calendar.DateOf(in.To).AddDate(0, 0, 1),
		Status:   in.Status,
	}
	if in.Bookable {
		available := slotdomain.StatusAvailable
		f.Status = &available
	}

	slots, err := uc.slots.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if !in.Bookable {
		return slots, nil
	}

	periods, err := uc.absences.ApprovedPeriods(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	out := make([]models.Slot, 0, len(slots))
	for _, s := range slots {
		if !s.DateTime.After(now) {
			continue
		}
		if absence.AnyCovers(periods, s.DateTime) {
			continue
		}
		out = append(out, s)
	}

	return out, nil
}
