package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain"
	bookingdomain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ExistsActiveBookingForSlot struct {
	bookings bookingdomain.Repository
}

func NewExistsActiveBookingForSlot(bookings bookingdomain.Repository) *ExistsActiveBookingForSlot {
	return &ExistsActiveBookingForSlot{bookings: bookings}
}

func (uc *ExistsActiveBookingForSlot) Execute(ctx context.Context, slotID uint) (bool, error) {
	return uc.bookings.ExistsActiveForSlot(ctx, slotID)
}

// ======================================================
// CLIENT HISTORY
// ======================================================

type ListClientBookings struct {
	bookings bookingdomain.Repository
}

func NewListClientBookings(bookings bookingdomain.Repository) *ListClientBookings {
	return &ListClientBookings{bookings: bookings}
}

func (uc *ListClientBookings) Execute(ctx context.Context, clientID uint) ([]dto.BookingListDTO, error) {
	list, err := uc.bookings.ListForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return toListDTO(list), nil
}

// ======================================================
// BARBER AGENDA (dia / mês)
// ======================================================

type ListBarberAgenda struct {
	bookings bookingdomain.Repository
}

func NewListBarberAgenda(bookings bookingdomain.Repository) *ListBarberAgenda {
	return &ListBarberAgenda{bookings: bookings}
}

func (uc *ListBarberAgenda) ByDate(
	ctx context.Context,
	actor domain.Actor,
	barberID uint,
	day time.Time,
) ([]dto.BookingListDTO, error) {

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return uc.list(ctx, actor, barberID, start, start.AddDate(0, 0, 1))
}

func (uc *ListBarberAgenda) ByMonth(
	ctx context.Context,
	actor domain.Actor,
	barberID uint,
	year int,
	month int,
	loc *time.Location,
) ([]dto.BookingListDTO, error) {

	if month < 1 || month > 12 {
		return nil, httperr.ErrValidation("invalid_date_range")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return uc.list(ctx, actor, barberID, start, start.AddDate(0, 1, 0))
}

func (uc *ListBarberAgenda) list(
	ctx context.Context,
	actor domain.Actor,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]dto.BookingListDTO, error) {

	if !actor.CanManageBarber(barberID) {
		return nil, httperr.ErrPermission("not_owner")
	}

	list, err := uc.bookings.ListForBarber(ctx, barberID, from, to, nil)
	if err != nil {
		return nil, err
	}
	return toListDTO(list), nil
}

func toListDTO(list []models.Booking) []dto.BookingListDTO {
	out := make([]dto.BookingListDTO, 0, len(list))
	for _, b := range list {
		out = append(out, dto.BookingListDTO{
			ID:           b.ID,
			SlotID:       b.SlotID,
			SlotDateTime: b.SlotDateTime,
			Status:       b.Status,
			Comments:     b.Comments,
			ClientName:   b.Client.Name,
			BarberName:   b.Barber.User.Name,
			ServiceName:  b.Service.Name,
		})
	}
	return out
}
