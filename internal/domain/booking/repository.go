package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Booking, error)
	Update(ctx context.Context, b *models.Booking) error
	Delete(ctx context.Context, id uint) error

	// ExistsActiveForSlot: existe reserva pendente apontando para o turno.
	ExistsActiveForSlot(ctx context.Context, slotID uint) (bool, error)

	// SlotOccupied: existe reserva pendente ou concluída no turno.
	SlotOccupied(ctx context.Context, slotID uint) (bool, error)

	// DetachSlot zera slot_id das reservas do turno (referência fraca).
	DetachSlot(ctx context.Context, slotID uint) error

	ListForBarber(ctx context.Context, barberID uint, from, to time.Time, statuses []Status) ([]models.Booking, error)
	ListForClient(ctx context.Context, clientID uint) ([]models.Booking, error)
}
