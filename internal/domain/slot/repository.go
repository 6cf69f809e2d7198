package slot

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Filter struct {
	BarberID uint
	From     time.Time
	To       time.Time
	Status   *Status
}

type Repository interface {
	Create(ctx context.Context, s *models.Slot) error
	GetByID(ctx context.Context, id uint) (*models.Slot, error)

	// GetByIDForUpdate trava a linha do turno até o fim da transação.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Slot, error)

	ExistsAt(ctx context.Context, barberID uint, at time.Time) (bool, error)
	List(ctx context.Context, f Filter) ([]models.Slot, error)
	UpdateStatus(ctx context.Context, id uint, status Status) error
	Delete(ctx context.Context, id uint) error
}
