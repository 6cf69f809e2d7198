package barber

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	GetByID(ctx context.Context, id uint) (*models.Barber, error)
	// GetByIDForUpdate trava a linha do barbeiro; serializa reservas e
	// aprovações de ausência do mesmo barbeiro.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Barber, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Barber, error)
	ListActive(ctx context.Context) ([]models.Barber, error)
	Create(ctx context.Context, b *models.Barber) error
	Update(ctx context.Context, b *models.Barber) error
}
