package absence

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Filter struct {
	BarberID *uint
	Statuses []Status
}

type Repository interface {
	Create(ctx context.Context, r *models.AbsenceRequest) error
	GetByID(ctx context.Context, id uint) (*models.AbsenceRequest, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*models.AbsenceRequest, error)
	Update(ctx context.Context, r *models.AbsenceRequest) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, f Filter) ([]models.AbsenceRequest, error)
}
