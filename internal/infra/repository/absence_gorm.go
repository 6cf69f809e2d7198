package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/absence"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AbsenceGormRepository struct {
	db *gorm.DB
}

func NewAbsenceGormRepository(db *gorm.DB) *AbsenceGormRepository {
	return &AbsenceGormRepository{db: db}
}

func (r *AbsenceGormRepository) Create(ctx context.Context, req *models.AbsenceRequest) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(req).Error
}

func (r *AbsenceGormRepository) GetByID(ctx context.Context, id uint) (*models.AbsenceRequest, error) {
	var req models.AbsenceRequest
	if err := conn(ctx, r.db).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *AbsenceGormRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.AbsenceRequest, error) {
	var req models.AbsenceRequest
	if err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *AbsenceGormRepository) Update(ctx context.Context, req *models.AbsenceRequest) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(req).Error
}

func (r *AbsenceGormRepository) Delete(ctx context.Context, id uint) error {
	return conn(ctx, r.db).Delete(&models.AbsenceRequest{}, id).Error
}

func (r *AbsenceGormRepository) List(ctx context.Context, f domain.Filter) ([]models.AbsenceRequest, error) {
	q := conn(ctx, r.db)

	if f.BarberID != nil {
		q = q.Where("barber_id = ?", *f.BarberID)
	}

	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		q = q.Where("status IN ?", statuses)
	}

	var out []models.AbsenceRequest
	if err := q.Order("created_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*AbsenceGormRepository)(nil)
