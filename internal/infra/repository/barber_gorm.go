package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/barber"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BarberGormRepository struct {
	db *gorm.DB
}

func NewBarberGormRepository(db *gorm.DB) *BarberGormRepository {
	return &BarberGormRepository{db: db}
}

func (r *BarberGormRepository) GetByID(ctx context.Context, id uint) (*models.Barber, error) {
	var b models.Barber
	if err := conn(ctx, r.db).Preload("User").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BarberGormRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Barber, error) {
	var b models.Barber
	if err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BarberGormRepository) GetByUserID(ctx context.Context, userID uint) (*models.Barber, error) {
	var b models.Barber
	if err := conn(ctx, r.db).
		Preload("User").
		Where("user_id = ?", userID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BarberGormRepository) ListActive(ctx context.Context) ([]models.Barber, error) {
	var out []models.Barber
	if err := conn(ctx, r.db).
		Preload("User").
		Where("active = ?", true).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BarberGormRepository) Create(ctx context.Context, b *models.Barber) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(b).Error
}

func (r *BarberGormRepository) Update(ctx context.Context, b *models.Barber) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(b).Error
}

// Compile-time check
var _ domain.Repository = (*BarberGormRepository)(nil)
