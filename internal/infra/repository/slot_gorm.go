package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type SlotGormRepository struct {
	db *gorm.DB
}

func NewSlotGormRepository(db *gorm.DB) *SlotGormRepository {
	return &SlotGormRepository{db: db}
}

func (r *SlotGormRepository) Create(ctx context.Context, s *models.Slot) error {
	return conn(ctx, r.db).Create(s).Error
}

func (r *SlotGormRepository) GetByID(ctx context.Context, id uint) (*models.Slot, error) {
	var s models.Slot
	if err := conn(ctx, r.db).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SlotGormRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Slot, error) {
	var s models.Slot
	if err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SlotGormRepository) ExistsAt(ctx context.Context, barberID uint, at time.Time) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&models.Slot{}).
		Where("barber_id = ? AND date_time = ?", barberID, at).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SlotGormRepository) List(ctx context.Context, f domain.Filter) ([]models.Slot, error) {
	q := conn(ctx, r.db).
		Where("barber_id = ? AND date_time >= ? AND date_time < ?", f.BarberID, f.From, f.To)

	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}

	var slots []models.Slot
	if err := q.Order("date_time ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SlotGormRepository) UpdateStatus(ctx context.Context, id uint, status domain.Status) error {
	res := conn(ctx, r.db).
		Model(&models.Slot{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SlotGormRepository) Delete(ctx context.Context, id uint) error {
	return conn(ctx, r.db).Delete(&models.Slot{}, id).Error
}

// Compile-time check
var _ domain.Repository = (*SlotGormRepository)(nil)
