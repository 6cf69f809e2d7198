package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func (r *BookingGormRepository) Create(ctx context.Context, b *models.Booking) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(b).Error
}

func (r *BookingGormRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := conn(ctx, r.db).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) Update(ctx context.Context, b *models.Booking) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(b).Error
}

func (r *BookingGormRepository) Delete(ctx context.Context, id uint) error {
	return conn(ctx, r.db).Delete(&models.Booking{}, id).Error
}

func (r *BookingGormRepository) ExistsActiveForSlot(ctx context.Context, slotID uint) (bool, error) {
	return r.existsForSlot(ctx, slotID, []domain.Status{domain.StatusPending})
}

func (r *BookingGormRepository) SlotOccupied(ctx context.Context, slotID uint) (bool, error) {
	return r.existsForSlot(ctx, slotID, domain.ActiveStatuses)
}

func (r *BookingGormRepository) existsForSlot(ctx context.Context, slotID uint, statuses []domain.Status) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&models.Booking{}).
		Where("slot_id = ? AND status IN ?", slotID, statusStrings(statuses)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) DetachSlot(ctx context.Context, slotID uint) error {
	return conn(ctx, r.db).
		Model(&models.Booking{}).
		Where("slot_id = ?", slotID).
		Update("slot_id", nil).Error
}

func (r *BookingGormRepository) ListForBarber(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
	statuses []domain.Status,
) ([]models.Booking, error) {

	q := conn(ctx, r.db).
		Preload("Client").
		Preload("Service").
		Where("barber_id = ? AND slot_date_time >= ? AND slot_date_time < ?", barberID, from, to)

	if len(statuses) > 0 {
		q = q.Where("status IN ?", statusStrings(statuses))
	}

	var out []models.Booking
	if err := q.Order("slot_date_time ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingGormRepository) ListForClient(ctx context.Context, clientID uint) ([]models.Booking, error) {
	var out []models.Booking
	if err := conn(ctx, r.db).
		Preload("Service").
		Preload("Barber.User").
		Where("client_id = ?", clientID).
		Order("slot_date_time DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func statusStrings(statuses []domain.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
