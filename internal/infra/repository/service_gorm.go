package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	servicedomain "github.com/BruksfildServices01/barber-booking/internal/domain/service"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ServiceGormRepository struct {
	db *gorm.DB
}

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{db: db}
}

func (r *ServiceGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var s models.Service
	if err := conn(ctx, r.db).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceGormRepository) ListServices(ctx context.Context, onlyActive bool, query string) ([]models.Service, error) {
	q := conn(ctx, r.db)

	if onlyActive {
		q = q.Where("active = ?", true)
	}

	if query = strings.ToLower(strings.TrimSpace(query)); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var out []models.Service
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ServiceGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	return conn(ctx, r.db).Create(s).Error
}

func (r *ServiceGormRepository) UpdateService(ctx context.Context, s *models.Service) error {
	return conn(ctx, r.db).Save(s).Error
}

// Compile-time check
var _ servicedomain.Repository = (*ServiceGormRepository)(nil)
