package service

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	GetService(ctx context.Context, id uint) (*models.Service, error)
	ListServices(ctx context.Context, onlyActive bool, query string) ([]models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, s *models.Service) error
}
