package repository

import (
	"context"

	"irregops-service/internal/domain/entity"
)

// AirlineRepository defines the interface for carrier reference lookups
type AirlineRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airline, error)
	FindByName(ctx context.Context, name string) (*entity.Airline, error)
}
