package repository

import (
	"context"

	"irregops-service/internal/domain/entity"
)

// AirportRepository defines the interface for IATA reference lookups
type AirportRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airport, error)
	FindByName(ctx context.Context, name string) (*entity.Airport, error)
}
