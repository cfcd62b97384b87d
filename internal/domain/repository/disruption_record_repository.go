package repository

import (
	"context"

	"irregops-service/internal/domain/entity"
)

// DisruptionRecordRepository defines the interface for the record audit store
type DisruptionRecordRepository interface {
	Insert(ctx context.Context, record *entity.DisruptionRecord) error
	FindRecent(ctx context.Context, limit int) ([]*entity.DisruptionRecord, error)
	FindByFlight(ctx context.Context, flightNumber, date string) ([]*entity.DisruptionRecord, error)
}
