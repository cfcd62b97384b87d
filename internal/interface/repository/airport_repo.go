package repository

import (
	"context"
	"time"

	"irregops-service/internal/domain/entity"
	"irregops-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// Airports GORM model for database mapping
type Airports struct {
	gorm.Model
	ID        uint           `gorm:"primaryKey"`
	Code      string         `gorm:"column:code;unique"`
	Name      string         `gorm:"column:name"`
	CityName  string         `gorm:"column:cityname"`
	Country   string         `gorm:"column:country"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Airports) TableName() string {
	return "m_airports"
}

// GetByCode finds an airport by IATA code
func (r *GormAirportRepository) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	var airport Airports
	result := r.db.WithContext(ctx).Unscoped().Where("code = ?", code).First(&airport)

	if result.Error != nil {
		return nil, result.Error
	}

	return toAirportEntity(&airport), nil
}

// FindByName finds an airport whose name or city matches the free text
func (r *GormAirportRepository) FindByName(ctx context.Context, name string) (*entity.Airport, error) {
	var airport Airports
	pattern := "%" + name + "%"
	result := r.db.WithContext(ctx).Unscoped().
		Where("name ILIKE ? OR cityname ILIKE ?", pattern, pattern).
		First(&airport)

	if result.Error != nil {
		return nil, result.Error
	}

	return toAirportEntity(&airport), nil
}

func toAirportEntity(airport *Airports) *entity.Airport {
	return &entity.Airport{
		ID:        airport.ID,
		Code:      airport.Code,
		Name:      airport.Name,
		CityName:  airport.CityName,
		Country:   airport.Country,
		CreatedAt: airport.CreatedAt,
		UpdatedAt: airport.UpdatedAt,
		DeletedAt: airport.DeletedAt,
	}
}
