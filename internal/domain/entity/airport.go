package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport is a row of the IATA reference table used for best-effort
// airport-code resolution.
type Airport struct {
	ID        uint
	Code      string
	Name      string
	CityName  string
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
