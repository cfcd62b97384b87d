package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airline is a row of the carrier reference table used to canonicalize
// airline names mentioned in notices.
type Airline struct {
	ID        uint
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
