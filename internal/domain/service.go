package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a bookable salon service.
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           decimal.Decimal
	IsActive        bool
	BranchID        *int64

	// Aggregate review stats, maintained outside the booking core.
	AvgRating   float64
	RatingCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable reports whether new appointments may reference this service.
func (s *Service) IsBookable() bool {
	return s.IsActive && s.DurationMinutes > 0
}
