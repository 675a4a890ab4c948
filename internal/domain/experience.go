package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Experience is a bookable activity. It is owned by the backend and never
// mutated by the storefront.
type Experience struct {
	ID            int64            `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Location      string           `json:"location"`
	Price         decimal.Decimal  `json:"price"`
	ImageURL      *string          `json:"image_url"`
	DurationHours *decimal.Decimal `json:"duration_hours"`
	MaxGroupSize  *int             `json:"max_group_size"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Slot is one dated instance of an experience. Capacity is decremented by the
// backend on booking.
type Slot struct {
	ID             int64     `json:"id"`
	ExperienceID   int64     `json:"experience_id"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	AvailableSpots int       `json:"available_spots"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

func (s Slot) SoldOut() bool {
	return s.AvailableSpots == 0
}

// SlotGroup holds the slots sharing one date value.
type SlotGroup struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}
