package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// BookingRequest is built by the checkout screen and sent once.
// Phone and promo code are omitted from the payload when nil.
type BookingRequest struct {
	ExperienceID   int64   `json:"experience_id"`
	SlotID         int64   `json:"slot_id"`
	CustomerName   string  `json:"customer_name"`
	CustomerEmail  string  `json:"customer_email"`
	CustomerPhone  *string `json:"customer_phone,omitempty"`
	NumberOfGuests int     `json:"number_of_guests"`
	PromoCode      *string `json:"promo_code,omitempty"`
}

type Booking struct {
	ID             int64           `json:"id"`
	ExperienceID   int64           `json:"experience_id"`
	SlotID         int64           `json:"slot_id"`
	CustomerName   string          `json:"customer_name"`
	CustomerEmail  string          `json:"customer_email"`
	CustomerPhone  *string         `json:"customer_phone"`
	NumberOfGuests int             `json:"number_of_guests"`
	PromoCode      *string         `json:"promo_code"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Status         BookingStatus   `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// HasDiscount reports whether the backend resolved a positive discount.
func (b *Booking) HasDiscount() bool {
	return b.DiscountAmount.IsPositive()
}
