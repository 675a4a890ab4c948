package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutAttempt is the audit record of one booking submission that reached
// the backend.
type CheckoutAttempt struct {
	ID             int64           `json:"id"`
	ExperienceID   int64           `json:"experience_id"`
	SlotID         int64           `json:"slot_id"`
	CustomerEmail  string          `json:"customer_email"`
	NumberOfGuests int             `json:"number_of_guests"`
	PromoCode      string          `json:"promo_code,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	Total          decimal.Decimal `json:"total"`
	Success        bool            `json:"success"`
	BookingID      *int64          `json:"booking_id,omitempty"`
	ErrorMessage   string          `json:"error_message,omitempty"`
	RequestID      string          `json:"request_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
