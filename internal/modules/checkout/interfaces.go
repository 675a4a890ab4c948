package checkout

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// BookingGateway is the write side of the booking backend.
type BookingGateway interface {
	ValidatePromo(ctx context.Context, code string, amount decimal.Decimal) (*domain.PromoValidationResult, error)
	CreateBooking(ctx context.Context, req domain.BookingRequest) (*domain.Booking, error)
}

// AttemptRecorder stores the audit row of a submission. May be nil.
type AttemptRecorder interface {
	Create(ctx context.Context, a *domain.CheckoutAttempt) error
}

// ReceiptIssuer signs receipt links for confirmed bookings. May be nil.
type ReceiptIssuer interface {
	GenerateToken(bookingID int64) (string, error)
}
