package result

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/pkg/jwt"
)

// BookingReader loads what a receipt shows.
type BookingReader interface {
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	GetExperience(ctx context.Context, id int64) (*domain.Experience, error)
}

type ReceiptVerifier interface {
	ValidateToken(token string) (*jwt.Claims, error)
}
