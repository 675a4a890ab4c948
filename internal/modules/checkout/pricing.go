package checkout

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// ComputeQuote prices an order. The discount counts only for a valid promo
// result and is not clamped, so the total may go negative.
func ComputeQuote(price decimal.Decimal, guests int, promo *domain.PromoValidationResult) Quote {
	subtotal := price.Mul(decimal.NewFromInt(int64(guests)))
	discount := decimal.Zero
	if promo != nil && promo.Valid {
		discount = promo.DiscountAmount
	}
	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount),
	}
}
