package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type PromoValidationRequest struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

// MarshalJSON sends the amount as a JSON number, the shape the backend expects.
func (r PromoValidationRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code   string      `json:"code"`
		Amount json.Number `json:"amount"`
	}{
		Code:   r.Code,
		Amount: json.Number(r.Amount.String()),
	})
}

// PromoValidationResult is recomputed on every validation call and never stored
// beyond the checkout screen.
type PromoValidationResult struct {
	Valid          bool            `json:"valid"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Message        string          `json:"message,omitempty"`
}
