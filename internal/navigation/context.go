package navigation

import "storefront/internal/domain"

// CheckoutContext is handed from the details screen to checkout.
type CheckoutContext struct {
	Experience domain.Experience `json:"experience"`
	Slot       domain.Slot       `json:"slot"`
}

// ResultContext is handed from checkout to the result screen. Booking is set
// only when Success is true.
type ResultContext struct {
	Success      bool               `json:"success"`
	Booking      *domain.Booking    `json:"booking,omitempty"`
	Error        string             `json:"error,omitempty"`
	Experience   *domain.Experience `json:"experience,omitempty"`
	ReceiptToken string             `json:"receipt_token,omitempty"`
}
