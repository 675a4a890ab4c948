package result

import "storefront/internal/domain"

// Page is the template data of the result screen and of receipts.
type Page struct {
	Success    bool
	Booking    *domain.Booking
	Experience *domain.Experience
	Error      string
	ReceiptURL string
}

// Title is the experience title, or "" when it could not be loaded.
func (p Page) Title() string {
	if p.Experience == nil {
		return ""
	}
	return p.Experience.Title
}
