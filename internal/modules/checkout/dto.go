package checkout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/pkg/format"
)

// Form is the customer input on the checkout screen.
type Form struct {
	CustomerName   string `json:"customer_name"`
	CustomerEmail  string `json:"customer_email"`
	CustomerPhone  string `json:"customer_phone"`
	NumberOfGuests int    `json:"number_of_guests"`
	PromoCode      string `json:"promo_code"`
}

// NewForm returns the form a fresh checkout screen starts with.
func NewForm() Form {
	return Form{NumberOfGuests: 1}
}

// formInput is the raw urlencoded body. Guests stay a string so that a
// malformed count does not fail binding.
type formInput struct {
	CustomerName   string `form:"customer_name"`
	CustomerEmail  string `form:"customer_email"`
	CustomerPhone  string `form:"customer_phone"`
	NumberOfGuests string `form:"number_of_guests"`
	PromoCode      string `form:"promo_code"`
}

func (in formInput) toForm() Form {
	return Form{
		CustomerName:   in.CustomerName,
		CustomerEmail:  in.CustomerEmail,
		CustomerPhone:  in.CustomerPhone,
		NumberOfGuests: ParseGuests(in.NumberOfGuests),
		PromoCode:      NormalizePromoCode(in.PromoCode),
	}
}

// ParseGuests reads the guest count field. Anything that is not an integer
// counts as one guest; zero and negatives are kept for validation to report.
func ParseGuests(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

// NormalizePromoCode upper-cases the code as typed. Surrounding spaces are kept
// until the code is applied.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(code)
}

// State is the checkout screen state kept between requests.
type State struct {
	Form   Form                          `json:"form"`
	Promo  *domain.PromoValidationResult `json:"promo,omitempty"`
	Errors map[string]string             `json:"errors"`
}

func NewState() State {
	return State{Form: NewForm(), Errors: map[string]string{}}
}

// PromoMessage is the inline text shown under the promo field, empty when no
// code has been applied.
func (s State) PromoMessage() string {
	return PromoMessage(s.Promo)
}

func PromoMessage(p *domain.PromoValidationResult) string {
	if p == nil {
		return ""
	}
	if p.Valid {
		return fmt.Sprintf(msgPromoAppliedFmt, format.Money(p.DiscountAmount))
	}
	if p.Message != "" {
		return p.Message
	}
	return msgPromoInvalid
}

// Quote is the price breakdown of the order summary.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

func (q Quote) HasDiscount() bool {
	return q.Discount.IsPositive()
}

// Outcome is what a submission resolved to. Booking is set only on success.
type Outcome struct {
	Success    bool
	Booking    *domain.Booking
	Error      string
	Experience domain.Experience
}

// Page is the template data of the checkout screen.
type Page struct {
	Experience domain.Experience
	Slot       domain.Slot
	State      State
	Quote      Quote
	Error      string
}

type quoteRequest struct {
	NumberOfGuests *int    `json:"number_of_guests"`
	PromoCode      *string `json:"promo_code"`
}

type promoRequest struct {
	Code           string `json:"code"`
	NumberOfGuests *int   `json:"number_of_guests"`
}

type quoteResponse struct {
	Quote  Quote             `json:"quote"`
	Errors map[string]string `json:"errors,omitempty"`
}

type promoResponse struct {
	Promo   *domain.PromoValidationResult `json:"promo"`
	Message string                        `json:"message,omitempty"`
	Quote   Quote                         `json:"quote"`
}
