package checkout

import "errors"

var ErrContextMissing = errors.New("checkout context missing")

const (
	msgNameRequired     = "Name is required"
	msgEmailRequired    = "Email is required"
	msgEmailInvalid     = "Invalid email format"
	msgGuestsMin        = "At least 1 guest is required"
	msgGuestsOverCapFmt = "Only %d spots available"

	msgPromoFailed     = "Failed to validate promo code"
	msgPromoInvalid    = "Invalid promo code"
	msgPromoAppliedFmt = "Discount applied: %s"

	msgBookingFailed = "Failed to create booking. Please try again."
)
