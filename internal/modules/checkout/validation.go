package checkout

import (
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/pkg/validator"
)

type formRules struct {
	CustomerName   string `json:"customer_name" validate:"notblank"`
	CustomerEmail  string `json:"customer_email" validate:"notblank,email_basic"`
	NumberOfGuests int    `json:"number_of_guests" validate:"min=1,ltefield=AvailableSpots"`
	AvailableSpots int    `json:"-"`
}

// ValidateForm returns one message per invalid field. An empty map means the
// form may be submitted. The phone number is never checked.
func ValidateForm(f Form, slot domain.Slot) map[string]string {
	out := map[string]string{}
	failed := validator.Validate(formRules{
		CustomerName:   f.CustomerName,
		CustomerEmail:  f.CustomerEmail,
		NumberOfGuests: f.NumberOfGuests,
		AvailableSpots: slot.AvailableSpots,
	})
	for field, tag := range failed {
		switch field {
		case "customer_name":
			out[field] = msgNameRequired
		case "customer_email":
			if tag == "notblank" {
				out[field] = msgEmailRequired
			} else {
				out[field] = msgEmailInvalid
			}
		case "number_of_guests":
			if tag == "min" {
				out[field] = msgGuestsMin
			} else {
				out[field] = fmt.Sprintf(msgGuestsOverCapFmt, slot.AvailableSpots)
			}
		}
	}
	return out
}
