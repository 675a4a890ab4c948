package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/modules/catalog"
	"storefront/internal/modules/checkout"
	"storefront/internal/modules/result"
)

func render(t *testing.T, name string, data any) string {
	t.Helper()
	tmpl, err := ParseTemplates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, name, data))
	return buf.String()
}

func sampleExperience() domain.Experience {
	img := "https://example.com/kayak.jpg"
	hours := decimal.RequireFromString("2.5")
	return domain.Experience{
		ID:            7,
		Title:         "Sunset Kayak Tour",
		Location:      "Monterey Bay",
		Price:         decimal.RequireFromString("49.99"),
		ImageURL:      &img,
		DurationHours: &hours,
	}
}

func TestListTemplate(t *testing.T) {
	out := render(t, "list.html", catalog.ListState{Experiences: []domain.Experience{sampleExperience()}})

	assert.Contains(t, out, "Sunset Kayak Tour")
	assert.Contains(t, out, "$49.99")
	assert.Contains(t, out, `href="/experiences/7"`)
}

func TestListTemplate_Error(t *testing.T) {
	out := render(t, "list.html", catalog.ListState{Error: "Failed to load experiences. Please try again later.", RetryURL: "/"})

	assert.Contains(t, out, "Failed to load experiences. Please try again later.")
	assert.Contains(t, out, "Try Again")
}

func TestDetailsTemplate(t *testing.T) {
	exp := sampleExperience()
	groups := catalog.GroupSlotsByDate([]domain.Slot{
		{ID: 1, Date: "2024-03-15", StartTime: "14:30:00", EndTime: "16:30:00", AvailableSpots: 4},
		{ID: 2, Date: "2024-03-15", StartTime: "18:00:00", EndTime: "20:00:00", AvailableSpots: 0},
	})

	out := render(t, "details.html", catalog.DetailsState{Experience: &exp, Groups: groups, SlotError: "Please select an available time slot."})

	assert.Contains(t, out, "Friday, March 15, 2024")
	assert.Contains(t, out, "2:30 PM")
	assert.Contains(t, out, "Sold out")
	assert.Contains(t, out, "4 spots left")
	assert.Contains(t, out, "Please select an available time slot.")
}

func TestDetailsTemplate_NoSlots(t *testing.T) {
	exp := sampleExperience()
	out := render(t, "details.html", catalog.DetailsState{Experience: &exp})

	assert.Contains(t, out, "No available time slots.")
}

func TestCheckoutTemplate(t *testing.T) {
	exp := sampleExperience()
	slot := domain.Slot{ID: 1, Date: "2024-03-15", StartTime: "14:30:00", AvailableSpots: 5}
	promo := &domain.PromoValidationResult{Valid: true, DiscountAmount: decimal.RequireFromString("10")}
	st := checkout.NewState()
	st.Form.NumberOfGuests = 2
	st.Promo = promo
	st.Errors = map[string]string{"customer_email": "Invalid email format"}

	out := render(t, "checkout.html", checkout.Page{
		Experience: exp,
		Slot:       slot,
		State:      st,
		Quote:      checkout.ComputeQuote(exp.Price, 2, promo),
	})

	assert.Contains(t, out, "Friday, March 15, 2024 at 2:30 PM")
	assert.Contains(t, out, "Discount applied: $10.00")
	assert.Contains(t, out, "Total: $89.98")
	assert.Contains(t, out, "Invalid email format")
}

func TestCheckoutTemplate_EnterSubmitsBooking(t *testing.T) {
	exp := sampleExperience()
	out := render(t, "checkout.html", checkout.Page{
		Experience: exp,
		Slot:       domain.Slot{ID: 1, Date: "2024-03-15", StartTime: "14:30:00", AvailableSpots: 5},
		State:      checkout.NewState(),
		Quote:      checkout.ComputeQuote(exp.Price, 1, nil),
	})

	form := out[strings.Index(out, "<form"):]
	first := form[strings.Index(form, `type="submit"`):]
	first = first[:strings.Index(first, ">")]
	assert.NotContains(t, first, "formaction", "implicit submission must post the booking form")
	assert.Contains(t, form[:strings.Index(form, ">")], `action="/checkout"`)
	assert.Contains(t, out, `formaction="/checkout/promo"`)
}

func TestResultTemplate(t *testing.T) {
	exp := sampleExperience()
	code := "SAVE10"
	out := render(t, "result.html", result.Page{
		Success: true,
		Booking: &domain.Booking{
			ID:             42,
			CustomerName:   "Ada",
			CustomerEmail:  "ada@example.com",
			NumberOfGuests: 2,
			PromoCode:      &code,
			DiscountAmount: decimal.RequireFromString("10"),
			TotalAmount:    decimal.RequireFromString("89.98"),
		},
		Experience: &exp,
		ReceiptURL: "/receipts/abc",
	})

	assert.Contains(t, out, "#42")
	assert.Contains(t, out, "SAVE10")
	assert.Contains(t, out, "-$10.00")
	assert.Contains(t, out, "$89.98")
	assert.Contains(t, out, `href="/receipts/abc"`)
}

func TestResultTemplate_Failure(t *testing.T) {
	out := render(t, "result.html", result.Page{Error: "Slot is fully booked"})

	assert.Contains(t, out, "Slot is fully booked")
	assert.Contains(t, out, `href="/checkout"`)
}
