package checkout

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type checkoutTestContext struct {
	price  decimal.Decimal
	slot   domain.Slot
	promo  *domain.PromoValidationResult
	quote  Quote
	errors map[string]string
}

func (c *checkoutTestContext) reset() {
	*c = checkoutTestContext{}
}

// Given steps

func (c *checkoutTestContext) anExperiencePricedAtWithSpotsLeft(price string, spots int) error {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	c.price = p
	c.slot = domain.Slot{ID: 1, AvailableSpots: spots, IsActive: true}
	return nil
}

func (c *checkoutTestContext) aValidPromoWorth(amount string) error {
	return c.promoWorth(true, amount)
}

func (c *checkoutTestContext) anInvalidPromoWorth(amount string) error {
	return c.promoWorth(false, amount)
}

func (c *checkoutTestContext) promoWorth(valid bool, amount string) error {
	a, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	c.promo = &domain.PromoValidationResult{Valid: valid, DiscountAmount: a}
	return nil
}

// When steps

func (c *checkoutTestContext) theVisitorBooksGuests(guests int) error {
	c.quote = ComputeQuote(c.price, guests, c.promo)
	return nil
}

func (c *checkoutTestContext) theVisitorSubmits(name, email string, guests int) error {
	c.errors = ValidateForm(Form{CustomerName: name, CustomerEmail: email, NumberOfGuests: guests}, c.slot)
	return nil
}

// theVisitorSubmitsSplitEmail joins the two email halves around the code point
// given as hex, so invisible characters stay readable in the feature file.
func (c *checkoutTestContext) theVisitorSubmitsSplitEmail(name, head, codePoint, tail string, guests int) error {
	r, err := strconv.ParseInt(codePoint, 16, 32)
	if err != nil {
		return err
	}
	return c.theVisitorSubmits(name, head+string(rune(r))+tail, guests)
}

// Then steps

func expectAmount(label string, got decimal.Decimal, want string) error {
	w, err := decimal.NewFromString(want)
	if err != nil {
		return err
	}
	if !got.Equal(w) {
		return fmt.Errorf("expected %s %s, got %s", label, want, got)
	}
	return nil
}

func (c *checkoutTestContext) theSubtotalIs(want string) error {
	return expectAmount("subtotal", c.quote.Subtotal, want)
}

func (c *checkoutTestContext) theDiscountIs(want string) error {
	return expectAmount("discount", c.quote.Discount, want)
}

func (c *checkoutTestContext) theTotalIs(want string) error {
	return expectAmount("total", c.quote.Total, want)
}

func (c *checkoutTestContext) theFieldReports(field, message string) error {
	if got := c.errors[field]; got != message {
		return fmt.Errorf("expected %s to report %q, got %q (all: %v)", field, message, got, c.errors)
	}
	return nil
}

func (c *checkoutTestContext) theFormHasNoErrors() error {
	if len(c.errors) != 0 {
		return fmt.Errorf("expected no errors, got %v", c.errors)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an experience priced at "([^"]*)" with (\d+) spots left$`, tc.anExperiencePricedAtWithSpotsLeft)
	ctx.Step(`^a valid promo worth "([^"]*)"$`, tc.aValidPromoWorth)
	ctx.Step(`^an invalid promo worth "([^"]*)"$`, tc.anInvalidPromoWorth)

	// When steps
	ctx.Step(`^the visitor books (-?\d+) guests$`, tc.theVisitorBooksGuests)
	ctx.Step(`^the visitor submits name "([^"]*)" email "([^"]*)" and (-?\d+) guests$`, tc.theVisitorSubmits)
	ctx.Step(`^the visitor submits name "([^"]*)" email "([^"]*)" U\+([0-9A-Fa-f]+) "([^"]*)" and (-?\d+) guests$`, tc.theVisitorSubmitsSplitEmail)

	// Then steps
	ctx.Step(`^the subtotal is "([^"]*)"$`, tc.theSubtotalIs)
	ctx.Step(`^the discount is "([^"]*)"$`, tc.theDiscountIs)
	ctx.Step(`^the total is "([^"]*)"$`, tc.theTotalIs)
	ctx.Step(`^the field "([^"]*)" reports "([^"]*)"$`, tc.theFieldReports)
	ctx.Step(`^the form has no errors$`, tc.theFormHasNoErrors)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
