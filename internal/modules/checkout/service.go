package checkout

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/backend"
	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/navigation"
)

type Service struct {
	gateway  BookingGateway
	attempts AttemptRecorder
	receipts ReceiptIssuer
	log      *zap.Logger
}

func NewService(gateway BookingGateway, attempts AttemptRecorder, receipts ReceiptIssuer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{gateway: gateway, attempts: attempts, receipts: receipts, log: log}
}

// ApplyPromo validates code against the subtotal. A blank code clears the
// previous result without calling the backend. A failed call is reported as
// an invalid result, never as an error.
func (s *Service) ApplyPromo(ctx context.Context, code string, subtotal decimal.Decimal) *domain.PromoValidationResult {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}

	res, err := s.gateway.ValidatePromo(ctx, code, subtotal)
	if err != nil {
		s.log.Warn("promo validation failed", zap.String("code", code), zap.Error(err))
		return &domain.PromoValidationResult{Valid: false, DiscountAmount: decimal.Zero, Message: msgPromoFailed}
	}
	return res
}

// Submit validates the form and, when it passes, sends exactly one booking
// request. Field errors mean nothing was sent.
func (s *Service) Submit(ctx context.Context, cc *navigation.CheckoutContext, st State) (*Outcome, map[string]string) {
	form := st.Form
	if errs := ValidateForm(form, cc.Slot); len(errs) > 0 {
		return nil, errs
	}

	req := BuildBookingRequest(cc, form)
	quote := ComputeQuote(cc.Experience.Price, form.NumberOfGuests, st.Promo)

	booking, err := s.gateway.CreateBooking(ctx, req)
	if err != nil {
		msg := backend.ErrorMessage(err, msgBookingFailed)
		s.log.Warn("booking failed",
			zap.Int64("experience_id", cc.Experience.ID),
			zap.Int64("slot_id", cc.Slot.ID),
			zap.Error(err),
		)
		s.record(ctx, req, quote, nil, msg)
		return &Outcome{Success: false, Error: msg, Experience: cc.Experience}, nil
	}

	s.record(ctx, req, quote, booking, "")
	return &Outcome{Success: true, Booking: booking, Experience: cc.Experience}, nil
}

// BuildBookingRequest maps the form onto the backend payload. Blank phone and
// promo code are left out.
func BuildBookingRequest(cc *navigation.CheckoutContext, form Form) domain.BookingRequest {
	req := domain.BookingRequest{
		ExperienceID:   cc.Experience.ID,
		SlotID:         cc.Slot.ID,
		CustomerName:   form.CustomerName,
		CustomerEmail:  form.CustomerEmail,
		NumberOfGuests: form.NumberOfGuests,
	}
	if phone := strings.TrimSpace(form.CustomerPhone); phone != "" {
		req.CustomerPhone = &phone
	}
	if code := strings.TrimSpace(form.PromoCode); code != "" {
		req.PromoCode = &code
	}
	return req
}

// ResultFor turns an outcome into the context handed to the result screen.
// A receipt token is attached to successful bookings when an issuer is set.
func (s *Service) ResultFor(o *Outcome) navigation.ResultContext {
	exp := o.Experience
	rc := navigation.ResultContext{Success: o.Success, Error: o.Error, Experience: &exp}
	if !o.Success || o.Booking == nil {
		return rc
	}
	rc.Booking = o.Booking
	if s.receipts != nil {
		token, err := s.receipts.GenerateToken(o.Booking.ID)
		if err != nil {
			s.log.Warn("issue receipt token", zap.Int64("booking_id", o.Booking.ID), zap.Error(err))
		} else {
			rc.ReceiptToken = token
		}
	}
	return rc
}

func (s *Service) record(ctx context.Context, req domain.BookingRequest, quote Quote, booking *domain.Booking, errMsg string) {
	if s.attempts == nil {
		return
	}

	a := &domain.CheckoutAttempt{
		ExperienceID:   req.ExperienceID,
		SlotID:         req.SlotID,
		CustomerEmail:  req.CustomerEmail,
		NumberOfGuests: req.NumberOfGuests,
		Subtotal:       quote.Subtotal,
		Discount:       quote.Discount,
		Total:          quote.Total,
		Success:        booking != nil,
		ErrorMessage:   errMsg,
		RequestID:      middleware.RequestIDFrom(ctx),
	}
	if req.PromoCode != nil {
		a.PromoCode = *req.PromoCode
	}
	if booking != nil {
		id := booking.ID
		a.BookingID = &id
		a.Discount = booking.DiscountAmount
		a.Total = booking.TotalAmount
	}

	if err := s.attempts.Create(ctx, a); err != nil {
		s.log.Error("record checkout attempt", zap.Error(err))
	}
}
