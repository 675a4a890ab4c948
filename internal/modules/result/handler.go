package result

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/backend"
	"storefront/internal/middleware"
	"storefront/internal/navigation"
)

type Handler struct {
	bookings BookingReader
	receipts ReceiptVerifier
	nav      navigation.Store
	log      *zap.Logger
}

func NewHandler(bookings BookingReader, receipts ReceiptVerifier, nav navigation.Store, log *zap.Logger) *Handler {
	return &Handler{bookings: bookings, receipts: receipts, nav: nav, log: log}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/result", h.Show)
	r.GET("/receipts/:token", h.Receipt)
}

// Show handles GET /result
func (h *Handler) Show(c *gin.Context) {
	rc, ok, err := navigation.Load[navigation.ResultContext](c.Request.Context(), h.nav, middleware.VisitorID(c), navigation.KeyResult)
	if err != nil {
		h.log.Warn("load result context", zap.Error(err))
	}
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.HTML(http.StatusOK, "result.html", pageFor(rc))
}

// pageFor decides what the result screen shows. Only a success carrying a
// booking counts as a confirmation.
func pageFor(rc *navigation.ResultContext) Page {
	if rc.Success && rc.Booking != nil {
		p := Page{Success: true, Booking: rc.Booking, Experience: rc.Experience}
		if rc.ReceiptToken != "" {
			p.ReceiptURL = "/receipts/" + rc.ReceiptToken
		}
		return p
	}

	msg := rc.Error
	if msg == "" {
		msg = msgResultFailed
	}
	return Page{Error: msg, Experience: rc.Experience}
}

// Receipt handles GET /receipts/:token
func (h *Handler) Receipt(c *gin.Context) {
	claims, err := h.receipts.ValidateToken(c.Param("token"))
	if err != nil {
		c.HTML(http.StatusNotFound, "receipt.html", Page{Error: msgReceiptInvalid})
		return
	}

	ctx := c.Request.Context()
	booking, err := h.bookings.GetBooking(ctx, claims.BookingID)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			c.HTML(http.StatusNotFound, "receipt.html", Page{Error: msgReceiptInvalid})
			return
		}
		h.log.Error("load booking for receipt", zap.Int64("booking_id", claims.BookingID), zap.Error(err))
		c.HTML(http.StatusBadGateway, "receipt.html", Page{Error: msgReceiptFailed})
		return
	}

	page := Page{Success: true, Booking: booking}
	if exp, err := h.bookings.GetExperience(ctx, booking.ExperienceID); err != nil {
		h.log.Warn("load experience for receipt", zap.Int64("experience_id", booking.ExperienceID), zap.Error(err))
	} else {
		page.Experience = exp
	}
	c.HTML(http.StatusOK, "receipt.html", page)
}
