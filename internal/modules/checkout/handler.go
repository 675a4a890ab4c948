package checkout

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/middleware"
	"storefront/internal/navigation"
	"storefront/internal/pkg/response"
)

type Handler struct {
	service *Service
	nav     navigation.Store
	log     *zap.Logger
}

func NewHandler(service *Service, nav navigation.Store, log *zap.Logger) *Handler {
	return &Handler{service: service, nav: nav, log: log}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/checkout", h.Show)
	r.POST("/checkout", h.Submit)
	r.POST("/checkout/promo", h.ApplyPromo)
}

// RegisterAPIRoutes mounts the JSON endpoints used by the checkout page script.
func (h *Handler) RegisterAPIRoutes(r gin.IRouter) {
	co := r.Group("/checkout")
	{
		co.POST("/quote", h.QuoteJSON)
		co.POST("/promo", h.ApplyPromoJSON)
	}
}

// Show handles GET /checkout
func (h *Handler) Show(c *gin.Context) {
	cc, ok := h.checkoutContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	st := NewState()
	h.saveState(c, st)
	h.render(c, http.StatusOK, cc, st)
}

// ApplyPromo handles POST /checkout/promo
func (h *Handler) ApplyPromo(c *gin.Context) {
	cc, ok := h.checkoutContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	st := h.loadState(c)
	st.Form = h.bindForm(c)

	subtotal := ComputeQuote(cc.Experience.Price, st.Form.NumberOfGuests, nil).Subtotal
	st.Promo = h.service.ApplyPromo(c.Request.Context(), st.Form.PromoCode, subtotal)

	h.saveState(c, st)
	h.render(c, http.StatusOK, cc, st)
}

// Submit handles POST /checkout
func (h *Handler) Submit(c *gin.Context) {
	cc, ok := h.checkoutContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	st := h.loadState(c)
	st.Form = h.bindForm(c)

	outcome, errs := h.service.Submit(c.Request.Context(), cc, st)
	if len(errs) > 0 {
		st.Errors = errs
		h.saveState(c, st)
		h.render(c, http.StatusUnprocessableEntity, cc, st)
		return
	}
	st.Errors = map[string]string{}
	h.saveState(c, st)

	rc := h.service.ResultFor(outcome)
	if err := navigation.Save(c.Request.Context(), h.nav, middleware.VisitorID(c), navigation.KeyResult, &rc); err != nil {
		_ = c.Error(err)
		page := h.page(cc, st)
		page.Error = outcome.Error
		if outcome.Success {
			page.Error = "Your booking was created but the confirmation could not be shown."
		}
		c.HTML(http.StatusInternalServerError, "checkout.html", page)
		return
	}

	c.Redirect(http.StatusSeeOther, "/result")
}

// QuoteJSON handles POST /api/v1/checkout/quote
func (h *Handler) QuoteJSON(c *gin.Context) {
	cc, ok := h.checkoutContext(c)
	if !ok {
		response.Error(c, http.StatusConflict, "CHECKOUT_CONTEXT_MISSING", "No experience or slot selected")
		return
	}

	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Request body is not valid JSON", gin.H{"reason": err.Error()})
		return
	}

	st := h.loadState(c)
	if req.NumberOfGuests != nil {
		st.Form.NumberOfGuests = *req.NumberOfGuests
	}
	if req.PromoCode != nil {
		st.Form.PromoCode = NormalizePromoCode(*req.PromoCode)
	}
	h.saveState(c, st)

	resp := quoteResponse{Quote: ComputeQuote(cc.Experience.Price, st.Form.NumberOfGuests, st.Promo)}
	if msg, bad := ValidateForm(st.Form, cc.Slot)["number_of_guests"]; bad {
		resp.Errors = map[string]string{"number_of_guests": msg}
	}
	response.Success(c, http.StatusOK, resp)
}

// ApplyPromoJSON handles POST /api/v1/checkout/promo
func (h *Handler) ApplyPromoJSON(c *gin.Context) {
	cc, ok := h.checkoutContext(c)
	if !ok {
		response.Error(c, http.StatusConflict, "CHECKOUT_CONTEXT_MISSING", "No experience or slot selected")
		return
	}

	var req promoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Request body is not valid JSON", gin.H{"reason": err.Error()})
		return
	}

	st := h.loadState(c)
	if req.NumberOfGuests != nil {
		st.Form.NumberOfGuests = *req.NumberOfGuests
	}
	st.Form.PromoCode = NormalizePromoCode(req.Code)

	subtotal := ComputeQuote(cc.Experience.Price, st.Form.NumberOfGuests, nil).Subtotal
	st.Promo = h.service.ApplyPromo(c.Request.Context(), st.Form.PromoCode, subtotal)
	h.saveState(c, st)

	response.Success(c, http.StatusOK, promoResponse{
		Promo:   st.Promo,
		Message: st.PromoMessage(),
		Quote:   ComputeQuote(cc.Experience.Price, st.Form.NumberOfGuests, st.Promo),
	})
}

func (h *Handler) checkoutContext(c *gin.Context) (*navigation.CheckoutContext, bool) {
	cc, ok, err := navigation.Load[navigation.CheckoutContext](c.Request.Context(), h.nav, middleware.VisitorID(c), navigation.KeyCheckout)
	if err != nil {
		h.log.Warn("load checkout context", zap.Error(err))
		return nil, false
	}
	return cc, ok
}

// bindForm reads the posted fields. A malformed body is attached to the
// context and yields whatever fields could be read, which is usually none.
func (h *Handler) bindForm(c *gin.Context) Form {
	var in formInput
	if err := c.ShouldBind(&in); err != nil {
		h.log.Debug("bind checkout form", zap.Error(err))
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
	}
	return in.toForm()
}

func (h *Handler) loadState(c *gin.Context) State {
	st, ok, err := navigation.Load[State](c.Request.Context(), h.nav, middleware.VisitorID(c), navigation.KeyCheckoutState)
	if err != nil {
		h.log.Warn("load checkout state", zap.Error(err))
	}
	if !ok || st == nil {
		return NewState()
	}
	if st.Errors == nil {
		st.Errors = map[string]string{}
	}
	return *st
}

func (h *Handler) saveState(c *gin.Context, st State) {
	if err := navigation.Save(c.Request.Context(), h.nav, middleware.VisitorID(c), navigation.KeyCheckoutState, &st); err != nil {
		h.log.Warn("save checkout state", zap.Error(err))
	}
}

func (h *Handler) page(cc *navigation.CheckoutContext, st State) Page {
	return Page{
		Experience: cc.Experience,
		Slot:       cc.Slot,
		State:      st,
		Quote:      ComputeQuote(cc.Experience.Price, st.Form.NumberOfGuests, st.Promo),
	}
}

func (h *Handler) render(c *gin.Context, status int, cc *navigation.CheckoutContext, st State) {
	c.HTML(status, "checkout.html", h.page(cc, st))
}
