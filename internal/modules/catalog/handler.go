package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/middleware"
	"storefront/internal/navigation"
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
	r.GET("/", h.ListExperiences)
	r.GET("/experiences/:id", h.GetDetails)
	r.POST("/experiences/:id/slot", h.SelectSlot)
}

// ListExperiences handles GET /
func (h *Handler) ListExperiences(c *gin.Context) {
	ctx := c.Request.Context()

	// leaving the booking flow drops whatever it carried
	if vid := middleware.VisitorID(c); vid != "" {
		if err := h.nav.Discard(ctx, vid, navigation.KeyCheckout, navigation.KeyCheckoutState, navigation.KeyResult); err != nil {
			h.log.Warn("discard navigation context", zap.String("visitor_id", vid), zap.Error(err))
		}
	}

	exps, err := h.service.ListExperiences(ctx)
	if err != nil {
		h.log.Error("load experiences", zap.Error(err))
		c.HTML(http.StatusBadGateway, "list.html", ListState{
			Error:    msgListLoadFailed,
			RetryURL: c.Request.URL.RequestURI(),
		})
		return
	}

	c.HTML(http.StatusOK, "list.html", ListState{Experiences: exps})
}

// GetDetails handles GET /experiences/:id
func (h *Handler) GetDetails(c *gin.Context) {
	state, status := h.loadDetails(c)
	c.HTML(status, "details.html", state)
}

// SelectSlot handles POST /experiences/:id/slot
func (h *Handler) SelectSlot(c *gin.Context) {
	state, status := h.loadDetails(c)
	if state.Error != "" {
		c.HTML(status, "details.html", state)
		return
	}

	var req selectSlotRequest
	if err := c.ShouldBind(&req); err != nil {
		state.SlotError = msgSlotUnavailable
		c.HTML(http.StatusUnprocessableEntity, "details.html", state)
		return
	}
	state.SelectedSlotID = req.SlotID

	cc, err := checkoutContextFor(state, req.SlotID)
	if err != nil {
		state.SlotError = msgSlotUnavailable
		c.HTML(http.StatusUnprocessableEntity, "details.html", state)
		return
	}

	if err := navigation.Save(c.Request.Context(), h.nav, middleware.VisitorID(c), navigation.KeyCheckout, cc); err != nil {
		_ = c.Error(err)
		state.SlotError = "Could not start checkout. Please try again."
		c.HTML(http.StatusInternalServerError, "details.html", state)
		return
	}

	c.Redirect(http.StatusSeeOther, "/checkout")
}

func (h *Handler) loadDetails(c *gin.Context) (DetailsState, int) {
	failed := DetailsState{Error: msgDetailsLoadFailed, RetryURL: c.Request.URL.Path}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.log.Info("details requested with bad id", zap.String("id", c.Param("id")), zap.Error(ErrInvalidExperienceID))
		return failed, http.StatusNotFound
	}
	failed.RetryURL = "/experiences/" + strconv.FormatInt(id, 10)

	details, err := h.service.LoadDetails(c.Request.Context(), id)
	if err != nil {
		h.log.Error("load experience details", zap.Int64("experience_id", id), zap.Error(err))
		return failed, http.StatusBadGateway
	}

	exp := details.Experience
	return DetailsState{Experience: &exp, Groups: details.Groups}, http.StatusOK
}

// checkoutContextFor picks the slot out of the loaded groups. Sold-out and
// unknown slots cannot be selected.
func checkoutContextFor(state DetailsState, slotID int64) (*navigation.CheckoutContext, error) {
	if state.Experience == nil {
		return nil, ErrLoadFailed
	}
	for _, g := range state.Groups {
		for _, slot := range g.Slots {
			if slot.ID != slotID {
				continue
			}
			if slot.SoldOut() {
				return nil, ErrSlotUnavailable
			}
			return &navigation.CheckoutContext{Experience: *state.Experience, Slot: slot}, nil
		}
	}
	return nil, ErrSlotUnavailable
}
