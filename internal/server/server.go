package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/middleware"
	"storefront/internal/modules/catalog"
	"storefront/internal/modules/checkout"
	"storefront/internal/modules/result"
	"storefront/internal/navigation"
	"storefront/internal/pkg/response"
	"storefront/internal/web"
)

// Backend is everything the storefront asks of the booking backend.
type Backend interface {
	catalog.ExperienceSource
	checkout.BookingGateway
	result.BookingReader
}

// ReceiptTokens issues and verifies receipt links.
type ReceiptTokens interface {
	checkout.ReceiptIssuer
	result.ReceiptVerifier
}

type Deps struct {
	Log         *zap.Logger
	Backend     Backend
	Nav         navigation.Store
	Attempts    checkout.AttemptRecorder
	Receipts    ReceiptTokens
	Visitors    *middleware.Visitors
	CORSOrigins []string
	Health      func() error
}

// New builds the storefront engine. It fails only when the embedded templates
// do not parse.
func New(d Deps) (*gin.Engine, error) {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	tmpl, err := web.ParseTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger(log))
	r.Use(middleware.RequestLogger(log))

	r.GET("/healthz", func(c *gin.Context) {
		if d.Health != nil {
			if err := d.Health(); err != nil {
				response.Error(c, http.StatusServiceUnavailable, "UNHEALTHY", err.Error())
				return
			}
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	catalogHandler := catalog.NewHandler(catalog.NewService(d.Backend), d.Nav, log)
	checkoutHandler := checkout.NewHandler(
		checkout.NewService(d.Backend, d.Attempts, d.Receipts, log),
		d.Nav,
		log,
	)
	resultHandler := result.NewHandler(d.Backend, d.Receipts, d.Nav, log)

	pages := r.Group("/")
	pages.Use(d.Visitors.Middleware())
	{
		catalogHandler.RegisterRoutes(pages)
		checkoutHandler.RegisterRoutes(pages)
		resultHandler.RegisterRoutes(pages)
	}

	v1 := r.Group("/api/v1")
	v1.Use(middleware.CORS(d.CORSOrigins), d.Visitors.Middleware())
	{
		v1.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		checkoutHandler.RegisterAPIRoutes(v1)
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
	})

	return r, nil
}
