package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shareit-rental/service-booking/internal/platform/health"
	"github.com/shareit-rental/service-booking/internal/platform/middleware"
)

// Handlers groups the route owners mounted by NewRouter.
type Handlers struct {
	Health   *health.Handler
	Docs     *DocsHandler
	Users    *UserHandler
	Items    *ItemHandler
	Bookings *BookingHandler
}

// NewRouter builds the gin engine with the shared middleware stack. Item and
// booking routes require the caller identity header; user routes do not.
func NewRouter(log *zap.Logger, h Handlers) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	if h.Health != nil {
		h.Health.RegisterRoutes(router)
	}
	if h.Docs != nil {
		h.Docs.RegisterRoutes(&router.RouterGroup)
	}
	if h.Users != nil {
		h.Users.RegisterRoutes(&router.RouterGroup)
	}

	identified := router.Group("", middleware.IdentityMiddleware())
	if h.Items != nil {
		h.Items.RegisterRoutes(identified)
	}
	if h.Bookings != nil {
		h.Bookings.RegisterRoutes(identified)
	}
	return router, nil
}
