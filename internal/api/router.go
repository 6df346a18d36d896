package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tripdesk/travio-gateway/internal/api/handler"
	"github.com/tripdesk/travio-gateway/internal/core/ports"
	"github.com/tripdesk/travio-gateway/internal/core/service"
	"github.com/tripdesk/travio-gateway/internal/infrastructure/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The upstream is injected so main can pick the live or mock client; rdb is
// nil when the token cache is disabled.
func NewRouter(cfg *config.Config, upstream ports.Upstream, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("travio_gateway"))

	// --- Dependencies ---
	source := "live"
	if cfg.Travio.UseMock {
		source = "mock"
	}
	recorder := service.NewActivityRecorder(source)

	authService := service.NewAuthService(upstream, recorder, log)
	crmService := service.NewCRMService(upstream, recorder, cfg.Travio.Language, log)
	bookingService := service.NewBookingService(upstream, recorder, log)
	quoteService := service.NewQuoteService(upstream, recorder, log)

	authHandler := handler.NewAuthHandler(authService)
	crmHandler := handler.NewCRMHandler(crmService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	quoteHandler := handler.NewQuoteHandler(quoteService)
	systemHandler := handler.NewSystemHandler(recorder, cfg.AppName, cfg.Travio.UseMock, cfg.Travio.Language)

	// --- Auth routes ---
	e.POST("/auth/token", authHandler.Token)
	e.GET("/auth/profile", authHandler.Profile)
	e.POST("/auth/login", authHandler.Login)

	// --- CRM routes ---
	e.POST("/crm/search", crmHandler.Search)
	e.GET("/crm/categories", crmHandler.Categories) // before /crm/:id
	e.GET("/crm/:id", crmHandler.Get)
	e.POST("/crm", crmHandler.Create)
	e.PUT("/crm/:id", crmHandler.Update)

	// --- Booking routes ---
	e.POST("/booking/search", bookingHandler.Search)
	e.POST("/booking/results", bookingHandler.Results)
	e.POST("/booking/picks", bookingHandler.Picks)
	e.PUT("/booking/cart", bookingHandler.CartAdd)
	e.GET("/booking/cart/:id", bookingHandler.CartGet)
	e.DELETE("/booking/cart", bookingHandler.CartRemove)

	// --- Quote routes ---
	e.POST("/quotes/place/:cart_id", quoteHandler.Place)
	e.POST("/quotes/send/:reservation_id", quoteHandler.Send)

	// --- System routes ---
	e.GET("/system/health", systemHandler.Health)
	e.GET("/system/activity", systemHandler.Activity)
	e.DELETE("/system/activity", systemHandler.ClearActivity)

	// --- Health probes and metrics ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
