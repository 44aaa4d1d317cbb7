// Package v1 provides the HTTP API.
package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	appctx "doccstock/internal/core/context"
	"doccstock/internal/infrastructure/http/v1/handlers"
	"doccstock/internal/infrastructure/http/v1/middleware"
	"doccstock/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	AuthService   handlers.AuthService
	PbaTypes      handlers.PbaTypeLister
	LedgerService handlers.LedgerService
	ReportService handlers.ReportService

	// Database is probed by the health endpoints
	Database handlers.DatabaseProbe

	AppName    string
	AppVersion string

	CORS middleware.CORSConfig

	// Now and Location define "today" for the dashboard and inventory.
	Now      handlers.Clock
	Location *time.Location

	// Debug enables gin debug mode
	Debug bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	middleware.SetupValidator()

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler(cfg.Now, cfg.Location)

	healthHandler := handlers.NewHealthHandler(cfg.Database, cfg.AppName, cfg.AppVersion)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	api := router.Group("/api")
	api.GET("/health", healthHandler.Ready)

	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
	RegisterAuthRoutes(api.Group("/auth"), authHandler, middleware.Auth(cfg.JWTValidator))

	stock := api.Group("/stock")
	stock.Use(middleware.Auth(cfg.JWTValidator))
	{
		stockHandler := handlers.NewStockHandler(base, cfg.PbaTypes, cfg.LedgerService)
		RegisterStockRoutes(stock, stockHandler)

		reportsHandler := handlers.NewReportsHandler(base, cfg.ReportService)
		RegisterReportRoutes(stock, reportsHandler, middleware.RequireRole(appctx.RoleAdmin))
	}

	return router
}
