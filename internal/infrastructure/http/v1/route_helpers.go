package v1

import (
	"github.com/gin-gonic/gin"
)

// AuthRouteHandler defines the authentication endpoints.
type AuthRouteHandler interface {
	Login(c *gin.Context)
	Me(c *gin.Context)
}

// StockRouteHandler defines the endpoints open to every authenticated user.
type StockRouteHandler interface {
	PbaTypes(c *gin.Context)
	Daily(c *gin.Context)
	SaveDaily(c *gin.Context)
	SaveInitialStock(c *gin.Context)
}

// ReportRouteHandler defines the admin-only report endpoints.
type ReportRouteHandler interface {
	History(c *gin.Context)
	Dashboard(c *gin.Context)
	Inventory(c *gin.Context)
}

// RegisterAuthRoutes registers login as public and /me behind auth.
func RegisterAuthRoutes(group *gin.RouterGroup, handler AuthRouteHandler, auth gin.HandlerFunc) {
	group.POST("/login", handler.Login)
	group.GET("/me", auth, handler.Me)
}

// RegisterStockRoutes registers product type and daily ledger routes.
// The group must already require authentication.
func RegisterStockRoutes(group *gin.RouterGroup, handler StockRouteHandler) {
	group.GET("/pba-types", handler.PbaTypes)
	group.GET("/daily/:date", handler.Daily)
	group.POST("/daily", handler.SaveDaily)
	group.POST("/initial-stock", handler.SaveInitialStock)
}

// RegisterReportRoutes registers report routes, each guarded by requireRole.
func RegisterReportRoutes(group *gin.RouterGroup, handler ReportRouteHandler, requireRole gin.HandlerFunc) {
	group.GET("/history", requireRole, handler.History)
	group.GET("/dashboard", requireRole, handler.Dashboard)
	group.GET("/inventory", requireRole, handler.Inventory)
}
