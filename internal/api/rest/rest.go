package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/partvault/assettag/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Tag ledger lookup (public read access)
		v1.GET("/tags/:tag", handler.GetTag)

		// Reservation endpoints (requires authentication)
		v1.POST("/tags/reserve", middleware.Auth(authCfg), handler.ReserveTags)
		v1.GET("/tags/reservations", middleware.Auth(authCfg), handler.GetReservations)

		// Item endpoints (requires authentication)
		v1.POST("/items", middleware.Auth(authCfg), handler.CreateItem)
		v1.DELETE("/items/:id", middleware.Auth(authCfg), handler.DeleteItem)
	}
}
