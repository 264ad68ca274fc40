package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/fortune-cookies-ai/fc-backend/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Holdings and leaderboard (public read access)
		v1.GET("/holdings", handler.GetHoldings)
		v1.GET("/leaderboard", handler.GetLeaderboard)
		v1.GET("/collection-holders", handler.GetCollectionHolder)

		// Last-minted bookkeeping (public)
		v1.GET("/last-minted", handler.GetLastMinted)
		v1.POST("/last-minted", handler.SetLastMinted)

		// Generation endpoints (public)
		v1.POST("/fortune", handler.GenerateFortune)
		v1.POST("/images", handler.GenerateImage)

		// Pinning and score submission spend paid resources
		// (requires authentication)
		v1.POST("/pin", middleware.Auth(authCfg), handler.PinImage)
		v1.POST("/register-score", middleware.Auth(authCfg), handler.RegisterScore)

		// Arcade score leaderboard (public read access)
		v1.GET("/mgid-leaderboard", handler.GetScoreboard)
	}
}
