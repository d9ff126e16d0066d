package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	rates := g.Group("/rates")
	rates.Use(authMiddleware)
	{
		rates.GET("", h.ListRates)
	}

	staff := rates.Group("")
	staff.Use(staffMiddleware)
	{
		staff.POST("", h.CreateRate)
		staff.DELETE("/:id", h.DeleteRate)
	}

	// Quotes hang off the yacht resource
	g.GET("/yachts/:id/quote", authMiddleware, h.Quote)
}
