package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	bookings := g.Group("/bookings")
	bookings.Use(authMiddleware)
	{
		bookings.GET("", h.List)
		bookings.GET("/check", h.Check)
		bookings.GET("/:id", h.Get)
		bookings.POST("", h.Create)
		bookings.PATCH("/:id", h.Update)
		bookings.POST("/:id/move", h.Move)
		bookings.POST("/:id/cancel", h.Cancel)
	}

	availability := g.Group("/availability")
	availability.Use(authMiddleware)
	{
		availability.GET("", h.AvailabilityForDate)
		availability.GET("/slots", h.FindSlots)
		availability.GET("/suggestions", h.Suggest)
	}

	g.GET("/sitrep", authMiddleware, h.Sitrep)
}
