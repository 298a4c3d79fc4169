package routes

import (
	"github.com/gin-gonic/gin"

	"cabgo/internal/handlers"
	"cabgo/internal/middleware"
	"cabgo/pkg/identity"
)

// SetupBookingRoutes registers the vehicle listing and quote-and-book
// routes. Everything requires a verified identity.
func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, provider identity.Provider) {
	vehicles := r.Group("/vehicles")
	vehicles.Use(middleware.AuthRequired(provider))
	{
		vehicles.GET("", bookingHandler.ListActiveVehicles)
	}

	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthRequired(provider))
	{
		bookings.POST("/quote", bookingHandler.CalculateAmount)
		bookings.POST("", bookingHandler.CreateBooking)
	}
}
