package router

import (
	"github.com/iliyamo/restaurant-table-booking/internal/handler"
	"github.com/iliyamo/restaurant-table-booking/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.  All
// routes require a valid JWT and the CUSTOMER role.  Customers can create
// bookings, view and cancel their own bookings, and review restaurants.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER"),
	)
	// Note: restaurant browsing, availability checks and review listings
	// are registered on the public router so that guests can explore
	// before signing up.  Customer-specific endpoints begin here.
	g.POST("/bookings", h.CreateBooking)
	g.GET("/bookings", h.ListMyBookings)
	g.GET("/bookings/:id", h.GetMyBooking)
	g.DELETE("/bookings/:id", h.CancelBooking)

	// Reviews are written by customers against a restaurant.  Reading
	// them is public; writing requires the CUSTOMER role.
	g.POST("/restaurants/:id/reviews", h.CreateReview)
}
