package router // router defines how HTTP routes are registered for the API

import (
	"github.com/iliyamo/restaurant-table-booking/internal/handler"    // owner handlers
	"github.com/iliyamo/restaurant-table-booking/internal/middleware" // JWT + role middlewares
	"github.com/labstack/echo/v4"
)

// RegisterOwner registers OWNER-scoped endpoints under /v1/owner.
// All routes require a valid JWT and OWNER role.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1/owner",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER"),
	)

	// ---- Restaurants ----
	g.POST("/restaurants", o.CreateRestaurant)
	g.GET("/restaurants", o.ListMyRestaurants)
	g.PUT("/restaurants/:id", o.UpdateRestaurant)
	g.PATCH("/restaurants/:id", o.UpdateRestaurant) // allow partial/semantic updates via PATCH as well
	g.DELETE("/restaurants/:id", o.DeleteRestaurant)

	// ---- Opening hours ----
	g.PUT("/restaurants/:id/hours", o.PutHours)

	// ---- Tables ----
	g.POST("/restaurants/:id/tables", o.CreateTable)
	g.GET("/restaurants/:id/tables", o.ListTables)
	g.PUT("/tables/:id", o.UpdateTable)
	g.PATCH("/tables/:id", o.UpdateTable) // alias for clients that use PATCH
	g.DELETE("/tables/:id", o.DeleteTable)

	// ---- Bookings ----
	g.GET("/restaurants/:id/bookings", o.ListRestaurantBookings)
	g.POST("/bookings/:id/confirm", o.ConfirmBooking)
	g.PATCH("/bookings/:id/status", o.UpdateBookingStatus)
}
