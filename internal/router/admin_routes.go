package router

// Admin moderation routes.  Restaurants created by owners stay out of
// public browsing until approved here, so these endpoints gate what the
// rest of the API exposes.

import (
	"github.com/iliyamo/restaurant-table-booking/internal/handler"
	"github.com/iliyamo/restaurant-table-booking/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.  All
// routes require a valid JWT and the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	// List every restaurant; ?approved=false yields the moderation queue
	g.GET("/restaurants", h.ListRestaurants)
	// Approve a listing or pull it back out of public browsing
	g.PATCH("/restaurants/:id/approval", h.SetApproval)
}
