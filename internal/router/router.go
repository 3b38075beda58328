package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/restaurant-table-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/restaurant-table-booking/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Create a route group under the /v1/auth prefix for operations that do
	// not require an existing session (register, login, refresh).  Each of
	// these handlers is responsible for generating or exchanging tokens.
	g := e.Group("/v1/auth")
	// Register a POST endpoint to handle user registration at /v1/auth/register.
	g.POST("/register", a.Register)
	// Register a POST endpoint to handle user login at /v1/auth/login.
	g.POST("/login", a.Login)
	// Register a POST endpoint to refresh access tokens at /v1/auth/refresh. This rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Register a POST endpoint to issue a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Register a POST endpoint to log out.  The handler accepts either a
	// bearer token (revoke all sessions) or a JSON body containing a
	// `refresh_token` (revoke one session).
	g.POST("/logout", a.Logout)

	// Create another group for routes that require a valid access token.  All
	// handlers registered on this group will execute the JWTAuth middleware
	// before being invoked.  Protected endpoints live under /v1.
	auth := e.Group("/v1")
	// Apply the JWTAuth middleware to the protected group using the provided secret.
	auth.Use(middleware.JWTAuth(jwtSecret))
	// Any known role may query its own identity.
	auth.Use(middleware.RequireRole("CUSTOMER", "OWNER", "ADMIN"))
	// Register a GET endpoint at /v1/me that returns the authenticated user's information.
	auth.GET("/me", a.Me)

	// Additionally map POST /v1/logout to the same handler so clients can
	// call either /v1/auth/logout or /v1/logout to terminate a session.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  The PublicHandler returns sanitized data for approved
// restaurants only.  These routes apply no JWT or role middleware and are
// intended for guest users deciding where to book.  The response cache is
// mounted here and only here: every route in this group serves the same
// data to every caller, so these are the only responses safe to share.
// Authenticated groups never see the cache middleware.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", cache)
	// Search must be registered before /v1/restaurants/:id so the literal
	// segment is not captured as an id.
	g.GET("/restaurants/search", p.SearchRestaurants)
	// Expose the list of approved restaurants
	g.GET("/restaurants", p.GetRestaurants)
	// Restaurant detail with opening hours and rating aggregate
	g.GET("/restaurants/:id", p.GetRestaurant)
	// Bookable time slots of a restaurant for a given date
	g.GET("/restaurants/:id/available-times", p.GetAvailableTimes)
	// Advisory availability check for a date, time and party size
	g.GET("/restaurants/:id/availability", p.CheckAvailability)
	// Reviews of a restaurant, newest first
	g.GET("/restaurants/:id/reviews", p.GetReviews)
}
