package handler

// Admin endpoints for moderating restaurant listings.  New restaurants
// start unapproved and stay out of public browse and search until an
// admin approves them here.

import (
    "errors"
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/restaurant-table-booking/internal/repository"
)

// AdminHandler wraps the repositories used by admin moderation routes.
type AdminHandler struct {
    RestaurantRepo *repository.RestaurantRepo
}

// NewAdminHandler constructs an AdminHandler and panics on a nil repository.
func NewAdminHandler(restaurantRepo *repository.RestaurantRepo) *AdminHandler {
    if restaurantRepo == nil {
        panic("nil repository passed to NewAdminHandler")
    }
    return &AdminHandler{RestaurantRepo: restaurantRepo}
}

// ListRestaurants handles GET /v1/admin/restaurants.  An optional
// approved=true|false query narrows the list; without it every
// restaurant is returned, which makes the unmoderated queue just
// ?approved=false.
func (h *AdminHandler) ListRestaurants(c echo.Context) error {
    var filter *bool
    if raw := strings.TrimSpace(c.QueryParam("approved")); raw != "" {
        v, err := strconv.ParseBool(raw)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "approved must be true or false"})
        }
        filter = &v
    }
    items, err := h.RestaurantRepo.ListForAdmin(c.Request().Context(), filter)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]restaurantView, 0, len(items))
    for i := range items {
        out = append(out, toRestaurantView(&items[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out, "count": len(out)})
}

// SetApproval handles PATCH /v1/admin/restaurants/:id/approval with a
// body of {"approved": true|false}.  Revoking approval pulls a
// restaurant back out of public browsing; existing bookings are left
// untouched.
func (h *AdminHandler) SetApproval(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    var req struct {
        Approved *bool `json:"approved"`
    }
    if err := c.Bind(&req); err != nil || req.Approved == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "approved required"})
    }
    if err := h.RestaurantRepo.SetApproved(c.Request().Context(), id, *req.Approved); err != nil {
        if errors.Is(err, repository.ErrRestaurantNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update approval failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id, "approved": *req.Approved})
}
