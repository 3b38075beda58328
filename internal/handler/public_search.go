package handler

import (
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/restaurant-table-booking/internal/model"
    "github.com/iliyamo/restaurant-table-booking/internal/repository"
    "github.com/iliyamo/restaurant-table-booking/internal/retry"
)

// SearchRestaurants handles GET /v1/restaurants/search.  A location query
// matches city or name case-insensitively; otherwise the cuisine query
// matches one tag exactly.  When both are supplied, location wins.  An
// optional price_range (1-4) narrows either mode.  Only approved
// restaurants are searched.
func (h *PublicHandler) SearchRestaurants(c echo.Context) error {
    location := strings.TrimSpace(c.QueryParam("location"))
    cuisine := strings.ToLower(strings.TrimSpace(c.QueryParam("cuisine")))
    if location == "" && cuisine == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "location or cuisine required"})
    }

    var priceRange uint8
    if raw := strings.TrimSpace(c.QueryParam("price_range")); raw != "" {
        n, err := strconv.Atoi(raw)
        if err != nil || n < 1 || n > 4 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_range must be between 1 and 4"})
        }
        priceRange = uint8(n)
    }

    q := repository.SearchQuery{
        Location:   location,
        Cuisine:    cuisine,
        PriceRange: priceRange,
    }

    ctx := c.Request().Context()
    var items []model.Restaurant
    err := retry.Do(ctx, retry.DefaultAttempts, retry.DefaultDelay, func() error {
        var e error
        items, e = h.RestaurantRepo.Search(ctx, q)
        return e
    })
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    out := make([]PublicRestaurant, 0, len(items))
    for i := range items {
        out = append(out, toPublicRestaurant(&items[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out, "count": len(out)})
}
