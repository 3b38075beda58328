// Package handler exposes HTTP handlers for both authenticated and public
// endpoints.  This file defines the public browsing API: unauthenticated
// users can list approved restaurants, inspect opening hours and reviews,
// and check table availability before registering.  Sensitive fields
// (owner IDs, approval state) are filtered from responses.  Reads are
// retried on transient failure since every endpoint here is idempotent.

package handler

import (
    "database/sql"
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/restaurant-table-booking/internal/availability"
    "github.com/iliyamo/restaurant-table-booking/internal/model"
    "github.com/iliyamo/restaurant-table-booking/internal/repository"
    "github.com/iliyamo/restaurant-table-booking/internal/retry"
)

// PublicHandler aggregates the dependencies needed for unauthenticated
// browsing.  It produces sanitized responses suitable for public
// consumption.
type PublicHandler struct {
    RestaurantRepo *repository.RestaurantRepo // provides restaurant and hours data
    ReviewRepo     *repository.ReviewRepo     // provides review data
    Checker        *availability.Checker      // answers table availability questions
}

// NewPublicHandler constructs a PublicHandler and panics on nil dependencies.
func NewPublicHandler(restaurantRepo *repository.RestaurantRepo, reviewRepo *repository.ReviewRepo, checker *availability.Checker) *PublicHandler {
    if restaurantRepo == nil || reviewRepo == nil || checker == nil {
        panic("nil dependency passed to NewPublicHandler")
    }
    return &PublicHandler{RestaurantRepo: restaurantRepo, ReviewRepo: reviewRepo, Checker: checker}
}

// PublicRestaurant represents a restaurant exposed via the public API.
// It contains only safe fields.
type PublicRestaurant struct {
    ID            uint64   `json:"id"`
    Name          string   `json:"name"`
    Description   string   `json:"description"`
    Cuisine       []string `json:"cuisine"`
    PriceRange    uint8    `json:"price_range"`
    City          string   `json:"city"`
    StreetAddress string   `json:"street_address"`
    Phone         string   `json:"phone"`
}

// PublicHours represents one weekday of opening hours.
type PublicHours struct {
    Day       string `json:"day"`
    OpenTime  string `json:"open_time,omitempty"`
    CloseTime string `json:"close_time,omitempty"`
    IsClosed  bool   `json:"is_closed"`
}

// PublicRestaurantDetail adds hours and the review aggregate to the list
// representation.
type PublicRestaurantDetail struct {
    PublicRestaurant
    Hours         []PublicHours `json:"hours"`
    AverageRating float64       `json:"average_rating"`
    ReviewCount   int64         `json:"review_count"`
}

func toPublicRestaurant(m *model.Restaurant) PublicRestaurant {
    return PublicRestaurant{
        ID:            m.ID,
        Name:          m.Name,
        Description:   m.Description,
        Cuisine:       splitCuisine(m.Cuisine),
        PriceRange:    m.PriceRange,
        City:          m.City,
        StreetAddress: m.StreetAddress,
        Phone:         m.Phone,
    }
}

// GetRestaurants handles GET /v1/restaurants and lists approved
// restaurants, newest first.
func (h *PublicHandler) GetRestaurants(c echo.Context) error {
    ctx := c.Request().Context()
    var items []model.Restaurant
    err := retry.Do(ctx, retry.DefaultAttempts, retry.DefaultDelay, func() error {
        var e error
        items, e = h.RestaurantRepo.ListApproved(ctx)
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

// GetRestaurant handles GET /v1/restaurants/:id and returns the full
// public detail: listing fields, weekly hours and the review aggregate.
// Unapproved restaurants are hidden behind a 404.
func (h *PublicHandler) GetRestaurant(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    ctx := c.Request().Context()

    rest, err := h.visibleRestaurant(c, id)
    if err != nil || rest == nil {
        return err
    }

    hours, err := h.RestaurantRepo.GetHours(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    avg, count, err := h.ReviewRepo.AverageRating(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    detail := PublicRestaurantDetail{
        PublicRestaurant: toPublicRestaurant(rest),
        Hours:            make([]PublicHours, 0, len(hours)),
        AverageRating:    avg,
        ReviewCount:      count,
    }
    for _, hr := range hours {
        ph := PublicHours{Day: hr.Day, IsClosed: hr.IsClosed}
        if !hr.IsClosed {
            ph.OpenTime = hr.OpenTime
            ph.CloseTime = hr.CloseTime
        }
        detail.Hours = append(detail.Hours, ph)
    }
    return c.JSON(http.StatusOK, detail)
}

// GetAvailableTimes handles GET /v1/restaurants/:id/available-times?date=.
// It returns the bookable time slots for the date based on the opening
// hours; a closed or unrecorded day yields an empty list.
func (h *PublicHandler) GetAvailableTimes(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    date := strings.TrimSpace(c.QueryParam("date"))
    if _, err := time.Parse("2006-01-02", date); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date required as YYYY-MM-DD"})
    }
    rest, err := h.visibleRestaurant(c, id)
    if err != nil || rest == nil {
        return err
    }
    ctx := c.Request().Context()
    var slots []string
    err = retry.Do(ctx, retry.DefaultAttempts, retry.DefaultDelay, func() error {
        var e error
        slots, e = h.Checker.AvailableTimes(ctx, id, date)
        return e
    })
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"date": date, "times": slots})
}

// CheckAvailability handles
// GET /v1/restaurants/:id/availability?date=&time=&party_size=.
// The answer is advisory: the unique table/date/time key is the final
// arbiter when the booking is actually created.
func (h *PublicHandler) CheckAvailability(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    date := strings.TrimSpace(c.QueryParam("date"))
    timeOfDay := strings.TrimSpace(c.QueryParam("time"))
    partySize, ok := parsePartySize(c.QueryParam("party_size"))
    if date == "" || timeOfDay == "" || !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date, time and party_size required"})
    }
    rest, err := h.visibleRestaurant(c, id)
    if err != nil || rest == nil {
        return err
    }
    ctx := c.Request().Context()
    var available bool
    err = retry.Do(ctx, retry.DefaultAttempts, retry.DefaultDelay, func() error {
        var e error
        available, e = h.Checker.IsAvailable(ctx, id, date, timeOfDay, partySize)
        return e
    })
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "available":  available,
        "date":       date,
        "time":       timeOfDay,
        "party_size": partySize,
    })
}

// GetReviews handles GET /v1/restaurants/:id/reviews and returns the
// restaurant's reviews, newest first, with the rating aggregate.
func (h *PublicHandler) GetReviews(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    rest, err := h.visibleRestaurant(c, id)
    if err != nil || rest == nil {
        return err
    }
    ctx := c.Request().Context()
    var items []repository.ReviewDetail
    err = retry.Do(ctx, retry.DefaultAttempts, retry.DefaultDelay, func() error {
        var e error
        items, e = h.ReviewRepo.ListByRestaurant(ctx, id)
        return e
    })
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    avg, count, err := h.ReviewRepo.AverageRating(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "items":          items,
        "count":          len(items),
        "average_rating": avg,
        "review_count":   count,
    })
}

// visibleRestaurant loads a restaurant for public consumption.  It writes
// the error response itself and returns a nil restaurant when the caller
// should stop: both a missing and an unapproved restaurant surface as 404
// so the approval queue stays invisible.
func (h *PublicHandler) visibleRestaurant(c echo.Context, id uint64) (*model.Restaurant, error) {
    ctx := c.Request().Context()
    var rest *model.Restaurant
    err := retry.Do(ctx, retry.DefaultAttempts, retry.DefaultDelay, func() error {
        var e error
        rest, e = h.RestaurantRepo.GetByID(ctx, id)
        if errors.Is(e, repository.ErrRestaurantNotFound) || errors.Is(e, sql.ErrNoRows) {
            rest = nil
            return nil // not transient, stop retrying
        }
        return e
    })
    if err != nil {
        return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if rest == nil || !rest.Approved {
        return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
    }
    return rest, nil
}

func parsePartySize(raw string) (uint32, bool) {
    n, err := strconv.Atoi(strings.TrimSpace(raw))
    if err != nil || n < 1 || n > 1000 {
        return 0, false
    }
    return uint32(n), true
}
