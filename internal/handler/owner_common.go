package handler // handler defines http handlers

import (
    "errors"  // errors provides sentinel values used in getUserID
    "strconv" // strconv converts strings to numeric types

    "github.com/iliyamo/restaurant-table-booking/internal/queue"      // queue carries booking event payloads
    "github.com/iliyamo/restaurant-table-booking/internal/repository" // repository holds data access layer
    "github.com/labstack/echo/v4"                                     // echo defines request context types
)

// OwnerHandler bundles repositories for owners to manage their restaurants,
// tables and the bookings made against them.  Publish is invoked when an
// owner manually confirms a pending booking; it may be nil when no message
// broker is configured.
type OwnerHandler struct {
    RestaurantRepo *repository.RestaurantRepo // RestaurantRepo provides restaurant persistence
    TableRepo      *repository.TableRepo      // TableRepo provides table persistence
    BookingRepo    *repository.BookingRepo    // BookingRepo provides booking persistence
    Publish        func(c echo.Context, ev queue.BookingConfirmedEvent)
}

// NewOwnerHandler constructs a new OwnerHandler and panics if any repository is nil
func NewOwnerHandler(restaurantRepo *repository.RestaurantRepo, tableRepo *repository.TableRepo, bookingRepo *repository.BookingRepo) *OwnerHandler {
    if restaurantRepo == nil || tableRepo == nil || bookingRepo == nil {
        panic("nil repository passed to NewOwnerHandler")
    }
    return &OwnerHandler{
        RestaurantRepo: restaurantRepo,
        TableRepo:      tableRepo,
        BookingRepo:    bookingRepo,
    }
}

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id (or another named) path parameter as a positive uint64
func pathID(c echo.Context, name string) (uint64, bool) {
    n, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || n == 0 {
        return 0, false
    }
    return n, true
}
