package handler

// Handlers for owners to work the booking book of a restaurant: list the
// bookings made against it, confirm pending ones when auto-confirmation
// is switched off, and close out confirmed bookings as completed or
// no_show after the visit.

import (
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/restaurant-table-booking/internal/model"
    "github.com/iliyamo/restaurant-table-booking/internal/queue"
    "github.com/iliyamo/restaurant-table-booking/internal/repository"
)

// ListRestaurantBookings handles GET /v1/owner/restaurants/:id/bookings.
// It returns all bookings for the restaurant, newest service date first
// is left to the client; rows arrive ordered by date and time.
func (h *OwnerHandler) ListRestaurantBookings(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    restaurantID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    details, err := h.BookingRepo.ListByRestaurantForOwner(c.Request().Context(), restaurantID, ownerID)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrRestaurantNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": details, "count": len(details)})
}

// ConfirmBooking handles POST /v1/owner/bookings/:id/confirm.  Only a
// pending booking can be confirmed; the confirmation event is published
// best-effort so a broker outage never blocks the state change.
func (h *OwnerHandler) ConfirmBooking(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    ctx := c.Request().Context()
    b, err := h.BookingRepo.ConfirmForOwner(ctx, id, ownerID)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrBookingNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not pending"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm booking failed"})
    }

    if h.Publish != nil {
        ev := queue.BookingConfirmedEvent{
            BookingID:    b.ID,
            RestaurantID: b.RestaurantID,
            CustomerID:   b.CustomerID,
            Date:         b.Date,
            Time:         b.Time,
            PartySize:    b.PartySize,
            ConfirmedAt:  time.Now().UTC().Format(time.RFC3339),
        }
        if b.TableID != nil {
            ev.TableID = *b.TableID
        }
        if rest, err := h.RestaurantRepo.GetByID(ctx, b.RestaurantID); err == nil {
            ev.RestaurantName = rest.Name
        }
        h.Publish(c, ev)
    }

    return c.JSON(http.StatusOK, echo.Map{"id": b.ID, "status": b.Status})
}

// UpdateBookingStatus handles PATCH /v1/owner/bookings/:id/status with a
// body of {"status": "completed"} or {"status": "no_show"}.
func (h *OwnerHandler) UpdateBookingStatus(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    var req struct {
        Status string `json:"status"`
    }
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    status := strings.ToLower(strings.TrimSpace(req.Status))
    if status != model.BookingCompleted && status != model.BookingNoShow {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be completed or no_show"})
    }
    if err := h.BookingRepo.SetStatusForOwner(c.Request().Context(), id, ownerID, status); err != nil {
        switch {
        case errors.Is(err, repository.ErrBookingNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not confirmed"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update booking failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
}
