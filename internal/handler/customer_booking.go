package handler

// This file defines HTTP handlers for customers to create and manage
// their bookings and to review restaurants they have visited.  Slot
// validation, table assignment and the confirmation policy live in the
// booking service; the handlers translate its errors into HTTP codes.

import (
    "database/sql"
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/restaurant-table-booking/internal/booking"
    "github.com/iliyamo/restaurant-table-booking/internal/model"
    "github.com/iliyamo/restaurant-table-booking/internal/repository"
)

// CustomerHandler groups the dependencies for customer-facing booking
// and review endpoints.
type CustomerHandler struct {
    Bookings    *booking.Service        // booking workflow (validate, assign table, confirm)
    BookingRepo *repository.BookingRepo // read access to the customer's bookings
    ReviewRepo  *repository.ReviewRepo  // review persistence
}

// NewCustomerHandler constructs a CustomerHandler and panics on nil dependencies.
func NewCustomerHandler(svc *booking.Service, bookingRepo *repository.BookingRepo, reviewRepo *repository.ReviewRepo) *CustomerHandler {
    if svc == nil || bookingRepo == nil || reviewRepo == nil {
        panic("nil dependency passed to NewCustomerHandler")
    }
    return &CustomerHandler{Bookings: svc, BookingRepo: bookingRepo, ReviewRepo: reviewRepo}
}

type createBookingReq struct {
    RestaurantID    uint64 `json:"restaurant_id"`
    Date            string `json:"date"`
    Time            string `json:"time"`
    PartySize       uint32 `json:"party_size"`
    SpecialRequests string `json:"special_requests"`
}

type bookingView struct {
    ID              uint64  `json:"id"`
    RestaurantID    uint64  `json:"restaurant_id"`
    TableID         *uint64 `json:"table_id,omitempty"`
    Date            string  `json:"date"`
    Time            string  `json:"time"`
    PartySize       uint32  `json:"party_size"`
    Status          string  `json:"status"`
    SpecialRequests string  `json:"special_requests,omitempty"`
}

// CreateBooking handles POST /v1/bookings.  The service checks
// availability, assigns the smallest sufficient table and applies the
// confirmation policy.  A slot grabbed by a concurrent booking between
// the check and the insert surfaces as 409.
func (h *CustomerHandler) CreateBooking(c echo.Context) error {
    customerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createBookingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    b, err := h.Bookings.Create(c.Request().Context(), customerID, booking.CreateRequest{
        RestaurantID:    req.RestaurantID,
        Date:            strings.TrimSpace(req.Date),
        Time:            strings.TrimSpace(req.Time),
        PartySize:       req.PartySize,
        SpecialRequests: strings.TrimSpace(req.SpecialRequests),
    })
    if err != nil {
        switch {
        case errors.Is(err, booking.ErrInvalidRequest):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        case errors.Is(err, booking.ErrSlotUnavailable):
            return c.JSON(http.StatusConflict, echo.Map{"error": "no table available for that time"})
        case errors.Is(err, repository.ErrRestaurantNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
    }

    return c.JSON(http.StatusCreated, echo.Map{"item": bookingView{
        ID:              b.ID,
        RestaurantID:    b.RestaurantID,
        TableID:         b.TableID,
        Date:            b.Date,
        Time:            b.Time,
        PartySize:       b.PartySize,
        Status:          b.Status,
        SpecialRequests: b.SpecialRequests,
    }})
}

// ListMyBookings handles GET /v1/bookings and returns the caller's
// bookings ordered by service date and time.
func (h *CustomerHandler) ListMyBookings(c echo.Context) error {
    customerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    details, err := h.BookingRepo.ListByCustomer(c.Request().Context(), customerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": details, "count": len(details)})
}

// GetMyBooking handles GET /v1/bookings/:id.  Ownership is enforced in
// the query; another customer's booking is indistinguishable from a
// missing one.
func (h *CustomerHandler) GetMyBooking(c echo.Context) error {
    customerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    detail, err := h.BookingRepo.GetByIDForCustomer(c.Request().Context(), id, customerID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": detail})
}

// CancelBooking handles DELETE /v1/bookings/:id.  Only the booking's
// customer may cancel and only while it is pending or confirmed; a
// repeat cancel is a 409.
func (h *CustomerHandler) CancelBooking(c echo.Context) error {
    customerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    if err := h.Bookings.Cancel(c.Request().Context(), id, customerID); err != nil {
        switch {
        case errors.Is(err, repository.ErrBookingNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "booking already finished or cancelled"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel booking failed"})
    }
    return c.NoContent(http.StatusNoContent)
}

type createReviewReq struct {
    Rating uint8  `json:"rating"`
    Text   string `json:"text"`
}

// CreateReview handles POST /v1/restaurants/:id/reviews.  Ratings run
// from 1 to 5 and reviews are immutable once created.
func (h *CustomerHandler) CreateReview(c echo.Context) error {
    customerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    restaurantID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    var req createReviewReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    rev := model.Review{
        RestaurantID: restaurantID,
        CustomerID:   customerID,
        Rating:       req.Rating,
        Text:         strings.TrimSpace(req.Text),
    }
    if err := h.ReviewRepo.Create(c.Request().Context(), &rev); err != nil {
        switch {
        case errors.Is(err, repository.ErrRatingOutOfRange):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
        case errors.Is(err, repository.ErrRestaurantNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"item": echo.Map{
        "id":            rev.ID,
        "restaurant_id": rev.RestaurantID,
        "rating":        rev.Rating,
        "text":          rev.Text,
    }})
}
