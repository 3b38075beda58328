package handler

// This file defines HTTP handlers for owners to manage restaurants and
// their weekly opening hours.  Restaurants are created unapproved and only
// surface in public browsing once an admin approves them.  Ownership is
// enforced inside the repository queries, so a handler only has to map the
// sentinel errors onto HTTP status codes.

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/restaurant-table-booking/internal/model"
    "github.com/iliyamo/restaurant-table-booking/internal/repository"
    "github.com/iliyamo/restaurant-table-booking/internal/schedule"
)

// ----- DTOs -----

type hoursReq struct {
    Day       string `json:"day"`
    OpenTime  string `json:"open_time"`
    CloseTime string `json:"close_time"`
    IsClosed  bool   `json:"is_closed"`
}

type restaurantReq struct {
    Name          string     `json:"name"`
    Description   string     `json:"description"`
    Cuisine       []string   `json:"cuisine"`
    PriceRange    uint8      `json:"price_range"`
    City          string     `json:"city"`
    StreetAddress string     `json:"street_address"`
    Phone         string     `json:"phone"`
    Hours         []hoursReq `json:"hours"`
}

// restaurantView is the owner/admin representation of a restaurant.  The
// public browse handlers use their own DTO without the Approved flag.
type restaurantView struct {
    ID            uint64   `json:"id"`
    Name          string   `json:"name"`
    Description   string   `json:"description"`
    Cuisine       []string `json:"cuisine"`
    PriceRange    uint8    `json:"price_range"`
    City          string   `json:"city"`
    StreetAddress string   `json:"street_address"`
    Phone         string   `json:"phone"`
    Approved      bool     `json:"approved"`
}

func toRestaurantView(m *model.Restaurant) restaurantView {
    return restaurantView{
        ID:            m.ID,
        Name:          m.Name,
        Description:   m.Description,
        Cuisine:       splitCuisine(m.Cuisine),
        PriceRange:    m.PriceRange,
        City:          m.City,
        StreetAddress: m.StreetAddress,
        Phone:         m.Phone,
        Approved:      m.Approved,
    }
}

// splitCuisine turns the stored comma separated tag list into a slice,
// dropping empty entries.
func splitCuisine(s string) []string {
    out := []string{}
    for _, t := range strings.Split(s, ",") {
        if t = strings.TrimSpace(t); t != "" {
            out = append(out, t)
        }
    }
    return out
}

// joinCuisine normalizes incoming tags (lower case, trimmed) into the
// comma separated storage form.
func joinCuisine(tags []string) string {
    norm := make([]string, 0, len(tags))
    for _, t := range tags {
        if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
            norm = append(norm, t)
        }
    }
    return strings.Join(norm, ",")
}

// validDay reports whether s is a full lower-case English weekday name.
func validDay(s string) bool {
    switch s {
    case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
        return true
    }
    return false
}

// parseHours validates and converts the hours payload.  Open days must
// carry a well-formed open/close pair that yields at least one bookable
// slot; closed days ignore the time fields.
func parseHours(in []hoursReq) ([]model.RestaurantHours, error) {
    out := make([]model.RestaurantHours, 0, len(in))
    seen := map[string]bool{}
    for _, h := range in {
        day := strings.ToLower(strings.TrimSpace(h.Day))
        if !validDay(day) {
            return nil, errors.New("invalid day: " + h.Day)
        }
        if seen[day] {
            return nil, errors.New("duplicate day: " + day)
        }
        seen[day] = true
        if !h.IsClosed {
            if len(schedule.Slots(h.OpenTime, h.CloseTime, schedule.DefaultIntervalMin)) == 0 {
                return nil, errors.New("invalid hours for " + day)
            }
        }
        out = append(out, model.RestaurantHours{
            Day:       day,
            OpenTime:  h.OpenTime,
            CloseTime: h.CloseTime,
            IsClosed:  h.IsClosed,
        })
    }
    return out, nil
}

func validateRestaurantReq(req *restaurantReq) string {
    req.Name = strings.TrimSpace(req.Name)
    req.City = strings.TrimSpace(req.City)
    if req.Name == "" {
        return "name required"
    }
    if req.City == "" {
        return "city required"
    }
    if req.PriceRange < 1 || req.PriceRange > 4 {
        return "price_range must be between 1 and 4"
    }
    return ""
}

// CreateRestaurant handles POST /v1/owner/restaurants.  The restaurant and
// its opening hours are inserted in one transaction so a listing never
// exists without hours.  The new restaurant starts unapproved.
func (h *OwnerHandler) CreateRestaurant(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req restaurantReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if msg := validateRestaurantReq(&req); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    hours, err := parseHours(req.Hours)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    m := model.Restaurant{
        OwnerID:       ownerID,
        Name:          req.Name,
        Description:   strings.TrimSpace(req.Description),
        Cuisine:       joinCuisine(req.Cuisine),
        PriceRange:    req.PriceRange,
        City:          req.City,
        StreetAddress: strings.TrimSpace(req.StreetAddress),
        Phone:         strings.TrimSpace(req.Phone),
    }
    if err := h.RestaurantRepo.CreateWithHours(c.Request().Context(), &m, hours); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create restaurant failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"item": toRestaurantView(&m)})
}

// ListMyRestaurants handles GET /v1/owner/restaurants and returns every
// restaurant belonging to the caller, approved or not.
func (h *OwnerHandler) ListMyRestaurants(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    items, err := h.RestaurantRepo.ListByOwner(c.Request().Context(), ownerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]restaurantView, 0, len(items))
    for i := range items {
        out = append(out, toRestaurantView(&items[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out, "count": len(out)})
}

// UpdateRestaurant handles PUT /v1/owner/restaurants/:id.  Editing an
// approved restaurant does not reset its approval.
func (h *OwnerHandler) UpdateRestaurant(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    var req restaurantReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if msg := validateRestaurantReq(&req); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }

    m := model.Restaurant{
        Name:          req.Name,
        Description:   strings.TrimSpace(req.Description),
        Cuisine:       joinCuisine(req.Cuisine),
        PriceRange:    req.PriceRange,
        City:          req.City,
        StreetAddress: strings.TrimSpace(req.StreetAddress),
        Phone:         strings.TrimSpace(req.Phone),
    }
    ctx := c.Request().Context()
    if err := h.RestaurantRepo.Update(ctx, id, ownerID, &m); err != nil {
        switch {
        case errors.Is(err, repository.ErrRestaurantNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update restaurant failed"})
    }
    updated, err := h.RestaurantRepo.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": toRestaurantView(updated)})
}

// DeleteRestaurant handles DELETE /v1/owner/restaurants/:id.  A restaurant
// with pending or confirmed bookings cannot be deleted.
func (h *OwnerHandler) DeleteRestaurant(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    if err := h.RestaurantRepo.Delete(c.Request().Context(), id, ownerID); err != nil {
        switch {
        case errors.Is(err, repository.ErrRestaurantNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "restaurant has active bookings"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete restaurant failed"})
    }
    return c.NoContent(http.StatusNoContent)
}

// PutHours handles PUT /v1/owner/restaurants/:id/hours.  The submitted set
// replaces the stored week atomically; days not present fall back to
// closed since no hours row exists for them.
func (h *OwnerHandler) PutHours(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    var req struct {
        Hours []hoursReq `json:"hours"`
    }
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    hours, err := parseHours(req.Hours)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    if err := h.RestaurantRepo.ReplaceHours(c.Request().Context(), id, ownerID, hours); err != nil {
        switch {
        case errors.Is(err, repository.ErrRestaurantNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update hours failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
