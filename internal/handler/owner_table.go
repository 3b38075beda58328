package handler

// Handlers for owners to manage the tables of a restaurant.  Table
// capacity drives availability: a party fits a table when capacity is at
// least the party size, and the smallest sufficient table is assigned
// first.  Deleting a table that still has pending or confirmed bookings
// is refused.

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/restaurant-table-booking/internal/model"
    "github.com/iliyamo/restaurant-table-booking/internal/repository"
)

type tableReq struct {
    Name     string `json:"name"`
    Capacity uint32 `json:"capacity"`
}

type tableView struct {
    ID       uint64 `json:"id"`
    Name     string `json:"name"`
    Capacity uint32 `json:"capacity"`
}

// CreateTable handles POST /v1/owner/restaurants/:id/tables.
func (h *OwnerHandler) CreateTable(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    restaurantID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    var req tableReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Name = strings.TrimSpace(req.Name)
    if req.Name == "" || req.Capacity < 1 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and positive capacity required"})
    }

    ctx := c.Request().Context()
    // The table repo has no restaurant ownership context of its own on
    // insert, so verify through the restaurant repo first.
    rest, err := h.RestaurantRepo.GetByID(ctx, restaurantID)
    if err != nil {
        if errors.Is(err, repository.ErrRestaurantNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if rest.OwnerID != ownerID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }

    t := model.Table{RestaurantID: restaurantID, Name: req.Name, Capacity: req.Capacity}
    if err := h.TableRepo.Create(ctx, &t); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create table failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"item": tableView{ID: t.ID, Name: t.Name, Capacity: t.Capacity}})
}

// ListTables handles GET /v1/owner/restaurants/:id/tables.
func (h *OwnerHandler) ListTables(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    restaurantID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
    }
    ctx := c.Request().Context()
    rest, err := h.RestaurantRepo.GetByID(ctx, restaurantID)
    if err != nil {
        if errors.Is(err, repository.ErrRestaurantNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if rest.OwnerID != ownerID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    tables, err := h.TableRepo.ListByRestaurant(ctx, restaurantID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]tableView, 0, len(tables))
    for _, t := range tables {
        out = append(out, tableView{ID: t.ID, Name: t.Name, Capacity: t.Capacity})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out, "count": len(out)})
}

// UpdateTable handles PUT /v1/owner/tables/:id.
func (h *OwnerHandler) UpdateTable(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
    }
    var req tableReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Name = strings.TrimSpace(req.Name)
    if req.Name == "" || req.Capacity < 1 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and positive capacity required"})
    }
    if err := h.TableRepo.Update(c.Request().Context(), id, ownerID, req.Name, req.Capacity); err != nil {
        switch {
        case errors.Is(err, repository.ErrTableNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update table failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": tableView{ID: id, Name: req.Name, Capacity: req.Capacity}})
}

// DeleteTable handles DELETE /v1/owner/tables/:id.
func (h *OwnerHandler) DeleteTable(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
    }
    if err := h.TableRepo.Delete(c.Request().Context(), id, ownerID); err != nil {
        switch {
        case errors.Is(err, repository.ErrTableNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "table has active bookings"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete table failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
