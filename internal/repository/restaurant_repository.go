// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for restaurants and their weekly
// opening hours. A restaurant belongs to a single owner and appears in
// public browse and search results only after an admin has approved it.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used for sentinel comparisons
	"strings"      // strings builds dynamic WHERE clauses for search

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// RestaurantRepo encapsulates all database queries related to restaurants
// and restaurant_hours. It depends on a sql.DB connection which should be
// configured elsewhere.
type RestaurantRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewRestaurantRepo constructs a RestaurantRepo with the provided DB handle.
// This function allows dependency injection of the database in tests and at
// startup.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo {
	return &RestaurantRepo{db: db}
}

// DB exposes the underlying handle so handlers can open transactions that
// span multiple repositories.
func (r *RestaurantRepo) DB() *sql.DB { return r.db }

const restaurantCols = `id, owner_id, name, description, cuisine, price_range,
	city, street_address, phone, approved, created_at, updated_at`

func scanRestaurant(row interface{ Scan(...any) error }, m *model.Restaurant) error {
	return row.Scan(&m.ID, &m.OwnerID, &m.Name, &m.Description, &m.Cuisine,
		&m.PriceRange, &m.City, &m.StreetAddress, &m.Phone, &m.Approved,
		&m.CreatedAt, &m.UpdatedAt)
}

// CreateWithHours inserts a restaurant and its weekly hours in a single
// transaction so a failure after the restaurant insert cannot leave an
// orphaned row without hours. On success the restaurant's ID and
// timestamps are populated. New restaurants always start unapproved.
func (r *RestaurantRepo) CreateWithHours(ctx context.Context, m *model.Restaurant, hours []model.RestaurantHours) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const qInsert = `INSERT INTO restaurants
		(owner_id, name, description, cuisine, price_range, city, street_address, phone, approved)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, FALSE)`
	res, err := tx.ExecContext(ctx, qInsert, m.OwnerID, m.Name, m.Description,
		m.Cuisine, m.PriceRange, m.City, m.StreetAddress, m.Phone)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)

	if err := replaceHoursTx(ctx, tx, m.ID, hours); err != nil {
		return err
	}

	// Query back the full row to populate timestamps and defaults.
	const qSelect = `SELECT ` + restaurantCols + ` FROM restaurants WHERE id = ?`
	if err := scanRestaurant(tx.QueryRowContext(ctx, qSelect, m.ID), m); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID fetches a restaurant by its ID regardless of owner or approval.
// It returns ErrRestaurantNotFound if no row is found.
func (r *RestaurantRepo) GetByID(ctx context.Context, id uint64) (*model.Restaurant, error) {
	const q = `SELECT ` + restaurantCols + ` FROM restaurants WHERE id = ?`
	var m model.Restaurant
	if err := scanRestaurant(r.db.QueryRowContext(ctx, q, id), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListApproved returns all approved restaurants ordered newest first, the
// order the public browse page displays them in.
func (r *RestaurantRepo) ListApproved(ctx context.Context) ([]model.Restaurant, error) {
	const q = `SELECT ` + restaurantCols + ` FROM restaurants
	           WHERE approved = TRUE ORDER BY created_at DESC`
	return r.list(ctx, q)
}

// ListByOwner returns all restaurants belonging to an owner ordered by id,
// including ones still awaiting approval.
func (r *RestaurantRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Restaurant, error) {
	const q = `SELECT ` + restaurantCols + ` FROM restaurants
	           WHERE owner_id = ? ORDER BY id`
	return r.list(ctx, q, ownerID)
}

// ListForAdmin returns all restaurants, optionally filtered by approval
// state when approved is non-nil. Used by the admin dashboard.
func (r *RestaurantRepo) ListForAdmin(ctx context.Context, approved *bool) ([]model.Restaurant, error) {
	q := `SELECT ` + restaurantCols + ` FROM restaurants`
	args := []any{}
	if approved != nil {
		q += ` WHERE approved = ?`
		args = append(args, *approved)
	}
	q += ` ORDER BY created_at DESC`
	return r.list(ctx, q, args...)
}

func (r *RestaurantRepo) list(ctx context.Context, q string, args ...any) ([]model.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Restaurant, 0)
	for rows.Next() {
		var m model.Restaurant
		if err := scanRestaurant(rows, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchQuery defines filters for searching approved restaurants.
// Location (substring match against city or name) and Cuisine (exact tag
// match) are mutually exclusive in the UI; when both are supplied the
// location filter wins. PriceRange of zero means no price filter.
type SearchQuery struct {
	Location   string
	Cuisine    string
	PriceRange uint8
}

// Search returns approved restaurants matching the query, newest first.
func (r *RestaurantRepo) Search(ctx context.Context, q SearchQuery) ([]model.Restaurant, error) {
	where := []string{"approved = TRUE"}
	args := []any{}

	if q.Location != "" {
		where = append(where, "(LOWER(city) LIKE ? OR LOWER(name) LIKE ?)")
		pat := "%" + strings.ToLower(q.Location) + "%"
		args = append(args, pat, pat)
	} else if q.Cuisine != "" {
		// Cuisine is a comma separated tag list; FIND_IN_SET gives an
		// exact tag match rather than a substring one.
		where = append(where, "FIND_IN_SET(?, cuisine) > 0")
		args = append(args, strings.ToLower(q.Cuisine))
	}
	if q.PriceRange > 0 {
		where = append(where, "price_range = ?")
		args = append(args, q.PriceRange)
	}

	query := `SELECT ` + restaurantCols + ` FROM restaurants WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY created_at DESC`
	return r.list(ctx, query, args...)
}

// Update modifies a restaurant's mutable fields if it belongs to the given
// owner. It returns ErrRestaurantNotFound when the restaurant does not
// exist and ErrForbidden when it is owned by someone else.
func (r *RestaurantRepo) Update(ctx context.Context, id, ownerID uint64, m *model.Restaurant) error {
	if err := r.checkOwner(ctx, id, ownerID); err != nil {
		return err
	}
	const q = `UPDATE restaurants
	           SET name = ?, description = ?, cuisine = ?, price_range = ?,
	               city = ?, street_address = ?, phone = ?
	           WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, m.Name, m.Description, m.Cuisine,
		m.PriceRange, m.City, m.StreetAddress, m.Phone, id)
	return err
}

// Delete removes a restaurant owned by the caller. It refuses with
// ErrConflict while the restaurant still has pending or confirmed
// bookings, mirroring the FK protection at the storage layer.
func (r *RestaurantRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	if err := r.checkOwner(ctx, id, ownerID); err != nil {
		return err
	}
	const qActive = `SELECT COUNT(*) FROM bookings
	                 WHERE restaurant_id = ? AND status IN ('pending','confirmed')`
	var active int64
	if err := r.db.QueryRowContext(ctx, qActive, id).Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		return ErrConflict
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM restaurants WHERE id = ?`, id)
	return err
}

// SetApproved flips the approval flag. Admin only; no ownership check.
// Returns ErrRestaurantNotFound when no row was updated.
func (r *RestaurantRepo) SetApproved(ctx context.Context, id uint64, approved bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE restaurants SET approved = ? WHERE id = ?`, approved, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}

// checkOwner verifies existence and ownership of a restaurant. It returns
// ErrRestaurantNotFound or ErrForbidden accordingly.
func (r *RestaurantRepo) checkOwner(ctx context.Context, id, ownerID uint64) error {
	var actual uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT owner_id FROM restaurants WHERE id = ?`, id).Scan(&actual)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRestaurantNotFound
		}
		return err
	}
	if actual != ownerID {
		return ErrForbidden
	}
	return nil
}

// ---- hours ----

// GetHours returns the weekly hours of a restaurant ordered for display
// (monday first).
func (r *RestaurantRepo) GetHours(ctx context.Context, restaurantID uint64) ([]model.RestaurantHours, error) {
	const q = `SELECT id, restaurant_id, day, open_time, close_time, is_closed
	           FROM restaurant_hours
	           WHERE restaurant_id = ?
	           ORDER BY FIELD(day,'monday','tuesday','wednesday','thursday','friday','saturday','sunday')`
	rows, err := r.db.QueryContext(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.RestaurantHours, 0, 7)
	for rows.Next() {
		var h model.RestaurantHours
		if err := rows.Scan(&h.ID, &h.RestaurantID, &h.Day, &h.OpenTime, &h.CloseTime, &h.IsClosed); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetHoursForDay returns the hours row for a single weekday. The day must
// already be the lower-case full weekday name. sql.ErrNoRows is passed
// through when the restaurant has no row for that day.
func (r *RestaurantRepo) GetHoursForDay(ctx context.Context, restaurantID uint64, day string) (*model.RestaurantHours, error) {
	const q = `SELECT id, restaurant_id, day, open_time, close_time, is_closed
	           FROM restaurant_hours WHERE restaurant_id = ? AND day = ? LIMIT 1`
	var h model.RestaurantHours
	err := r.db.QueryRowContext(ctx, q, restaurantID, strings.ToLower(day)).
		Scan(&h.ID, &h.RestaurantID, &h.Day, &h.OpenTime, &h.CloseTime, &h.IsClosed)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ReplaceHours swaps the full weekly hours of a restaurant owned by the
// caller inside one transaction.
func (r *RestaurantRepo) ReplaceHours(ctx context.Context, restaurantID, ownerID uint64, hours []model.RestaurantHours) error {
	if err := r.checkOwner(ctx, restaurantID, ownerID); err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM restaurant_hours WHERE restaurant_id = ?`, restaurantID); err != nil {
		return err
	}
	if err := replaceHoursTx(ctx, tx, restaurantID, hours); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// replaceHoursTx bulk-inserts hours rows within an existing transaction.
// Passing an empty slice has no effect and returns nil.
func replaceHoursTx(ctx context.Context, tx *sql.Tx, restaurantID uint64, hours []model.RestaurantHours) error {
	if len(hours) == 0 {
		return nil
	}
	query := `INSERT INTO restaurant_hours (restaurant_id, day, open_time, close_time, is_closed) VALUES `
	args := make([]any, 0, len(hours)*5)
	for i, h := range hours {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, restaurantID, strings.ToLower(h.Day), h.OpenTime, h.CloseTime, h.IsClosed)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}
