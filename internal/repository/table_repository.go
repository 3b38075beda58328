package repository // repository defines data access for tables

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel comparisons

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// TableRepo provides methods to work with restaurant tables in the
// database.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo constructs a TableRepo with the given DB handle.
func NewTableRepo(db *sql.DB) *TableRepo {
	return &TableRepo{db: db}
}

// Create inserts a single table record. On success the table's ID is
// populated.
func (r *TableRepo) Create(ctx context.Context, t *model.Table) error {
	const q = `INSERT INTO tables (restaurant_id, name, capacity) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.RestaurantID, t.Name, t.Capacity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID retrieves a table by its id (no ownership check).
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	const q = `SELECT id, restaurant_id, name, capacity, created_at, updated_at
	           FROM tables WHERE id = ?`
	var t model.Table
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&t.ID, &t.RestaurantID, &t.Name, &t.Capacity, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByRestaurant retrieves all tables of a restaurant ordered by
// capacity then id.
func (r *TableRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Table, error) {
	const q = `SELECT id, restaurant_id, name, capacity, created_at, updated_at
	           FROM tables WHERE restaurant_id = ?
	           ORDER BY capacity, id`
	return r.list(ctx, q, restaurantID)
}

// ListWithCapacity retrieves the tables of a restaurant able to seat at
// least partySize guests, ordered ascending by capacity so the smallest
// sufficient table is preferred and large tables are not wasted on small
// parties.
func (r *TableRepo) ListWithCapacity(ctx context.Context, restaurantID uint64, partySize uint32) ([]model.Table, error) {
	const q = `SELECT id, restaurant_id, name, capacity, created_at, updated_at
	           FROM tables WHERE restaurant_id = ? AND capacity >= ?
	           ORDER BY capacity, id`
	return r.list(ctx, q, restaurantID, partySize)
}

func (r *TableRepo) list(ctx context.Context, q string, args ...any) ([]model.Table, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Table, 0)
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.ID, &t.RestaurantID, &t.Name, &t.Capacity, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update changes a table's name and capacity after verifying that the
// caller owns the restaurant the table belongs to. Returns
// ErrTableNotFound or ErrForbidden accordingly.
func (r *TableRepo) Update(ctx context.Context, id, ownerID uint64, name string, capacity uint32) error {
	if err := r.checkOwner(ctx, id, ownerID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE tables SET name = ?, capacity = ? WHERE id = ?`, name, capacity, id)
	return err
}

// Delete removes a table after an ownership check. It refuses with
// ErrConflict while the table still has pending or confirmed bookings.
func (r *TableRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	if err := r.checkOwner(ctx, id, ownerID); err != nil {
		return err
	}
	const qActive = `SELECT COUNT(*) FROM bookings
	                 WHERE table_id = ? AND status IN ('pending','confirmed')`
	var active int64
	if err := r.db.QueryRowContext(ctx, qActive, id).Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		return ErrConflict
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM tables WHERE id = ?`, id)
	return err
}

// checkOwner joins through restaurants to obtain the owner of the table's
// restaurant. If no row is returned the table does not exist.
func (r *TableRepo) checkOwner(ctx context.Context, id, ownerID uint64) error {
	const q = `SELECT rest.owner_id
	           FROM tables t
	           JOIN restaurants rest ON rest.id = t.restaurant_id
	           WHERE t.id = ?`
	var actual uint64
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&actual); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTableNotFound
		}
		return err
	}
	if actual != ownerID {
		return ErrForbidden
	}
	return nil
}
