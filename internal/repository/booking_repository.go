package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// BookingRepo provides CRUD operations for bookings. A booking claims
// one table of a restaurant for a date and time slot on behalf of a
// customer. All timestamp fields are assumed to be stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so services can run the create and
// confirm steps inside one transaction.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a new booking within the scope of an existing
// transaction. It populates the generated ID and timestamps on the
// provided record. The caller must commit or rollback the transaction.
// A violation of the unique (table_id, date, time) key is reported as
// ErrDuplicateSlot: the advisory availability check ran before this
// insert, but a concurrent booking may have claimed the table since.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings
		(restaurant_id, table_id, customer_id, date, time, party_size, status, special_requests)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, b.RestaurantID, b.TableID, b.CustomerID,
		b.Date, b.Time, b.PartySize, b.Status, b.SpecialRequests)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateSlot
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	const sel = `SELECT id, restaurant_id, table_id, customer_id, date, time,
	                    party_size, status, special_requests, created_at, updated_at
	             FROM bookings WHERE id = ?`
	return scanBooking(tx.QueryRowContext(ctx, sel, b.ID), b)
}

// Create inserts a booking and, when confirm is set, transitions it to
// confirmed inside the same transaction so no observer sees a pending
// row that was meant to be auto-confirmed. The record's Status field
// reflects the final state on return.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking, confirm bool) error {
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
	b.Status = model.BookingPending
	if err := r.CreateTx(ctx, tx, b); err != nil {
		return err
	}
	if confirm {
		if err := r.UpdateStatusTx(ctx, tx, b.ID, model.BookingConfirmed); err != nil {
			return err
		}
		b.Status = model.BookingConfirmed
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// UpdateStatusTx sets a booking's status unconditionally within an
// existing transaction. Used by the create flow's auto-confirm step.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	return err
}

// Confirm sets a booking's status to confirmed without re-validating the
// prior status. Confirming an already-confirmed booking is a no-op
// state-wise, which makes this idempotent. ErrBookingNotFound is
// returned when the booking does not exist.
func (r *BookingRepo) Confirm(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ?`, model.BookingConfirmed, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	// MySQL reports zero affected rows both for a missing booking and for
	// one already confirmed; disambiguate with an existence check.
	if n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM bookings WHERE id = ?)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrBookingNotFound
		}
	}
	return nil
}

// CancelByCustomer sets a booking's status to cancelled, guarded so that
// only the owning customer can cancel and only while the booking is
// still pending or confirmed. A second cancel of the same booking hits
// the terminal-status guard and fails. When the guarded update affects
// zero rows the reason is classified for the handler:
// ErrBookingNotFound (no such booking), ErrForbidden (someone else's
// booking) or ErrConflict (already in a terminal status).
func (r *BookingRepo) CancelByCustomer(ctx context.Context, id, customerID uint64) error {
	const q = `UPDATE bookings SET status = ?
	           WHERE id = ? AND customer_id = ? AND status IN (?, ?)`
	res, err := r.db.ExecContext(ctx, q, model.BookingCancelled,
		id, customerID, model.BookingPending, model.BookingConfirmed)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var actualCustomer uint64
	var status string
	err = r.db.QueryRowContext(ctx,
		`SELECT customer_id, status FROM bookings WHERE id = ?`, id).
		Scan(&actualCustomer, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFound
		}
		return err
	}
	if actualCustomer != customerID {
		return ErrForbidden
	}
	return ErrConflict
}

// SetStatusForOwner moves a confirmed booking into a terminal state
// (completed or no_show) on behalf of the restaurant owner. Ownership is
// verified by joining through restaurants. ErrConflict is returned when
// the booking is not currently confirmed.
func (r *BookingRepo) SetStatusForOwner(ctx context.Context, id, ownerID uint64, status string) error {
	if status != model.BookingCompleted && status != model.BookingNoShow {
		return ErrConflict
	}
	const checkQ = `SELECT rest.owner_id, b.status
	                FROM bookings b
	                JOIN restaurants rest ON rest.id = b.restaurant_id
	                WHERE b.id = ?`
	var actualOwner uint64
	var current string
	if err := r.db.QueryRowContext(ctx, checkQ, id).Scan(&actualOwner, &current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFound
		}
		return err
	}
	if actualOwner != ownerID {
		return ErrForbidden
	}
	if current != model.BookingConfirmed {
		return ErrConflict
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	return err
}

// ConfirmForOwner moves a pending booking to confirmed on behalf of the
// restaurant owner, for deployments where bookings are not confirmed
// automatically. The updated booking is returned so callers can publish
// the confirmation event. Confirming an already-confirmed booking
// returns ErrConflict, as does any other non-pending status.
func (r *BookingRepo) ConfirmForOwner(ctx context.Context, id, ownerID uint64) (*model.Booking, error) {
	const checkQ = `SELECT rest.owner_id, b.status
	                FROM bookings b
	                JOIN restaurants rest ON rest.id = b.restaurant_id
	                WHERE b.id = ?`
	var actualOwner uint64
	var current string
	if err := r.db.QueryRowContext(ctx, checkQ, id).Scan(&actualOwner, &current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if actualOwner != ownerID {
		return nil, ErrForbidden
	}
	if current != model.BookingPending {
		return nil, ErrConflict
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ?`, model.BookingConfirmed, id); err != nil {
		return nil, err
	}
	var b model.Booking
	const q = `SELECT id, restaurant_id, table_id, customer_id, date, time,
	                  party_size, status, special_requests, created_at, updated_at
	           FROM bookings WHERE id = ?`
	if err := scanBooking(r.db.QueryRowContext(ctx, q, id), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// BookedTableIDs returns the IDs of tables already claimed at the given
// restaurant, date and time by bookings still in pending or confirmed
// status. Cancelled and other terminal bookings release their table.
func (r *BookingRepo) BookedTableIDs(ctx context.Context, restaurantID uint64, date, timeOfDay string) ([]uint64, error) {
	const q = `SELECT table_id FROM bookings
	           WHERE restaurant_id = ? AND date = ? AND time = ?
	             AND status IN (?, ?) AND table_id IS NOT NULL`
	rows, err := r.db.QueryContext(ctx, q, restaurantID, date, timeOfDay,
		model.BookingPending, model.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// BookingDetail combines a booking with summary information about its
// restaurant for display to customers.
type BookingDetail struct {
	ID              uint64  `json:"id"`
	RestaurantID    uint64  `json:"restaurant_id"`
	TableID         *uint64 `json:"table_id,omitempty"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	PartySize       uint32  `json:"party_size"`
	Status          string  `json:"status"`
	SpecialRequests string  `json:"special_requests,omitempty"`
	CreatedAt       string  `json:"created_at"`
	Restaurant      struct {
		Name       string `json:"name"`
		Cuisine    string `json:"cuisine"`
		PriceRange uint8  `json:"price_range"`
		City       string `json:"city"`
		Street     string `json:"street_address"`
	} `json:"restaurant"`
}

// OwnerBookingDetail extends the information returned for a booking when
// viewed by a restaurant owner: it adds the customer's identity so staff
// can greet the party and follow up on no-shows.
type OwnerBookingDetail struct {
	ID              uint64  `json:"id"`
	TableID         *uint64 `json:"table_id,omitempty"`
	CustomerID      uint64  `json:"customer_id"`
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	PartySize       uint32  `json:"party_size"`
	Status          string  `json:"status"`
	SpecialRequests string  `json:"special_requests,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// GetByIDForCustomer returns a single booking for the given customer with
// restaurant summary attached. Ownership is enforced in the query; when
// no booking with the specified ID exists for the customer,
// sql.ErrNoRows is returned.
func (r *BookingRepo) GetByIDForCustomer(ctx context.Context, bookingID, customerID uint64) (*BookingDetail, error) {
	// DATE_FORMAT keeps created_at a string despite parseTime=true.
	const q = `SELECT b.id, b.restaurant_id, b.table_id, b.date, b.time,
	                  b.party_size, b.status, b.special_requests,
	                  DATE_FORMAT(b.created_at, '%Y-%m-%d %T'),
	                  rest.name, rest.cuisine, rest.price_range, rest.city, rest.street_address
	           FROM bookings b
	           JOIN restaurants rest ON rest.id = b.restaurant_id
	           WHERE b.id = ? AND b.customer_id = ?`
	var d BookingDetail
	if err := scanBookingDetail(r.db.QueryRowContext(ctx, q, bookingID, customerID), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByCustomer returns all bookings placed by the given customer along
// with restaurant summaries, ordered by service date ascending so the
// next visit comes first.
func (r *BookingRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.restaurant_id, b.table_id, b.date, b.time,
	                  b.party_size, b.status, b.special_requests,
	                  DATE_FORMAT(b.created_at, '%Y-%m-%d %T'),
	                  rest.name, rest.cuisine, rest.price_range, rest.city, rest.street_address
	           FROM bookings b
	           JOIN restaurants rest ON rest.id = b.restaurant_id
	           WHERE b.customer_id = ?
	           ORDER BY b.date, b.time`
	rows, err := r.db.QueryContext(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		if err := scanBookingDetail(rows, &d); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// ListByRestaurantForOwner returns all bookings for a restaurant when
// accessed by its owner. It verifies that the restaurant belongs to the
// caller before returning the list; otherwise ErrForbidden is returned.
// Bookings are ordered by service date ascending.
func (r *BookingRepo) ListByRestaurantForOwner(ctx context.Context, restaurantID, ownerID uint64) ([]OwnerBookingDetail, error) {
	var actualOwner uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT owner_id FROM restaurants WHERE id = ?`, restaurantID).Scan(&actualOwner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	if actualOwner != ownerID {
		return nil, ErrForbidden
	}
	const q = `SELECT b.id, b.table_id, b.customer_id, u.full_name, u.email,
	                  b.date, b.time, b.party_size, b.status, b.special_requests,
	                  DATE_FORMAT(b.created_at, '%Y-%m-%d %T')
	           FROM bookings b
	           JOIN users u ON u.id = b.customer_id
	           WHERE b.restaurant_id = ?
	           ORDER BY b.date, b.time`
	rows, err := r.db.QueryContext(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]OwnerBookingDetail, 0)
	for rows.Next() {
		var d OwnerBookingDetail
		var tableID sql.NullInt64
		var notes sql.NullString
		if err := rows.Scan(&d.ID, &tableID, &d.CustomerID, &d.CustomerName, &d.CustomerEmail,
			&d.Date, &d.Time, &d.PartySize, &d.Status, &notes, &d.CreatedAt); err != nil {
			return nil, err
		}
		if tableID.Valid {
			tid := uint64(tableID.Int64)
			d.TableID = &tid
		}
		if notes.Valid {
			d.SpecialRequests = notes.String
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// scanBooking fills b from a row selected with the bookings column list.
// bookings.date and bookings.time are CHAR columns holding "YYYY-MM-DD" and
// "HH:MM" strings (they back the unique slot key), so they scan straight
// into strings even with parseTime=true; created_at/updated_at are DATETIME
// and scan into time.Time, needing DATE_FORMAT only where a string is wanted.
func scanBooking(row interface{ Scan(...any) error }, b *model.Booking) error {
	var tableID sql.NullInt64
	var notes sql.NullString
	if err := row.Scan(&b.ID, &b.RestaurantID, &tableID, &b.CustomerID, &b.Date,
		&b.Time, &b.PartySize, &b.Status, &notes, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return err
	}
	if tableID.Valid {
		tid := uint64(tableID.Int64)
		b.TableID = &tid
	}
	if notes.Valid {
		b.SpecialRequests = notes.String
	}
	return nil
}

func scanBookingDetail(row interface{ Scan(...any) error }, d *BookingDetail) error {
	var tableID sql.NullInt64
	var notes sql.NullString
	if err := row.Scan(&d.ID, &d.RestaurantID, &tableID, &d.Date, &d.Time,
		&d.PartySize, &d.Status, &notes, &d.CreatedAt,
		&d.Restaurant.Name, &d.Restaurant.Cuisine, &d.Restaurant.PriceRange,
		&d.Restaurant.City, &d.Restaurant.Street); err != nil {
		return err
	}
	if tableID.Valid {
		tid := uint64(tableID.Int64)
		d.TableID = &tid
	}
	if notes.Valid {
		d.SpecialRequests = notes.String
	}
	return nil
}

// isDuplicateKey reports whether err is MySQL error 1062 (duplicate
// entry for a unique key).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
