package repository // repository defines data access for reviews

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// ErrRatingOutOfRange is returned when a review rating is outside the
// 1..5 range. Handlers should translate this into an HTTP 400 response.
var ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")

// ReviewRepo provides methods to work with reviews in the database.
// Reviews are immutable once created; there are no update or delete
// methods.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo constructs a ReviewRepo with the given DB handle.
func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// Create inserts a review after validating the rating range and that the
// referenced restaurant exists. On success the review's ID and creation
// timestamp are populated.
func (r *ReviewRepo) Create(ctx context.Context, rev *model.Review) error {
	if rev.Rating < 1 || rev.Rating > 5 {
		return ErrRatingOutOfRange
	}
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM restaurants WHERE id = ?)`, rev.RestaurantID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrRestaurantNotFound
	}
	const q = `INSERT INTO reviews (restaurant_id, customer_id, rating, text) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rev.RestaurantID, rev.CustomerID, rev.Rating, rev.Text)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rev.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		`SELECT created_at FROM reviews WHERE id = ?`, rev.ID).Scan(&rev.CreatedAt)
}

// ReviewDetail pairs a review with the author's display name for the
// restaurant page.
type ReviewDetail struct {
	ID           uint64 `json:"id"`
	RestaurantID uint64 `json:"restaurant_id"`
	CustomerID   uint64 `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Rating       uint8  `json:"rating"`
	Text         string `json:"text"`
	CreatedAt    string `json:"created_at"`
}

// ListByRestaurant returns all reviews of a restaurant newest first,
// joined with the author's name. Authors whose accounts were removed
// appear as "Anonymous".
func (r *ReviewRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]ReviewDetail, error) {
	const q = `SELECT rv.id, rv.restaurant_id, rv.customer_id,
	                  COALESCE(u.full_name, 'Anonymous'), rv.rating, rv.text,
	                  DATE_FORMAT(rv.created_at, '%Y-%m-%d %T')
	           FROM reviews rv
	           LEFT JOIN users u ON u.id = rv.customer_id
	           WHERE rv.restaurant_id = ?
	           ORDER BY rv.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ReviewDetail, 0)
	for rows.Next() {
		var d ReviewDetail
		if err := rows.Scan(&d.ID, &d.RestaurantID, &d.CustomerID, &d.CustomerName,
			&d.Rating, &d.Text, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AverageRating returns the mean rating and review count for a
// restaurant. Restaurants without reviews report a zero average.
func (r *ReviewRepo) AverageRating(ctx context.Context, restaurantID uint64) (float64, int64, error) {
	const q = `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE restaurant_id = ?`
	var avg float64
	var count int64
	if err := r.db.QueryRowContext(ctx, q, restaurantID).Scan(&avg, &count); err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}
