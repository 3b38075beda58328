package repository

import (
    "context"
    "errors"
    "testing"

    "github.com/iliyamo/restaurant-table-booking/internal/model"
)

// The rating guard runs before any query is issued, so a nil DB handle is
// enough to exercise it. The in-range insert path touches MySQL and is
// covered by integration tests against a real database.
func TestReviewCreateRejectsOutOfRangeRating(t *testing.T) {
    repo := NewReviewRepo(nil)

    cases := []struct {
        name   string
        rating uint8
    }{
        {"zero rating", 0},
        {"rating above five", 6},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            err := repo.Create(context.Background(), &model.Review{
                RestaurantID: 1,
                CustomerID:   1,
                Rating:       tc.rating,
                Text:         "out of bounds",
            })
            if !errors.Is(err, ErrRatingOutOfRange) {
                t.Fatalf("Create with rating %d: got %v, want ErrRatingOutOfRange", tc.rating, err)
            }
        })
    }
}
