package model

import "time"

// Review is a customer's rating of a restaurant.  Ratings range from
// 1 to 5 and reviews are immutable once created; there is no edit or
// delete path.  This struct corresponds to a row in the `reviews`
// table.
//
// Fields:
//  ID           – primary key identifier.
//  RestaurantID – reviewed restaurant.
//  CustomerID   – user who wrote the review.
//  Rating       – star rating, 1 to 5 inclusive.
//  Text         – free-text body of the review.
//  CreatedAt    – submission timestamp.
type Review struct {
	ID           uint64    // reviews.id
	RestaurantID uint64    // reviews.restaurant_id
	CustomerID   uint64    // reviews.customer_id
	Rating       uint8     // reviews.rating
	Text         string    // reviews.text
	CreatedAt    time.Time // reviews.created_at
}
