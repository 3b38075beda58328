// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is successfully confirmed.
// It contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID      uint64 `json:"booking_id"`
	RestaurantID   uint64 `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	CustomerID     uint64 `json:"customer_id"`
	TableID        uint64 `json:"table_id"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	PartySize      uint32 `json:"party_size"`
	ConfirmedAt    string `json:"confirmed_at"`
}
