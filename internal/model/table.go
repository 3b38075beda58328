package model

import "time"

// Table describes a physical table inside a restaurant.  Tables are
// the atomic unit of reservation: a booking claims exactly one table
// for a date and time slot.  Capacity is the number of guests the
// table seats.
//
// Fields:
//  ID           – primary key identifier.
//  RestaurantID – restaurant to which this table belongs.
//  Name         – label shown to staff (e.g. "window 2").
//  Capacity     – number of seats at the table.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Table struct {
	ID           uint64    // tables.id
	RestaurantID uint64    // tables.restaurant_id
	Name         string    // tables.name
	Capacity     uint32    // tables.capacity
	CreatedAt    time.Time // tables.created_at
	UpdatedAt    time.Time // tables.updated_at
}
