package model

import "time"

// Restaurant represents a venue owned by a user.  A restaurant must be
// approved by an admin before it appears in public browse and search
// results.  Cuisine holds a comma separated list of tags (e.g.
// "italian,pizza").  This struct corresponds to a row in the
// `restaurants` table.
//
// Fields:
//  ID            – primary key identifier.
//  OwnerID       – user ID of the restaurant owner.
//  Name          – display name of the restaurant.
//  Description   – free text description.
//  Cuisine       – comma separated cuisine tags.
//  PriceRange    – price bracket from 1 ($) to 4 ($$$$).
//  City          – city used for location search.
//  StreetAddress – street address line.
//  Phone         – contact phone number.
//  Approved      – whether an admin has approved the listing.
//  CreatedAt     – timestamp when the restaurant was created.
//  UpdatedAt     – timestamp of last update.
type Restaurant struct {
	ID            uint64    // restaurants.id
	OwnerID       uint64    // restaurants.owner_id
	Name          string    // restaurants.name
	Description   string    // restaurants.description
	Cuisine       string    // restaurants.cuisine
	PriceRange    uint8     // restaurants.price_range
	City          string    // restaurants.city
	StreetAddress string    // restaurants.street_address
	Phone         string    // restaurants.phone
	Approved      bool      // restaurants.approved
	CreatedAt     time.Time // restaurants.created_at
	UpdatedAt     time.Time // restaurants.updated_at
}

// RestaurantHours records the opening hours of a restaurant for one
// weekday.  Day holds the lower-case full English weekday name
// ("monday".."sunday").  Open and close times use the "HH:MM" 24-hour
// format.  When IsClosed is true the open/close values are ignored.
// Hours are the authoritative source for valid booking times.
//
// Fields:
//  ID           – primary key identifier.
//  RestaurantID – restaurant these hours belong to.
//  Day          – lower-case weekday name.
//  OpenTime     – opening time as "HH:MM".
//  CloseTime    – closing time as "HH:MM".
//  IsClosed     – whether the restaurant is closed that day.
type RestaurantHours struct {
	ID           uint64 // restaurant_hours.id
	RestaurantID uint64 // restaurant_hours.restaurant_id
	Day          string // restaurant_hours.day
	OpenTime     string // restaurant_hours.open_time
	CloseTime    string // restaurant_hours.close_time
	IsClosed     bool   // restaurant_hours.is_closed
}
