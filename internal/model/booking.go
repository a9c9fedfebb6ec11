package model

import "time"

// Booking links a renter identity to a listing at the time of
// reservation.  Rows are append-only: they are never mutated or
// deleted by the application, so the table doubles as a booking
// history even after a listing is re-listed.
type Booking struct {
	ID         uint64    // bookings.id
	ListingID  uint64    // bookings.listing_id (references listings.id)
	RenterName string    // bookings.renter_name
	CreatedAt  time.Time // bookings.created_at
}
