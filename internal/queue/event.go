// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published after a booking transaction commits.
// It contains enough information for downstream consumers to log or
// notify without querying the primary database.
type BookingCreatedEvent struct {
	BookingID   uint64  `json:"booking_id"`
	ListingID   uint64  `json:"listing_id"`
	ListingName string  `json:"listing_name"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Renter      string  `json:"renter"`
	BookedAt    string  `json:"booked_at"`
}
