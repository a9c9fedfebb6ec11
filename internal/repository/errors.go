// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow handlers to distinguish
// failure scenarios: ErrListingNotFound maps to HTTP 404, while
// ErrListingNotAvailable and ErrListingHasBookings signal state
// conflicts that map to HTTP 409.
package repository

import "errors"

// ErrListingNotFound is returned when the referenced listing id does
// not exist.
var ErrListingNotFound = errors.New("listing not found")

// ErrListingNotAvailable is returned by the booking transition when the
// listing exists but its status is not AVAILABLE.
var ErrListingNotAvailable = errors.New("listing not available")

// ErrListingHasBookings is returned when a listing cannot be deleted
// because booking rows still reference it.  Bookings are append-only
// history and are never removed by the application.
var ErrListingHasBookings = errors.New("listing has bookings")
