package model

import "time"

// Listing status values stored in listings.status.  A listing is
// BOOKED exactly while the most recent booking against it is active;
// admins may flip it back to AVAILABLE to re-list the unit.
const (
	ListingStatusAvailable = "AVAILABLE"
	ListingStatusBooked    = "BOOKED"
)

// ValidListingStatus reports whether s is one of the allowed status
// enumeration values.
func ValidListingStatus(s string) bool {
	return s == ListingStatusAvailable || s == ListingStatusBooked
}

// Listing represents a condo unit as stored in the `listings` table.
// Each field corresponds to a column.  ImageFile holds the name of an
// uploaded asset under the configured upload directory and is nil when
// no image has been attached.
//
// Fields:
//  ID        – primary key identifier of the listing.
//  Name      – display name of the unit.
//  Location  – free-form location text used for substring search.
//  Price     – rental price, positive decimal.
//  Status    – AVAILABLE or BOOKED.
//  ImageFile – stored image file name (nullable).
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Listing struct {
	ID        uint64    // listings.id
	Name      string    // listings.name
	Location  string    // listings.location
	Price     float64   // listings.price
	Status    string    // listings.status
	ImageFile *string   // listings.image_file (nullable)
	CreatedAt time.Time // listings.created_at
	UpdatedAt time.Time // listings.updated_at
}
