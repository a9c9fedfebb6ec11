package repository

import (
	"context"
	"database/sql"
	"time"
)

// BookingRepo provides persistence for the `bookings` table.  Booking
// rows are created only inside the booking state transition and are
// never mutated or deleted afterwards.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// CreateTx inserts a booking within the scope of an existing
// transaction and returns the generated id.  The caller must commit or
// rollback the transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, listingID uint64, renterName string) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO bookings (listing_id, renter_name) VALUES (?,?)",
		listingID, renterName)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// BookingDetail is a booking joined with its listing for display to the
// renter.
type BookingDetail struct {
	ID              uint64  `json:"id"`
	ListingID       uint64  `json:"listing_id"`
	ListingName     string  `json:"listing_name"`
	ListingLocation string  `json:"listing_location"`
	Price           float64 `json:"price"`
	BookedAt        string  `json:"booked_at"`
}

// ListByRenter returns all bookings made under the given renter
// identity, newest first, each joined with its listing.
func (r *BookingRepo) ListByRenter(ctx context.Context, renterName string) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.listing_id, l.name, l.location, l.price, b.created_at
	           FROM bookings b
	           JOIN listings l ON l.id = b.listing_id
	           WHERE b.renter_name = ?
	           ORDER BY b.created_at DESC, b.id DESC`
	rows, err := r.db.QueryContext(ctx, q, renterName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		var createdAt time.Time
		if err := rows.Scan(&d.ID, &d.ListingID, &d.ListingName, &d.ListingLocation, &d.Price, &createdAt); err != nil {
			return nil, err
		}
		d.BookedAt = createdAt.UTC().Format(time.RFC3339)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
