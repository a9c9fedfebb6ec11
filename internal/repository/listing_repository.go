package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/renthub/condo-rental/internal/model"
)

// ListingRepo provides CRUD operations for the `listings` table.  The
// booking state transition uses the Tx variants so that the status
// check, booking insert and status update share one transaction.
type ListingRepo struct {
	db *sql.DB
}

// NewListingRepo returns a new ListingRepo bound to the given database.
func NewListingRepo(db *sql.DB) *ListingRepo { return &ListingRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning listings and bookings.
func (r *ListingRepo) DB() *sql.DB { return r.db }

const listingColumns = "id,name,location,price,status,image_file,created_at,updated_at"

func scanListing(row interface{ Scan(...any) error }) (model.Listing, error) {
	var l model.Listing
	var image sql.NullString
	err := row.Scan(&l.ID, &l.Name, &l.Location, &l.Price, &l.Status, &image, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return model.Listing{}, err
	}
	if image.Valid {
		img := image.String
		l.ImageFile = &img
	}
	return l, nil
}

// Create inserts a listing with status AVAILABLE and returns its id.
// imageFile may be nil when no asset was uploaded.
func (r *ListingRepo) Create(ctx context.Context, name, location string, price float64, imageFile *string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO listings (name, location, price, status, image_file) VALUES (?,?,?,?,?)",
		name, location, price, model.ListingStatusAvailable, imageFile)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a single listing.  ErrListingNotFound is returned
// when the id does not exist.
func (r *ListingRepo) GetByID(ctx context.Context, id uint64) (model.Listing, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE id=? LIMIT 1", id)
	l, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Listing{}, ErrListingNotFound
	}
	return l, err
}

// Update rewrites every mutable field of a listing.  The id never
// changes.  ErrListingNotFound is returned when no row matched.
func (r *ListingRepo) Update(ctx context.Context, id uint64, name, location string, price float64, status string, imageFile *string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE listings SET name=?, location=?, price=?, status=?, image_file=? WHERE id=?",
		name, location, price, status, imageFile, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is 0 both for a missing row and for a no-op
		// update; distinguish with an existence check.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a listing row.  ErrListingHasBookings is returned when
// the RESTRICT foreign key blocks the delete, ErrListingNotFound when
// the row does not exist.
func (r *ListingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM listings WHERE id=?", id)
	if err != nil {
		// MySQL 1451 = cannot delete, a foreign key references the row.
		if strings.Contains(err.Error(), "1451") {
			return ErrListingHasBookings
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrListingNotFound
	}
	return nil
}

// ClaimForBookingTx loads a listing inside tx with a row lock and
// validates that it can be booked.  The lock serializes concurrent
// booking attempts against the same listing so the status check and
// the later update cannot interleave.  ErrListingNotFound is returned
// for an unknown id and ErrListingNotAvailable when the listing is not
// AVAILABLE.
func (r *ListingRepo) ClaimForBookingTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Listing, error) {
	row := tx.QueryRowContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE id=? FOR UPDATE", id)
	l, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Listing{}, ErrListingNotFound
	}
	if err != nil {
		return model.Listing{}, err
	}
	if l.Status != model.ListingStatusAvailable {
		return model.Listing{}, ErrListingNotAvailable
	}
	return l, nil
}

// SetStatusTx updates a listing's status within tx.
func (r *ListingRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx, "UPDATE listings SET status=? WHERE id=?", status, id)
	return err
}
