package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/renthub/condo-rental/internal/model"
)

func lockedListingRows(status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "name", "location", "price", "status", "image_file", "created_at", "updated_at"}).
		AddRow(3, "Sea Breeze", "Miami", 150.0, status, nil, now, now)
}

func TestClaimForBookingTx(t *testing.T) {
	tests := []struct {
		name    string
		rows    *sqlmock.Rows
		rowErr  error
		wantErr error
	}{
		{
			name: "available listing is claimed",
			rows: lockedListingRows(model.ListingStatusAvailable),
		},
		{
			name:    "unknown id",
			rowErr:  sql.ErrNoRows,
			wantErr: ErrListingNotFound,
		},
		{
			name:    "already booked",
			rows:    lockedListingRows(model.ListingStatusBooked),
			wantErr: ErrListingNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock: %v", err)
			}
			defer db.Close()

			mock.ExpectBegin()
			q := mock.ExpectQuery("SELECT .+ FROM listings WHERE id=. FOR UPDATE")
			if tt.rowErr != nil {
				q.WillReturnError(tt.rowErr)
			} else {
				q.WillReturnRows(tt.rows)
			}
			mock.ExpectRollback()

			tx, err := db.BeginTx(context.Background(), nil)
			if err != nil {
				t.Fatalf("BeginTx: %v", err)
			}
			defer tx.Rollback()

			l, err := NewListingRepo(db).ClaimForBookingTx(context.Background(), tx, 3)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && l.ID != 3 {
				t.Errorf("listing id = %d, want 3", l.ID)
			}
		})
	}
}
