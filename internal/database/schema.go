package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema holds the DDL for all application tables.  Statements are
// idempotent so they can run unconditionally at startup.  The foreign
// key from bookings to listings is RESTRICT: bookings are append-only
// history and must never be removed behind a listing delete.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS listings (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name        VARCHAR(255)  NOT NULL,
		location    VARCHAR(255)  NOT NULL,
		price       DECIMAL(10,2) NOT NULL,
		status      VARCHAR(16)   NOT NULL DEFAULT 'AVAILABLE',
		image_file  VARCHAR(255)  NULL,
		created_at  DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_listings_status (status),
		INDEX idx_listings_location (location)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		listing_id  BIGINT UNSIGNED NOT NULL,
		renter_name VARCHAR(255)    NOT NULL,
		created_at  DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_bookings_renter (renter_name),
		CONSTRAINT fk_bookings_listing FOREIGN KEY (listing_id)
			REFERENCES listings (id) ON DELETE RESTRICT
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS accounts (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(64)  NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(16)  NOT NULL,
		created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_accounts_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates all application tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
