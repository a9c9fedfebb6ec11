package model

import "time"

// Account roles.  Roles are assigned explicitly at creation time:
// registration always produces USER, and the single ADMIN account is
// seeded at startup from the environment.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Account represents a row in the `accounts` table.  Only the bcrypt
// hash of the password is stored.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
//  Role         – ADMIN or USER.
//  CreatedAt    – timestamp of creation.
type Account struct {
	ID           uint64    // accounts.id
	Username     string    // accounts.username
	PasswordHash string    // accounts.password_hash
	Role         string    // accounts.role
	CreatedAt    time.Time // accounts.created_at
}
