package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/renthub/condo-rental/internal/model"
	"github.com/renthub/condo-rental/internal/utils"
)

// AccountRepo provides persistence for the `accounts` table.
type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

var ErrUsernameExists = errors.New("username already exists")

// Create hashes the password and inserts an account with an explicit
// role.  Roles are never defaulted here; the caller decides.
func (r *AccountRepo) Create(ctx context.Context, username, password, role string, cost int) (uint64, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts (username, password_hash, role) VALUES (?,?,?)",
		username, hash, role)
	if err != nil {
		// MySQL 1062 = duplicate entry on the unique username key.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches an account by normalized username.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (model.Account, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	var a model.Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,role,created_at FROM accounts WHERE username=? LIMIT 1",
		username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt)
	return a, err
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	var a model.Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,role,created_at FROM accounts WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt)
	return a, err
}

// EnsureAdmin seeds the ADMIN account at startup when it does not exist.
// The username and password come from configuration so the role is
// always assigned explicitly.
func (r *AccountRepo) EnsureAdmin(ctx context.Context, username, password string, cost int) error {
	_, err := r.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	_, err = r.Create(ctx, username, password, model.RoleAdmin, cost)
	if errors.Is(err, ErrUsernameExists) {
		// Lost a startup race with another replica; the admin exists.
		return nil
	}
	return err
}
