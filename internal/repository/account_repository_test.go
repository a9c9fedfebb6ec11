package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/renthub/condo-rental/internal/model"
)

func TestAccountCreateMapsDuplicateUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO accounts").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'accounts.uq_accounts_username'"))

	repo := NewAccountRepo(db)
	_, err = repo.Create(context.Background(), "alice", "secret1", model.RoleUser, 4)
	if !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("err = %v, want ErrUsernameExists", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAccountCreateNormalizesUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	// The stored username is lowercased and trimmed; the hash is opaque.
	mock.ExpectExec("INSERT INTO accounts").
		WithArgs("alice", sqlmock.AnyArg(), model.RoleUser).
		WillReturnResult(sqlmock.NewResult(5, 1))

	repo := NewAccountRepo(db)
	id, err := repo.Create(context.Background(), "  Alice ", "secret1", model.RoleUser, 4)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 5 {
		t.Errorf("id = %d, want 5", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
