package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/renthub/condo-rental/internal/config"
	"github.com/renthub/condo-rental/internal/model"
	"github.com/renthub/condo-rental/internal/repository"
	"github.com/renthub/condo-rental/internal/session"
)

func meContext(ident *session.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if ident != nil {
		c.Set("identity", *ident)
	}
	return c, rec
}

// Me reports the account row, not the session claims, so a role change
// after login is visible immediately.
func TestMeReadsAccountFromDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM accounts WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at"}).
			AddRow(7, "maria", "x", model.RoleAdmin, time.Now()))

	h := NewAuthHandler(config.Config{}, repository.NewAccountRepo(db), session.NewManager("secret", time.Hour, nil))
	c, rec := meContext(&session.Identity{UserID: 7, Username: "maria", Role: model.RoleUser, SessionID: "sid"})
	if err := h.Me(c); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), model.RoleAdmin) {
		t.Errorf("body = %s, want the stored role", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMeDeletedAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM accounts WHERE id=").WillReturnError(sql.ErrNoRows)

	h := NewAuthHandler(config.Config{}, repository.NewAccountRepo(db), session.NewManager("secret", time.Hour, nil))
	c, rec := meContext(&session.Identity{UserID: 7, Username: "maria", Role: model.RoleUser, SessionID: "sid"})
	if err := h.Me(c); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestMeUnauthenticated(t *testing.T) {
	h := NewAuthHandler(config.Config{}, repository.NewAccountRepo(nil), session.NewManager("secret", time.Hour, nil))
	c, rec := meContext(nil)
	if err := h.Me(c); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
