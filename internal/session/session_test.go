package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/renthub/condo-rental/internal/model"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewManager("test-secret", time.Hour, rdb)
}

func TestIssueAndVerify(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	token, exp, err := m.Issue(ctx, 42, "alice", model.RoleUser)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Errorf("expiry %v is not in the future", exp)
	}

	ident, err := m.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if ident.UserID != 42 {
		t.Errorf("UserID = %d, want 42", ident.UserID)
	}
	if ident.Username != "alice" {
		t.Errorf("Username = %q, want alice", ident.Username)
	}
	if ident.Role != model.RoleUser {
		t.Errorf("Role = %q, want %q", ident.Role, model.RoleUser)
	}
	if ident.SessionID == "" {
		t.Error("SessionID is empty")
	}
}

func TestRevokeInvalidatesSession(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	token, _, err := m.Issue(ctx, 7, "bob", model.RoleUser)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	ident, err := m.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if err := m.Revoke(ctx, ident.SessionID); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if _, err := m.Verify(ctx, token); err != ErrInvalidSession {
		t.Errorf("Verify after revoke = %v, want ErrInvalidSession", err)
	}
	// Revoking twice is harmless.
	if err := m.Revoke(ctx, ident.SessionID); err != nil {
		t.Errorf("second Revoke failed: %v", err)
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	token, _, err := m.Issue(ctx, 1, "carol", model.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"tampered", token + "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Verify(ctx, tt.token); err != ErrInvalidSession {
				t.Errorf("Verify(%q) = %v, want ErrInvalidSession", tt.token, err)
			}
		})
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := NewManager("other-secret", time.Hour, nil)
		if _, err := other.Verify(ctx, token); err != ErrInvalidSession {
			t.Errorf("Verify with wrong secret = %v, want ErrInvalidSession", err)
		}
	})
}

func TestVerifyWithoutRedisSkipsAllowlist(t *testing.T) {
	m := NewManager("test-secret", time.Hour, nil)
	ctx := context.Background()

	token, _, err := m.Issue(ctx, 3, "dave", model.RoleUser)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := m.Verify(ctx, token); err != nil {
		t.Errorf("Verify failed without redis: %v", err)
	}
}
