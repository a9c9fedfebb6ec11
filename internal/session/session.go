// Package session implements cookie-based sessions.  A session token is
// an HS256-signed JWT carrying the account id, username, role and a
// random session id.  Active session ids are additionally recorded in
// Redis so that logout revokes the session server-side before the token
// expires.  When no Redis client is available the allowlist check is
// skipped and sessions are validated by signature and expiry alone.
package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the HTTP cookie carrying the session token.
const CookieName = "session_token"

const keyPrefix = "sess:"

// ErrInvalidSession is returned for tokens that are malformed, expired,
// signed with the wrong secret, or revoked.
var ErrInvalidSession = errors.New("invalid session")

// Identity is the authenticated caller attached to a request context
// after the session token has been verified.
type Identity struct {
	UserID    uint64
	Username  string
	Role      string
	SessionID string
}

// Manager issues, verifies and revokes session tokens.
type Manager struct {
	secret string
	ttl    time.Duration
	rdb    *redis.Client // nil disables the allowlist
}

// NewManager builds a Manager.  rdb may be nil.
func NewManager(secret string, ttl time.Duration, rdb *redis.Client) *Manager {
	return &Manager{secret: secret, ttl: ttl, rdb: rdb}
}

// Issue creates a session for the account and returns the signed token
// together with its expiry.
func (m *Manager) Issue(ctx context.Context, userID uint64, username, role string) (string, time.Time, error) {
	sid := uuid.NewString()
	exp := time.Now().UTC().Add(m.ttl)
	claims := jwt.MapClaims{
		"sub":  userID,
		"name": username,
		"role": role,
		"sid":  sid,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(m.secret))
	if err != nil {
		return "", time.Time{}, err
	}
	if m.rdb != nil {
		if err := m.rdb.Set(ctx, keyPrefix+sid, userID, m.ttl).Err(); err != nil {
			return "", time.Time{}, err
		}
	}
	return signed, exp, nil
}

// Verify parses the token, checks its signature and expiry, and when an
// allowlist is configured confirms the session id has not been revoked.
func (m *Manager) Verify(ctx context.Context, token string) (Identity, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return []byte(m.secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidSession
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidSession
	}

	var ident Identity
	switch sub := claims["sub"].(type) {
	case float64:
		ident.UserID = uint64(sub)
	case string:
		n, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			return Identity{}, ErrInvalidSession
		}
		ident.UserID = n
	default:
		return Identity{}, ErrInvalidSession
	}
	if v, ok := claims["name"].(string); ok {
		ident.Username = v
	}
	if v, ok := claims["role"].(string); ok {
		ident.Role = v
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return Identity{}, ErrInvalidSession
	}
	ident.SessionID = sid

	if m.rdb != nil {
		n, err := m.rdb.Exists(ctx, keyPrefix+sid).Result()
		if err != nil {
			return Identity{}, err
		}
		if n == 0 {
			return Identity{}, ErrInvalidSession
		}
	}
	return ident, nil
}

// Revoke deletes the session id from the allowlist.  Without Redis the
// token simply remains valid until expiry.
func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	if m.rdb == nil || sessionID == "" {
		return nil
	}
	err := m.rdb.Del(ctx, keyPrefix+sessionID).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
