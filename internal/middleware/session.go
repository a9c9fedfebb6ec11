package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/renthub/condo-rental/internal/session"
)

// identityKey is the context key under which the verified session
// identity is stored.  Handlers retrieve it via CurrentIdentity.
const identityKey = "identity"

// WithSession returns middleware that resolves the session cookie, when
// present and valid, into an Identity stored on the request context.
// Requests without a session pass through untouched: browse and search
// endpoints are open to anonymous callers, who simply see the
// AVAILABLE-only view.
func WithSession(m *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(session.CookieName)
			if err == nil && cookie.Value != "" {
				if ident, err := m.Verify(c.Request().Context(), cookie.Value); err == nil {
					c.Set(identityKey, ident)
				}
			}
			return next(c)
		}
	}
}

// RequireAuth aborts with 401 when no verified identity is attached to
// the request.  It must run after WithSession.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := CurrentIdentity(c); !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			return next(c)
		}
	}
}

// CurrentIdentity returns the authenticated identity for the request,
// if any.
func CurrentIdentity(c echo.Context) (session.Identity, bool) {
	ident, ok := c.Get(identityKey).(session.Identity)
	return ident, ok
}
