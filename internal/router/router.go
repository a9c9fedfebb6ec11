package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/renthub/condo-rental/internal/config"
	"github.com/renthub/condo-rental/internal/handler"
	"github.com/renthub/condo-rental/internal/middleware"
	"github.com/renthub/condo-rental/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers account and session endpoints.  Registration
// and login are open; logout and /v1/me resolve the session themselves
// and answer 401 without one.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)

	e.GET("/v1/me", a.Me, middleware.RequireAuth())
}

// RegisterListings registers the public browse/search endpoints and the
// admin-gated mutating endpoints.  Public GETs run through the response
// cache; mutating routes require an authenticated ADMIN session.
func RegisterListings(e *echo.Echo, pub *handler.ListingHandler, adm *handler.AdminListingHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cache := middleware.ResponseCache(cacheCfg, rdb)
	e.GET("/v1/listings", pub.Search, cache)
	e.GET("/v1/listings/:id", pub.Get, cache)

	g := e.Group("/v1/admin")
	g.Use(middleware.RequireAuth())
	g.Use(middleware.RequireRole(model.RoleAdmin))
	g.POST("/listings", adm.Create)
	g.PUT("/listings/:id", adm.Update)
	g.DELETE("/listings/:id", adm.Delete)
}

// RegisterBookings registers the booking transition and the renter's
// own-bookings view.  Both require an authenticated session; any role
// may book.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler) {
	g := e.Group("/v1")
	g.Use(middleware.RequireAuth())
	g.POST("/listings/:id/book", b.Book)
	g.GET("/bookings", b.MyBookings)
}
