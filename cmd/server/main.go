package main // Entry point package

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/renthub/condo-rental/internal/config"
	"github.com/renthub/condo-rental/internal/database"
	"github.com/renthub/condo-rental/internal/handler"
	"github.com/renthub/condo-rental/internal/logging"
	"github.com/renthub/condo-rental/internal/middleware"
	"github.com/renthub/condo-rental/internal/queue"
	"github.com/renthub/condo-rental/internal/repository"
	"github.com/renthub/condo-rental/internal/router"
	"github.com/renthub/condo-rental/internal/session"
	"github.com/renthub/condo-rental/internal/storage"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	logging.Setup()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		slog.Error("database open failed", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		slog.Error("schema bootstrap failed", "err", err)
		os.Exit(1)
	}

	accounts := repository.NewAccountRepo(db)
	listings := repository.NewListingRepo(db)
	bookings := repository.NewBookingRepo(db)

	if err := accounts.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.BcryptCost); err != nil {
		slog.Error("admin seed failed", "err", err)
		os.Exit(1)
	}

	rdb := config.NewRedisClient() // nil disables sessions allowlist, cache and rate limiting
	if rdb == nil {
		slog.Warn("redis unavailable; session revocation, cache and rate limiting disabled")
	}
	sessions := session.NewManager(cfg.SessionSecret,
		time.Duration(cfg.SessionTTLHours)*time.Hour, rdb)

	images, err := storage.NewImageStore(cfg.UploadDir)
	if err != nil {
		slog.Error("image store init failed", "err", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.WithSession(sessions))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Static("/images", cfg.UploadDir)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, accounts, sessions))
	router.RegisterListings(e,
		handler.NewListingHandler(listings),
		handler.NewAdminListingHandler(listings, images),
		config.LoadCacheConfig(), rdb)
	router.RegisterBookings(e, handler.NewBookingHandler(listings, bookings))

	// Booking events are appended to logs/bookings.log by the consumer.
	go queue.StartBookingConsumer()

	addr := ":" + cfg.Port
	slog.Info("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
