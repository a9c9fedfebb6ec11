package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/renthub/condo-rental/internal/middleware"
	"github.com/renthub/condo-rental/internal/model"
	"github.com/renthub/condo-rental/internal/queue"
	"github.com/renthub/condo-rental/internal/repository"
	queue_publisher "github.com/renthub/condo-rental/internal/service"
)

// BookingHandler implements the booking state transition and the
// renter's own-bookings view.  Both endpoints require an authenticated
// session; the router enforces that, and getIdentity is the fallback.
type BookingHandler struct {
	Listings *repository.ListingRepo
	Bookings *repository.BookingRepo
}

func NewBookingHandler(l *repository.ListingRepo, b *repository.BookingRepo) *BookingHandler {
	if l == nil || b == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Listings: l, Bookings: b}
}

// Book handles POST /v1/listings/:id/book.  The status check, booking
// insert and status update run in one transaction with the listing row
// locked, so two concurrent requests can never both book the same
// listing.  Sentinel errors map to 404 (unknown listing) and 409
// (listing not AVAILABLE); in both failure cases nothing is persisted.
func (h *BookingHandler) Book(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || listingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}

	ctx := c.Request().Context()
	tx, err := h.Listings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	l, err := h.Listings.ClaimForBookingTx(ctx, tx, listingID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrListingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		case errors.Is(err, repository.ErrListingNotAvailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "listing is not available"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}

	bookingID, err := h.Bookings.CreateTx(ctx, tx, listingID, ident.Username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	if err := h.Listings.SetStatusTx(ctx, tx, listingID, model.ListingStatusBooked); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update listing failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	// Fire-and-forget: the booking is durable, the event is best effort.
	ev := queue.BookingCreatedEvent{
		BookingID:   bookingID,
		ListingID:   listingID,
		ListingName: l.Name,
		Location:    l.Location,
		Price:       l.Price,
		Renter:      ident.Username,
		BookedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := queue_publisher.PublishBookingCreated(pubCtx, ev); err != nil {
			slog.Warn("booking event publish failed", "booking_id", bookingID, "err", err)
		}
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id": bookingID,
		"listing_id": listingID,
		"status":     model.ListingStatusBooked,
	})
}

// MyBookings handles GET /v1/bookings, returning the caller's bookings
// with listing details, newest first.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	bookings, err := h.Bookings.ListByRenter(c.Request().Context(), ident.Username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}
