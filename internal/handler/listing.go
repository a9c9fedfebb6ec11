package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/renthub/condo-rental/internal/middleware"
	"github.com/renthub/condo-rental/internal/model"
	"github.com/renthub/condo-rental/internal/repository"
)

// ListingHandler serves the public browse/search endpoints.  Callers do
// not need a session; an authenticated admin gets the unfiltered view
// and may filter by status.
type ListingHandler struct {
	Listings *repository.ListingRepo
}

func NewListingHandler(l *repository.ListingRepo) *ListingHandler {
	if l == nil {
		panic("nil repository passed to NewListingHandler")
	}
	return &ListingHandler{Listings: l}
}

type listingResp struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Price    float64 `json:"price"`
	Status   string  `json:"status"`
	ImageURL *string `json:"image_url,omitempty"`
}

func toListingResp(l model.Listing) listingResp {
	resp := listingResp{
		ID:       l.ID,
		Name:     l.Name,
		Location: l.Location,
		Price:    l.Price,
		Status:   l.Status,
	}
	if l.ImageFile != nil {
		url := "/images/" + *l.ImageFile
		resp.ImageURL = &url
	}
	return resp
}

// isAdmin reports whether the request carries an ADMIN session.
func isAdmin(c echo.Context) bool {
	ident, ok := middleware.CurrentIdentity(c)
	return ok && ident.Role == model.RoleAdmin
}

// Search handles GET /v1/listings.  Optional query parameters:
// location (case-sensitive substring), min_price, max_price, status,
// page, page_size.  Non-admin callers always receive the
// AVAILABLE-only view and their status filter is ignored.
func (h *ListingHandler) Search(c echo.Context) error {
	q := repository.ListingSearchQuery{
		Location:    c.QueryParam("location"),
		AllStatuses: isAdmin(c),
	}

	if raw := c.QueryParam("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_price"})
		}
		q.MinPrice = &v
	}
	if raw := c.QueryParam("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_price"})
		}
		q.MaxPrice = &v
	}
	if raw := c.QueryParam("status"); raw != "" && q.AllStatuses {
		status := strings.ToUpper(strings.TrimSpace(raw))
		if !model.ValidListingStatus(status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		q.Status = status
	}
	if raw := c.QueryParam("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			q.Page = n
		}
	}
	if raw := c.QueryParam("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			q.PageSize = n
		}
	}

	listings, total, err := h.Listings.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	out := make([]listingResp, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResp(l))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"listings": out,
		"total":    total,
	})
}

// Get handles GET /v1/listings/:id.  Non-admin callers receive 404 for
// listings that are not AVAILABLE, matching the filtered browse view.
func (h *ListingHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}

	l, err := h.Listings.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if l.Status != model.ListingStatusAvailable && !isAdmin(c) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	}
	return c.JSON(http.StatusOK, toListingResp(l))
}
