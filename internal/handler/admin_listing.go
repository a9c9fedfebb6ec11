package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/renthub/condo-rental/internal/model"
	"github.com/renthub/condo-rental/internal/repository"
	"github.com/renthub/condo-rental/internal/storage"
)

// AdminListingHandler implements listing create/update/delete.  All
// routes are gated behind the ADMIN role by the router; the handler
// itself only deals with validation, persistence and image assets.
type AdminListingHandler struct {
	Listings *repository.ListingRepo
	Images   *storage.ImageStore
}

func NewAdminListingHandler(l *repository.ListingRepo, img *storage.ImageStore) *AdminListingHandler {
	if l == nil || img == nil {
		panic("nil dependency passed to NewAdminListingHandler")
	}
	return &AdminListingHandler{Listings: l, Images: img}
}

// parsePrice validates the price form field: a decimal strictly greater
// than zero.
func parsePrice(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v <= 0 {
		return 0, errors.New("price must be a positive number")
	}
	return v, nil
}

// saveUploadedImage stores the optional multipart "image" field and
// returns the stored file name, or nil when no file was sent.
func (h *AdminListingHandler) saveUploadedImage(c echo.Context) (*string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// http.ErrMissingFile surfaces here; the field is optional.
		return nil, nil
	}
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	name, err := h.Images.Save(src, fh.Filename)
	if err != nil {
		return nil, err
	}
	return &name, nil
}

// Create handles POST /v1/admin/listings.  Multipart form fields:
// name, location, price, optional image.  New listings always start
// AVAILABLE.
func (h *AdminListingHandler) Create(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	location := strings.TrimSpace(c.FormValue("location"))
	if name == "" || location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and location are required"})
	}
	price, err := parsePrice(c.FormValue("price"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	imageFile, err := h.saveUploadedImage(c)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unsupported image type"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store image failed"})
	}

	id, err := h.Listings.Create(c.Request().Context(), name, location, price, imageFile)
	if err != nil {
		// Do not leave an orphaned asset behind a failed insert.
		if imageFile != nil {
			_ = h.Images.Remove(*imageFile)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create listing failed"})
	}

	l, err := h.Listings.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, toListingResp(l))
}

// Update handles PUT /v1/admin/listings/:id.  Every mutable field is
// rewritten: name, location, price, optional status, and optionally a
// replacement image.  The previous asset is removed once the row update
// succeeds.
func (h *AdminListingHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}

	existing, err := h.Listings.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	name := strings.TrimSpace(c.FormValue("name"))
	location := strings.TrimSpace(c.FormValue("location"))
	if name == "" || location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and location are required"})
	}
	price, err := parsePrice(c.FormValue("price"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	status := existing.Status
	if raw := strings.TrimSpace(c.FormValue("status")); raw != "" {
		status = strings.ToUpper(raw)
		if !model.ValidListingStatus(status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
	}

	imageFile := existing.ImageFile
	newImage, err := h.saveUploadedImage(c)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unsupported image type"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store image failed"})
	}
	if newImage != nil {
		imageFile = newImage
	}

	if err := h.Listings.Update(c.Request().Context(), id, name, location, price, status, imageFile); err != nil {
		if newImage != nil {
			_ = h.Images.Remove(*newImage)
		}
		if errors.Is(err, repository.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update listing failed"})
	}
	// Replacement succeeded; the old asset is no longer referenced.
	if newImage != nil && existing.ImageFile != nil {
		_ = h.Images.Remove(*existing.ImageFile)
	}

	l, err := h.Listings.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toListingResp(l))
}

// Delete handles DELETE /v1/admin/listings/:id, removing the row and
// its stored image asset.  Listings with booking history cannot be
// deleted because bookings are append-only.
func (h *AdminListingHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}

	existing, err := h.Listings.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if err := h.Listings.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrListingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		case errors.Is(err, repository.ErrListingHasBookings):
			return c.JSON(http.StatusConflict, echo.Map{"error": "listing has bookings"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete listing failed"})
		}
	}
	if existing.ImageFile != nil {
		if err := h.Images.Remove(*existing.ImageFile); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove image failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
