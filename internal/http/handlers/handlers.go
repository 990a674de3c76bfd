package handlers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/civicpulse/backend/internal/auth"
	"github.com/civicpulse/backend/internal/db"
	"github.com/civicpulse/backend/internal/geocode"
	"github.com/civicpulse/backend/internal/service"
)

type Handler struct {
	Store     *db.Store
	Lifecycle service.Lifecycle
	Geocoder  geocode.ReverseGeocoder
	Validator *validator.Validate
	Logger    zerolog.Logger
	Tokens    auth.TokenIssuer
	UploadDir string
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Reverse geocode
// @Tags geocode
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Success 200 {object} map[string]any
// @Router /api/geocode [get]
func (h *Handler) ReverseGeocode(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "lat and lng are required", nil)
		return
	}
	address, err := h.Geocoder.Reverse(c.Request.Context(), lat, lng)
	if err != nil {
		if errors.Is(err, geocode.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "No address at this location", nil)
			return
		}
		writeError(c, http.StatusServiceUnavailable, "GEOCODE_UNAVAILABLE", "Geocoding service unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": address})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// writeServiceError maps lifecycle/store errors onto the error envelope.
func (h *Handler) writeServiceError(c *gin.Context, err error) {
	var vErr service.ValidationError
	var rErr service.RejectedError
	switch {
	case errors.As(err, &vErr):
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", vErr.Msg, nil)
	case errors.As(err, &rErr):
		writeError(c, http.StatusUnprocessableEntity, "REPORT_REJECTED", rErr.Reason, nil)
	case errors.Is(err, service.ErrAIUnavailable):
		writeError(c, http.StatusServiceUnavailable, "AI_UNAVAILABLE", "AI service unavailable, please retry", nil)
	case errors.Is(err, service.ErrLocationUnresolved):
		writeError(c, http.StatusServiceUnavailable, "GEOCODE_UNAVAILABLE", "Could not resolve the location, please retry", nil)
	case errors.Is(err, service.ErrForbidden):
		writeError(c, http.StatusForbidden, "FORBIDDEN", "Not allowed for this account", nil)
	case errors.Is(err, db.ErrNotFound):
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found", nil)
	case errors.Is(err, db.ErrConflict):
		writeError(c, http.StatusConflict, "CONFLICT", "The ticket changed state first, reload and retry", nil)
	default:
		h.Logger.Error().Err(err).Msg("internal error")
		writeError(c, http.StatusInternalServerError, "INTERNAL", "Internal error", nil)
	}
}

// saveUpload stores one multipart file under the upload dir and returns its
// public path.
func (h *Handler) saveUpload(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + filepath.Ext(file.Filename)
	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(filepath.Join(h.UploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}
