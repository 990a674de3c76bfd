package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/civicpulse/backend/internal/auth"
	"github.com/civicpulse/backend/internal/db"
	"github.com/civicpulse/backend/internal/http/middleware"
	"github.com/civicpulse/backend/internal/models"
	"github.com/civicpulse/backend/internal/service"
)

// @Summary Submit a civic issue report
// @Description Photos, notes, location and an optional voice note; the AI
// @Description pipeline scores the report before anything is persisted.
// @Tags reports
// @Accept multipart/form-data
// @Produce json
// @Param category formData string true "Issue category"
// @Param notes formData string false "Free-text notes"
// @Param lat formData number true "Latitude"
// @Param lng formData number true "Longitude"
// @Param municipality_id formData string true "Municipality"
// @Param photos formData file true "Issue photos"
// @Param audio formData file false "Voice note"
// @Success 201 {object} models.Ticket
// @Failure 422 {object} map[string]any
// @Router /api/reports [post]
func (h *Handler) CreateReport(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	form, err := c.MultipartForm()
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Multipart form required", err.Error())
		return
	}

	lat, latErr := strconv.ParseFloat(c.PostForm("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.PostForm("lng"), 64)
	if latErr != nil || lngErr != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "lat and lng are required", nil)
		return
	}

	photos := form.File["photos"]
	if len(photos) == 0 {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "At least one photo is required", nil)
		return
	}
	var imageURLs []string
	for _, photo := range photos {
		url, err := h.saveUpload(photo)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		imageURLs = append(imageURLs, url)
	}

	var audioData []byte
	audioFormat := ""
	if files := form.File["audio"]; len(files) > 0 {
		audioData, err = readUpload(files[0])
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		audioFormat = strings.TrimPrefix(filepath.Ext(files[0].Filename), ".")
		if audioFormat == "" {
			audioFormat = "webm"
		}
	}

	ticket, err := h.Lifecycle.Submit(c.Request.Context(), service.SubmitInput{
		ReporterID:     sess.SubjectID,
		MunicipalityID: c.PostForm("municipality_id"),
		Category:       models.Category(c.PostForm("category")),
		Notes:          c.PostForm("notes"),
		ImageURLs:      imageURLs,
		Lat:            lat,
		Lng:            lng,
		Audio:          audioData,
		AudioFormat:    audioFormat,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// @Summary Nearby open reports of a category
// @Tags reports
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/reports/nearby [get]
func (h *Handler) NearbyReports(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "lat and lng are required", nil)
		return
	}
	category := models.Category(c.Query("category"))
	if !models.ValidCategory(category) {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown category", nil)
		return
	}

	items, err := h.Lifecycle.Nearby(c.Request.Context(), c.Query("municipality_id"), category, lat, lng)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// @Summary Join an existing report
// @Tags reports
// @Produce json
// @Success 200 {object} models.Ticket
// @Failure 409 {object} map[string]any
// @Router /api/tickets/{id}/join [post]
func (h *Handler) JoinReport(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	ticket, err := h.Lifecycle.Join(c.Request.Context(), sess.SubjectID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// @Summary List the caller's reports
// @Tags reports
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/reports [get]
func (h *Handler) MyReports(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.Store.ListTickets(c.Request.Context(), db.TicketFilter{
		ReporterID: sess.SubjectID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "limit": limit, "offset": offset})
}

// @Summary Report details with completion history
// @Tags reports
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/tickets/{id} [get]
func (h *Handler) ReportDetails(c *gin.Context) {
	ticket, err := h.Store.GetTicket(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if !h.canSee(c, ticket) {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found", nil)
		return
	}

	reports, err := h.Store.ListCompletionReports(c.Request.Context(), ticket.ID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket, "completion_reports": reports})
}

type FeedbackRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// @Summary Rate a resolved report
// @Tags reports
// @Accept json
// @Produce json
// @Success 201 {object} models.Feedback
// @Router /api/tickets/{id}/feedback [post]
func (h *Handler) SubmitFeedback(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	fb, err := h.Lifecycle.Feedback(c.Request.Context(), sess.SubjectID, c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}

// canSee enforces read scope: citizens see tickets they appear on, staff
// and supervisors see their municipality's tickets.
func (h *Handler) canSee(c *gin.Context, t models.Ticket) bool {
	sess := middleware.SessionFrom(c)
	switch sess.Role {
	case auth.RoleStaff, auth.RoleSupervisor:
		return t.MunicipalityID == sess.MunicipalityID
	default:
		for _, id := range t.ReportedBy {
			if id == sess.SubjectID {
				return true
			}
		}
		return false
	}
}
