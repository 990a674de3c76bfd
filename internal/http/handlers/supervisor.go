package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/civicpulse/backend/internal/db"
	"github.com/civicpulse/backend/internal/http/middleware"
	"github.com/civicpulse/backend/internal/models"
	"github.com/civicpulse/backend/internal/service"
)

// @Summary List tickets assigned to the supervisor
// @Tags supervisor
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/supervisor/tickets [get]
func (h *Handler) SupervisorTickets(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := db.TicketFilter{
		SupervisorID: sess.SubjectID,
		Limit:        limit,
		Offset:       offset,
	}
	if status := c.Query("status"); status != "" {
		filter.Statuses = []models.TicketStatus{models.TicketStatus(status)}
	}

	items, err := h.Store.ListTickets(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "limit": limit, "offset": offset})
}

// @Summary Submit a completion report
// @Description Moves the ticket to Pending Approval. If the verification
// @Description stage is down the report is stored with analysis deferred.
// @Tags supervisor
// @Accept multipart/form-data
// @Produce json
// @Param notes formData string false "Completion notes"
// @Param photos formData file true "Completion photos"
// @Success 201 {object} models.CompletionReport
// @Failure 409 {object} map[string]any
// @Router /api/supervisor/tickets/{id}/complete [post]
func (h *Handler) CompleteTicket(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	form, err := c.MultipartForm()
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Multipart form required", err.Error())
		return
	}
	photos := form.File["photos"]
	if len(photos) == 0 {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "A completion photo is required", nil)
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

	rep, err := h.Lifecycle.Complete(c.Request.Context(), service.CompletionInput{
		TicketID:     c.Param("id"),
		SupervisorID: sess.SubjectID,
		Notes:        c.PostForm("notes"),
		ImageURLs:    imageURLs,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rep)
}
