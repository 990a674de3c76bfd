package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/civicpulse/backend/internal/auth"
	"github.com/civicpulse/backend/internal/db"
	"github.com/civicpulse/backend/internal/http/middleware"
	"github.com/civicpulse/backend/internal/models"
	"github.com/civicpulse/backend/internal/service"
)

// @Summary List the municipality's tickets
// @Tags staff
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/staff/tickets [get]
func (h *Handler) StaffTickets(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := db.TicketFilter{
		MunicipalityID: sess.MunicipalityID,
		Category:       models.Category(c.Query("category")),
		Limit:          limit,
		Offset:         offset,
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

type AssignRequest struct {
	SupervisorID string     `json:"supervisor_id" validate:"required"`
	Deadline     *time.Time `json:"deadline,omitempty"`
}

// @Summary Assign a submitted ticket to a supervisor
// @Description Concurrent assignments race on a conditional update; the
// @Description loser receives 409.
// @Tags staff
// @Accept json
// @Produce json
// @Success 200 {object} models.Ticket
// @Failure 409 {object} map[string]any
// @Router /api/staff/tickets/{id}/assign [post]
func (h *Handler) AssignTicket(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	ticket, err := h.Lifecycle.Assign(
		c.Request.Context(),
		service.SessionScope{MunicipalityID: sess.MunicipalityID},
		c.Param("id"), req.SupervisorID, req.Deadline,
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// @Summary Approve a completed ticket
// @Tags staff
// @Produce json
// @Success 200 {object} models.Ticket
// @Router /api/staff/tickets/{id}/approve [post]
func (h *Handler) ApproveTicket(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	ticket, err := h.Lifecycle.Approve(
		c.Request.Context(),
		service.SessionScope{MunicipalityID: sess.MunicipalityID},
		c.Param("id"),
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

type RejectRequest struct {
	Reason     string `json:"reason" validate:"required"`
	Fraudulent bool   `json:"fraudulent"`
}

// @Summary Reject a completion report
// @Tags staff
// @Accept json
// @Produce json
// @Success 200 {object} models.Ticket
// @Router /api/staff/tickets/{id}/reject [post]
func (h *Handler) RejectTicket(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "A rejection reason is required", err.Error())
		return
	}

	ticket, err := h.Lifecycle.Reject(
		c.Request.Context(),
		service.SessionScope{MunicipalityID: sess.MunicipalityID},
		c.Param("id"), req.Reason, req.Fraudulent,
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// @Summary List the municipality's supervisors
// @Tags staff
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/staff/supervisors [get]
func (h *Handler) ListSupervisors(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	items, err := h.Store.ListSupervisors(c.Request.Context(), sess.MunicipalityID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type CreateSupervisorRequest struct {
	Name       string `json:"name" validate:"required"`
	LoginID    string `json:"login_id" validate:"required"`
	Password   string `json:"password" validate:"required,min=8"`
	Department string `json:"department" validate:"required"`
	Phone      string `json:"phone"`
}

// @Summary Create a supervisor account
// @Tags staff
// @Accept json
// @Produce json
// @Success 201 {object} models.Supervisor
// @Router /api/staff/supervisors [post]
func (h *Handler) CreateSupervisor(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	var req CreateSupervisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	if !models.ValidDepartment(models.Department(req.Department)) {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown department", nil)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	sup, err := h.Store.CreateSupervisor(c.Request.Context(), models.Supervisor{
		Name:           req.Name,
		LoginID:        req.LoginID,
		PasswordHash:   hash,
		Department:     models.Department(req.Department),
		Phone:          req.Phone,
		MunicipalityID: sess.MunicipalityID,
	})
	if err != nil {
		writeError(c, http.StatusConflict, "CONFLICT", "Login id already in use", nil)
		return
	}
	c.JSON(http.StatusCreated, sup)
}

// @Summary Ticket analytics for the municipality
// @Tags staff
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/staff/analytics [get]
func (h *Handler) Analytics(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	counts, err := h.Store.StatusCounts(c.Request.Context(), sess.MunicipalityID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	avgDays, onTime, total, err := h.Store.ResolutionStats(c.Request.Context(), sess.MunicipalityID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_counts":       counts,
		"avg_resolution_days": avgDays,
		"resolved_on_time":    onTime,
		"resolved_total":      total,
	})
}
