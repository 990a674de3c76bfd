package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/civicpulse/backend/internal/auth"
	"github.com/civicpulse/backend/internal/db"
	"github.com/civicpulse/backend/internal/http/middleware"
	"github.com/civicpulse/backend/internal/models"
)

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
}

// @Summary Register a citizen account
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} models.UserProfile
// @Router /api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	user, err := h.Store.CreateUser(c.Request.Context(), models.UserProfile{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		DisplayName:  req.DisplayName,
		PasswordHash: hash,
	})
	if err != nil {
		writeError(c, http.StatusConflict, "CONFLICT", "Account already exists", nil)
		return
	}
	c.JSON(http.StatusCreated, user)
}

type LoginRequest struct {
	LoginID  string `json:"login_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login failures are deliberately indistinguishable: same code whether the
// account is missing or the password is wrong.
func invalidCredentials(c *gin.Context) {
	writeError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", nil)
}

// @Summary Citizen login
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/auth/login [post]
func (h *Handler) CitizenLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	user, err := h.Store.GetUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.LoginID)))
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		invalidCredentials(c)
		return
	}

	token, err := h.Tokens.Issue(auth.Session{
		SubjectID: user.ID,
		Role:      auth.RoleCitizen,
		Name:      user.DisplayName,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "profile": user})
}

// @Summary Municipal staff login
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/staff/login [post]
func (h *Handler) StaffLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	m, err := h.Store.GetMunicipalityByLogin(c.Request.Context(), req.LoginID)
	if err != nil || !auth.CheckPassword(m.PasswordHash, req.Password) {
		invalidCredentials(c)
		return
	}

	token, err := h.Tokens.Issue(auth.Session{
		SubjectID:      m.ID,
		Role:           auth.RoleStaff,
		MunicipalityID: m.ID,
		Name:           m.Name,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "municipality": m})
}

// @Summary Supervisor login
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/supervisor/login [post]
func (h *Handler) SupervisorLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	sup, err := h.Store.GetSupervisorByLogin(c.Request.Context(), req.LoginID)
	if err != nil || !auth.CheckPassword(sup.PasswordHash, req.Password) {
		invalidCredentials(c)
		return
	}

	token, err := h.Tokens.Issue(auth.Session{
		SubjectID:      sup.ID,
		Role:           auth.RoleSupervisor,
		MunicipalityID: sup.MunicipalityID,
		Name:           sup.Name,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "supervisor": sup})
}

// @Summary Citizen profile with points and badges
// @Tags profile
// @Produce json
// @Success 200 {object} models.UserProfile
// @Router /api/profile [get]
func (h *Handler) Profile(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	user, err := h.Store.GetUser(c.Request.Context(), sess.SubjectID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Profile not found", nil)
			return
		}
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
