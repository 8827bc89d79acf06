package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/medivisit/backend/internal/auth"
	"github.com/medivisit/backend/internal/geocode"
	"github.com/medivisit/backend/internal/http/middleware"
	"github.com/medivisit/backend/internal/models"
	"github.com/medivisit/backend/internal/store"
)

type Handler struct {
	Store          *store.Store
	Geocoder       geocode.Geocoder
	Validator      *validator.Validate
	Logger         zerolog.Logger
	CountryDefault string
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Storage unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// @Summary Log in
// @Description Matches credentials against the employee collection; the bootstrap admin account always works
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]any
// @Router /api/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	user, ok := auth.Login(h.Store.Employees(), req.Username, req.Password)
	if !ok {
		writeError(c, http.StatusUnauthorized, "LOGIN_FAILED", "아이디 또는 비밀번호가 올바르지 않습니다.", nil)
		return
	}
	if err := h.Store.SetSession(c.Request.Context(), user); err != nil {
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to persist session", err.Error())
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.Store.ClearSession(c.Request.Context()); err != nil {
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to clear session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) SessionInfo(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, user)
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

func (h *Handler) EmployeePasswordChange(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id := c.Param("id")
	if !user.IsAdmin && user.ID != id {
		writeError(c, http.StatusForbidden, "FORBIDDEN", "Cannot change another employee's password", nil)
		return
	}

	var req PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	employee, found := h.Store.EmployeeByID(id)
	if !found {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Employee not found", nil)
		return
	}

	if user.IsAdmin {
		employee.Password = req.NewPassword
	} else {
		updated, ok := auth.ChangePassword(employee, req.CurrentPassword, req.NewPassword)
		if !ok {
			writeError(c, http.StatusBadRequest, "PASSWORD_MISMATCH", "현재 비밀번호가 올바르지 않습니다.", nil)
			return
		}
		employee = updated
	}

	if err := h.Store.UpdateEmployee(c.Request.Context(), employee); err != nil {
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to update employee", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
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

// sanitizeEmployee strips the plaintext password before a record leaves
// the API.
func sanitizeEmployee(e models.Employee) models.Employee {
	e.Password = ""
	return e
}
