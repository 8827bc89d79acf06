package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medivisit/backend/internal/models"
	"github.com/medivisit/backend/internal/store"
)

type EmployeeRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	Region   string `json:"region"`
	Position string `json:"position"`
	Password string `json:"password"`
	GroupID  string `json:"groupId"`
}

func (h *Handler) EmployeesList(c *gin.Context) {
	employees := h.Store.Employees()
	items := make([]models.Employee, 0, len(employees))
	for _, e := range employees {
		items = append(items, sanitizeEmployee(e))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) EmployeeDetails(c *gin.Context) {
	e, ok := h.Store.EmployeeByID(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Employee not found", nil)
		return
	}
	c.JSON(http.StatusOK, sanitizeEmployee(e))
}

func (h *Handler) EmployeeCreate(c *gin.Context) {
	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	if req.Password == "" {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "password is required", nil)
		return
	}
	if req.GroupID != "" {
		if _, ok := h.Store.GroupByID(req.GroupID); !ok {
			writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "groupId does not reference an existing group", nil)
			return
		}
	}

	e := models.Employee{
		ID:       fmt.Sprintf("E%d", time.Now().UnixMilli()),
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Region:   req.Region,
		Position: req.Position,
		Password: req.Password,
		GroupID:  req.GroupID,
	}
	if err := h.Store.AddEmployee(c.Request.Context(), e); err != nil {
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to save employee", err.Error())
		return
	}
	c.JSON(http.StatusCreated, sanitizeEmployee(e))
}

func (h *Handler) EmployeeUpdate(c *gin.Context) {
	existing, ok := h.Store.EmployeeByID(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Employee not found", nil)
		return
	}

	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	if req.GroupID != "" {
		if _, ok := h.Store.GroupByID(req.GroupID); !ok {
			writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "groupId does not reference an existing group", nil)
			return
		}
	}

	existing.Name = req.Name
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.Region = req.Region
	existing.Position = req.Position
	existing.GroupID = req.GroupID
	if req.Password != "" {
		existing.Password = req.Password
	}

	if err := h.Store.UpdateEmployee(c.Request.Context(), existing); err != nil {
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to update employee", err.Error())
		return
	}
	c.JSON(http.StatusOK, sanitizeEmployee(existing))
}

// EmployeeDelete removes the record only; the employee's visits stay in
// the history with a dangling id that aggregation skips.
func (h *Handler) EmployeeDelete(c *gin.Context) {
	if err := h.Store.DeleteEmployee(c.Request.Context(), c.Param("id")); err != nil {
		if err == store.ErrNotFound {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Employee not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to delete employee", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type GroupRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (h *Handler) GroupsList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.Store.Groups()})
}

func (h *Handler) GroupCreate(c *gin.Context) {
	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	if h.groupNameTaken(req.Name, "") {
		writeError(c, http.StatusConflict, "DUPLICATE_NAME", "이미 존재하는 지점명입니다.", nil)
		return
	}

	g := models.Group{
		ID:          fmt.Sprintf("G%d", time.Now().UnixMilli()),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	if err := h.Store.AddGroup(c.Request.Context(), g); err != nil {
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to save group", err.Error())
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (h *Handler) GroupUpdate(c *gin.Context) {
	existing, ok := h.Store.GroupByID(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Group not found", nil)
		return
	}

	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	if h.groupNameTaken(req.Name, existing.ID) {
		writeError(c, http.StatusConflict, "DUPLICATE_NAME", "이미 존재하는 지점명입니다.", nil)
		return
	}

	existing.Name = strings.TrimSpace(req.Name)
	existing.Description = req.Description
	if err := h.Store.UpdateGroup(c.Request.Context(), existing); err != nil {
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to update group", err.Error())
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *Handler) GroupDelete(c *gin.Context) {
	if err := h.Store.DeleteGroup(c.Request.Context(), c.Param("id")); err != nil {
		if err == store.ErrNotFound {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Group not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to delete group", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) groupNameTaken(name string, excludeID string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, g := range h.Store.Groups() {
		if g.ID != excludeID && strings.ToLower(strings.TrimSpace(g.Name)) == name {
			return true
		}
	}
	return false
}
