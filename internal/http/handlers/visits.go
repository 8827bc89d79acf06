package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medivisit/backend/internal/geocode"
	"github.com/medivisit/backend/internal/http/middleware"
	"github.com/medivisit/backend/internal/models"
	"github.com/medivisit/backend/internal/report"
	"github.com/medivisit/backend/internal/store"
)

type VisitRequest struct {
	HospitalName   string    `json:"hospitalName" validate:"required"`
	HospitalType   string    `json:"hospitalType" validate:"required,oneof=new existing"`
	ContactName    string    `json:"contactName"`
	ContactPhone   string    `json:"contactPhone"`
	VisitStartTime time.Time `json:"visitStartTime" validate:"required"`
	VisitEndTime   time.Time `json:"visitEndTime" validate:"required"`
	VisitNotes     string    `json:"visitNotes"`
	ContractStatus string    `json:"contractStatus" validate:"required,oneof=none pending completed"`
	ContractAmount int64     `json:"contractAmount" validate:"gte=0"`
	Location       string    `json:"location" validate:"required"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	EmployeeID     string    `json:"employeeId"`
}

// criteriaFromQuery reads the shared filter parameters. Non-admin callers
// are always pinned to their own records.
func criteriaFromQuery(c *gin.Context, user models.User) report.Criteria {
	criteria := report.Criteria{
		EmployeeID:     c.Query("employee_id"),
		GroupID:        c.Query("group_id"),
		HospitalType:   c.Query("hospital_type"),
		ContractStatus: c.Query("contract_status"),
	}
	if !user.IsAdmin {
		criteria.EmployeeID = user.ID
	}
	if period := c.Query("period"); period != "" {
		w := report.ResolveWindow(report.Period(period), time.Now())
		criteria.Window = &w
	}
	return criteria
}

// @Summary List visits
// @Tags visits
// @Produce json
// @Param employee_id query string false "Employee filter"
// @Param group_id query string false "Group filter"
// @Param period query string false "day|week|month|quarter|half|year"
// @Success 200 {object} map[string]any
// @Router /api/visits [get]
func (h *Handler) VisitsList(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	criteria := criteriaFromQuery(c, user)

	visits := report.Filter(h.Store.Visits(), criteria, h.Store.Employees())
	if c.Query("sort") == "recent" {
		visits = report.SortByRecency(visits)
	}
	c.JSON(http.StatusOK, gin.H{"items": visits, "total": len(visits)})
}

func (h *Handler) VisitDetails(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	v, ok := h.Store.VisitByID(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Visit not found", nil)
		return
	}
	if !user.IsAdmin && v.EmployeeID != user.ID {
		writeError(c, http.StatusForbidden, "FORBIDDEN", "Not your visit", nil)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) VisitCreate(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req VisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	if req.VisitEndTime.Before(req.VisitStartTime) {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "visitEndTime must not precede visitStartTime", nil)
		return
	}

	employeeID := req.EmployeeID
	if !user.IsAdmin || employeeID == "" {
		employeeID = user.ID
	}

	v := models.Visit{
		ID:             fmt.Sprintf("V%d", time.Now().UnixMilli()),
		HospitalName:   req.HospitalName,
		HospitalType:   req.HospitalType,
		ContactName:    req.ContactName,
		ContactPhone:   req.ContactPhone,
		VisitStartTime: req.VisitStartTime,
		VisitEndTime:   req.VisitEndTime,
		VisitNotes:     req.VisitNotes,
		ContractStatus: req.ContractStatus,
		ContractAmount: req.ContractAmount,
		Location:       req.Location,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		CreatedAt:      time.Now(),
		EmployeeID:     employeeID,
	}
	h.resolveCoordinates(c, &v)

	if err := h.Store.AddVisit(c.Request.Context(), v); err != nil {
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to save visit", err.Error())
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *Handler) VisitUpdate(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	existing, ok := h.Store.VisitByID(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Visit not found", nil)
		return
	}
	if !user.IsAdmin && existing.EmployeeID != user.ID {
		writeError(c, http.StatusForbidden, "FORBIDDEN", "Not your visit", nil)
		return
	}

	var req VisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	if req.VisitEndTime.Before(req.VisitStartTime) {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "visitEndTime must not precede visitStartTime", nil)
		return
	}

	updated := existing
	updated.HospitalName = req.HospitalName
	updated.HospitalType = req.HospitalType
	updated.ContactName = req.ContactName
	updated.ContactPhone = req.ContactPhone
	updated.VisitStartTime = req.VisitStartTime
	updated.VisitEndTime = req.VisitEndTime
	updated.VisitNotes = req.VisitNotes
	updated.ContractStatus = req.ContractStatus
	updated.ContractAmount = req.ContractAmount
	updated.Location = req.Location
	updated.Latitude = req.Latitude
	updated.Longitude = req.Longitude
	if user.IsAdmin && req.EmployeeID != "" {
		updated.EmployeeID = req.EmployeeID
	}
	h.resolveCoordinates(c, &updated)

	if err := h.Store.UpdateVisit(c.Request.Context(), updated); err != nil {
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to update visit", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) VisitDelete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	existing, ok := h.Store.VisitByID(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Visit not found", nil)
		return
	}
	if !user.IsAdmin && existing.EmployeeID != user.ID {
		writeError(c, http.StatusForbidden, "FORBIDDEN", "Not your visit", nil)
		return
	}
	if err := h.Store.DeleteVisit(c.Request.Context(), c.Param("id")); err != nil {
		if err == store.ErrNotFound {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Visit not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to delete visit", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// resolveCoordinates fills in missing coordinates, geocoding the location
// string when a geocoder is configured and falling back to the city-center
// default. Geocoding failures degrade to the default, never to an error.
func (h *Handler) resolveCoordinates(c *gin.Context, v *models.Visit) {
	if !geocode.ShouldGeocode(*v, false) {
		return
	}
	if h.Geocoder != nil && v.Location != "" {
		query := geocode.BuildQuery(h.CountryDefault, v.Location)
		lat, lon, _, _, err := h.Geocoder.Geocode(c.Request.Context(), query)
		if err == nil {
			v.Latitude = lat
			v.Longitude = lon
			return
		}
		h.Logger.Debug().Err(err).Str("query", query).Msg("geocode failed, using default coordinates")
	}
	v.Latitude = models.DefaultLatitude
	v.Longitude = models.DefaultLongitude
}
