package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medivisit/backend/internal/export"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func attachment(c *gin.Context, contentType, name, ext string) {
	filename := fmt.Sprintf("%s_%s.%s", name, time.Now().Format("2006-01-02"), ext)
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

func (h *Handler) ExportVisitsCSV(c *gin.Context) {
	attachment(c, csvContentType, "visits", "csv")
	if err := export.VisitsCSV(c.Writer, h.Store.Visits(), h.Store.Employees()); err != nil {
		h.Logger.Error().Err(err).Msg("visits csv export failed")
		c.Status(http.StatusInternalServerError)
	}
}

func (h *Handler) ExportEmployeesCSV(c *gin.Context) {
	attachment(c, csvContentType, "employees", "csv")
	if err := export.EmployeesCSV(c.Writer, h.Store.Employees(), h.Store.Groups()); err != nil {
		h.Logger.Error().Err(err).Msg("employees csv export failed")
		c.Status(http.StatusInternalServerError)
	}
}

func (h *Handler) ExportPerformanceCSV(c *gin.Context) {
	attachment(c, csvContentType, "performance", "csv")
	if err := export.PerformanceCSV(c.Writer, h.Store.Visits(), h.Store.Employees(), h.Store.Groups()); err != nil {
		h.Logger.Error().Err(err).Msg("performance csv export failed")
		c.Status(http.StatusInternalServerError)
	}
}

func (h *Handler) ExportVisitsExcel(c *gin.Context) {
	attachment(c, xlsxContentType, "visits", "xlsx")
	if err := export.VisitsExcel(c.Writer, h.Store.Visits(), h.Store.Employees()); err != nil {
		h.Logger.Error().Err(err).Msg("visits xlsx export failed")
		c.Status(http.StatusInternalServerError)
	}
}

func (h *Handler) ExportEmployeesExcel(c *gin.Context) {
	attachment(c, xlsxContentType, "employees", "xlsx")
	if err := export.EmployeesExcel(c.Writer, h.Store.Employees(), h.Store.Groups()); err != nil {
		h.Logger.Error().Err(err).Msg("employees xlsx export failed")
		c.Status(http.StatusInternalServerError)
	}
}

func (h *Handler) ExportPerformanceExcel(c *gin.Context) {
	attachment(c, xlsxContentType, "performance", "xlsx")
	if err := export.PerformanceExcel(c.Writer, h.Store.Visits(), h.Store.Employees(), h.Store.Groups()); err != nil {
		h.Logger.Error().Err(err).Msg("performance xlsx export failed")
		c.Status(http.StatusInternalServerError)
	}
}
