package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medivisit/backend/internal/http/middleware"
	"github.com/medivisit/backend/internal/models"
	"github.com/medivisit/backend/internal/report"
)

// @Summary Performance summary
// @Description Ungrouped totals over the selected window and filters
// @Tags reports
// @Produce json
// @Param period query string false "day|week|month|quarter|half|year (default month)"
// @Success 200 {object} map[string]any
// @Router /api/reports/summary [get]
func (h *Handler) ReportSummary(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	period := c.DefaultQuery("period", string(report.PeriodMonth))

	criteria := criteriaFromQuery(c, user)
	if criteria.Window == nil {
		w := report.ResolveWindow(report.Period(period), time.Now())
		criteria.Window = &w
	}

	employees := h.Store.Employees()
	filtered := report.Filter(h.Store.Visits(), criteria, employees)
	totals := report.Aggregate(filtered, report.GroupByNone, nil, nil)[0]

	newCount := 0
	for _, v := range filtered {
		if v.HospitalType == models.HospitalTypeNew {
			newCount++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"period": period,
		"window": gin.H{"start": criteria.Window.Start, "end": criteria.Window.End},
		"visitCount":            totals.VisitCount,
		"completedCount":        totals.CompletedCount,
		"pendingCount":          totals.PendingCount,
		"noContractCount":       totals.VisitCount - totals.CompletedCount - totals.PendingCount,
		"newHospitalCount":      newCount,
		"existingHospitalCount": totals.VisitCount - newCount,
		"totalAmount":           totals.TotalAmount,
		"conversionRate":        totals.ConversionRate,
		"totalAmountDisplay":    report.FormatAmount(totals.TotalAmount),
		"conversionRateDisplay": report.FormatRate(totals.ConversionRate),
	})
}

// @Summary Grouped performance report
// @Tags reports
// @Produce json
// @Param group_by query string false "employee|group|region (default employee)"
// @Param sort query string false "amount|visits|conversionRate (default visits)"
// @Param limit query int false "Top-N truncation"
// @Success 200 {object} map[string]any
// @Router /api/reports/performance [get]
func (h *Handler) ReportPerformance(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	groupBy, ok := parseGroupBy(c.DefaultQuery("group_by", "employee"))
	if !ok {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "group_by must be none, employee, group or region", nil)
		return
	}
	sortKey := c.DefaultQuery("sort", report.SortByVisits)
	limit, _ := strconv.Atoi(c.Query("limit"))

	criteria := criteriaFromQuery(c, user)
	employees := h.Store.Employees()
	groups := h.Store.Groups()

	filtered := report.Filter(h.Store.Visits(), criteria, employees)
	rows := report.Rank(report.Aggregate(filtered, groupBy, employees, groups), sortKey, limit)

	resp := gin.H{
		"groupBy": c.DefaultQuery("group_by", "employee"),
		"sort":    sortKey,
		"rows":    rows,
	}
	if criteria.Window != nil {
		resp["window"] = gin.H{"start": criteria.Window.Start, "end": criteria.Window.End}
	}
	c.JSON(http.StatusOK, resp)
}

func parseGroupBy(value string) (report.GroupBy, bool) {
	switch value {
	case "", "none":
		return report.GroupByNone, true
	case "employee":
		return report.GroupByEmployee, true
	case "group":
		return report.GroupByGroup, true
	case "region":
		return report.GroupByRegion, true
	default:
		return report.GroupByNone, false
	}
}
