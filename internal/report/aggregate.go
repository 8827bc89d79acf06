package report

import (
	"strings"

	"github.com/medivisit/backend/internal/models"
)

// GroupBy selects the grouping key for aggregation.
type GroupBy int

const (
	GroupByNone GroupBy = iota
	GroupByEmployee
	GroupByGroup
	GroupByRegion
)

// Row is one aggregated result. TotalAmount sums contract amounts of
// completed visits only; ConversionRate is a plain 0-100 percentage.
type Row struct {
	Key            string  `json:"key"`
	Label          string  `json:"label"`
	VisitCount     int     `json:"visitCount"`
	CompletedCount int     `json:"completedCount"`
	PendingCount   int     `json:"pendingCount"`
	TotalAmount    int64   `json:"totalAmount"`
	ConversionRate float64 `json:"conversionRate"`
}

// Aggregate computes per-group metrics over an already-filtered visit set.
// Grouped modes only emit keys with at least one matching visit; visits
// that cannot be attributed to a key (missing employee id, unknown
// employee) are skipped rather than failing the computation. Row order is
// employee/group list order for those modes and first appearance for
// regions.
func Aggregate(visits []models.Visit, groupBy GroupBy, employees []models.Employee, groups []models.Group) []Row {
	switch groupBy {
	case GroupByEmployee:
		return aggregateByEmployee(visits, employees)
	case GroupByGroup:
		return aggregateByGroup(visits, employees, groups)
	case GroupByRegion:
		return aggregateByRegion(visits)
	default:
		row := tally(visits)
		row.Key = "total"
		row.Label = "전체"
		return []Row{row}
	}
}

func aggregateByEmployee(visits []models.Visit, employees []models.Employee) []Row {
	byEmployee := map[string][]models.Visit{}
	for _, v := range visits {
		if v.EmployeeID == "" {
			continue
		}
		byEmployee[v.EmployeeID] = append(byEmployee[v.EmployeeID], v)
	}

	rows := make([]Row, 0, len(byEmployee))
	for _, e := range employees {
		matched, ok := byEmployee[e.ID]
		if !ok {
			continue
		}
		row := tally(matched)
		row.Key = e.ID
		row.Label = e.Name
		rows = append(rows, row)
	}
	return rows
}

func aggregateByGroup(visits []models.Visit, employees []models.Employee, groups []models.Group) []Row {
	groupOf := make(map[string]string, len(employees))
	for _, e := range employees {
		if e.GroupID != "" {
			groupOf[e.ID] = e.GroupID
		}
	}

	byGroup := map[string][]models.Visit{}
	for _, v := range visits {
		gid, ok := groupOf[v.EmployeeID]
		if !ok {
			continue
		}
		byGroup[gid] = append(byGroup[gid], v)
	}

	rows := make([]Row, 0, len(byGroup))
	for _, g := range groups {
		matched, ok := byGroup[g.ID]
		if !ok {
			continue
		}
		row := tally(matched)
		row.Key = g.ID
		row.Label = g.Name
		rows = append(rows, row)
	}
	return rows
}

func aggregateByRegion(visits []models.Visit) []Row {
	byRegion := map[string][]models.Visit{}
	var order []string
	for _, v := range visits {
		region := RegionKey(v.Location)
		if region == "" {
			continue
		}
		if _, ok := byRegion[region]; !ok {
			order = append(order, region)
		}
		byRegion[region] = append(byRegion[region], v)
	}

	rows := make([]Row, 0, len(order))
	for _, region := range order {
		row := tally(byRegion[region])
		row.Key = region
		row.Label = region
		rows = append(rows, row)
	}
	return rows
}

// RegionKey extracts the district from a free-text address by taking the
// second whitespace token ("서울시 강남구" -> "강남구"), falling back to the
// whole string. A string-split heuristic, not geocoding; swap this out if
// real region resolution ever lands.
func RegionKey(location string) string {
	fields := strings.Fields(location)
	if len(fields) > 1 {
		return fields[1]
	}
	if len(fields) == 1 {
		return fields[0]
	}
	return ""
}

func tally(visits []models.Visit) Row {
	var row Row
	row.VisitCount = len(visits)
	for _, v := range visits {
		switch v.ContractStatus {
		case models.ContractCompleted:
			row.CompletedCount++
			row.TotalAmount += v.ContractAmount
		case models.ContractPending:
			row.PendingCount++
		}
	}
	if row.VisitCount > 0 {
		row.ConversionRate = float64(row.CompletedCount) / float64(row.VisitCount) * 100
	}
	return row
}
