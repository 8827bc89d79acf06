package report

import (
	"sort"

	"github.com/medivisit/backend/internal/models"
)

// Criteria narrows a visit collection. Zero-valued fields are ignored;
// populated fields combine with logical AND.
type Criteria struct {
	EmployeeID     string
	GroupID        string
	HospitalType   string
	ContractStatus string
	Window         *Window
}

// Filter returns the visits matching every populated criterion, in input
// order. The input slice is never mutated. Group membership is resolved
// through the employee list (visits of employees whose groupId matches).
func Filter(visits []models.Visit, c Criteria, employees []models.Employee) []models.Visit {
	var members map[string]bool
	if c.GroupID != "" {
		members = make(map[string]bool, len(employees))
		for _, e := range employees {
			if e.GroupID == c.GroupID {
				members[e.ID] = true
			}
		}
	}

	out := make([]models.Visit, 0, len(visits))
	for _, v := range visits {
		if c.EmployeeID != "" && v.EmployeeID != c.EmployeeID {
			continue
		}
		if members != nil && !members[v.EmployeeID] {
			continue
		}
		if c.HospitalType != "" && v.HospitalType != c.HospitalType {
			continue
		}
		if c.ContractStatus != "" && v.ContractStatus != c.ContractStatus {
			continue
		}
		if c.Window != nil && !c.Window.Contains(v.VisitStartTime) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// SortByRecency orders visits by start time descending, newest first.
// Callers that need recency order apply it after filtering.
func SortByRecency(visits []models.Visit) []models.Visit {
	out := make([]models.Visit, len(visits))
	copy(out, visits)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VisitStartTime.After(out[j].VisitStartTime)
	})
	return out
}
