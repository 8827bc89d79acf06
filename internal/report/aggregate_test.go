package report

import (
	"testing"

	"github.com/medivisit/backend/internal/models"
)

func TestAggregateByEmployeeScenario(t *testing.T) {
	visits := []models.Visit{
		{ID: "v1", EmployeeID: "e1", ContractStatus: models.ContractCompleted, ContractAmount: 1000000, VisitStartTime: day(15)},
		{ID: "v2", EmployeeID: "e1", ContractStatus: models.ContractPending, ContractAmount: 500000, VisitStartTime: day(16)},
		{ID: "v3", EmployeeID: "e2", ContractStatus: models.ContractNone, VisitStartTime: day(16)},
	}
	rows := Aggregate(visits, GroupByEmployee, sampleEmployees(), nil)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	e1 := rows[0]
	if e1.Key != "e1" || e1.VisitCount != 2 || e1.CompletedCount != 1 || e1.PendingCount != 1 {
		t.Fatalf("unexpected e1 row: %+v", e1)
	}
	if e1.TotalAmount != 1000000 {
		t.Fatalf("pending amounts must not count, got %d", e1.TotalAmount)
	}
	if e1.ConversionRate != 50.0 {
		t.Fatalf("expected 50%% conversion, got %f", e1.ConversionRate)
	}

	e2 := rows[1]
	if e2.Key != "e2" || e2.VisitCount != 1 || e2.CompletedCount != 0 || e2.TotalAmount != 0 || e2.ConversionRate != 0.0 {
		t.Fatalf("unexpected e2 row: %+v", e2)
	}
}

func TestAggregateExcludesEmployeesWithoutActivity(t *testing.T) {
	visits := []models.Visit{{ID: "v1", EmployeeID: "e1", ContractStatus: models.ContractNone}}
	rows := Aggregate(visits, GroupByEmployee, sampleEmployees(), nil)
	if len(rows) != 1 || rows[0].Key != "e1" {
		t.Fatalf("expected only e1, got %+v", rows)
	}
}

func TestAggregateSkipsUnattributableVisits(t *testing.T) {
	visits := []models.Visit{
		{ID: "v1", EmployeeID: "e1", ContractStatus: models.ContractNone},
		{ID: "v2", EmployeeID: "", ContractStatus: models.ContractNone},
		{ID: "v3", EmployeeID: "ghost", ContractStatus: models.ContractNone},
	}
	rows := Aggregate(visits, GroupByEmployee, sampleEmployees(), nil)
	if len(rows) != 1 || rows[0].VisitCount != 1 {
		t.Fatalf("visits without a known employee must be skipped, got %+v", rows)
	}
}

func TestAggregateVisitCountConservation(t *testing.T) {
	visits := sampleVisits()
	rows := Aggregate(visits, GroupByEmployee, sampleEmployees(), nil)
	total := 0
	for _, r := range rows {
		total += r.VisitCount
	}
	if total != len(visits) {
		t.Fatalf("per-employee counts must sum to %d, got %d", len(visits), total)
	}
}

func TestAggregateConversionRateBounds(t *testing.T) {
	rows := Aggregate(sampleVisits(), GroupByEmployee, sampleEmployees(), nil)
	for _, r := range rows {
		if r.ConversionRate < 0 || r.ConversionRate > 100 {
			t.Fatalf("conversion rate out of bounds: %+v", r)
		}
		if r.VisitCount == 0 && r.ConversionRate != 0 {
			t.Fatalf("zero visits must mean zero rate: %+v", r)
		}
	}
}

func TestAggregateByGroup(t *testing.T) {
	groups := []models.Group{{ID: "g1", Name: "강남지점"}, {ID: "g2", Name: "서초지점"}, {ID: "g3", Name: "송파지점"}}
	rows := Aggregate(sampleVisits(), GroupByGroup, sampleEmployees(), groups)
	if len(rows) != 2 {
		t.Fatalf("g3 has no visits and must be excluded, got %+v", rows)
	}
	if rows[0].Key != "g1" || rows[0].VisitCount != 3 || rows[0].Label != "강남지점" {
		t.Fatalf("unexpected g1 row: %+v", rows[0])
	}
	if rows[1].Key != "g2" || rows[1].TotalAmount != 2000000 {
		t.Fatalf("unexpected g2 row: %+v", rows[1])
	}
}

func TestAggregateByRegionHeuristic(t *testing.T) {
	rows := Aggregate(sampleVisits(), GroupByRegion, nil, nil)
	if len(rows) != 3 {
		t.Fatalf("expected 3 regions, got %+v", rows)
	}
	if rows[0].Key != "강남구" || rows[0].VisitCount != 2 {
		t.Fatalf("unexpected first region: %+v", rows[0])
	}
	if rows[2].Key != "Singleword" {
		t.Fatalf("single-token locations must fall back to the full string, got %+v", rows[2])
	}
}

func TestAggregateNone(t *testing.T) {
	rows := Aggregate(sampleVisits(), GroupByNone, nil, nil)
	if len(rows) != 1 {
		t.Fatalf("expected single row, got %d", len(rows))
	}
	r := rows[0]
	if r.VisitCount != 4 || r.CompletedCount != 2 || r.PendingCount != 1 || r.TotalAmount != 3000000 {
		t.Fatalf("unexpected totals: %+v", r)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	rows := Aggregate(nil, GroupByNone, nil, nil)
	if len(rows) != 1 || rows[0].VisitCount != 0 || rows[0].ConversionRate != 0 {
		t.Fatalf("empty input must yield a zero row, got %+v", rows)
	}
	if got := Aggregate(nil, GroupByEmployee, sampleEmployees(), nil); len(got) != 0 {
		t.Fatalf("empty input must yield no grouped rows, got %+v", got)
	}
}

func TestRegionKey(t *testing.T) {
	cases := map[string]string{
		"서울시 강남구":     "강남구",
		"서울시 강남구 역삼동": "강남구",
		"Singleword":   "Singleword",
		"":             "",
	}
	for in, want := range cases {
		if got := RegionKey(in); got != want {
			t.Fatalf("RegionKey(%q) = %q, want %q", in, got, want)
		}
	}
}
