package report

import (
	"testing"
	"time"

	"github.com/medivisit/backend/internal/models"
)

func day(d int) time.Time {
	return time.Date(2023, 5, d, 10, 0, 0, 0, time.UTC)
}

func sampleVisits() []models.Visit {
	return []models.Visit{
		{ID: "v1", EmployeeID: "e1", HospitalType: models.HospitalTypeNew, ContractStatus: models.ContractCompleted, ContractAmount: 1000000, VisitStartTime: day(15), Location: "서울시 강남구"},
		{ID: "v2", EmployeeID: "e1", HospitalType: models.HospitalTypeExisting, ContractStatus: models.ContractPending, ContractAmount: 500000, VisitStartTime: day(16), Location: "서울시 서초구"},
		{ID: "v3", EmployeeID: "e2", HospitalType: models.HospitalTypeNew, ContractStatus: models.ContractNone, VisitStartTime: day(16), Location: "서울시 강남구"},
		{ID: "v4", EmployeeID: "e3", HospitalType: models.HospitalTypeExisting, ContractStatus: models.ContractCompleted, ContractAmount: 2000000, VisitStartTime: day(20), Location: "Singleword"},
	}
}

func sampleEmployees() []models.Employee {
	return []models.Employee{
		{ID: "e1", Name: "홍길동", GroupID: "g1"},
		{ID: "e2", Name: "김영희", GroupID: "g1"},
		{ID: "e3", Name: "이철수", GroupID: "g2"},
	}
}

func TestFilterByEmployee(t *testing.T) {
	got := Filter(sampleVisits(), Criteria{EmployeeID: "e1"}, nil)
	if len(got) != 2 || got[0].ID != "v1" || got[1].ID != "v2" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestFilterByGroupResolvesMembership(t *testing.T) {
	got := Filter(sampleVisits(), Criteria{GroupID: "g2"}, sampleEmployees())
	if len(got) != 1 || got[0].ID != "v4" {
		t.Fatalf("expected only e3's visit, got %+v", got)
	}
}

func TestFilterWindowInclusiveBothEnds(t *testing.T) {
	w := Window{Start: day(16), End: day(16)}
	got := Filter(sampleVisits(), Criteria{Window: &w}, nil)
	if len(got) != 2 {
		t.Fatalf("expected both boundary visits, got %d", len(got))
	}
}

func TestFilterComposes(t *testing.T) {
	visits := sampleVisits()
	employees := sampleEmployees()
	combined := Filter(visits, Criteria{GroupID: "g1", ContractStatus: models.ContractCompleted}, employees)
	chained := Filter(
		Filter(visits, Criteria{GroupID: "g1"}, employees),
		Criteria{ContractStatus: models.ContractCompleted},
		employees,
	)
	if len(combined) != len(chained) {
		t.Fatalf("combined and chained filters disagree: %d vs %d", len(combined), len(chained))
	}
	for i := range combined {
		if combined[i].ID != chained[i].ID {
			t.Fatalf("combined and chained filters disagree at %d", i)
		}
	}
	if len(combined) != 1 || combined[0].ID != "v1" {
		t.Fatalf("unexpected result: %+v", combined)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	visits := sampleVisits()
	_ = Filter(visits, Criteria{ContractStatus: models.ContractCompleted}, nil)
	if visits[0].ID != "v1" || len(visits) != 4 {
		t.Fatalf("input was mutated")
	}
}

func TestFilterEmptyCriteriaReturnsAll(t *testing.T) {
	visits := sampleVisits()
	got := Filter(visits, Criteria{}, nil)
	if len(got) != len(visits) {
		t.Fatalf("expected all visits, got %d", len(got))
	}
}

func TestSortByRecency(t *testing.T) {
	got := SortByRecency(sampleVisits())
	if got[0].ID != "v4" {
		t.Fatalf("expected newest visit first, got %s", got[0].ID)
	}
	// v2 and v3 share a start time; input order is preserved between them.
	if got[1].ID != "v2" || got[2].ID != "v3" {
		t.Fatalf("expected stable order for equal times, got %s then %s", got[1].ID, got[2].ID)
	}
}
