package report

import (
	"reflect"
	"testing"
)

func rankRows() []Row {
	return []Row{
		{Key: "a", VisitCount: 3, TotalAmount: 500, ConversionRate: 10},
		{Key: "b", VisitCount: 5, TotalAmount: 500, ConversionRate: 60},
		{Key: "c", VisitCount: 5, TotalAmount: 900, ConversionRate: 20},
	}
}

func TestRankByAmount(t *testing.T) {
	got := Rank(rankRows(), SortByAmount, 0)
	if got[0].Key != "c" {
		t.Fatalf("expected c first, got %s", got[0].Key)
	}
	// a and b tie on amount; input order breaks the tie.
	if got[1].Key != "a" || got[2].Key != "b" {
		t.Fatalf("tie must preserve input order, got %s then %s", got[1].Key, got[2].Key)
	}
}

func TestRankByVisitsWithLimit(t *testing.T) {
	got := Rank(rankRows(), SortByVisits, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Key != "b" || got[1].Key != "c" {
		t.Fatalf("unexpected order: %s, %s", got[0].Key, got[1].Key)
	}
}

func TestRankByConversionRate(t *testing.T) {
	got := Rank(rankRows(), SortByConversion, 0)
	if got[0].Key != "b" || got[1].Key != "c" || got[2].Key != "a" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestRankIdempotent(t *testing.T) {
	once := Rank(rankRows(), SortByAmount, 2)
	twice := Rank(once, SortByAmount, 2)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("re-ranking a ranked result changed it: %+v vs %+v", once, twice)
	}
}

func TestRankUnknownKeyKeepsOrder(t *testing.T) {
	rows := rankRows()
	got := Rank(rows, "ebitda", 0)
	if !reflect.DeepEqual(rows, got) {
		t.Fatalf("unknown sort key must keep order, got %+v", got)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	rows := rankRows()
	_ = Rank(rows, SortByAmount, 1)
	if rows[0].Key != "a" || len(rows) != 3 {
		t.Fatalf("input was mutated: %+v", rows)
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(1000000); got != "100만원" {
		t.Fatalf("unexpected format: %s", got)
	}
	if got := FormatAmount(0); got != "0만원" {
		t.Fatalf("unexpected format: %s", got)
	}
}

func TestFormatRate(t *testing.T) {
	if got := FormatRate(33.333); got != "33.3%" {
		t.Fatalf("unexpected format: %s", got)
	}
	if got := FormatRate(0); got != "0.0%" {
		t.Fatalf("unexpected format: %s", got)
	}
}
