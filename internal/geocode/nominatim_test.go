package geocode

import (
	"errors"
	"testing"
)

func TestParseNominatimItems(t *testing.T) {
	items := []nominatimItem{
		{
			Lat:         "37.5665",
			Lon:         "126.978",
			DisplayName: "Seoul, South Korea",
			Importance:  0.81,
		},
	}
	res, err := parseNominatimItems(items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Lat != 37.5665 || res.Lon != 126.978 {
		t.Fatalf("unexpected coordinates: %+v", res)
	}
	if res.DisplayName != "Seoul, South Korea" {
		t.Fatalf("unexpected display name: %s", res.DisplayName)
	}
	if res.Confidence != 0.81 {
		t.Fatalf("unexpected confidence: %f", res.Confidence)
	}
}

func TestParseNominatimItemsEmpty(t *testing.T) {
	if _, err := parseNominatimItems(nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
