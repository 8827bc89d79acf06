package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGroupJSONAlwaysCarriesCreatedAt(t *testing.T) {
	// The createdAt key is present even for a zero timestamp.
	b, err := json.Marshal(Group{ID: "g1", Name: "강남지점"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"createdAt"`) {
		t.Fatalf("expected createdAt key, got %s", b)
	}
}
