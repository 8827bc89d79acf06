package geocode

import (
	"context"
	"errors"
	"strings"

	"github.com/medivisit/backend/internal/models"
)

var ErrNotFound = errors.New("geocode not found")

type Geocoder interface {
	Geocode(ctx context.Context, query string) (lat float64, lon float64, displayName string, confidence float64, err error)
}

// BuildQuery assembles the lookup string for a visit's free-text location.
func BuildQuery(country string, location string) string {
	country = strings.TrimSpace(country)
	location = strings.TrimSpace(location)
	parts := []string{}
	if country != "" {
		parts = append(parts, country)
	}
	if location != "" {
		parts = append(parts, location)
	}
	return strings.Join(parts, ", ")
}

// ShouldGeocode reports whether a visit still needs coordinates. The
// city-center default counts as "not captured".
func ShouldGeocode(v models.Visit, force bool) bool {
	if force {
		return true
	}
	if v.Latitude == 0 && v.Longitude == 0 {
		return true
	}
	return v.Latitude == models.DefaultLatitude && v.Longitude == models.DefaultLongitude
}
