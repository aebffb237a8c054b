package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/eventbuzzer/tripplanner/internal/geo"
)

// Event is the read model of an event supplied by the data layer.
// The planner never mutates an Event; PlannedEntry keeps a copy taken at
// insertion time and staleness is accepted.
//
// Latitude and Longitude are only usable for routing when both are present and
// finite (see Coordinates).
type Event struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Latitude         *float64   `json:"latitude,omitempty"`
	Longitude        *float64   `json:"longitude,omitempty"`
	ImageURL         string     `json:"image_url,omitempty"`
	ShortDescription string     `json:"short_description,omitempty"`
	Description      string     `json:"description,omitempty"`
	AddressCity      string     `json:"address_city,omitempty"`
	Location         string     `json:"location,omitempty"`
	VenueName        string     `json:"venue_name,omitempty"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	PriceFrom        *float64   `json:"price_from,omitempty"`
	Category         string     `json:"category,omitempty"`
}

// Coordinates returns the event position. ok is false unless both latitude
// and longitude are set to finite numbers.
func (e Event) Coordinates() (lat, lng float64, ok bool) {
	if e.Latitude == nil || e.Longitude == nil {
		return 0, 0, false
	}
	lat, lng = *e.Latitude, *e.Longitude
	if !finite(lat) || !finite(lng) {
		return 0, 0, false
	}
	return lat, lng, true
}

// IsLocated reports whether the event can be used as a route stop.
func (e Event) IsLocated() bool {
	_, _, ok := e.Coordinates()
	return ok
}

// LocationLabel resolves a human-readable place for the event.
// Resolution order: venue name, city, free-form location, the nearest known
// town derived from coordinates, formatted coordinates. Returns "" when the
// event carries none of these.
func (e Event) LocationLabel() string {
	if s := firstNonBlank(e.VenueName, e.AddressCity, e.Location); s != "" {
		return s
	}
	lat, lng, ok := e.Coordinates()
	if !ok {
		return ""
	}
	if p, found := geo.NearestPlace(lat, lng, geo.SwissPlaces); found {
		return "near " + p.Name
	}
	return FormatCoordinates(lat, lng)
}

// RouteLabel is the name shown for the event on an opened map.
// Resolution order: title, venue name, city, location, formatted coordinates.
func (e Event) RouteLabel() string {
	if s := firstNonBlank(e.Title, e.VenueName, e.AddressCity, e.Location); s != "" {
		return s
	}
	lat, lng, ok := e.Coordinates()
	if !ok {
		return ""
	}
	return FormatCoordinates(lat, lng)
}

// Summary returns the short description when set, otherwise the full one.
func (e Event) Summary() string {
	return firstNonBlank(e.ShortDescription, e.Description)
}

// FormatCoordinates renders a coordinate pair as "lat,lng" with up to six
// decimals and no trailing zeros.
func FormatCoordinates(lat, lng float64) string {
	return formatDegree(lat) + "," + formatDegree(lng)
}

func formatDegree(v float64) string {
	s := fmt.Sprintf("%.6f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}
