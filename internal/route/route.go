// Package route turns an ordered list of planned events into a map-routing
// deep link. Everything here is pure: the same entries always produce the
// same URL, and nothing is fetched.
package route

import (
	"net/url"
	"strings"

	"github.com/eventbuzzer/tripplanner/internal/domain"
)

// DefaultBaseURL is the directions endpoint links are built against.
const DefaultBaseURL = "https://www.google.com/maps/dir/"

// Mode is the travel mode requested from the map provider.
type Mode string

const (
	// Driving is used for the multi-stop trip route.
	Driving Mode = "driving"
	// Transit is used for the walking-tour variant.
	Transit Mode = "transit"
)

// Stop is one coordinate-bearing point of a route.
type Stop struct {
	EventID string
	Label   string
	Lat     float64
	Lng     float64
}

// Route is an ordered set of stops ready to be rendered as a URL.
type Route struct {
	Origin      Stop
	Destination Stop
	Waypoints   []Stop
	Mode        Mode
}

// Stops keeps the entries whose event has coordinates, in their given order.
// Entries without coordinates are dropped silently.
func Stops(entries []domain.PlannedEntry) []Stop {
	stops := make([]Stop, 0, len(entries))
	for _, e := range entries {
		if s, ok := stopFor(e.Event); ok {
			stops = append(stops, s)
		}
	}
	return stops
}

func stopFor(ev domain.Event) (Stop, bool) {
	lat, lng, ok := ev.Coordinates()
	if !ok {
		return Stop{}, false
	}
	return Stop{EventID: ev.ID, Label: ev.RouteLabel(), Lat: lat, Lng: lng}, true
}

// Plan builds a route through stops in the given order. The first stop is
// the origin and the last the destination; stops are never re-ordered.
// ok is false when fewer than domain.MinRouteStops stops are given.
func Plan(stops []Stop, mode Mode) (Route, bool) {
	if len(stops) < domain.MinRouteStops {
		return Route{}, false
	}
	last := len(stops) - 1
	return Route{
		Origin:      stops[0],
		Destination: stops[last],
		Waypoints:   append([]Stop{}, stops[1:last]...),
		Mode:        mode,
	}, true
}

// Generator renders routes against a maps base URL.
type Generator struct {
	baseURL string
}

// NewGenerator returns a Generator for baseURL, or DefaultBaseURL when empty.
func NewGenerator(baseURL string) *Generator {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Generator{baseURL: baseURL}
}

// URL renders r as a directions link:
//
//	<base>?api=1&origin=..&destination=..[&waypoints=a|b|..]&travelmode=..
//
// Each point is "<label>|<lat>,<lng>" with the label query-escaped.
func (g *Generator) URL(r Route) string {
	var b strings.Builder
	b.WriteString(g.baseURL)
	if strings.Contains(g.baseURL, "?") {
		b.WriteString("&")
	} else {
		b.WriteString("?")
	}
	b.WriteString("api=1")
	b.WriteString("&origin=" + encodeStop(r.Origin))
	b.WriteString("&destination=" + encodeStop(r.Destination))
	if len(r.Waypoints) > 0 {
		parts := make([]string, len(r.Waypoints))
		for i, w := range r.Waypoints {
			parts[i] = encodeStop(w)
		}
		b.WriteString("&waypoints=" + strings.Join(parts, "|"))
	}
	b.WriteString("&travelmode=" + string(r.Mode))
	return b.String()
}

// Build filters entries to located stops and renders a route URL in mode.
// ok is false when fewer than two entries are located.
func (g *Generator) Build(entries []domain.PlannedEntry, mode Mode) (string, bool) {
	r, ok := Plan(Stops(entries), mode)
	if !ok {
		return "", false
	}
	return g.URL(r), true
}

// ForPlan builds the driving route over every day of plan, in day order and
// then in-day order.
func (g *Generator) ForPlan(plan domain.TripPlan) (string, bool) {
	return g.Build(plan.Flatten(), Driving)
}

// ForDay builds the driving route for a single day of plan.
func (g *Generator) ForDay(plan domain.TripPlan, day int) (string, bool) {
	return g.Build(plan.Entries(day), Driving)
}

// ForTour builds the transit route for a fixed walking tour of events.
func (g *Generator) ForTour(events []domain.Event) (string, bool) {
	stops := make([]Stop, 0, len(events))
	for _, ev := range events {
		if s, ok := stopFor(ev); ok {
			stops = append(stops, s)
		}
	}
	r, ok := Plan(stops, Transit)
	if !ok {
		return "", false
	}
	return g.URL(r), true
}

// encodeStop escapes the label while keeping the "|" and "," separators
// literal so the provider can split label from coordinates.
func encodeStop(s Stop) string {
	coords := domain.FormatCoordinates(s.Lat, s.Lng)
	if s.Label == "" {
		return coords
	}
	return url.QueryEscape(s.Label) + "|" + coords
}
