// Package domain contains the core data types for the EventBuzzer trip planner.
// It is imported by every other internal package (planner, route, export,
// repo, service, handler) and holds no I/O.
package domain

const (
	// MinDays is the smallest number of day tabs a plan offers.
	MinDays = 2
	// MaxDays bounds planning complexity.
	MaxDays = 4

	// DefaultDuration is the visit estimate in minutes for ordinary events.
	DefaultDuration = 120
	// MuseumDuration is the visit estimate in minutes for museum-like events.
	MuseumDuration = 150
	// MaxDuration is the largest accepted user-supplied duration (one day).
	MaxDuration = 24 * 60

	// MinRouteStops is the number of located events needed to build a route.
	MinRouteStops = 2
)

// PlannedEntry is one event placed on one day of a plan.
// Event is a copy of the record taken when the entry was created.
// StartTime is an advisory "HH:MM" and is not checked for overlaps.
type PlannedEntry struct {
	EventID   string `json:"eventId"`
	Event     Event  `json:"event"`
	Duration  int    `json:"duration"`
	StartTime string `json:"startTime,omitempty"`
}

// TripPlan is the aggregate root of the planner.
//
// Days is dense: day d (1-based) lives at Days[d-1] and len(Days) always
// equals TotalDays. Entry order within a day is the visit order.
// An event id appears at most once across all days.
type TripPlan struct {
	Days      [][]PlannedEntry `json:"days"`
	ActiveDay int              `json:"activeDay"`
	TotalDays int              `json:"totalDays"`
}

// NewTripPlan returns an empty plan with MinDays empty days and day 1 active.
func NewTripPlan() TripPlan {
	days := make([][]PlannedEntry, MinDays)
	for i := range days {
		days[i] = []PlannedEntry{}
	}
	return TripPlan{Days: days, ActiveDay: 1, TotalDays: MinDays}
}

// HasDay reports whether day is a valid day number for this plan.
func (p TripPlan) HasDay(day int) bool {
	return day >= 1 && day <= len(p.Days)
}

// Entries returns the entries of day, or nil when the day does not exist.
// The returned slice aliases the plan; callers must not modify it.
func (p TripPlan) Entries(day int) []PlannedEntry {
	if !p.HasDay(day) {
		return nil
	}
	return p.Days[day-1]
}

// DayOf returns the day and index holding eventID. ok is false when the event
// is not planned.
func (p TripPlan) DayOf(eventID string) (day, index int, ok bool) {
	for d, entries := range p.Days {
		for i, e := range entries {
			if e.EventID == eventID {
				return d + 1, i, true
			}
		}
	}
	return 0, 0, false
}

// Contains reports whether eventID is planned on any day.
func (p TripPlan) Contains(eventID string) bool {
	_, _, ok := p.DayOf(eventID)
	return ok
}

// TotalEventCount is the number of entries across all days.
func (p TripPlan) TotalEventCount() int {
	n := 0
	for _, entries := range p.Days {
		n += len(entries)
	}
	return n
}

// Flatten returns all entries in day order, then in-day order.
func (p TripPlan) Flatten() []PlannedEntry {
	out := make([]PlannedEntry, 0, p.TotalEventCount())
	for _, entries := range p.Days {
		out = append(out, entries...)
	}
	return out
}

// LocatedCount is the number of entries whose event has usable coordinates.
func (p TripPlan) LocatedCount() int {
	n := 0
	for _, entries := range p.Days {
		for _, e := range entries {
			if e.Event.IsLocated() {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of the plan's day lists. Event pointer fields are
// shared; events are read-only throughout the planner.
func (p TripPlan) Clone() TripPlan {
	days := make([][]PlannedEntry, len(p.Days))
	for i, entries := range p.Days {
		days[i] = append([]PlannedEntry{}, entries...)
	}
	return TripPlan{Days: days, ActiveDay: p.ActiveDay, TotalDays: p.TotalDays}
}
