// Package planner implements the trip state store: the single owner of a
// TripPlan through which every mutation passes.
//
// The store does no I/O. Rejected operations leave the plan untouched and
// return a domain sentinel error; callers turn those into notices with
// domain.NoticeFor. Operations that have nothing to do (removing an unplanned
// event, moving the first entry up) report false instead of failing.
//
// A Store is not safe for concurrent use; the owner serializes access.
package planner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/eventbuzzer/tripplanner/internal/domain"
)

// Store owns one TripPlan.
type Store struct {
	plan domain.TripPlan
}

// New returns a store holding an empty plan.
func New() *Store {
	return &Store{plan: domain.NewTripPlan()}
}

// Restore builds a store from a previously persisted plan, repairing anything
// that breaks the plan invariants: the day count is clamped, duplicate events
// keep only their first occurrence, entries on days beyond MaxDays move to the
// last day, and the active day is clamped.
func Restore(plan domain.TripPlan) *Store {
	total := clamp(max(plan.TotalDays, len(plan.Days)), domain.MinDays, domain.MaxDays)

	days := make([][]domain.PlannedEntry, total)
	for i := range days {
		days[i] = []domain.PlannedEntry{}
	}

	seen := make(map[string]bool)
	for i, entries := range plan.Days {
		target := min(i, total-1)
		for _, e := range entries {
			if e.EventID == "" || seen[e.EventID] {
				continue
			}
			seen[e.EventID] = true
			if e.Duration <= 0 || e.Duration > domain.MaxDuration {
				e.Duration = ClassifyDuration(e.Event)
			}
			if e.Event.ID == "" {
				e.Event.ID = e.EventID
			}
			days[target] = append(days[target], e)
		}
	}

	return &Store{plan: domain.TripPlan{
		Days:      days,
		ActiveDay: clamp(plan.ActiveDay, 1, total),
		TotalDays: total,
	}}
}

// Snapshot returns a copy of the plan. Mutating it does not affect the store.
func (s *Store) Snapshot() domain.TripPlan {
	return s.plan.Clone()
}

// ActiveDay is the day currently being edited.
func (s *Store) ActiveDay() int {
	return s.plan.ActiveDay
}

// TotalDays is the number of days in the plan.
func (s *Store) TotalDays() int {
	return s.plan.TotalDays
}

// TotalEventCount is the number of planned entries across all days.
func (s *Store) TotalEventCount() int {
	return s.plan.TotalEventCount()
}

// Contains reports whether eventID is planned on any day.
func (s *Store) Contains(eventID string) bool {
	return s.plan.Contains(eventID)
}

// Add appends event to the end of day with a classified default duration.
// Returns domain.ErrAlreadyPlanned if the event is on any day already.
func (s *Store) Add(event domain.Event, day int) error {
	if strings.TrimSpace(event.ID) == "" {
		return fmt.Errorf("%w: event id is required", domain.ErrValidation)
	}
	if err := s.checkDay(day); err != nil {
		return err
	}
	if d, _, ok := s.plan.DayOf(event.ID); ok {
		return fmt.Errorf("%w: event %s is planned on day %d", domain.ErrAlreadyPlanned, event.ID, d)
	}

	entry := domain.PlannedEntry{
		EventID:  event.ID,
		Event:    event,
		Duration: ClassifyDuration(event),
	}
	s.plan.Days[day-1] = append(s.plan.Days[day-1], entry)
	return nil
}

// Remove deletes eventID from whichever day holds it.
// Returns false when the event is not planned.
func (s *Store) Remove(eventID string) bool {
	day, idx, ok := s.plan.DayOf(eventID)
	if !ok {
		return false
	}
	s.plan.Days[day-1] = deleteAt(s.plan.Days[day-1], idx)
	return true
}

// Toggle removes event if it is planned, otherwise adds it to day.
// added reports which of the two happened. A second call undoes the first;
// a re-added event lands at the end of its day, not at its old position.
func (s *Store) Toggle(event domain.Event, day int) (added bool, err error) {
	if s.Remove(event.ID) {
		return false, nil
	}
	if err := s.Add(event, day); err != nil {
		return false, err
	}
	return true, nil
}

// Reorder moves the entry at from to position to within day, shifting the
// entries in between. to is clamped to the list bounds. Returns false when the
// entry ends up where it started.
func (s *Store) Reorder(day, from, to int) (bool, error) {
	if err := s.checkDay(day); err != nil {
		return false, err
	}
	entries := s.plan.Days[day-1]
	if from < 0 || from >= len(entries) {
		return false, fmt.Errorf("%w: index %d out of range for day %d", domain.ErrValidation, from, day)
	}
	to = clamp(to, 0, len(entries)-1)
	if from == to {
		return false, nil
	}

	moved := entries[from]
	entries = deleteAt(entries, from)
	s.plan.Days[day-1] = insertAt(entries, to, moved)
	return true, nil
}

// Shift moves the entry at index by delta positions (the up/down buttons).
// Moving the first entry up or the last entry down is a no-op.
func (s *Store) Shift(day, index, delta int) (bool, error) {
	return s.Reorder(day, index, index+delta)
}

// Move takes eventID off fromDay and appends it to the end of toDay.
// fromDay == toDay is a no-op. Returns domain.ErrNotFound when the event is
// not on fromDay.
func (s *Store) Move(eventID string, fromDay, toDay int) (bool, error) {
	if err := s.checkDay(fromDay); err != nil {
		return false, err
	}
	if err := s.checkDay(toDay); err != nil {
		return false, err
	}
	day, idx, ok := s.plan.DayOf(eventID)
	if !ok || day != fromDay {
		return false, fmt.Errorf("%w: event %s is not planned on day %d", domain.ErrNotFound, eventID, fromDay)
	}
	if fromDay == toDay {
		return false, nil
	}

	entry := s.plan.Days[fromDay-1][idx]
	s.plan.Days[fromDay-1] = deleteAt(s.plan.Days[fromDay-1], idx)
	s.plan.Days[toDay-1] = append(s.plan.Days[toDay-1], entry)
	return true, nil
}

// SetTotalDays sets the number of days, clamping n to [MinDays, MaxDays].
// Growing appends empty days. Shrinking is refused with domain.ErrDayNotEmpty
// while any day that would be dropped still holds entries; the active day is
// clamped into the new range.
func (s *Store) SetTotalDays(n int) error {
	n = clamp(n, domain.MinDays, domain.MaxDays)
	for d := n + 1; d <= s.plan.TotalDays; d++ {
		if len(s.plan.Days[d-1]) > 0 {
			return fmt.Errorf("%w: day %d still has %d events", domain.ErrDayNotEmpty, d, len(s.plan.Days[d-1]))
		}
	}

	for len(s.plan.Days) < n {
		s.plan.Days = append(s.plan.Days, []domain.PlannedEntry{})
	}
	s.plan.Days = s.plan.Days[:n]
	s.plan.TotalDays = n
	s.plan.ActiveDay = clamp(s.plan.ActiveDay, 1, n)
	return nil
}

// RemoveDay deletes an empty day and renumbers the days after it.
// If the active day was removed it is clamped into range; if it came after
// the removed day it is decremented so it keeps pointing at the same list.
func (s *Store) RemoveDay(day int) error {
	if err := s.checkDay(day); err != nil {
		return err
	}
	if s.plan.TotalDays <= domain.MinDays {
		return fmt.Errorf("%w: a trip has at least %d days", domain.ErrValidation, domain.MinDays)
	}
	if n := len(s.plan.Days[day-1]); n > 0 {
		return fmt.Errorf("%w: day %d still has %d events", domain.ErrDayNotEmpty, day, n)
	}

	s.plan.Days = append(s.plan.Days[:day-1], s.plan.Days[day:]...)
	s.plan.TotalDays--
	if s.plan.ActiveDay > day {
		s.plan.ActiveDay--
	}
	s.plan.ActiveDay = clamp(s.plan.ActiveDay, 1, s.plan.TotalDays)
	return nil
}

// SetActiveDay selects the day being edited, clamped to [1, TotalDays].
// Returns the day actually applied.
func (s *Store) SetActiveDay(day int) int {
	s.plan.ActiveDay = clamp(day, 1, s.plan.TotalDays)
	return s.plan.ActiveDay
}

var startTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// UpdateEntry overrides the duration and/or start time of a planned entry.
// Nil arguments leave the field unchanged; an empty start time clears it.
func (s *Store) UpdateEntry(eventID string, duration *int, startTime *string) error {
	day, idx, ok := s.plan.DayOf(eventID)
	if !ok {
		return fmt.Errorf("%w: event %s is not planned", domain.ErrNotFound, eventID)
	}
	if duration != nil && (*duration < 1 || *duration > domain.MaxDuration) {
		return fmt.Errorf("%w: duration must be between 1 and %d minutes", domain.ErrValidation, domain.MaxDuration)
	}
	if startTime != nil && *startTime != "" && !startTimePattern.MatchString(*startTime) {
		return fmt.Errorf("%w: start time must be HH:MM", domain.ErrValidation)
	}

	entry := &s.plan.Days[day-1][idx]
	if duration != nil {
		entry.Duration = *duration
	}
	if startTime != nil {
		entry.StartTime = *startTime
	}
	return nil
}

// Clear resets the store to an empty plan.
func (s *Store) Clear() {
	s.plan = domain.NewTripPlan()
}

func (s *Store) checkDay(day int) error {
	if !s.plan.HasDay(day) {
		return fmt.Errorf("%w: day %d (trip has %d days)", domain.ErrDayOutOfRange, day, s.plan.TotalDays)
	}
	return nil
}

// deleteAt returns entries without the element at i, reusing a fresh backing
// array so snapshots taken earlier are never disturbed.
func deleteAt(entries []domain.PlannedEntry, i int) []domain.PlannedEntry {
	out := make([]domain.PlannedEntry, 0, len(entries)-1)
	out = append(out, entries[:i]...)
	return append(out, entries[i+1:]...)
}

func insertAt(entries []domain.PlannedEntry, i int, e domain.PlannedEntry) []domain.PlannedEntry {
	out := make([]domain.PlannedEntry, 0, len(entries)+1)
	out = append(out, entries[:i]...)
	out = append(out, e)
	return append(out, entries[i:]...)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
