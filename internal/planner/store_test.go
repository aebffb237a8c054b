package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventbuzzer/tripplanner/internal/domain"
	"github.com/eventbuzzer/tripplanner/internal/planner"
)

// ---- helpers ---------------------------------------------------------------

func ptr[T any](v T) *T { return &v }

func event(id, title string) domain.Event {
	return domain.Event{ID: id, Title: title}
}

func locatedEvent(id, title string, lat, lng float64) domain.Event {
	return domain.Event{ID: id, Title: title, Latitude: ptr(lat), Longitude: ptr(lng)}
}

// dayIDs returns the event ids of day in order.
func dayIDs(t *testing.T, s *planner.Store, day int) []string {
	t.Helper()
	ids := []string{}
	for _, e := range s.Snapshot().Entries(day) {
		ids = append(ids, e.EventID)
	}
	return ids
}

// storeWith returns a store with the given ids added to day 1 in order.
func storeWith(t *testing.T, ids ...string) *planner.Store {
	t.Helper()
	s := planner.New()
	for _, id := range ids {
		require.NoError(t, s.Add(event(id, "Event "+id), 1))
	}
	return s
}

// ---- New / Snapshot --------------------------------------------------------

func TestNew_EmptyPlan(t *testing.T) {
	s := planner.New()
	plan := s.Snapshot()

	assert.Equal(t, domain.MinDays, plan.TotalDays)
	assert.Equal(t, 1, plan.ActiveDay)
	require.Len(t, plan.Days, domain.MinDays)
	assert.Empty(t, plan.Days[0])
	assert.Empty(t, plan.Days[1])
	assert.Zero(t, s.TotalEventCount())
}

func TestSnapshot_IsIsolatedFromStore(t *testing.T) {
	s := storeWith(t, "e1", "e2")

	snap := s.Snapshot()
	snap.Days[0][0].Duration = 1
	snap.Days[0] = append(snap.Days[0], domain.PlannedEntry{EventID: "x"})

	assert.Equal(t, []string{"e1", "e2"}, dayIDs(t, s, 1))
	assert.Equal(t, domain.DefaultDuration, s.Snapshot().Days[0][0].Duration)
}

// ---- Add -------------------------------------------------------------------

func TestAdd_AppendsWithDefaultDuration(t *testing.T) {
	s := planner.New()

	err := s.Add(locatedEvent("e1", "Jazz Night", 47.55, 7.59), 1)

	require.NoError(t, err)
	entries := s.Snapshot().Entries(1)
	require.Len(t, entries, 1)
	assert.Equal(t, "e1", entries[0].EventID)
	assert.Equal(t, 120, entries[0].Duration)
	assert.Equal(t, "Jazz Night", entries[0].Event.Title)
}

func TestAdd_MuseumDuration(t *testing.T) {
	s := planner.New()

	require.NoError(t, s.Add(event("m1", "Kunstmuseum Basel — Sonderausstellung"), 1))
	require.NoError(t, s.Add(event("c1", "Open-Air Summer Concert"), 1))

	entries := s.Snapshot().Entries(1)
	assert.Equal(t, 150, entries[0].Duration)
	assert.Equal(t, 120, entries[1].Duration)
}

func TestAdd_DuplicateOnOtherDayIsRejected(t *testing.T) {
	s := storeWith(t, "e1")

	err := s.Add(event("e1", "Jazz Night"), 2)

	assert.ErrorIs(t, err, domain.ErrAlreadyPlanned)
	assert.Equal(t, []string{"e1"}, dayIDs(t, s, 1))
	assert.Empty(t, dayIDs(t, s, 2))
}

func TestAdd_DuplicateOnSameDayIsRejected(t *testing.T) {
	s := storeWith(t, "e1")

	err := s.Add(event("e1", "Jazz Night"), 1)

	assert.ErrorIs(t, err, domain.ErrAlreadyPlanned)
	assert.Equal(t, 1, s.TotalEventCount())
}

func TestAdd_DayOutOfRange(t *testing.T) {
	s := planner.New()

	for _, day := range []int{0, -1, 3, 5} {
		err := s.Add(event("e1", "x"), day)
		assert.ErrorIs(t, err, domain.ErrDayOutOfRange, "day %d", day)
	}
	assert.Zero(t, s.TotalEventCount())
}

func TestAdd_EmptyIDIsRejected(t *testing.T) {
	s := planner.New()

	err := s.Add(event("  ", "x"), 1)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAdd_NeverDuplicatesAcrossDays(t *testing.T) {
	s := planner.New()
	require.NoError(t, s.SetTotalDays(4))

	ids := []string{"a", "b", "a", "c", "b", "a", "d"}
	for i, id := range ids {
		_ = s.Add(event(id, id), i%4+1)
	}

	seen := map[string]int{}
	for _, e := range s.Snapshot().Flatten() {
		seen[e.EventID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "event %s planned %d times", id, n)
	}
	assert.Equal(t, 4, s.TotalEventCount())
}

// ---- Remove / Contains -----------------------------------------------------

func TestRemove(t *testing.T) {
	s := storeWith(t, "e1", "e2", "e3")

	removed := s.Remove("e2")

	assert.True(t, removed)
	assert.False(t, s.Contains("e2"))
	assert.Equal(t, []string{"e1", "e3"}, dayIDs(t, s, 1))
}

func TestRemove_NotPlanned(t *testing.T) {
	s := storeWith(t, "e1")

	assert.False(t, s.Remove("nope"))
	assert.Equal(t, 1, s.TotalEventCount())
}

// ---- Toggle ----------------------------------------------------------------

func TestToggle_AddsThenRemoves(t *testing.T) {
	s := planner.New()
	e := event("e1", "Jazz Night")

	added, err := s.Toggle(e, 2)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"e1"}, dayIDs(t, s, 2))

	added, err = s.Toggle(e, 2)
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, s.Contains("e1"))
}

func TestToggle_TwiceRestoresMembershipNotPosition(t *testing.T) {
	s := storeWith(t, "e1", "e2", "e3")
	before := s.Snapshot()

	_, err := s.Toggle(event("e1", "Event e1"), 1)
	require.NoError(t, err)
	_, err = s.Toggle(event("e1", "Event e1"), 1)
	require.NoError(t, err)

	assert.Equal(t, before.TotalEventCount(), s.TotalEventCount())
	// Re-adding appends to the end rather than restoring the old index.
	assert.Equal(t, []string{"e2", "e3", "e1"}, dayIDs(t, s, 1))
}

func TestToggle_InvalidDay(t *testing.T) {
	s := planner.New()

	added, err := s.Toggle(event("e1", "x"), 9)

	assert.False(t, added)
	assert.ErrorIs(t, err, domain.ErrDayOutOfRange)
}

// ---- Reorder / Shift -------------------------------------------------------

func TestReorder_FirstToLast(t *testing.T) {
	s := storeWith(t, "e1", "e2", "e3")

	moved, err := s.Reorder(1, 0, 2)

	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"e2", "e3", "e1"}, dayIDs(t, s, 1))
}

func TestReorder_LastToFirst(t *testing.T) {
	s := storeWith(t, "e1", "e2", "e3")

	_, err := s.Reorder(1, 2, 0)

	require.NoError(t, err)
	assert.Equal(t, []string{"e3", "e1", "e2"}, dayIDs(t, s, 1))
}

func TestReorder_TargetIsClamped(t *testing.T) {
	s := storeWith(t, "e1", "e2", "e3")

	_, err := s.Reorder(1, 0, 99)

	require.NoError(t, err)
	assert.Equal(t, []string{"e2", "e3", "e1"}, dayIDs(t, s, 1))
}

func TestReorder_SamePositionIsNoop(t *testing.T) {
	s := storeWith(t, "e1", "e2")

	moved, err := s.Reorder(1, 1, 1)

	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, []string{"e1", "e2"}, dayIDs(t, s, 1))
}

func TestReorder_BadIndex(t *testing.T) {
	s := storeWith(t, "e1")

	_, err := s.Reorder(1, 4, 0)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReorder_BadDay(t *testing.T) {
	s := storeWith(t, "e1")

	_, err := s.Reorder(7, 0, 0)

	assert.ErrorIs(t, err, domain.ErrDayOutOfRange)
}

func TestShift_UpAndDown(t *testing.T) {
	s := storeWith(t, "e1", "e2", "e3")

	moved, err := s.Shift(1, 1, -1)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"e2", "e1", "e3"}, dayIDs(t, s, 1))

	moved, err = s.Shift(1, 1, +1)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"e2", "e3", "e1"}, dayIDs(t, s, 1))
}

func TestShift_AtBoundsIsNoop(t *testing.T) {
	s := storeWith(t, "e1", "e2", "e3")

	up, err := s.Shift(1, 0, -1)
	require.NoError(t, err)
	down, err := s.Shift(1, 2, +1)
	require.NoError(t, err)

	assert.False(t, up)
	assert.False(t, down)
	assert.Equal(t, []string{"e1", "e2", "e3"}, dayIDs(t, s, 1))
}

// ---- Move ------------------------------------------------------------------

func TestMove_AppendsToDestination(t *testing.T) {
	s := storeWith(t, "e1", "e2", "e3")
	require.NoError(t, s.Add(event("d1", "x"), 2))
	require.NoError(t, s.Add(event("d2", "y"), 2))

	moved, err := s.Move("e2", 1, 2)

	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"e1", "e3"}, dayIDs(t, s, 1))
	assert.Equal(t, []string{"d1", "d2", "e2"}, dayIDs(t, s, 2))
}

func TestMove_SameDayIsNoop(t *testing.T) {
	s := storeWith(t, "e1", "e2")

	moved, err := s.Move("e1", 1, 1)

	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, []string{"e1", "e2"}, dayIDs(t, s, 1))
}

func TestMove_NotOnSourceDay(t *testing.T) {
	s := storeWith(t, "e1")

	_, err := s.Move("e1", 2, 1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{"e1"}, dayIDs(t, s, 1))
}

func TestMove_InvalidDestination(t *testing.T) {
	s := storeWith(t, "e1")

	_, err := s.Move("e1", 1, 3)

	assert.ErrorIs(t, err, domain.ErrDayOutOfRange)
	assert.True(t, s.Contains("e1"))
}

// ---- SetTotalDays / RemoveDay ----------------------------------------------

func TestSetTotalDays_IsAlwaysClamped(t *testing.T) {
	s := planner.New()

	for _, n := range []int{-10, 0, 1, 2, 3, 4, 5, 100} {
		require.NoError(t, s.SetTotalDays(n))
		got := s.TotalDays()
		assert.GreaterOrEqual(t, got, domain.MinDays, "n=%d", n)
		assert.LessOrEqual(t, got, domain.MaxDays, "n=%d", n)
		assert.Len(t, s.Snapshot().Days, got)
	}
}

func TestSetTotalDays_ShrinkClampsActiveDay(t *testing.T) {
	s := planner.New()
	require.NoError(t, s.SetTotalDays(3))
	require.Equal(t, 3, s.SetActiveDay(3))

	require.NoError(t, s.SetTotalDays(2))

	assert.Equal(t, 2, s.TotalDays())
	assert.Equal(t, 2, s.ActiveDay())
}

func TestSetTotalDays_ShrinkOverEntriesIsRejected(t *testing.T) {
	s := planner.New()
	require.NoError(t, s.SetTotalDays(4))
	require.NoError(t, s.Add(event("e1", "x"), 4))

	err := s.SetTotalDays(2)

	assert.ErrorIs(t, err, domain.ErrDayNotEmpty)
	assert.Equal(t, 4, s.TotalDays())
	assert.Equal(t, []string{"e1"}, dayIDs(t, s, 4))
}

func TestSetTotalDays_GrowKeepsEntries(t *testing.T) {
	s := storeWith(t, "e1")

	require.NoError(t, s.SetTotalDays(4))

	assert.Equal(t, []string{"e1"}, dayIDs(t, s, 1))
	assert.Empty(t, dayIDs(t, s, 4))
}

func TestRemoveDay_RenumbersAndTracksActiveDay(t *testing.T) {
	s := planner.New()
	require.NoError(t, s.SetTotalDays(4))
	require.NoError(t, s.Add(event("e3", "x"), 3))
	require.NoError(t, s.Add(event("e4", "y"), 4))
	s.SetActiveDay(4)

	require.NoError(t, s.RemoveDay(2))

	assert.Equal(t, 3, s.TotalDays())
	assert.Equal(t, []string{"e3"}, dayIDs(t, s, 2))
	assert.Equal(t, []string{"e4"}, dayIDs(t, s, 3))
	// Active day followed its list from 4 to 3.
	assert.Equal(t, 3, s.ActiveDay())
}

func TestRemoveDay_ActiveDayRemoved(t *testing.T) {
	s := planner.New()
	require.NoError(t, s.SetTotalDays(3))
	s.SetActiveDay(3)

	require.NoError(t, s.RemoveDay(3))

	assert.Equal(t, 2, s.ActiveDay())
}

func TestRemoveDay_NotEmpty(t *testing.T) {
	s := planner.New()
	require.NoError(t, s.SetTotalDays(3))
	require.NoError(t, s.Add(event("e1", "x"), 2))

	err := s.RemoveDay(2)

	assert.ErrorIs(t, err, domain.ErrDayNotEmpty)
	assert.Equal(t, 3, s.TotalDays())
}

func TestRemoveDay_AtMinimum(t *testing.T) {
	s := planner.New()

	err := s.RemoveDay(2)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, domain.MinDays, s.TotalDays())
}

// ---- SetActiveDay ----------------------------------------------------------

func TestSetActiveDay_Clamps(t *testing.T) {
	s := planner.New()

	assert.Equal(t, 2, s.SetActiveDay(2))
	assert.Equal(t, 2, s.SetActiveDay(9))
	assert.Equal(t, 1, s.SetActiveDay(0))
}

// ---- UpdateEntry -----------------------------------------------------------

func TestUpdateEntry(t *testing.T) {
	s := storeWith(t, "e1")

	require.NoError(t, s.UpdateEntry("e1", ptr(45), ptr("10:30")))

	e := s.Snapshot().Entries(1)[0]
	assert.Equal(t, 45, e.Duration)
	assert.Equal(t, "10:30", e.StartTime)

	require.NoError(t, s.UpdateEntry("e1", nil, ptr("")))
	e = s.Snapshot().Entries(1)[0]
	assert.Equal(t, 45, e.Duration)
	assert.Empty(t, e.StartTime)
}

func TestUpdateEntry_Invalid(t *testing.T) {
	s := storeWith(t, "e1")

	assert.ErrorIs(t, s.UpdateEntry("e1", ptr(0), nil), domain.ErrValidation)
	assert.ErrorIs(t, s.UpdateEntry("e1", ptr(domain.MaxDuration+1), nil), domain.ErrValidation)
	assert.ErrorIs(t, s.UpdateEntry("e1", nil, ptr("25:00")), domain.ErrValidation)
	assert.ErrorIs(t, s.UpdateEntry("e1", nil, ptr("9:00")), domain.ErrValidation)
	assert.ErrorIs(t, s.UpdateEntry("zz", ptr(30), nil), domain.ErrNotFound)
	assert.Equal(t, domain.DefaultDuration, s.Snapshot().Entries(1)[0].Duration)
}

// ---- Clear -----------------------------------------------------------------

func TestClear(t *testing.T) {
	s := storeWith(t, "e1", "e2")
	require.NoError(t, s.SetTotalDays(4))
	s.SetActiveDay(3)

	s.Clear()

	assert.Equal(t, domain.NewTripPlan(), s.Snapshot())
}

// ---- Restore ---------------------------------------------------------------

func TestRestore_RepairsInvariants(t *testing.T) {
	plan := domain.TripPlan{
		Days: [][]domain.PlannedEntry{
			{{EventID: "a", Duration: 60}, {EventID: "b", Duration: 0}},
			{{EventID: "a", Duration: 90}},
			{}, {}, {{EventID: "c", Duration: 30}},
		},
		ActiveDay: 7,
		TotalDays: 5,
	}

	s := planner.Restore(plan)
	got := s.Snapshot()

	assert.Equal(t, domain.MaxDays, got.TotalDays)
	assert.Len(t, got.Days, domain.MaxDays)
	assert.Equal(t, domain.MaxDays, got.ActiveDay)
	assert.Equal(t, []string{"a", "b"}, dayIDs(t, s, 1))
	assert.Empty(t, dayIDs(t, s, 2))
	// Entries from the out-of-range fifth day land on the last day.
	assert.Equal(t, []string{"c"}, dayIDs(t, s, 4))
	// Invalid durations are reclassified.
	assert.Equal(t, domain.DefaultDuration, got.Days[0][1].Duration)
	assert.Equal(t, "b", got.Days[0][1].Event.ID)
}

func TestRestore_EmptyPlan(t *testing.T) {
	s := planner.Restore(domain.TripPlan{})

	assert.Equal(t, domain.NewTripPlan(), s.Snapshot())
}
