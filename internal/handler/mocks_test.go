package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/eventbuzzer/tripplanner/internal/domain"
	"github.com/eventbuzzer/tripplanner/internal/handler"
	"github.com/eventbuzzer/tripplanner/internal/service"
)

// mockPlanner is a test double for handler.PlannerServicer.
// Set only the method fields your test needs.
type mockPlanner struct {
	create       func(ctx context.Context) (uuid.UUID, service.Result, error)
	get          func(ctx context.Context, id uuid.UUID) (domain.TripPlan, error)
	discard      func(ctx context.Context, id uuid.UUID) error
	clear        func(ctx context.Context, id uuid.UUID) (service.Result, error)
	add          func(ctx context.Context, id uuid.UUID, eventID string, day int) (service.Result, error)
	remove       func(ctx context.Context, id uuid.UUID, eventID string) (service.Result, error)
	toggle       func(ctx context.Context, id uuid.UUID, eventID string, day int) (service.Result, bool, error)
	reorder      func(ctx context.Context, id uuid.UUID, day, from, to int) (service.Result, error)
	shift        func(ctx context.Context, id uuid.UUID, day, index, delta int) (service.Result, error)
	move         func(ctx context.Context, id uuid.UUID, eventID string, fromDay, toDay int) (service.Result, error)
	setTotalDays func(ctx context.Context, id uuid.UUID, n int) (service.Result, error)
	removeDay    func(ctx context.Context, id uuid.UUID, day int) (service.Result, error)
	setActiveDay func(ctx context.Context, id uuid.UUID, day int) (service.Result, error)
	updateEntry  func(ctx context.Context, id uuid.UUID, eventID string, duration *int, startTime *string) (service.Result, error)
}

func (m *mockPlanner) Create(ctx context.Context) (uuid.UUID, service.Result, error) {
	return m.create(ctx)
}
func (m *mockPlanner) Get(ctx context.Context, id uuid.UUID) (domain.TripPlan, error) {
	return m.get(ctx, id)
}
func (m *mockPlanner) Discard(ctx context.Context, id uuid.UUID) error {
	return m.discard(ctx, id)
}
func (m *mockPlanner) Clear(ctx context.Context, id uuid.UUID) (service.Result, error) {
	return m.clear(ctx, id)
}
func (m *mockPlanner) Add(ctx context.Context, id uuid.UUID, eventID string, day int) (service.Result, error) {
	return m.add(ctx, id, eventID, day)
}
func (m *mockPlanner) Remove(ctx context.Context, id uuid.UUID, eventID string) (service.Result, error) {
	return m.remove(ctx, id, eventID)
}
func (m *mockPlanner) Toggle(ctx context.Context, id uuid.UUID, eventID string, day int) (service.Result, bool, error) {
	return m.toggle(ctx, id, eventID, day)
}
func (m *mockPlanner) Reorder(ctx context.Context, id uuid.UUID, day, from, to int) (service.Result, error) {
	return m.reorder(ctx, id, day, from, to)
}
func (m *mockPlanner) Shift(ctx context.Context, id uuid.UUID, day, index, delta int) (service.Result, error) {
	return m.shift(ctx, id, day, index, delta)
}
func (m *mockPlanner) Move(ctx context.Context, id uuid.UUID, eventID string, fromDay, toDay int) (service.Result, error) {
	return m.move(ctx, id, eventID, fromDay, toDay)
}
func (m *mockPlanner) SetTotalDays(ctx context.Context, id uuid.UUID, n int) (service.Result, error) {
	return m.setTotalDays(ctx, id, n)
}
func (m *mockPlanner) RemoveDay(ctx context.Context, id uuid.UUID, day int) (service.Result, error) {
	return m.removeDay(ctx, id, day)
}
func (m *mockPlanner) SetActiveDay(ctx context.Context, id uuid.UUID, day int) (service.Result, error) {
	return m.setActiveDay(ctx, id, day)
}
func (m *mockPlanner) UpdateEntry(ctx context.Context, id uuid.UUID, eventID string, duration *int, startTime *string) (service.Result, error) {
	return m.updateEntry(ctx, id, eventID, duration, startTime)
}

// compile-time check: mockPlanner must satisfy handler.PlannerServicer.
var _ handler.PlannerServicer = (*mockPlanner)(nil)

// mockEvents is a test double for handler.EventServicer.
type mockEvents struct {
	list      func(ctx context.Context, p domain.PaginationParams) ([]domain.Event, int64, error)
	getByID   func(ctx context.Context, id string) (domain.Event, error)
	tourRoute func(ctx context.Context, ids []string) (string, error)
}

func (m *mockEvents) List(ctx context.Context, p domain.PaginationParams) ([]domain.Event, int64, error) {
	return m.list(ctx, p)
}
func (m *mockEvents) GetByID(ctx context.Context, id string) (domain.Event, error) {
	return m.getByID(ctx, id)
}
func (m *mockEvents) TourRoute(ctx context.Context, ids []string) (string, error) {
	return m.tourRoute(ctx, ids)
}

var _ handler.EventServicer = (*mockEvents)(nil)

// mockExports is a test double for handler.ExportServicer.
type mockExports struct {
	routeURL  func(ctx context.Context, id uuid.UUID, day int) (string, error)
	share     func(ctx context.Context, id uuid.UUID, preferDirectOpen bool) (domain.ShareTarget, error)
	qrImage   func(ctx context.Context, id uuid.UUID) (domain.QRImage, error)
	itinerary func(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)
}

func (m *mockExports) RouteURL(ctx context.Context, id uuid.UUID, day int) (string, error) {
	return m.routeURL(ctx, id, day)
}
func (m *mockExports) Share(ctx context.Context, id uuid.UUID, preferDirectOpen bool) (domain.ShareTarget, error) {
	return m.share(ctx, id, preferDirectOpen)
}
func (m *mockExports) QRImage(ctx context.Context, id uuid.UUID) (domain.QRImage, error) {
	return m.qrImage(ctx, id)
}
func (m *mockExports) Itinerary(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	return m.itinerary(ctx, id)
}

var _ handler.ExportServicer = (*mockExports)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into its chi router,
// mirroring how main.go wires it in production.
func newHTTPHandler(plans handler.PlannerServicer, events handler.EventServicer, exports handler.ExportServicer) http.Handler {
	return handler.NewServer(plans, events, exports, nil).Routes()
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func ptr[T any](v T) *T { return &v }

func locatedEvent(id, title string, lat, lng float64) domain.Event {
	return domain.Event{ID: id, Title: title, Latitude: ptr(lat), Longitude: ptr(lng)}
}

// planWith returns a two-day plan with the given events on day 1.
func planWith(events ...domain.Event) domain.TripPlan {
	p := domain.NewTripPlan()
	for _, e := range events {
		p.Days[0] = append(p.Days[0], domain.PlannedEntry{EventID: e.ID, Event: e, Duration: domain.DefaultDuration})
	}
	return p
}
