package service_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/eventbuzzer/tripplanner/internal/domain"
	"github.com/eventbuzzer/tripplanner/internal/repo"
	"github.com/eventbuzzer/tripplanner/internal/service"
)

// mockPlanRepo is a hand-written test double for repo.PlanRepo.
// Each method is a function field; set only the ones your test needs.
type mockPlanRepo struct {
	load   func(ctx context.Context, id uuid.UUID) (domain.TripPlan, error)
	save   func(ctx context.Context, id uuid.UUID, plan domain.TripPlan) error
	delete func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPlanRepo) Load(ctx context.Context, id uuid.UUID) (domain.TripPlan, error) {
	return m.load(ctx, id)
}
func (m *mockPlanRepo) Save(ctx context.Context, id uuid.UUID, plan domain.TripPlan) error {
	return m.save(ctx, id, plan)
}
func (m *mockPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.PlanRepo = (*mockPlanRepo)(nil)

// mockEventRepo is a hand-written test double for repo.EventRepo.
type mockEventRepo struct {
	getByID   func(ctx context.Context, id string) (domain.Event, error)
	getMany   func(ctx context.Context, ids []string) ([]domain.Event, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Event, int64, error)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (domain.Event, error) {
	return m.getByID(ctx, id)
}
func (m *mockEventRepo) GetMany(ctx context.Context, ids []string) ([]domain.Event, error) {
	return m.getMany(ctx, ids)
}
func (m *mockEventRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Event, int64, error) {
	return m.listPaged(ctx, p)
}

var _ repo.EventRepo = (*mockEventRepo)(nil)

// mockExporter is a hand-written test double for service.Exporter.
type mockExporter struct {
	routeURL       func(plan domain.TripPlan, day int) (string, error)
	share          func(plan domain.TripPlan, preferDirectOpen bool) (domain.ShareTarget, error)
	requestQRImage func(ctx context.Context, plan domain.TripPlan) (domain.QRImage, error)
	render         func(plan domain.TripPlan) (domain.Itinerary, error)
}

func (m *mockExporter) RouteURL(plan domain.TripPlan, day int) (string, error) {
	return m.routeURL(plan, day)
}
func (m *mockExporter) Share(plan domain.TripPlan, preferDirectOpen bool) (domain.ShareTarget, error) {
	return m.share(plan, preferDirectOpen)
}
func (m *mockExporter) RequestQRImage(ctx context.Context, plan domain.TripPlan) (domain.QRImage, error) {
	return m.requestQRImage(ctx, plan)
}
func (m *mockExporter) RenderPrintableDocument(plan domain.TripPlan) (domain.Itinerary, error) {
	return m.render(plan)
}

var _ service.Exporter = (*mockExporter)(nil)

// memPlans is a PlanRepo backed by a map, recording how often each method ran.
type memPlans struct {
	mu      sync.Mutex
	plans   map[uuid.UUID]domain.TripPlan
	loads   int
	saves   int
	saveErr error
}

func newMemPlans() *memPlans {
	return &memPlans{plans: make(map[uuid.UUID]domain.TripPlan)}
}

func (m *memPlans) repo() *mockPlanRepo {
	return &mockPlanRepo{
		load: func(_ context.Context, id uuid.UUID) (domain.TripPlan, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.loads++
			p, ok := m.plans[id]
			if !ok {
				return domain.TripPlan{}, domain.ErrNotFound
			}
			return p.Clone(), nil
		},
		save: func(_ context.Context, id uuid.UUID, plan domain.TripPlan) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.saves++
			if m.saveErr != nil {
				return m.saveErr
			}
			m.plans[id] = plan.Clone()
			return nil
		},
		delete: func(_ context.Context, id uuid.UUID) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			if _, ok := m.plans[id]; !ok {
				return domain.ErrNotFound
			}
			delete(m.plans, id)
			return nil
		},
	}
}

func (m *memPlans) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func ptr[T any](v T) *T { return &v }

func locatedEvent(id, title string, lat, lng float64) domain.Event {
	return domain.Event{ID: id, Title: title, Latitude: ptr(lat), Longitude: ptr(lng)}
}

// catalog returns an EventRepo serving the given events by id.
func catalog(events ...domain.Event) *mockEventRepo {
	byID := make(map[string]domain.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}
	return &mockEventRepo{
		getByID: func(_ context.Context, id string) (domain.Event, error) {
			e, ok := byID[id]
			if !ok {
				return domain.Event{}, domain.ErrNotFound
			}
			return e, nil
		},
		getMany: func(_ context.Context, ids []string) ([]domain.Event, error) {
			out := []domain.Event{}
			for _, id := range ids {
				if e, ok := byID[id]; ok {
					out = append(out, e)
				}
			}
			return out, nil
		},
	}
}
