// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, event.go, plan.go, day.go, export.go) but share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eventbuzzer/tripplanner/internal/domain"
	"github.com/eventbuzzer/tripplanner/internal/service"
)

// PlannerServicer defines the plan operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching storage or the planner store.
type PlannerServicer interface {
	Create(ctx context.Context) (uuid.UUID, service.Result, error)
	Get(ctx context.Context, id uuid.UUID) (domain.TripPlan, error)
	Discard(ctx context.Context, id uuid.UUID) error
	Clear(ctx context.Context, id uuid.UUID) (service.Result, error)
	Add(ctx context.Context, id uuid.UUID, eventID string, day int) (service.Result, error)
	Remove(ctx context.Context, id uuid.UUID, eventID string) (service.Result, error)
	Toggle(ctx context.Context, id uuid.UUID, eventID string, day int) (service.Result, bool, error)
	Reorder(ctx context.Context, id uuid.UUID, day, from, to int) (service.Result, error)
	Shift(ctx context.Context, id uuid.UUID, day, index, delta int) (service.Result, error)
	Move(ctx context.Context, id uuid.UUID, eventID string, fromDay, toDay int) (service.Result, error)
	SetTotalDays(ctx context.Context, id uuid.UUID, n int) (service.Result, error)
	RemoveDay(ctx context.Context, id uuid.UUID, day int) (service.Result, error)
	SetActiveDay(ctx context.Context, id uuid.UUID, day int) (service.Result, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, eventID string, duration *int, startTime *string) (service.Result, error)
}

// EventServicer defines the event read operations the handlers depend on.
type EventServicer interface {
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Event, int64, error)
	GetByID(ctx context.Context, id string) (domain.Event, error)
	TourRoute(ctx context.Context, ids []string) (string, error)
}

// ExportServicer defines the export operations the handlers depend on.
type ExportServicer interface {
	RouteURL(ctx context.Context, id uuid.UUID, day int) (string, error)
	Share(ctx context.Context, id uuid.UUID, preferDirectOpen bool) (domain.ShareTarget, error)
	QRImage(ctx context.Context, id uuid.UUID) (domain.QRImage, error)
	Itinerary(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)
}

// Server holds the dependencies of every endpoint.
type Server struct {
	plans   PlannerServicer
	events  EventServicer
	exports ExportServicer
	log     *slog.Logger
}

// NewServer constructs the Server with all its dependencies. A nil logger
// falls back to slog.Default().
func NewServer(plans PlannerServicer, events EventServicer, exports ExportServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{plans: plans, events: events, exports: exports, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// Routes registers every endpoint on a new chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/events", s.ListEvents)
	r.Get("/events/{eventId}", s.GetEvent)
	r.Get("/tours/route", s.GetTourRoute)

	r.Post("/plans", s.CreatePlan)
	r.Route("/plans/{planId}", func(r chi.Router) {
		r.Get("/", s.GetPlan)
		r.Delete("/", s.DiscardPlan)
		r.Post("/clear", s.ClearPlan)
		r.Post("/toggle", s.TogglePlanEntry)

		r.Post("/entries", s.AddPlanEntry)
		r.Delete("/entries/{eventId}", s.RemovePlanEntry)
		r.Patch("/entries/{eventId}", s.UpdatePlanEntry)
		r.Post("/entries/{eventId}/move", s.MovePlanEntry)

		r.Put("/days", s.SetTotalDays)
		r.Delete("/days/{day}", s.RemoveDay)
		r.Put("/active-day", s.SetActiveDay)
		r.Post("/days/{day}/reorder", s.ReorderDay)
		r.Post("/days/{day}/shift", s.ShiftEntry)

		r.Get("/route", s.GetRoute)
		r.Get("/share", s.GetShareTarget)
		r.Get("/qr.png", s.GetQRImage)
		r.Get("/itinerary", s.GetItinerary)
	})

	return r
}
