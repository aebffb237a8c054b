package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/eventbuzzer/tripplanner/internal/domain"
	"github.com/eventbuzzer/tripplanner/internal/repo"
	"github.com/eventbuzzer/tripplanner/internal/route"
)

// maxTourStops caps the number of events a walking tour may name.
const maxTourStops = 25

// EventService serves read-only event lookups and walking-tour routes.
type EventService struct {
	events repo.EventRepo
	routes *route.Generator
}

// NewEventService constructs an EventService.
func NewEventService(events repo.EventRepo, routes *route.Generator) *EventService {
	return &EventService{events: events, routes: routes}
}

// List returns one page of events and the total number of events.
// Always returns a non-nil slice so callers can safely range over it.
func (s *EventService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Event, int64, error) {
	events, total, err := s.events.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.EventService.List: %w", err)
	}
	if events == nil {
		events = []domain.Event{}
	}
	return events, total, nil
}

// GetByID returns a single event.
func (s *EventService) GetByID(ctx context.Context, id string) (domain.Event, error) {
	ev, err := s.events.GetByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.GetByID: %w", err)
	}
	return ev, nil
}

// TourRoute builds a transit route through the given events in order.
// Blank and repeated ids are dropped. Returns domain.ErrNotEnoughLocated when
// fewer than two of the events have coordinates.
func (s *EventService) TourRoute(ctx context.Context, ids []string) (string, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return "", fmt.Errorf("service.EventService.TourRoute: %w: at least one event id is required", domain.ErrValidation)
	}
	if len(ids) > maxTourStops {
		return "", fmt.Errorf("service.EventService.TourRoute: %w: at most %d events", domain.ErrValidation, maxTourStops)
	}

	events, err := s.events.GetMany(ctx, ids)
	if err != nil {
		return "", fmt.Errorf("service.EventService.TourRoute: %w", err)
	}
	u, ok := s.routes.ForTour(events)
	if !ok {
		return "", fmt.Errorf("service.EventService.TourRoute: %w", domain.ErrNotEnoughLocated)
	}
	return u, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
