package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eventbuzzer/tripplanner/internal/domain"
)

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// EventListResponse is the body of GET /events.
type EventListResponse struct {
	Data       []domain.Event `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// RouteResponse carries a maps directions URL.
type RouteResponse struct {
	URL string `json:"url"`
}

// ListEvents handles GET /events.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListEvents(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	if !queryParam(w, r, "page", &page) || !queryParam(w, r, "limit", &limit) {
		return
	}
	params := domain.NewPaginationParams(page, limit)

	events, total, err := s.events.List(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, EventListResponse{
		Data: events,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetEvent handles GET /events/{eventId}.
func (s *Server) GetEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := s.events.GetByID(r.Context(), chi.URLParam(r, "eventId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// GetTourRoute handles GET /tours/route?ids=a,b,c: a transit route through
// the listed events in the order given.
func (s *Server) GetTourRoute(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if !queryParam(w, r, "ids", &ids) {
		return
	}
	u, err := s.events.TourRoute(r.Context(), ids)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RouteResponse{URL: u})
}
