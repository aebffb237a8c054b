package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eventbuzzer/tripplanner/internal/domain"
	"github.com/eventbuzzer/tripplanner/internal/service"
)

// PlanResponse is the JSON shape of a trip plan.
type PlanResponse struct {
	ID         uuid.UUID     `json:"id"`
	TotalDays  int           `json:"total_days"`
	ActiveDay  int           `json:"active_day"`
	EventCount int           `json:"event_count"`
	Days       []DayResponse `json:"days"`
}

// DayResponse is one day of a plan.
type DayResponse struct {
	Day     int             `json:"day"`
	Entries []EntryResponse `json:"entries"`
}

// EntryResponse is one planned event.
type EntryResponse struct {
	EventID   string       `json:"event_id"`
	Event     domain.Event `json:"event"`
	Duration  int          `json:"duration"`
	StartTime string       `json:"start_time,omitempty"`
}

// MutationResponse is returned by every plan-changing endpoint.
// Changed is false when the request had nothing to do; Persisted is false
// when the change was applied but could not be saved. Notice is present
// whenever the outcome differs from what was asked.
type MutationResponse struct {
	Plan      PlanResponse   `json:"plan"`
	Changed   bool           `json:"changed"`
	Persisted bool           `json:"persisted"`
	Added     *bool          `json:"added,omitempty"`
	Notice    *domain.Notice `json:"notice,omitempty"`
}

// AddEntryRequest is the body of POST /plans/{planId}/entries and /toggle.
// Day 0 or absent means the plan's active day.
type AddEntryRequest struct {
	EventID string `json:"event_id"`
	Day     int    `json:"day"`
}

// UpdateEntryRequest is the body of PATCH /plans/{planId}/entries/{eventId}.
type UpdateEntryRequest struct {
	Duration  *int    `json:"duration"`
	StartTime *string `json:"start_time"`
}

// MoveEntryRequest is the body of POST /plans/{planId}/entries/{eventId}/move.
type MoveEntryRequest struct {
	FromDay int `json:"from_day"`
	ToDay   int `json:"to_day"`
}

// CreatePlan handles POST /plans.
func (s *Server) CreatePlan(w http.ResponseWriter, r *http.Request) {
	id, res, err := s.plans.Create(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/plans/"+id.String())
	writeJSON(w, http.StatusCreated, mutationToResponse(id, res))
}

// GetPlan handles GET /plans/{planId}.
func (s *Server) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPlanID(w, r)
	if !ok {
		return
	}
	plan, err := s.plans.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, planToResponse(id, plan))
}

// DiscardPlan handles DELETE /plans/{planId}: the plan is forgotten entirely.
func (s *Server) DiscardPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPlanID(w, r)
	if !ok {
		return
	}
	if err := s.plans.Discard(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearPlan handles POST /plans/{planId}/clear.
func (s *Server) ClearPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPlanID(w, r)
	if !ok {
		return
	}
	s.respondMutation(w, r, id)(s.plans.Clear(r.Context(), id))
}

// AddPlanEntry handles POST /plans/{planId}/entries.
func (s *Server) AddPlanEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPlanID(w, r)
	if !ok {
		return
	}
	var body AddEntryRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.EventID) == "" {
		writeBadRequest(w, "event_id is required")
		return
	}

	res, err := s.plans.Add(r.Context(), id, body.EventID, body.Day)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mutationToResponse(id, res))
}

// RemovePlanEntry handles DELETE /plans/{planId}/entries/{eventId}.
// Removing an event that is not planned answers 200 with changed=false.
func (s *Server) RemovePlanEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPlanID(w, r)
	if !ok {
		return
	}
	s.respondMutation(w, r, id)(s.plans.Remove(r.Context(), id, chi.URLParam(r, "eventId")))
}

// UpdatePlanEntry handles PATCH /plans/{planId}/entries/{eventId}.
func (s *Server) UpdatePlanEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPlanID(w, r)
	if !ok {
		return
	}
	var body UpdateEntryRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	s.respondMutation(w, r, id)(s.plans.UpdateEntry(r.Context(), id, chi.URLParam(r, "eventId"), body.Duration, body.StartTime))
}

// MovePlanEntry handles POST /plans/{planId}/entries/{eventId}/move.
func (s *Server) MovePlanEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPlanID(w, r)
	if !ok {
		return
	}
	var body MoveEntryRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	s.respondMutation(w, r, id)(s.plans.Move(r.Context(), id, chi.URLParam(r, "eventId"), body.FromDay, body.ToDay))
}

// TogglePlanEntry handles POST /plans/{planId}/toggle: the "add to trip"
// button, which removes the event when it is already planned.
func (s *Server) TogglePlanEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPlanID(w, r)
	if !ok {
		return
	}
	var body AddEntryRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.EventID) == "" {
		writeBadRequest(w, "event_id is required")
		return
	}

	res, added, err := s.plans.Toggle(r.Context(), id, body.EventID, body.Day)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := mutationToResponse(id, res)
	resp.Added = &added
	writeJSON(w, http.StatusOK, resp)
}

// respondMutation returns a function that writes a service.Result (or its
// error) as the response, so handlers can pass a service call straight in.
func (s *Server) respondMutation(w http.ResponseWriter, r *http.Request, id uuid.UUID) func(service.Result, error) {
	return func(res service.Result, err error) {
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, mutationToResponse(id, res))
	}
}

// --- mapping helpers --------------------------------------------------------

func mutationToResponse(id uuid.UUID, res service.Result) MutationResponse {
	return MutationResponse{
		Plan:      planToResponse(id, res.Plan),
		Changed:   res.Changed,
		Persisted: !res.PersistFailed,
		Notice:    res.Notice,
	}
}

// planToResponse converts a plan into its JSON shape. Days are numbered from 1
// and entries are never null.
func planToResponse(id uuid.UUID, p domain.TripPlan) PlanResponse {
	days := make([]DayResponse, len(p.Days))
	for i, entries := range p.Days {
		out := make([]EntryResponse, len(entries))
		for j, e := range entries {
			out[j] = EntryResponse{EventID: e.EventID, Event: e.Event, Duration: e.Duration, StartTime: e.StartTime}
		}
		days[i] = DayResponse{Day: i + 1, Entries: out}
	}
	return PlanResponse{
		ID:         id,
		TotalDays:  p.TotalDays,
		ActiveDay:  p.ActiveDay,
		EventCount: p.TotalEventCount(),
		Days:       days,
	}
}
