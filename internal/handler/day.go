package handler

import "net/http"

// TotalDaysRequest is the body of PUT /plans/{planId}/days.
type TotalDaysRequest struct {
	TotalDays int `json:"total_days"`
}

// ActiveDayRequest is the body of PUT /plans/{planId}/active-day.
type ActiveDayRequest struct {
	Day int `json:"day"`
}

// ReorderRequest is the body of POST /plans/{planId}/days/{day}/reorder.
type ReorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// ShiftRequest is the body of POST /plans/{planId}/days/{day}/shift.
// Delta is -1 for the up button and +1 for the down button.
type ShiftRequest struct {
	Index int `json:"index"`
	Delta int `json:"delta"`
}

// SetTotalDays handles PUT /plans/{planId}/days. The value is clamped to the
// supported range; shrinking over a day that still has events answers 409.
func (s *Server) SetTotalDays(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPlanID(w, r)
	if !ok {
		return
	}
	var body TotalDaysRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	s.respondMutation(w, r, id)(s.plans.SetTotalDays(r.Context(), id, body.TotalDays))
}

// RemoveDay handles DELETE /plans/{planId}/days/{day}.
func (s *Server) RemoveDay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPlanID(w, r)
	if !ok {
		return
	}
	day, ok := pathInt(w, r, "day")
	if !ok {
		return
	}
	s.respondMutation(w, r, id)(s.plans.RemoveDay(r.Context(), id, day))
}

// SetActiveDay handles PUT /plans/{planId}/active-day.
func (s *Server) SetActiveDay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPlanID(w, r)
	if !ok {
		return
	}
	var body ActiveDayRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	s.respondMutation(w, r, id)(s.plans.SetActiveDay(r.Context(), id, body.Day))
}

// ReorderDay handles POST /plans/{planId}/days/{day}/reorder (drag and drop).
func (s *Server) ReorderDay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPlanID(w, r)
	if !ok {
		return
	}
	day, ok := pathInt(w, r, "day")
	if !ok {
		return
	}
	var body ReorderRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	s.respondMutation(w, r, id)(s.plans.Reorder(r.Context(), id, day, body.From, body.To))
}

// ShiftEntry handles POST /plans/{planId}/days/{day}/shift (up/down buttons).
func (s *Server) ShiftEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPlanID(w, r)
	if !ok {
		return
	}
	day, ok := pathInt(w, r, "day")
	if !ok {
		return
	}
	var body ShiftRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Delta == 0 {
		writeBadRequest(w, "delta must not be 0")
		return
	}
	s.respondMutation(w, r, id)(s.plans.Shift(r.Context(), id, day, body.Index, body.Delta))
}
