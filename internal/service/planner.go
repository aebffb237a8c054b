// Package service contains the business logic for the trip planner API.
// Services look up events, drive the planner store, and persist plans.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/eventbuzzer/tripplanner/internal/domain"
	"github.com/eventbuzzer/tripplanner/internal/planner"
	"github.com/eventbuzzer/tripplanner/internal/repo"
)

// Result is the outcome of a plan operation.
type Result struct {
	// Plan is a snapshot taken after the operation.
	Plan domain.TripPlan
	// Changed is false when the operation had nothing to do.
	Changed bool
	// PersistFailed is set when the change was applied in memory but could
	// not be saved. The change is kept; the next successful save carries it.
	PersistFailed bool
	// Notice is set when the outcome differs from the request. A failed save
	// outranks any other notice.
	Notice *domain.Notice
}

// outcome is what a store operation reports back to mutate.
type outcome struct {
	changed bool
	notice  *domain.Notice
}

func changedIf(changed bool) outcome { return outcome{changed: changed} }

func noticeRef(n domain.Notice) *domain.Notice { return &n }

// session is one loaded plan. mu serializes every operation on the store.
type session struct {
	mu    sync.Mutex
	store *planner.Store
}

// PlannerService hosts one planner.Store per plan id.
//
// A plan is loaded from the PlanRepo the first time it is used and the
// in-memory store is authoritative from then on. Every change is written
// through to the repo; a failed write is logged and reported on the Result
// but never rolled back.
type PlannerService struct {
	plans  repo.PlanRepo
	events repo.EventRepo
	log    *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

// NewPlannerService constructs a PlannerService. A nil logger falls back to
// slog.Default().
func NewPlannerService(plans repo.PlanRepo, events repo.EventRepo, log *slog.Logger) *PlannerService {
	if log == nil {
		log = slog.Default()
	}
	return &PlannerService{
		plans:    plans,
		events:   events,
		log:      log,
		sessions: make(map[uuid.UUID]*session),
	}
}

// Create starts a new empty plan under a fresh id.
func (s *PlannerService) Create(ctx context.Context) (uuid.UUID, Result, error) {
	id := uuid.New()
	sess := &session{store: planner.New()}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	res := Result{Plan: sess.store.Snapshot(), Changed: true}
	if res.PersistFailed = s.persist(ctx, id, res.Plan); res.PersistFailed {
		res.Notice = noticeRef(domain.NoticeNotSaved)
	}
	return id, res, nil
}

// Get returns a snapshot of the plan.
// Returns domain.ErrNotFound if the plan does not exist.
func (s *PlannerService) Get(ctx context.Context, id uuid.UUID) (domain.TripPlan, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("service.PlannerService.Get: %w", err)
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.store.Snapshot(), nil
}

// Discard forgets the plan entirely, in memory and in the repo.
func (s *PlannerService) Discard(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	_, cached := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	err := s.plans.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) && cached {
		// Created but never saved successfully.
		err = nil
	}
	if err != nil {
		return fmt.Errorf("service.PlannerService.Discard: %w", err)
	}
	return nil
}

// Clear empties the plan and resets it to the default day count.
func (s *PlannerService) Clear(ctx context.Context, id uuid.UUID) (Result, error) {
	return s.mutate(ctx, id, "Clear", func(st *planner.Store) (outcome, error) {
		before := st.Snapshot()
		st.Clear()
		after := st.Snapshot()
		return changedIf(before.TotalEventCount() > 0 ||
			before.TotalDays != after.TotalDays ||
			before.ActiveDay != after.ActiveDay), nil
	})
}

// Add plans an event on day. Day 0 means the plan's active day.
// Returns domain.ErrNotFound if the event does not exist and
// domain.ErrAlreadyPlanned if it is planned on any day.
func (s *PlannerService) Add(ctx context.Context, id uuid.UUID, eventID string, day int) (Result, error) {
	ev, err := s.lookupEvent(ctx, eventID)
	if err != nil {
		return Result{}, fmt.Errorf("service.PlannerService.Add: %w", err)
	}
	return s.mutate(ctx, id, "Add", func(st *planner.Store) (outcome, error) {
		if err := st.Add(ev, dayOrActive(st, day)); err != nil {
			return outcome{}, err
		}
		return changedIf(true), nil
	})
}

// Remove takes an event out of the plan. Removing an unplanned event is a
// no-op and reports Changed=false with a not_planned notice.
func (s *PlannerService) Remove(ctx context.Context, id uuid.UUID, eventID string) (Result, error) {
	return s.mutate(ctx, id, "Remove", func(st *planner.Store) (outcome, error) {
		if !st.Remove(eventID) {
			return outcome{notice: noticeRef(domain.NoticeNotPlanned)}, nil
		}
		return changedIf(true), nil
	})
}

// Toggle removes the event if it is planned and otherwise adds it on day
// (0 means the active day). Added reports which of the two happened.
func (s *PlannerService) Toggle(ctx context.Context, id uuid.UUID, eventID string, day int) (res Result, added bool, err error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return Result{}, false, fmt.Errorf("service.PlannerService.Toggle: %w", err)
	}

	sess.mu.Lock()
	planned := sess.store.Contains(eventID)
	sess.mu.Unlock()

	// The event is only looked up when it is about to be added.
	var ev domain.Event
	if !planned {
		if ev, err = s.lookupEvent(ctx, eventID); err != nil {
			return Result{}, false, fmt.Errorf("service.PlannerService.Toggle: %w", err)
		}
	}

	res, err = s.mutate(ctx, id, "Toggle", func(st *planner.Store) (outcome, error) {
		if st.Contains(eventID) {
			return changedIf(st.Remove(eventID)), nil
		}
		if ev.ID == "" {
			// Removed concurrently between the check and the lock.
			var lookupErr error
			if ev, lookupErr = s.lookupEvent(ctx, eventID); lookupErr != nil {
				return outcome{}, lookupErr
			}
		}
		if err := st.Add(ev, dayOrActive(st, day)); err != nil {
			return outcome{}, err
		}
		added = true
		return changedIf(true), nil
	})
	return res, added, err
}

// Reorder moves the entry at index from to index to within day.
func (s *PlannerService) Reorder(ctx context.Context, id uuid.UUID, day, from, to int) (Result, error) {
	return s.mutate(ctx, id, "Reorder", func(st *planner.Store) (outcome, error) {
		changed, err := st.Reorder(day, from, to)
		return changedIf(changed), err
	})
}

// Shift moves the entry at index by delta positions within day.
func (s *PlannerService) Shift(ctx context.Context, id uuid.UUID, day, index, delta int) (Result, error) {
	return s.mutate(ctx, id, "Shift", func(st *planner.Store) (outcome, error) {
		changed, err := st.Shift(day, index, delta)
		return changedIf(changed), err
	})
}

// Move appends a planned event to the end of toDay.
func (s *PlannerService) Move(ctx context.Context, id uuid.UUID, eventID string, fromDay, toDay int) (Result, error) {
	return s.mutate(ctx, id, "Move", func(st *planner.Store) (outcome, error) {
		changed, err := st.Move(eventID, fromDay, toDay)
		return changedIf(changed), err
	})
}

// SetTotalDays changes the day count. See planner.Store.SetTotalDays.
// A count outside [domain.MinDays, domain.MaxDays] is clamped and the result
// carries a clamped notice.
func (s *PlannerService) SetTotalDays(ctx context.Context, id uuid.UUID, n int) (Result, error) {
	return s.mutate(ctx, id, "SetTotalDays", func(st *planner.Store) (outcome, error) {
		before := st.TotalDays()
		if err := st.SetTotalDays(n); err != nil {
			return outcome{}, err
		}
		out := changedIf(st.TotalDays() != before)
		if applied := st.TotalDays(); applied != n {
			out.notice = noticeRef(domain.NoticeDaysClamped(applied))
		}
		return out, nil
	})
}

// RemoveDay deletes an empty day and renumbers the ones after it.
func (s *PlannerService) RemoveDay(ctx context.Context, id uuid.UUID, day int) (Result, error) {
	return s.mutate(ctx, id, "RemoveDay", func(st *planner.Store) (outcome, error) {
		if err := st.RemoveDay(day); err != nil {
			return outcome{}, err
		}
		return changedIf(true), nil
	})
}

// SetActiveDay selects the day being edited. The value is clamped into range
// and the result carries a clamped notice when that happened.
func (s *PlannerService) SetActiveDay(ctx context.Context, id uuid.UUID, day int) (Result, error) {
	return s.mutate(ctx, id, "SetActiveDay", func(st *planner.Store) (outcome, error) {
		before := st.ActiveDay()
		applied := st.SetActiveDay(day)
		out := changedIf(applied != before)
		if applied != day {
			out.notice = noticeRef(domain.NoticeActiveDayClamped(applied))
		}
		return out, nil
	})
}

// UpdateEntry overrides the duration and/or start time of a planned event.
func (s *PlannerService) UpdateEntry(ctx context.Context, id uuid.UUID, eventID string, duration *int, startTime *string) (Result, error) {
	return s.mutate(ctx, id, "UpdateEntry", func(st *planner.Store) (outcome, error) {
		if duration == nil && startTime == nil {
			return outcome{}, nil
		}
		if err := st.UpdateEntry(eventID, duration, startTime); err != nil {
			return outcome{}, err
		}
		return changedIf(true), nil
	})
}

// mutate runs fn against the plan's store under the plan lock and writes the
// result through to the repo when fn reports a change. An unchanged plan
// without a more specific notice gets the no_change notice.
func (s *PlannerService) mutate(ctx context.Context, id uuid.UUID, op string, fn func(*planner.Store) (outcome, error)) (Result, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return Result{}, fmt.Errorf("service.PlannerService.%s: %w", op, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	out, err := fn(sess.store)
	if err != nil {
		return Result{Plan: sess.store.Snapshot()}, fmt.Errorf("service.PlannerService.%s: %w", op, err)
	}

	res := Result{Plan: sess.store.Snapshot(), Changed: out.changed, Notice: out.notice}
	if out.changed {
		res.PersistFailed = s.persist(ctx, id, res.Plan)
	}
	switch {
	case res.PersistFailed:
		res.Notice = noticeRef(domain.NoticeNotSaved)
	case !res.Changed && res.Notice == nil:
		res.Notice = noticeRef(domain.NoticeNoChange)
	}
	return res, nil
}

// session returns the cached session for id, loading it from the repo on
// first use. The repo is read without holding s.mu; if two callers race to
// load the same plan the first one stored wins.
//
// A stored plan that cannot be decoded is logged and replaced by an empty
// plan; the next saved change overwrites the unreadable copy. Any other load
// error is returned.
func (s *PlannerService) session(ctx context.Context, id uuid.UUID) (*session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if ok {
		return sess, nil
	}

	var store *planner.Store
	plan, err := s.plans.Load(ctx, id)
	switch {
	case errors.Is(err, domain.ErrValidation):
		s.log.WarnContext(ctx, "stored plan unreadable, starting empty",
			slog.String("plan_id", id.String()),
			slog.String("error", err.Error()),
		)
		store = planner.New()
	case err != nil:
		return nil, err
	default:
		store = planner.Restore(plan)
	}
	loaded := &session{store: store}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[id]; ok {
		return existing, nil
	}
	s.sessions[id] = loaded
	return loaded, nil
}

// persist saves plan and reports whether saving failed.
func (s *PlannerService) persist(ctx context.Context, id uuid.UUID, plan domain.TripPlan) bool {
	if err := s.plans.Save(ctx, id, plan); err != nil {
		s.log.WarnContext(ctx, "plan not persisted",
			slog.String("plan_id", id.String()),
			slog.String("error", err.Error()),
		)
		return true
	}
	return false
}

func (s *PlannerService) lookupEvent(ctx context.Context, eventID string) (domain.Event, error) {
	if eventID == "" {
		return domain.Event{}, fmt.Errorf("%w: event id is required", domain.ErrValidation)
	}
	return s.events.GetByID(ctx, eventID)
}

func dayOrActive(st *planner.Store, day int) int {
	if day == 0 {
		return st.ActiveDay()
	}
	return day
}
