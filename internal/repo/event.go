package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/eventbuzzer/tripplanner/internal/domain"
)

// EventRepo reads events from the data layer's events table.
// The planner never writes events.
type EventRepo interface {
	// GetByID returns one event. Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, id string) (domain.Event, error)

	// GetMany returns the events with the given ids in the order the ids were
	// given. Unknown ids are skipped.
	GetMany(ctx context.Context, ids []string) ([]domain.Event, error)

	// ListPaged returns one page of events ordered by start date and the
	// total number of events, which stays correct for pages past the end.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Event, int64, error)
}

// pgEventRepo is the Postgres implementation of EventRepo.
type pgEventRepo struct {
	db db
}

// NewEventRepo constructs an EventRepo backed by the provided db connection.
func NewEventRepo(db db) EventRepo {
	return &pgEventRepo{db: db}
}

const eventColumns = `
	id, title, latitude, longitude,
	COALESCE(image_url, ''), COALESCE(short_description, ''), COALESCE(description, ''),
	COALESCE(address_city, ''), COALESCE(location, ''), COALESCE(venue_name, ''),
	start_date, end_date, price_from, COALESCE(category, '')`

// GetByID retrieves an event by primary key.
func (r *pgEventRepo) GetByID(ctx context.Context, id string) (domain.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	ev, err := scanEvent(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.GetByID: %w", err)
	}
	return ev, nil
}

// GetMany retrieves several events at once and restores the caller's order.
func (r *pgEventRepo) GetMany(ctx context.Context, ids []string) ([]domain.Event, error) {
	if len(ids) == 0 {
		return []domain.Event{}, nil
	}
	q := `SELECT ` + eventColumns + ` FROM events WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.GetMany: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]domain.Event, len(ids))
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.EventRepo.GetMany: scan: %w", err)
		}
		byID[ev.ID] = ev
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.EventRepo.GetMany: rows: %w", err)
	}

	events := make([]domain.Event, 0, len(byID))
	for _, id := range ids {
		if ev, ok := byID[id]; ok {
			events = append(events, ev)
		}
	}
	return events, nil
}

// ListPaged returns one page of events and the total number of events.
// The total is counted separately so a page past the end still reports it.
func (r *pgEventRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Event, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.EventRepo.ListPaged: count: %w", err)
	}

	q := `SELECT ` + eventColumns + `
		FROM events
		ORDER BY start_date ASC NULLS LAST, id
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, q, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("repo.EventRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.EventRepo.ListPaged: scan: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.EventRepo.ListPaged: rows: %w", err)
	}
	return events, total, nil
}

// scanEvent maps a row selected with eventColumns into a domain.Event.
func scanEvent(s scanner) (domain.Event, error) {
	var (
		ev         domain.Event
		lat, lng   pgtype.Float8
		price      pgtype.Float8
		start, end pgtype.Timestamptz
	)
	dest := []any{
		&ev.ID, &ev.Title, &lat, &lng,
		&ev.ImageURL, &ev.ShortDescription, &ev.Description,
		&ev.AddressCity, &ev.Location, &ev.VenueName,
		&start, &end, &price, &ev.Category,
	}
	if err := s.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrNotFound
		}
		return domain.Event{}, err
	}

	ev.Latitude = float8Ptr(lat)
	ev.Longitude = float8Ptr(lng)
	ev.PriceFrom = float8Ptr(price)
	if start.Valid {
		t := start.Time
		ev.StartDate = &t
	}
	if end.Valid {
		t := end.Time
		ev.EndDate = &t
	}
	return ev, nil
}

func float8Ptr(v pgtype.Float8) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
