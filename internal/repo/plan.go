package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/eventbuzzer/tripplanner/internal/domain"
)

// PlanRepo persists trip plans by plan id. Writes are last-writer-wins; there
// is no merge of concurrent copies.
type PlanRepo interface {
	// Load returns the stored plan. Returns domain.ErrNotFound if none is stored.
	Load(ctx context.Context, id uuid.UUID) (domain.TripPlan, error)

	// Save stores plan under id, replacing any previous copy.
	Save(ctx context.Context, id uuid.UUID, plan domain.TripPlan) error

	// Delete removes the stored plan. Returns domain.ErrNotFound if none is stored.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgPlanRepo stores plans as versioned JSONB documents in trip_plans.
type pgPlanRepo struct {
	db db
}

// NewPlanRepo constructs a Postgres PlanRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx or a pgxmock pool.
func NewPlanRepo(db db) PlanRepo {
	return &pgPlanRepo{db: db}
}

// Load reads and decodes the plan row.
func (r *pgPlanRepo) Load(ctx context.Context, id uuid.UUID) (domain.TripPlan, error) {
	const q = `SELECT payload FROM trip_plans WHERE id = $1`

	var payload []byte
	if err := r.db.QueryRow(ctx, q, id).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripPlan{}, fmt.Errorf("repo.PlanRepo.Load: %w", domain.ErrNotFound)
		}
		return domain.TripPlan{}, fmt.Errorf("repo.PlanRepo.Load: %w", err)
	}

	plan, err := decodePlan(payload)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("repo.PlanRepo.Load: %w", err)
	}
	return plan, nil
}

// Save upserts the plan row.
func (r *pgPlanRepo) Save(ctx context.Context, id uuid.UUID, plan domain.TripPlan) error {
	const q = `
		INSERT INTO trip_plans (id, version, payload)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET version    = EXCLUDED.version,
		    payload    = EXCLUDED.payload,
		    updated_at = now()`

	payload, err := encodePlan(plan)
	if err != nil {
		return fmt.Errorf("repo.PlanRepo.Save: %w", err)
	}
	if _, err := r.db.Exec(ctx, q, id, planFormatVersion, payload); err != nil {
		return fmt.Errorf("repo.PlanRepo.Save: %w", err)
	}
	return nil
}

// Delete removes the plan row.
func (r *pgPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trip_plans WHERE id = $1`

	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}
