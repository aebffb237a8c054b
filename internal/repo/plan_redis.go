package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/eventbuzzer/tripplanner/internal/domain"
)

// DefaultPlanNamespace prefixes every plan key in Redis.
const DefaultPlanNamespace = "eventbuzzer:trip-plan"

// redisPlanRepo stores each plan as one JSON string under "<namespace>:<id>".
type redisPlanRepo struct {
	client    redis.UniversalClient
	namespace string
}

// NewRedisPlanRepo constructs a PlanRepo backed by Redis. An empty namespace
// falls back to DefaultPlanNamespace.
func NewRedisPlanRepo(client redis.UniversalClient, namespace string) PlanRepo {
	if namespace == "" {
		namespace = DefaultPlanNamespace
	}
	return &redisPlanRepo{client: client, namespace: namespace}
}

func (r *redisPlanRepo) key(id uuid.UUID) string {
	return r.namespace + ":" + id.String()
}

// Load reads and decodes the plan key.
func (r *redisPlanRepo) Load(ctx context.Context, id uuid.UUID) (domain.TripPlan, error) {
	payload, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.TripPlan{}, fmt.Errorf("repo.RedisPlanRepo.Load: %w", domain.ErrNotFound)
		}
		return domain.TripPlan{}, fmt.Errorf("repo.RedisPlanRepo.Load: %w", err)
	}

	plan, err := decodePlan(payload)
	if err != nil {
		return domain.TripPlan{}, fmt.Errorf("repo.RedisPlanRepo.Load: %w", err)
	}
	return plan, nil
}

// Save overwrites the plan key. Plans never expire on their own.
func (r *redisPlanRepo) Save(ctx context.Context, id uuid.UUID, plan domain.TripPlan) error {
	payload, err := encodePlan(plan)
	if err != nil {
		return fmt.Errorf("repo.RedisPlanRepo.Save: %w", err)
	}
	if err := r.client.Set(ctx, r.key(id), payload, 0).Err(); err != nil {
		return fmt.Errorf("repo.RedisPlanRepo.Save: %w", err)
	}
	return nil
}

// Delete removes the plan key.
func (r *redisPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		return fmt.Errorf("repo.RedisPlanRepo.Delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("repo.RedisPlanRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}
