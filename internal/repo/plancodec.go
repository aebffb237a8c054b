package repo

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/eventbuzzer/tripplanner/internal/domain"
)

// planFormatVersion tags every persisted plan. Payloads written before
// versioning existed decode as version 0 and share the version 1 layout.
const planFormatVersion = 1

// maxStoredDay bounds day keys accepted from storage. Days past
// domain.MaxDays are folded into the last day when the plan is restored.
const maxStoredDay = 31

// planRecord is the persisted shape of a TripPlan:
//
//	{"version":1,"activeDay":1,"totalDays":2,"days":{"1":[...],"2":[...]}}
type planRecord struct {
	Version   int                              `json:"version"`
	ActiveDay int                              `json:"activeDay"`
	TotalDays int                              `json:"totalDays"`
	Days      map[string][]domain.PlannedEntry `json:"days"`
}

func encodePlan(plan domain.TripPlan) ([]byte, error) {
	rec := planRecord{
		Version:   planFormatVersion,
		ActiveDay: plan.ActiveDay,
		TotalDays: plan.TotalDays,
		Days:      make(map[string][]domain.PlannedEntry, len(plan.Days)),
	}
	for i, entries := range plan.Days {
		if entries == nil {
			entries = []domain.PlannedEntry{}
		}
		rec.Days[strconv.Itoa(i+1)] = entries
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	return b, nil
}

// decodePlan parses a persisted plan. The result is not normalized; callers
// restore it through the planner, which repairs invariant violations.
func decodePlan(b []byte) (domain.TripPlan, error) {
	var rec planRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return domain.TripPlan{}, fmt.Errorf("%w: decode plan: %v", domain.ErrValidation, err)
	}
	if rec.Version > planFormatVersion {
		return domain.TripPlan{}, fmt.Errorf("%w: unsupported plan format version %d", domain.ErrValidation, rec.Version)
	}

	keys := make([]int, 0, len(rec.Days))
	for k := range rec.Days {
		day, err := strconv.Atoi(k)
		if err != nil || day < 1 || day > maxStoredDay {
			return domain.TripPlan{}, fmt.Errorf("%w: invalid day key %q", domain.ErrValidation, k)
		}
		keys = append(keys, day)
	}
	sort.Ints(keys)

	n := min(max(rec.TotalDays, 0), maxStoredDay)
	if len(keys) > 0 && keys[len(keys)-1] > n {
		n = keys[len(keys)-1]
	}
	days := make([][]domain.PlannedEntry, n)
	for i := range days {
		days[i] = []domain.PlannedEntry{}
	}
	for _, day := range keys {
		days[day-1] = append(days[day-1], rec.Days[strconv.Itoa(day)]...)
	}

	return domain.TripPlan{Days: days, ActiveDay: rec.ActiveDay, TotalDays: rec.TotalDays}, nil
}
