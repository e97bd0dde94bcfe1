package store

import (
	"context"

	"github.com/agentlog/agentlog/pkg/model"
)

// QueryOptions narrows a query. Zero values mean "no filter"; Limit 0
// returns everything.
type QueryOptions struct {
	Agent  string
	Type   model.ActivityType
	Status model.Status
	Limit  int
}

func (o QueryOptions) match(a *model.Activity) bool {
	if o.Agent != "" && a.Agent != o.Agent {
		return false
	}
	if o.Type != "" && a.Type != o.Type {
		return false
	}
	if o.Status != "" && a.Status != o.Status {
		return false
	}
	return true
}

// Query returns up to Limit most-recent records matching the options,
// newest first. Storage read failures degrade to an empty result with a
// diagnostic. Returned records are copies.
func (s *Store) Query(ctx context.Context, opts QueryOptions) []*model.Activity {
	s.mu.Lock()
	activities := s.load(ctx)
	s.mu.Unlock()

	matched := make([]*model.Activity, 0, len(activities))
	for _, a := range activities {
		if !opts.match(a) {
			continue
		}
		matched = append(matched, a.Clone())
		if opts.Limit > 0 && len(matched) >= opts.Limit {
			break
		}
	}
	return matched
}

// Aggregate computes statistics over the full current collection in a
// single pass: total count, per-agent / per-type / per-status counts in
// first-encountered order, and the 10 most recent records.
func (s *Store) Aggregate(ctx context.Context) *model.Stats {
	s.mu.Lock()
	activities := s.load(ctx)
	s.mu.Unlock()

	byAgent := model.NewCounter()
	byType := model.NewCounter()
	byStatus := model.NewCounter()

	for _, a := range activities {
		byAgent.Add(a.Agent)
		byType.Add(string(a.Type))
		byStatus.Add(string(a.Status))
	}

	recent := activities
	if len(recent) > 10 {
		recent = recent[:10]
	}

	return &model.Stats{
		Total:    len(activities),
		ByAgent:  byAgent.Counts(),
		ByType:   byType.Counts(),
		ByStatus: byStatus.Counts(),
		Recent:   cloneAll(recent),
	}
}
