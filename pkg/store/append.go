package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/agentlog/agentlog/pkg/model"
	"github.com/agentlog/agentlog/pkg/schema"
	"github.com/agentlog/agentlog/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// AppendInput describes a new activity to record. Agent and Action are
// required; Type defaults to info and Status to success.
type AppendInput struct {
	Agent    string
	Action   string
	Type     model.ActivityType
	Status   model.Status
	Metadata model.Metadata
}

// Append assigns an id and the current UTC instant, runs the candidate
// through the schema gate, prepends it to the collection, evicts past
// capacity, persists, and notifies subscribers. The returned record is a
// copy owned by the caller.
func (s *Store) Append(ctx context.Context, input AppendInput) (*model.Activity, error) {
	activity := &model.Activity{
		ID:        model.NewActivityID(),
		Timestamp: time.Now().UTC(),
		Agent:     input.Agent,
		Action:    input.Action,
		Type:      input.Type,
		Status:    input.Status,
		Metadata:  input.Metadata,
	}
	if activity.Type == "" {
		activity.Type = model.TypeInfo
	}
	if activity.Status == "" {
		activity.Status = model.StatusSuccess
	}

	candidate, err := toJSONObject(activity)
	if err != nil {
		return nil, err
	}
	if result := schema.Validate(candidate); !result.OK() {
		err := result.Err()
		logging.From(ctx).Warn("rejected invalid activity",
			"agent", input.Agent, "action", input.Action, "error", err)
		return nil, err
	}

	s.mu.Lock()
	activities := s.load(ctx)
	activities = append([]*model.Activity{activity}, activities...)
	if len(activities) > s.capacity {
		activities = activities[:s.capacity]
	}
	err = s.save(activities)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.notify(ctx, model.Event{Kind: model.EventAppended, Activity: activity.Clone()})
	return activity.Clone(), nil
}

// toJSONObject round-trips a record through its JSON form so the typed
// append path and the import path share one validator.
func toJSONObject(a *model.Activity) (map[string]any, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode activity")
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, goerr.Wrap(err, "failed to decode activity")
	}
	return obj, nil
}
