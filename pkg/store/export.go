package store

import (
	"context"
	"encoding/json"

	"github.com/agentlog/agentlog/pkg/model"
	"github.com/agentlog/agentlog/pkg/schema"
	"github.com/agentlog/agentlog/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

var ErrMalformedImport = goerr.New("import data is not a JSON array")

// Export serializes the current collection as a pretty-printed JSON array,
// newest first, suitable for Import.
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	activities := s.load(ctx)
	s.mu.Unlock()

	if activities == nil {
		activities = []*model.Activity{}
	}
	data, err := json.MarshalIndent(activities, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode activities")
	}
	return data, nil
}

// ImportResult reports how an import batch was applied
type ImportResult struct {
	Imported int
	Skipped  int
}

// Import parses a JSON array of candidate records, validates each one
// independently, and replaces the entire collection with the survivors.
// Invalid entries are dropped with a diagnostic, not a failure; a
// malformed batch fails without mutating anything.
func (s *Store) Import(ctx context.Context, data []byte) (*ImportResult, error) {
	var batch []any
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, goerr.Wrap(ErrMalformedImport, "failed to parse import data", goerr.V("cause", err.Error()))
	}

	result := &ImportResult{}
	activities := make([]*model.Activity, 0, len(batch))
	for _, entry := range batch {
		candidate, ok := entry.(map[string]any)
		if !ok {
			result.Skipped++
			continue
		}
		if v := schema.Validate(candidate); !v.OK() {
			logging.From(ctx).Warn("dropped invalid record from import", "error", v.Err())
			result.Skipped++
			continue
		}
		activities = append(activities, model.ActivityFromMap(candidate))
	}

	if len(activities) > s.capacity {
		activities = activities[:s.capacity]
	}
	result.Imported = len(activities)

	s.mu.Lock()
	err := s.save(activities)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if result.Skipped > 0 {
		logging.From(ctx).Warn("import skipped invalid records", "skipped", result.Skipped)
	}

	s.notify(ctx, model.Event{Kind: model.EventImported})
	return result, nil
}
