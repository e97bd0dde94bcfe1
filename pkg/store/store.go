package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/agentlog/agentlog/pkg/adapter"
	"github.com/agentlog/agentlog/pkg/model"
	"github.com/agentlog/agentlog/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultCapacity is the maximum number of records kept unless overridden
const DefaultCapacity = 1000

// Store owns the persisted, ordered collection of validated activity
// records. Records are kept newest first; appends beyond capacity evict
// from the tail. All mutations run the validator gate, persist through the
// injected adapter.Storage, and notify subscribers synchronously before
// returning.
type Store struct {
	storage  adapter.Storage
	capacity int

	mu sync.Mutex

	subMu   sync.Mutex
	subs    []*subscriber
	nextSub int
}

// Option is a functional option for Store
type Option func(*Store)

// WithCapacity overrides the maximum number of retained records
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// New creates a Store persisting into the given storage slot
func New(storage adapter.Storage, opts ...Option) *Store {
	s := &Store{
		storage:  storage,
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// load reads the persisted collection. Read or decode failures degrade to
// an empty collection with a diagnostic, never an error to the caller.
func (s *Store) load(ctx context.Context) []*model.Activity {
	data, err := s.storage.Read()
	if err != nil {
		logging.From(ctx).Warn("failed to read activity storage, treating as empty", "error", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var activities []*model.Activity
	if err := json.Unmarshal(data, &activities); err != nil {
		logging.From(ctx).Warn("corrupted activity storage, treating as empty", "error", err)
		return nil
	}
	return activities
}

// save persists the collection. The prior slot content stays intact when
// the write fails.
func (s *Store) save(activities []*model.Activity) error {
	if activities == nil {
		activities = []*model.Activity{}
	}
	data, err := json.Marshal(activities)
	if err != nil {
		return goerr.Wrap(err, "failed to encode activities")
	}
	if err := s.storage.Write(data); err != nil {
		return goerr.Wrap(err, "failed to persist activities")
	}
	return nil
}

// Clear empties the collection and emits a cleared notification. Clearing
// an already empty store succeeds and notifies again.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	err := s.save(nil)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify(ctx, model.Event{Kind: model.EventCleared})
	return nil
}

func cloneAll(activities []*model.Activity) []*model.Activity {
	cloned := make([]*model.Activity, 0, len(activities))
	for _, a := range activities {
		cloned = append(cloned, a.Clone())
	}
	return cloned
}
