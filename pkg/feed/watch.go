package feed

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/agentlog/agentlog/pkg/model"
	"github.com/agentlog/agentlog/pkg/store"
	"github.com/briandowns/spinner"
)

// Watcher renders the activity feed live. It consumes store change
// notifications for in-process appends and, when AutoRefresh is set,
// polls the store so appends from other processes sharing the same
// storage slot show up too.
type Watcher struct {
	store    *store.Store
	cfg      Config
	renderer *Renderer
	seen     map[model.ActivityID]bool
}

// NewWatcher creates a Watcher writing the feed to w
func NewWatcher(st *store.Store, cfg Config, w io.Writer) *Watcher {
	return &Watcher{
		store:    st,
		cfg:      cfg,
		renderer: NewRenderer(w, cfg.Theme),
		seen:     make(map[model.ActivityID]bool),
	}
}

// Run renders the current feed and then blocks, printing new records as
// they arrive, until the context is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	if w.cfg.ShowStats {
		w.renderer.PrintStats(w.store.Aggregate(ctx))
	}
	w.printCurrent(ctx)
	if w.cfg.ShowFilters {
		w.renderer.PrintFilters(w.store.Aggregate(ctx))
	}

	events := make(chan model.Event, 16)
	unsubscribe := w.store.Subscribe(func(ev model.Event) {
		select {
		case events <- ev:
		default:
			// Feed is presentation only; dropping a notification under
			// backpressure is fine because the poller catches up.
		}
	})
	defer unsubscribe()

	idle := spinner.New(spinner.CharSets[11], 120*time.Millisecond, spinner.WithWriter(os.Stderr))
	idle.Suffix = " waiting for activity..."
	idle.Start()
	defer idle.Stop()

	var ticker *time.Ticker
	var tick <-chan time.Time
	if w.cfg.AutoRefresh {
		ticker = time.NewTicker(time.Duration(w.cfg.RefreshInterval) * time.Millisecond)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			idle.Stop()
			w.handleEvent(ctx, ev)
			idle.Start()

		case <-tick:
			idle.Stop()
			w.printNew(ctx)
			idle.Start()
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, ev model.Event) {
	switch ev.Kind {
	case model.EventAppended:
		if ev.Activity != nil && !w.seen[ev.Activity.ID] {
			w.seen[ev.Activity.ID] = true
			w.renderer.Print(ev.Activity)
		}
	case model.EventCleared, model.EventImported:
		// The payload is not a snapshot; re-pull the store
		w.seen = make(map[model.ActivityID]bool)
		w.printCurrent(ctx)
	}
}

// printCurrent renders the newest records oldest-first so the latest ends
// up nearest the prompt
func (w *Watcher) printCurrent(ctx context.Context) {
	activities := w.store.Query(ctx, store.QueryOptions{Limit: w.cfg.MaxActivities})
	for i := len(activities) - 1; i >= 0; i-- {
		w.seen[activities[i].ID] = true
		w.renderer.Print(activities[i])
	}
}

// printNew renders records that appeared since the last pull
func (w *Watcher) printNew(ctx context.Context) {
	activities := w.store.Query(ctx, store.QueryOptions{Limit: w.cfg.MaxActivities})
	for i := len(activities) - 1; i >= 0; i-- {
		if w.seen[activities[i].ID] {
			continue
		}
		w.seen[activities[i].ID] = true
		w.renderer.Print(activities[i])
	}
}
