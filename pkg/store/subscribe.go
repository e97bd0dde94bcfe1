package store

import (
	"context"

	"github.com/agentlog/agentlog/pkg/model"
	"github.com/agentlog/agentlog/pkg/utils/logging"
)

type subscriber struct {
	id      int
	handler func(model.Event)
}

// Subscribe registers a handler invoked synchronously after every
// successful mutation, in registration order. The returned function
// removes the subscription. By the time a handler runs, the store already
// reflects the new state, so handlers may re-query safely.
func (s *Store) Subscribe(handler func(model.Event)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, &subscriber{id: id, handler: handler})
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// notify delivers the event to every subscriber. A panicking subscriber is
// logged and skipped so it cannot block the rest or corrupt store state.
func (s *Store) notify(ctx context.Context, event model.Event) {
	s.subMu.Lock()
	subs := make([]*subscriber, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		s.deliver(ctx, sub, event)
	}
}

func (s *Store) deliver(ctx context.Context, sub *subscriber, event model.Event) {
	defer func() {
		if r := recover(); r != nil {
			logging.From(ctx).Error("activity subscriber panicked",
				"subscriber", sub.id, "event", event.Kind, "panic", r)
		}
	}()
	sub.handler(event)
}
