// internal/application/stats/registry.go
package stats

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Registry hands out one live Engine per owner. Engines are created and
// subscribed lazily on first use and torn down together on Close, so a
// signed-out (absent) identity never has a subscription and two engines
// never race for the same owner.
type Registry struct {
	watcher  Watcher
	notifier AlertNotifier

	mu      sync.Mutex
	engines map[string]*Engine
	ctx     context.Context
	cancel  context.CancelFunc
	closed  bool
}

// NewRegistry builds an empty registry. notifier may be nil.
func NewRegistry(w Watcher, notifier AlertNotifier) *Registry {
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{
		watcher:  w,
		notifier: notifier,
		engines:  make(map[string]*Engine),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// For returns the engine for ownerID, subscribing it on first use.
func (r *Registry) For(ownerID string) (*Engine, error) {
	oid := strings.TrimSpace(ownerID)
	if oid == "" {
		return nil, ErrNoOwner
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, errors.New("stats: registry is closed")
	}

	if e, ok := r.engines[oid]; ok {
		return e, nil
	}

	e := NewEngine(r.watcher, r.notifier)
	if err := e.Subscribe(r.ctx, oid); err != nil {
		return nil, err
	}
	r.engines[oid] = e
	return e, nil
}

// Close unsubscribes every engine. Idempotent.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	engines := make([]*Engine, 0, len(r.engines))
	for _, e := range r.engines {
		engines = append(engines, e)
	}
	r.engines = map[string]*Engine{}
	r.mu.Unlock()

	r.cancel()
	for _, e := range engines {
		e.Unsubscribe()
	}
}
