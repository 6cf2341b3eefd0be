// internal/application/stats/engine.go
package stats

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	ingdom "padoca/internal/domain/ingredient"
)

var (
	ErrNoOwner           = errors.New("stats: owner id is empty")
	ErrAlreadySubscribed = errors.New("stats: engine already subscribed")
)

// Watcher is the slice of the record store the engine needs: a live,
// owner-scoped subscription whose every emission is the complete
// current record set.
type Watcher interface {
	Watch(ctx context.Context, ownerID string) (<-chan []ingdom.Ingredient, error)
}

// AlertNotifier is told when a recompute raises the low-stock count.
// Best-effort collaborator: failures never reach the snapshot path.
type AlertNotifier interface {
	NotifyLowStock(ctx context.Context, ownerID string, snap Snapshot)
}

// Engine maintains the aggregate snapshot for one authenticated
// subscription. All recomputation happens synchronously inside the
// emission loop; the engine holds no state beyond the last snapshot.
type Engine struct {
	watcher  Watcher
	notifier AlertNotifier // optional

	mu        sync.Mutex
	current   Snapshot
	listeners map[chan Snapshot]struct{}
	cancel    context.CancelFunc
	done      chan struct{}

	ready     chan struct{}
	readyOnce sync.Once
}

// NewEngine builds an idle engine. notifier may be nil.
func NewEngine(w Watcher, notifier AlertNotifier) *Engine {
	return &Engine{
		watcher:   w,
		notifier:  notifier,
		current:   Snapshot{Categories: []CategoryCount{}, State: StateOK},
		listeners: make(map[chan Snapshot]struct{}),
		ready:     make(chan struct{}),
	}
}

// Ready is closed once the first snapshot has been published, i.e. the
// initial full-set emission has been consumed.
func (e *Engine) Ready() <-chan struct{} {
	return e.ready
}

// Subscribe opens the live subscription for ownerID and starts the
// recompute loop. No identity means no subscription; a live engine must
// be Unsubscribed before re-subscribing (also when the user changes, so
// two loops never race on the same snapshot).
func (e *Engine) Subscribe(ctx context.Context, ownerID string) error {
	if e == nil || e.watcher == nil {
		return errors.New("stats: engine/watcher is nil")
	}

	oid := strings.TrimSpace(ownerID)
	if oid == "" {
		return ErrNoOwner
	}

	e.mu.Lock()
	if e.cancel != nil {
		e.mu.Unlock()
		return ErrAlreadySubscribed
	}

	watchCtx, cancel := context.WithCancel(ctx)

	ch, err := e.watcher.Watch(watchCtx, oid)
	if err != nil {
		cancel()
		e.mu.Unlock()
		return err
	}

	done := make(chan struct{})
	e.cancel = cancel
	e.done = done
	e.mu.Unlock()

	log.Printf("[stats] subscribed owner=%s", oid)

	go e.loop(watchCtx, oid, ch, done)
	return nil
}

// loop consumes full-set emissions until the stream ends. A stream that
// dies while the context is still live is a store failure: the last
// snapshot is republished flagged unavailable instead of silently
// freezing as current data.
func (e *Engine) loop(ctx context.Context, ownerID string, ch <-chan []ingdom.Ingredient, done chan struct{}) {
	defer close(done)

	for records := range ch {
		e.publish(ctx, ownerID, Recompute(records))
	}

	if ctx.Err() == nil {
		log.Printf("[stats] watch stream lost owner=%s", ownerID)
		e.mu.Lock()
		stale := e.current
		e.mu.Unlock()
		stale.State = StateUnavailable
		e.publish(ctx, ownerID, stale)
	}
}

func (e *Engine) publish(ctx context.Context, ownerID string, snap Snapshot) {
	e.mu.Lock()
	prev := e.current
	e.current = snap
	for l := range e.listeners {
		select {
		case l <- snap:
		default:
			// slow listener keeps only the freshest snapshot
		}
	}
	e.mu.Unlock()

	e.readyOnce.Do(func() { close(e.ready) })

	if e.notifier != nil && snap.State == StateOK && snap.LowStock > prev.LowStock {
		go e.notifier.NotifyLowStock(ctx, ownerID, snap)
	}
}

// Current returns the last published snapshot.
func (e *Engine) Current() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Listen registers ch for every future snapshot. The channel should be
// buffered; emissions a full listener cannot take are skipped.
func (e *Engine) Listen(ch chan Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners[ch] = struct{}{}
}

// Drop removes a listener registered with Listen.
func (e *Engine) Drop(ch chan Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.listeners, ch)
}

// Unsubscribe tears the live subscription down and waits for the loop
// to stop. Safe to call any number of times, including before Subscribe.
func (e *Engine) Unsubscribe() {
	e.mu.Lock()
	cancel := e.cancel
	done := e.done
	e.cancel = nil
	e.done = nil
	e.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	if done != nil {
		<-done
	}
	log.Printf("[stats] unsubscribed")
}
