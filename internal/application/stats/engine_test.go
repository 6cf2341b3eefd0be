package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ingdom "padoca/internal/domain/ingredient"
)

// fakeWatcher hands out one channel per Watch call and records the
// owner it was scoped to.
type fakeWatcher struct {
	ch     chan []ingdom.Ingredient
	owners []string
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{ch: make(chan []ingdom.Ingredient, 4)}
}

func (f *fakeWatcher) Watch(ctx context.Context, ownerID string) (<-chan []ingdom.Ingredient, error) {
	f.owners = append(f.owners, ownerID)
	out := make(chan []ingdom.Ingredient)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case set, ok := <-f.ch:
				if !ok {
					return
				}
				select {
				case out <- set:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

type fakeNotifier struct {
	calls chan Snapshot
}

func (f *fakeNotifier) NotifyLowStock(_ context.Context, _ string, snap Snapshot) {
	f.calls <- snap
}

func waitSnapshot(t *testing.T, e *Engine, pred func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if snap := e.Current(); pred(snap) {
			return snap
		}
		select {
		case <-deadline:
			t.Fatalf("snapshot condition not reached, last=%+v", e.Current())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestEngineRejectsEmptyOwner(t *testing.T) {
	e := NewEngine(newFakeWatcher(), nil)
	require.ErrorIs(t, e.Subscribe(context.Background(), "  "), ErrNoOwner)
}

func TestEngineRecomputesOnEveryEmission(t *testing.T) {
	w := newFakeWatcher()
	e := NewEngine(w, nil)
	require.NoError(t, e.Subscribe(context.Background(), "user-1"))
	defer e.Unsubscribe()

	require.Equal(t, []string{"user-1"}, w.owners)

	w.ch <- []ingdom.Ingredient{
		{Name: "Farinha", Category: "Farinhas", Quantity: 50, Cost: 4.5},
	}
	snap := waitSnapshot(t, e, func(s Snapshot) bool { return s.TotalItems == 1 })
	require.InDelta(t, 225.0, snap.TotalValue, 1e-9)

	select {
	case <-e.Ready():
	default:
		t.Fatal("Ready must be closed after the first emission")
	}

	// full replacement, not a diff
	w.ch <- []ingdom.Ingredient{
		{Name: "Ovos", Category: "Laticínios", Quantity: 120, Cost: 0.5},
		{Name: "Leite", Category: "Laticínios", Quantity: 5, Cost: 4.8, MinQuantity: 10},
	}
	snap = waitSnapshot(t, e, func(s Snapshot) bool { return s.TotalItems == 2 })
	require.Equal(t, 1, snap.LowStock)
	require.Equal(t, []CategoryCount{{Name: "Laticínios", Count: 2}}, snap.Categories)
}

func TestEngineEmptySetDrivesSnapshotToZero(t *testing.T) {
	w := newFakeWatcher()
	e := NewEngine(w, nil)
	require.NoError(t, e.Subscribe(context.Background(), "user-1"))
	defer e.Unsubscribe()

	w.ch <- []ingdom.Ingredient{{Name: "a", Quantity: 1, Cost: 1}}
	waitSnapshot(t, e, func(s Snapshot) bool { return s.TotalItems == 1 })

	// deleting everything yields the all-zero snapshot and the empty insight
	w.ch <- []ingdom.Ingredient{}
	snap := waitSnapshot(t, e, func(s Snapshot) bool { return s.TotalItems == 0 })
	require.Equal(t, 0, snap.LowStock)
	require.Equal(t, 0.0, snap.TotalValue)
	require.Empty(t, snap.Categories)
	require.Equal(t, SuggestionEmpty, Insight(snap).State)
}

func TestEngineListenersReceiveSnapshots(t *testing.T) {
	w := newFakeWatcher()
	e := NewEngine(w, nil)
	require.NoError(t, e.Subscribe(context.Background(), "user-1"))
	defer e.Unsubscribe()

	ch := make(chan Snapshot, 4)
	e.Listen(ch)
	defer e.Drop(ch)

	w.ch <- []ingdom.Ingredient{{Name: "a", Quantity: 2, Cost: 3}}

	select {
	case snap := <-ch:
		require.Equal(t, 1, snap.TotalItems)
		require.InDelta(t, 6.0, snap.TotalValue, 1e-9)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not receive a snapshot")
	}
}

func TestEngineStreamLossPublishesUnavailable(t *testing.T) {
	w := newFakeWatcher()
	e := NewEngine(w, nil)
	require.NoError(t, e.Subscribe(context.Background(), "user-1"))
	defer e.Unsubscribe()

	w.ch <- []ingdom.Ingredient{{Name: "a", Quantity: 1, Cost: 1}}
	waitSnapshot(t, e, func(s Snapshot) bool { return s.TotalItems == 1 })

	// the store stream dying without cancellation is a failure, not a teardown
	close(w.ch)
	snap := waitSnapshot(t, e, func(s Snapshot) bool { return s.State == StateUnavailable })
	require.Equal(t, 1, snap.TotalItems) // last good counters are kept, flagged stale
}

func TestEngineUnsubscribeIsIdempotent(t *testing.T) {
	w := newFakeWatcher()
	e := NewEngine(w, nil)

	// safe before subscribing
	e.Unsubscribe()

	require.NoError(t, e.Subscribe(context.Background(), "user-1"))
	e.Unsubscribe()
	e.Unsubscribe()

	// a fresh subscription is allowed afterwards
	require.NoError(t, e.Subscribe(context.Background(), "user-2"))
	e.Unsubscribe()
	require.Equal(t, []string{"user-1", "user-2"}, w.owners)
}

func TestEngineRefusesDoubleSubscribe(t *testing.T) {
	w := newFakeWatcher()
	e := NewEngine(w, nil)
	require.NoError(t, e.Subscribe(context.Background(), "user-1"))
	defer e.Unsubscribe()

	require.ErrorIs(t, e.Subscribe(context.Background(), "user-2"), ErrAlreadySubscribed)
}

func TestEngineNotifiesWhenLowStockRises(t *testing.T) {
	w := newFakeWatcher()
	n := &fakeNotifier{calls: make(chan Snapshot, 4)}
	e := NewEngine(w, n)
	require.NoError(t, e.Subscribe(context.Background(), "user-1"))
	defer e.Unsubscribe()

	w.ch <- []ingdom.Ingredient{{Name: "a", Quantity: 5, Cost: 1}}
	waitSnapshot(t, e, func(s Snapshot) bool { return s.TotalItems == 1 })

	select {
	case snap := <-n.calls:
		t.Fatalf("no alert expected while nothing is low, got %+v", snap)
	case <-time.After(50 * time.Millisecond):
	}

	w.ch <- []ingdom.Ingredient{{Name: "a", Quantity: 1, Cost: 1, MinQuantity: 3}}
	select {
	case snap := <-n.calls:
		require.Equal(t, 1, snap.LowStock)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a low-stock alert")
	}
}

func TestRegistryReusesEnginePerOwner(t *testing.T) {
	w := newFakeWatcher()
	r := NewRegistry(w, nil)
	defer r.Close()

	_, err := r.For("  ")
	require.ErrorIs(t, err, ErrNoOwner)

	e1, err := r.For("user-1")
	require.NoError(t, err)
	e2, err := r.For("user-1")
	require.NoError(t, err)
	require.Same(t, e1, e2)
	require.Equal(t, []string{"user-1"}, w.owners)
}

func TestRegistryCloseIsIdempotent(t *testing.T) {
	r := NewRegistry(newFakeWatcher(), nil)
	_, err := r.For("user-1")
	require.NoError(t, err)

	r.Close()
	r.Close()

	_, err = r.For("user-1")
	require.Error(t, err)
}
