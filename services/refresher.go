package services

import (
	"context"
	"sync"

	"github.com/yeremiapane/tableservice-client/realtime"
	"github.com/yeremiapane/tableservice-client/utils"
)

// Subscriber is the slice of the push listener a refresher needs.
type Subscriber interface {
	Subscribe(event string, handler func()) realtime.Subscription
	Unsubscribe(sub realtime.Subscription)
}

// FetchFunc loads the aggregate a view renders.
type FetchFunc func(ctx context.Context) (interface{}, error)

// Refresher is the shared view refresh loop: one fetch on Start, one
// re-fetch per push event, a manual Refresh fallback, and Stop detaching
// every subscription it created. Fetches are tagged with a sequence number
// and a response older than the latest applied one is discarded, so two
// overlapping fetches can never roll state backwards.
type Refresher struct {
	fetch      FetchFunc
	events     []string
	subscriber Subscriber

	mutex    sync.Mutex
	subs     []realtime.Subscription
	snapshot interface{}
	issued   uint64
	applied  uint64
	started  bool
}

func NewRefresher(subscriber Subscriber, fetch FetchFunc, events ...string) *Refresher {
	return &Refresher{
		fetch:      fetch,
		events:     events,
		subscriber: subscriber,
	}
}

// Start performs the initial fetch and attaches one handler per event. Each
// event triggers exactly one re-fetch; payloads are never consumed.
func (r *Refresher) Start(ctx context.Context) error {
	r.mutex.Lock()
	if r.started {
		r.mutex.Unlock()
		return nil
	}
	r.started = true
	for _, event := range r.events {
		sub := r.subscriber.Subscribe(event, r.onEvent)
		r.subs = append(r.subs, sub)
	}
	r.mutex.Unlock()

	return r.Refresh(ctx)
}

func (r *Refresher) onEvent() {
	if err := r.Refresh(context.Background()); err != nil {
		utils.ErrorLogger.Errorf("refresh on push event failed: %v", err)
	}
}

// Refresh fetches the aggregate once and applies it unless a newer fetch
// already landed.
func (r *Refresher) Refresh(ctx context.Context) error {
	r.mutex.Lock()
	r.issued++
	seq := r.issued
	r.mutex.Unlock()

	data, err := r.fetch(ctx)
	if err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	if seq < r.applied {
		// A later fetch already resolved; this response is stale.
		return nil
	}
	r.applied = seq
	r.snapshot = data
	return nil
}

// Snapshot returns the last successfully applied aggregate, or nil before
// the first fetch resolves.
func (r *Refresher) Snapshot() interface{} {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.snapshot
}

// Stop detaches every handler Start attached. Forgetting this leaks
// handlers that keep re-fetching after the view is gone.
func (r *Refresher) Stop() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	for _, sub := range r.subs {
		r.subscriber.Unsubscribe(sub)
	}
	r.subs = nil
	r.started = false
}
