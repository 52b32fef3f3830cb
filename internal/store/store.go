// Package store is the process-wide state container: a product catalog slice
// and a cart slice, mutated only through dispatched actions.
package store

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/Lixing-Zhang/storefront/internal/catalog"
)

// State is the combined state of all slices
type State struct {
	Catalog CatalogState `json:"catalog"`
	Cart    CartState    `json:"cart"`
}

// SelectCatalog returns the catalog slice of s
func SelectCatalog(s State) CatalogState {
	return s.Catalog
}

// SelectCart returns the cart slice of s
func SelectCart(s State) CartState {
	return s.Cart
}

func reduce(s State, a Action) State {
	return State{
		Catalog: ReduceCatalog(s.Catalog, a),
		Cart:    ReduceCart(s.Cart, a),
	}
}

// FetchPolicy decides whether a fetch request reaches the network
type FetchPolicy int

const (
	// FetchAlways starts a new fetch unless one is already in flight
	FetchAlways FetchPolicy = iota
	// FetchIfIdle only fetches when the catalog has never been requested
	FetchIfIdle
)

// Listener is called after every dispatch with the action and the resulting state
type Listener func(Action, State)

// Store holds State and serializes every transition
type Store struct {
	mu       sync.RWMutex
	state    State
	inflight *Future

	fetcher catalog.Fetcher
	logger  *slog.Logger

	listeners []subscription
	nextID    int
}

type subscription struct {
	id int
	l  Listener
}

// New creates a store in its initial state: idle catalog, empty cart
func New(fetcher catalog.Fetcher, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		state: State{
			Catalog: initialCatalog(),
			Cart:    initialCart(),
		},
		fetcher: fetcher,
		logger:  logger,
	}
}

// State returns a snapshot of the current state. Reducers never modify
// slices they have handed out, but callers must not modify them either.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies a to every slice and notifies listeners.
//
// Fetch lifecycle actions are owned by the store: FetchRequested starts or
// joins a fetch exactly like RequestFetch, and FetchSucceeded or FetchFailed
// from outside a fetch are dropped.
func (s *Store) Dispatch(a Action) {
	switch a.(type) {
	case FetchRequested:
		s.RequestFetch(context.Background())
		return
	case FetchSucceeded, FetchFailed:
		s.logger.Warn("dropping fetch outcome dispatched outside a fetch", "action", ActionName(a))
		return
	}

	s.mu.Lock()
	next, listeners := s.applyLocked(a)
	s.mu.Unlock()

	notify(listeners, a, next)
}

func (s *Store) applyLocked(a Action) (State, []Listener) {
	s.state = reduce(s.state, a)

	listeners := make([]Listener, len(s.listeners))
	for i, sub := range s.listeners {
		listeners[i] = sub.l
	}
	return s.state, listeners
}

func notify(listeners []Listener, a Action, st State) {
	for _, l := range listeners {
		l(a, st)
	}
}

// Subscribe registers l and returns a function that unregisters it.
//
// Listeners run in registration order, outside the store lock, on the
// goroutine that dispatched. Transitions dispatched from one goroutine arrive
// in dispatch order; across goroutines the delivery order is not guaranteed,
// so a listener may see an older State after a newer one.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription{id: id, l: l})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

// RequestFetch starts a catalog fetch, or joins the one already in flight.
// The catalog is loading by the time RequestFetch returns.
func (s *Store) RequestFetch(ctx context.Context) *Future {
	return s.Fetch(ctx, FetchAlways)
}

// Fetch requests the catalog under policy. With FetchIfIdle and a catalog that
// already resolved, the returned future is resolved from the current state.
func (s *Store) Fetch(ctx context.Context, policy FetchPolicy) *Future {
	s.mu.Lock()

	if f := s.inflight; f != nil {
		s.mu.Unlock()
		return f
	}

	// A loading catalog with nothing in flight falls through and fetches.
	if policy == FetchIfIdle {
		if cat := s.state.Catalog; cat.Status != StatusIdle && cat.Status != StatusLoading {
			s.mu.Unlock()
			if cat.Status == StatusFailed {
				return resolvedFuture(catalog.FetchResult{Err: errors.New(cat.Error)})
			}
			return resolvedFuture(catalog.FetchResult{Products: cat.Products})
		}
	}

	f := newFuture()
	s.inflight = f
	next, listeners := s.applyLocked(FetchRequested{})
	s.mu.Unlock()

	notify(listeners, FetchRequested{}, next)
	s.logger.Debug("catalog fetch started")

	// The fetch outlives the request that triggered it.
	go s.runFetch(context.WithoutCancel(ctx), f)

	return f
}

func (s *Store) runFetch(ctx context.Context, f *Future) {
	res := catalog.Fetch(ctx, s.fetcher)

	var a Action
	if res.Succeeded() {
		a = FetchSucceeded{Products: res.Products}
		s.logger.Debug("catalog fetch succeeded", "products", len(res.Products))
	} else {
		a = FetchFailed{Message: res.Err.Error()}
		s.logger.Warn("catalog fetch failed", "error", res.Err)
	}

	s.mu.Lock()
	s.inflight = nil
	next, listeners := s.applyLocked(a)
	s.mu.Unlock()

	notify(listeners, a, next)
	f.resolve(res)
}
