// Package catalog owns the single shared catalog state. Every consumer
// renders from its snapshot and observes transitions through subscriptions;
// nothing else in the process mutates product data.
package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vitrina/vitrina/internal/domain"
)

// FailedMessage is the user-facing message for a failed catalog fetch. The
// underlying error is logged, never shown.
const FailedMessage = "No se pudieron cargar los productos. Intenta de nuevo más tarde."

// Fetcher is the slice of the gateway the store needs.
type Fetcher interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Store is the process-wide catalog: a Loading/Ready/Failed state machine
// fed by gateway fetches and broadcast to subscribers on every transition.
//
// Fetches carry a monotonically increasing sequence number. A completion
// whose sequence is not the latest issued is discarded, so overlapping
// refreshes always converge on the last-issued fetch regardless of the
// order responses arrive in.
type Store struct {
	fetcher Fetcher
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	state   domain.CatalogState
	seq     uint64
	subs    map[uint64]chan domain.CatalogState
	nextSub uint64
	closed  bool
}

// New creates the store, enters Loading and issues the initial fetch.
// Callers own the lifecycle: Close releases the store and cancels any
// in-flight fetch.
func New(fetcher Fetcher, logger *slog.Logger) *Store {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Store{
		fetcher: fetcher,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		state:   domain.CatalogState{Status: domain.CatalogLoading},
		seq:     1,
		subs:    make(map[uint64]chan domain.CatalogState),
	}

	go s.fetch(1)

	return s
}

// Snapshot returns the current catalog state. The product slice is a copy;
// callers may hold it across store transitions.
func (s *Store) Snapshot() domain.CatalogState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Refresh re-enters Loading and issues a new fetch. Callable from any state,
// including while a fetch is already in flight; the newest fetch wins.
func (s *Store) Refresh() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	s.seq++
	seq := s.seq
	s.state.Status = domain.CatalogLoading
	s.state.Err = ""
	s.broadcastLocked()
	s.mu.Unlock()

	go s.fetch(seq)
}

// Subscribe registers a consumer for state transitions. The returned channel
// carries the current state immediately and then every transition; it holds
// at most one pending state, so a slow consumer sees the latest rather than
// a backlog. The unsubscribe function is idempotent and closes the channel.
func (s *Store) Subscribe() (<-chan domain.CatalogState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan domain.CatalogState, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.snapshotLocked()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
}

// DecrementStock atomically decrements one unit of the product's stock and
// broadcasts the new state to every subscriber. The decrement is local to
// the store; the remote collection stays authoritative for the amount seen
// at the next fetch.
func (s *Store) DecrementStock(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status != domain.CatalogReady {
		return domain.Invalid("catalog.decrement", "el catálogo no está disponible")
	}

	for i := range s.state.Products {
		if s.state.Products[i].ID != id {
			continue
		}
		if s.state.Products[i].CantidadDisponible <= 0 {
			return domain.Conflict("catalog.decrement", "Agotado")
		}
		s.state.Products[i].CantidadDisponible--
		s.broadcastLocked()
		return nil
	}

	return domain.NotFound("catalog.decrement", "product", id)
}

// Close cancels any in-flight fetch and closes all subscriber channels.
func (s *Store) Close() {
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// fetch runs one gateway listing and applies the result iff this fetch is
// still the latest issued.
func (s *Store) fetch(seq uint64) {
	products, err := s.fetcher.ListProducts(s.ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if seq != s.seq {
		s.logger.Debug("discarding stale catalog fetch", "seq", seq, "latest", s.seq)
		return
	}

	if err != nil {
		s.logger.Error("catalog fetch failed", "seq", seq, "error", err)
		s.state = domain.CatalogState{
			Status:   domain.CatalogFailed,
			Products: s.state.Products,
			Err:      FailedMessage,
		}
	} else {
		s.logger.Info("catalog fetched", "seq", seq, "products", len(products))
		s.state = domain.CatalogState{
			Status:   domain.CatalogReady,
			Products: products,
		}
	}

	s.broadcastLocked()
}

// snapshotLocked copies the state for handoff outside the lock.
func (s *Store) snapshotLocked() domain.CatalogState {
	snap := s.state
	if s.state.Products != nil {
		snap.Products = make([]domain.Product, len(s.state.Products))
		copy(snap.Products, s.state.Products)
	}
	return snap
}

// broadcastLocked pushes the current state to every subscriber without
// blocking: a full buffer is drained so the channel always holds the latest.
func (s *Store) broadcastLocked() {
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
