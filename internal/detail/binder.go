// Package detail resolves a single product view out of the shared catalog
// state. Resolution is pure; Binder layers a live subscription on top so a
// detail view tracks catalog transitions.
package detail

import (
	"context"

	"github.com/vitrina/vitrina/internal/domain"
)

// Status is the outcome of resolving one product against the catalog.
type Status string

const (
	// StatusLoading means the catalog has no result yet.
	StatusLoading Status = "loading"
	// StatusError means the catalog fetch failed; Message carries the
	// user-facing text.
	StatusError Status = "error"
	// StatusNotFound means the catalog loaded but has no such product.
	StatusNotFound Status = "not_found"
	// StatusFound means Product holds the resolved product.
	StatusFound Status = "found"
)

// Resolution is the detail view's rendering input. Product is set only when
// Status is StatusFound; Message only when StatusError.
type Resolution struct {
	Status  Status
	Product domain.Product
	Message string
}

// Resolve maps one catalog state to a detail resolution for the given id.
// A catalog that is loading resolves to loading even if a stale product
// list is present; absence is only reported against a Ready catalog.
func Resolve(state domain.CatalogState, id string) Resolution {
	switch state.Status {
	case domain.CatalogLoading:
		return Resolution{Status: StatusLoading}
	case domain.CatalogFailed:
		return Resolution{Status: StatusError, Message: state.Err}
	}

	if product, ok := state.Find(id); ok {
		return Resolution{Status: StatusFound, Product: product}
	}
	return Resolution{Status: StatusNotFound}
}

// CatalogSource is the slice of the catalog store the binder needs.
type CatalogSource interface {
	Snapshot() domain.CatalogState
	Subscribe() (<-chan domain.CatalogState, func())
}

// Binder resolves product details against a live catalog source.
type Binder struct {
	source CatalogSource
}

func NewBinder(source CatalogSource) *Binder {
	return &Binder{source: source}
}

// Resolve resolves id against the current catalog snapshot.
func (b *Binder) Resolve(id string) Resolution {
	return Resolve(b.source.Snapshot(), id)
}

// Watch emits a resolution for the current state and then one per catalog
// transition until ctx is done or the source closes the subscription. The
// channel is closed on exit.
func (b *Binder) Watch(ctx context.Context, id string) <-chan Resolution {
	out := make(chan Resolution, 1)
	states, cancel := b.source.Subscribe()

	go func() {
		defer close(out)
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case state, ok := <-states:
				if !ok {
					return
				}
				select {
				case out <- Resolve(state, id):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
