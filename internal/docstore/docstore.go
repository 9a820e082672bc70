// Package docstore talks to the external document store holding the
// products collection. Documents are keyed by a store-assigned opaque
// identifier; the payload never contains its own key.
package docstore

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitrina/vitrina/internal"
	"github.com/vitrina/vitrina/internal/domain"
)

// Document pairs a store-assigned identifier with its payload.
type Document struct {
	ID     string
	Fields domain.ProductFields
}

// Store defines the operations required of the document store.
// Implementations are stateless: no caching, no invented ordering.
type Store interface {
	// ListDocuments reads every document in the products collection.
	// The order is whatever the store returned.
	ListDocuments(ctx context.Context) ([]Document, error)

	// CreateDocument writes a new document and returns the assigned key.
	CreateDocument(ctx context.Context, fields domain.ProductFields) (string, error)
}

// New creates a Store implementation based on configuration.
// The pool is only required for the "postgres" provider and may be nil
// otherwise.
func New(cfg internal.DocstoreConfig, pool *pgxpool.Pool) (Store, error) {
	switch cfg.Provider {
	case "rest", "":
		return NewRESTStore(cfg.BaseURL, cfg.APIKey), nil
	case "postgres":
		if pool == nil {
			return nil, ErrPoolRequired
		}
		return NewPostgresStore(pool), nil
	default:
		return nil, ErrUnknownProvider(cfg.Provider)
	}
}
