package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitrina/vitrina/internal/domain"
)

// PostgresStore implements Store on a Postgres table acting as the products
// collection: one jsonb payload per row, keyed by a database-assigned uuid.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Compile-time check that PostgresStore implements Store.
var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a Postgres-backed document store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// ListDocuments reads every document in the products collection, in whatever
// order the database returns rows.
func (s *PostgresStore) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, fields FROM products`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var (
			id      string
			payload []byte
		)
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}

		var fields domain.ProductFields
		if err := json.Unmarshal(payload, &fields); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
		}

		docs = append(docs, Document{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read document rows: %w", err)
	}

	return docs, nil
}

// CreateDocument inserts a new document and returns the assigned key.
func (s *PostgresStore) CreateDocument(ctx context.Context, fields domain.ProductFields) (string, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document payload: %w", err)
	}

	var id string
	err = s.pool.QueryRow(ctx,
		`INSERT INTO products (fields) VALUES ($1) RETURNING id`,
		payload,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create document: %w", err)
	}

	return id, nil
}
