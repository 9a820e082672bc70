package gateway_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrina/vitrina/internal/docstore"
	"github.com/vitrina/vitrina/internal/domain"
	"github.com/vitrina/vitrina/internal/gateway"
)

// mockStore implements docstore.Store for testing.
type mockStore struct {
	listDocumentsFunc  func(ctx context.Context) ([]docstore.Document, error)
	createDocumentFunc func(ctx context.Context, fields domain.ProductFields) (string, error)
	createCalls        int
}

func (m *mockStore) ListDocuments(ctx context.Context) ([]docstore.Document, error) {
	if m.listDocumentsFunc != nil {
		return m.listDocumentsFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) CreateDocument(ctx context.Context, fields domain.ProductFields) (string, error) {
	m.createCalls++
	if m.createDocumentFunc != nil {
		return m.createDocumentFunc(ctx, fields)
	}
	return "", nil
}

// mockHost implements assethost.Host for testing.
type mockHost struct {
	uploadFunc  func(ctx context.Context, image domain.ImagePayload) (string, error)
	uploadCalls int
}

func (m *mockHost) Upload(ctx context.Context, image domain.ImagePayload) (string, error) {
	m.uploadCalls++
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, image)
	}
	return "", nil
}

func testDraft() domain.DraftProduct {
	return domain.DraftProduct{
		Nombre:             "Watch",
		Precio:             decimal.RequireFromString("200"),
		PorcentajeOferta:   decimal.RequireFromString("10"),
		CantidadDisponible: 5,
		Image: domain.ImagePayload{
			Filename:    "watch.png",
			ContentType: "image/png",
			Data:        []byte{1, 2, 3},
		},
	}
}

func TestRemoteGateway_ListProducts_DecoratesIDs(t *testing.T) {
	docs := &mockStore{
		listDocumentsFunc: func(ctx context.Context) ([]docstore.Document, error) {
			return []docstore.Document{
				{ID: "a1", Fields: domain.ProductFields{Nombre: "Watch", Precio: decimal.NewFromInt(200)}},
				{ID: "b2", Fields: domain.ProductFields{Nombre: "Phone", Precio: decimal.NewFromInt(999)}},
			}, nil
		},
	}

	gw := gateway.New(docs, &mockHost{})
	products, err := gw.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "a1", products[0].ID)
	assert.Equal(t, "Watch", products[0].Nombre)
	assert.Equal(t, "b2", products[1].ID)
}

func TestRemoteGateway_ListProducts_FetchError(t *testing.T) {
	docs := &mockStore{
		listDocumentsFunc: func(ctx context.Context) ([]docstore.Document, error) {
			return nil, errors.New("connection refused")
		},
	}

	gw := gateway.New(docs, &mockHost{})
	_, err := gw.ListProducts(context.Background())

	var fetchErr *gateway.FetchError
	require.ErrorAs(t, err, &fetchErr)
}

func TestRemoteGateway_AddProduct_ThreadsAssetURL(t *testing.T) {
	var persisted domain.ProductFields
	docs := &mockStore{
		createDocumentFunc: func(ctx context.Context, fields domain.ProductFields) (string, error) {
			persisted = fields
			return "new-id", nil
		},
	}
	host := &mockHost{
		uploadFunc: func(ctx context.Context, image domain.ImagePayload) (string, error) {
			return "https://assets.example/u.png", nil
		},
	}

	gw := gateway.New(docs, host)
	id, err := gw.AddProduct(context.Background(), testDraft())
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)

	assert.Equal(t, "https://assets.example/u.png", persisted.Imagen)
	assert.Equal(t, "Watch", persisted.Nombre)
	assert.True(t, decimal.RequireFromString("200").Equal(persisted.Precio))
	assert.True(t, decimal.RequireFromString("10").Equal(persisted.PorcentajeOferta))
	assert.Equal(t, 5, persisted.CantidadDisponible)
}

func TestRemoteGateway_AddProduct_UploadFailureSkipsPersist(t *testing.T) {
	docs := &mockStore{}
	host := &mockHost{
		uploadFunc: func(ctx context.Context, image domain.ImagePayload) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}

	gw := gateway.New(docs, host)
	_, err := gw.AddProduct(context.Background(), testDraft())

	var uploadErr *gateway.UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, 0, docs.createCalls, "no document write after a failed upload")
}

func TestRemoteGateway_AddProduct_PersistFailureReportsOrphan(t *testing.T) {
	docs := &mockStore{
		createDocumentFunc: func(ctx context.Context, fields domain.ProductFields) (string, error) {
			return "", errors.New("store unavailable")
		},
	}
	host := &mockHost{
		uploadFunc: func(ctx context.Context, image domain.ImagePayload) (string, error) {
			return "https://assets.example/orphan.png", nil
		},
	}

	gw := gateway.New(docs, host)
	_, err := gw.AddProduct(context.Background(), testDraft())

	var persistErr *gateway.PersistError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, "https://assets.example/orphan.png", persistErr.AssetURL,
		"the orphaned asset URL is surfaced, not silently dropped")
	assert.Equal(t, 1, host.uploadCalls)
}
