// Package gateway is the single boundary to both remote collaborators: the
// document store holding the products collection and the asset host serving
// product images. It is stateless and caches nothing; every transport error
// is converted into one of the package's typed failures before it crosses
// into the store or the ingest pipeline.
package gateway

import (
	"context"

	"github.com/vitrina/vitrina/internal/assethost"
	"github.com/vitrina/vitrina/internal/docstore"
	"github.com/vitrina/vitrina/internal/domain"
)

// CatalogGateway provides remote catalog operations.
type CatalogGateway interface {
	// ListProducts reads all documents from the products collection,
	// decorating each with its store-assigned identifier. The collaborator
	// provides no ordering guarantee and none is invented here.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// UploadImage sends the binary to the asset host and returns the
	// public URL of the stored image.
	UploadImage(ctx context.Context, image domain.ImagePayload) (string, error)

	// CreateDocument writes a new product document and returns the
	// assigned identifier.
	CreateDocument(ctx context.Context, fields domain.ProductFields) (string, error)

	// AddProduct composes UploadImage then CreateDocument, threading the
	// resulting URL into the persisted fields. Two-phase and non-atomic:
	// a persist failure after a successful upload orphans the asset.
	AddProduct(ctx context.Context, draft domain.DraftProduct) (string, error)
}

// RemoteGateway implements CatalogGateway over a document store and an
// asset host.
type RemoteGateway struct {
	docs   docstore.Store
	assets assethost.Host
}

// Compile-time check that RemoteGateway implements CatalogGateway.
var _ CatalogGateway = (*RemoteGateway)(nil)

// New creates a gateway over the given collaborators.
func New(docs docstore.Store, assets assethost.Host) *RemoteGateway {
	return &RemoteGateway{
		docs:   docs,
		assets: assets,
	}
}

// ListProducts reads the full products collection.
func (g *RemoteGateway) ListProducts(ctx context.Context) ([]domain.Product, error) {
	docs, err := g.docs.ListDocuments(ctx)
	if err != nil {
		return nil, &FetchError{Op: "gateway.list", Err: err}
	}

	products := make([]domain.Product, len(docs))
	for i, doc := range docs {
		products[i] = doc.Fields.Decorate(doc.ID)
	}

	return products, nil
}

// UploadImage stores the image on the asset host.
func (g *RemoteGateway) UploadImage(ctx context.Context, image domain.ImagePayload) (string, error) {
	url, err := g.assets.Upload(ctx, image)
	if err != nil {
		return "", &UploadError{Op: "gateway.upload", Err: err}
	}
	return url, nil
}

// CreateDocument writes a new product document.
func (g *RemoteGateway) CreateDocument(ctx context.Context, fields domain.ProductFields) (string, error) {
	id, err := g.docs.CreateDocument(ctx, fields)
	if err != nil {
		return "", &PersistError{Op: "gateway.create", Err: err}
	}
	return id, nil
}

// AddProduct uploads the draft's image, then persists the document with the
// returned URL as imagen. On persist failure the uploaded asset is not
// retracted; the returned PersistError carries its URL.
func (g *RemoteGateway) AddProduct(ctx context.Context, draft domain.DraftProduct) (string, error) {
	url, err := g.assets.Upload(ctx, draft.Image)
	if err != nil {
		return "", &UploadError{Op: "gateway.add", Err: err}
	}

	id, err := g.docs.CreateDocument(ctx, draft.Fields(url))
	if err != nil {
		return "", &PersistError{Op: "gateway.add", AssetURL: url, Err: err}
	}

	return id, nil
}
