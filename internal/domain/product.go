package domain

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// PRODUCT DOMAIN TYPES
// =============================================================================

// Product is a catalog entry as held by the document store, decorated with
// the store-assigned identifier. Field names mirror the persisted document.
type Product struct {
	// ID is the opaque key assigned by the document store. Never present
	// inside the stored document itself.
	ID string

	// Nombre is the display name. Non-empty for any persisted product.
	Nombre string

	// Imagen is the public URL of the hosted image. Empty when the product
	// has no image.
	Imagen string

	// Precio is the base price, >= 0.
	Precio decimal.Decimal

	// PorcentajeOferta is the discount percentage in [0,100]. Zero when the
	// document omits it.
	PorcentajeOferta decimal.Decimal

	// CantidadDisponible is the stock count, >= 0.
	CantidadDisponible int

	// Detalles holds free-form product details. See Detalles for the shapes.
	Detalles Detalles
}

// ProductFields is the persisted document payload: every Product field except
// the store-assigned ID. This is the exact JSON shape written to and read
// from the document store.
type ProductFields struct {
	Nombre             string          `json:"nombre"`
	Imagen             string          `json:"imagen,omitempty"`
	Precio             decimal.Decimal `json:"precio"`
	PorcentajeOferta   decimal.Decimal `json:"porcentajeOferta"`
	CantidadDisponible int             `json:"cantidadDisponible"`
	Detalles           Detalles        `json:"detalles,omitzero"`
}

// Fields strips the identifier, producing the persistable document payload.
func (p Product) Fields() ProductFields {
	return ProductFields{
		Nombre:             p.Nombre,
		Imagen:             p.Imagen,
		Precio:             p.Precio,
		PorcentajeOferta:   p.PorcentajeOferta,
		CantidadDisponible: p.CantidadDisponible,
		Detalles:           p.Detalles,
	}
}

// Decorate attaches a store-assigned identifier to a document payload.
func (f ProductFields) Decorate(id string) Product {
	return Product{
		ID:                 id,
		Nombre:             f.Nombre,
		Imagen:             f.Imagen,
		Precio:             f.Precio,
		PorcentajeOferta:   f.PorcentajeOferta,
		CantidadDisponible: f.CantidadDisponible,
		Detalles:           f.Detalles,
	}
}

// =============================================================================
// DRAFT TYPES (pre-persistence)
// =============================================================================

// ImagePayload is a pending binary image selected for upload.
type ImagePayload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DraftProduct is a not-yet-persisted product plus its pending image payload.
// It exists only for the duration of one creation attempt; the ingest
// pipeline never retains it.
//
// Validation tags cover the scalar rules; decimal bounds are enforced by a
// struct-level rule registered by the ingest pipeline.
type DraftProduct struct {
	Nombre             string `validate:"required"`
	Precio             decimal.Decimal
	PorcentajeOferta   decimal.Decimal
	CantidadDisponible int `validate:"gte=0"`
	Detalles           Detalles
	Image              ImagePayload
}

// Fields builds the document payload for the draft, threading in the asset
// URL returned by the image upload.
func (d DraftProduct) Fields(imageURL string) ProductFields {
	return ProductFields{
		Nombre:             d.Nombre,
		Imagen:             imageURL,
		Precio:             d.Precio,
		PorcentajeOferta:   d.PorcentajeOferta,
		CantidadDisponible: d.CantidadDisponible,
		Detalles:           d.Detalles,
	}
}

// =============================================================================
// CATALOG STATE
// =============================================================================

// CatalogStatus is the logical state of the shared catalog.
type CatalogStatus string

const (
	CatalogLoading CatalogStatus = "loading"
	CatalogReady   CatalogStatus = "ready"
	CatalogFailed  CatalogStatus = "failed"
)

// CatalogState is the single shared snapshot every consumer renders from.
// Products keep the order the document store returned them in; that order is
// not guaranteed stable across refreshes.
type CatalogState struct {
	Status   CatalogStatus
	Products []Product
	Err      string
}

// IsLoading reports whether the latest issued fetch is still in flight.
func (s CatalogState) IsLoading() bool { return s.Status == CatalogLoading }

// Find returns the product with the given identifier, if present.
func (s CatalogState) Find(id string) (Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
