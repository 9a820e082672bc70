// Package storefront holds the customer-facing handlers. They render from
// the shared catalog state only; no handler talks to the gateway directly.
package storefront

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/vitrina/vitrina/internal/domain"
	"github.com/vitrina/vitrina/internal/pricing"
)

// CatalogReader is the slice of the catalog store the list page needs.
type CatalogReader interface {
	Snapshot() domain.CatalogState
}

// CatalogHandler handles the catalog listing page
type CatalogHandler struct {
	catalog CatalogReader
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog listing handler
func NewCatalogHandler(catalog CatalogReader, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ServeHTTP handles GET /
func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state := h.catalog.Snapshot()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	// TODO: Render template with catalog state
	// For now, return simple HTML stub
	fmt.Fprint(w, `
		<!DOCTYPE html>
		<html>
		<head><title>Vitrina</title></head>
		<body>
			<h1>Productos</h1>
	`)

	switch state.Status {
	case domain.CatalogLoading:
		fmt.Fprint(w, `<p>Cargando productos...</p>`)
	case domain.CatalogFailed:
		fmt.Fprintf(w, `
			<p class="error">%s</p>
			<form method="post" action="/refresh"><button type="submit">Reintentar</button></form>
		`, template.HTMLEscapeString(state.Err))
	default:
		h.renderProducts(w, state.Products)
	}

	fmt.Fprint(w, `
		</body>
		</html>
	`)
}

func (h *CatalogHandler) renderProducts(w http.ResponseWriter, products []domain.Product) {
	if len(products) == 0 {
		fmt.Fprint(w, `<p>No hay productos disponibles.</p>`)
		return
	}

	fmt.Fprint(w, `<ul>`)
	for _, p := range products {
		final := pricing.FinalPrice(p.Precio, p.PorcentajeOferta)

		fmt.Fprintf(w, `<li><a href="/product/%s"><img src="%s" alt="%s" width="120">%s</a> `,
			p.ID, p.Imagen, template.HTMLEscapeString(p.Nombre), template.HTMLEscapeString(p.Nombre))

		if p.PorcentajeOferta.IsPositive() {
			fmt.Fprintf(w, `<s>$%s</s> <strong>$%s</strong> <span class="badge">-%s%%</span>`,
				p.Precio.StringFixed(2), final.StringFixed(2), p.PorcentajeOferta.String())
		} else {
			fmt.Fprintf(w, `<strong>$%s</strong>`, final.StringFixed(2))
		}

		fmt.Fprintf(w, ` <em>%s</em></li>`, pricing.AvailabilityLabel(p.CantidadDisponible))
	}
	fmt.Fprint(w, `</ul>`)
}

// Refresher triggers a new catalog fetch.
type Refresher interface {
	Refresh()
}

// RefreshHandler handles the retry button on a failed catalog
type RefreshHandler struct {
	catalog Refresher
	logger  *slog.Logger
}

// NewRefreshHandler creates a new refresh handler
func NewRefreshHandler(catalog Refresher, logger *slog.Logger) *RefreshHandler {
	return &RefreshHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ServeHTTP handles POST /refresh
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("catalog refresh requested", "remote", r.RemoteAddr)
	h.catalog.Refresh()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
