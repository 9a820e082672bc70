package storefront

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/vitrina/vitrina/internal/detail"
	"github.com/vitrina/vitrina/internal/domain"
	"github.com/vitrina/vitrina/internal/pricing"
)

// DetailResolver resolves a product id against the current catalog.
type DetailResolver interface {
	Resolve(id string) detail.Resolution
}

// ProductDetailHandler handles the product detail page
type ProductDetailHandler struct {
	binder DetailResolver
	logger *slog.Logger
}

// NewProductDetailHandler creates a new product detail handler
func NewProductDetailHandler(binder DetailResolver, logger *slog.Logger) *ProductDetailHandler {
	return &ProductDetailHandler{
		binder: binder,
		logger: logger,
	}
}

// ServeHTTP handles GET /product/{id}
func (h *ProductDetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Producto no especificado", http.StatusBadRequest)
		return
	}

	res := h.binder.Resolve(id)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	switch res.Status {
	case detail.StatusLoading:
		fmt.Fprint(w, `
			<!DOCTYPE html>
			<html>
			<head><title>Vitrina</title><meta http-equiv="refresh" content="2"></head>
			<body><p>Cargando producto...</p></body>
			</html>
		`)
	case detail.StatusError:
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, `
			<!DOCTYPE html>
			<html>
			<head><title>Vitrina</title></head>
			<body>
				<p class="error">%s</p>
				<form method="post" action="/refresh"><button type="submit">Reintentar</button></form>
			</body>
			</html>
		`, template.HTMLEscapeString(res.Message))
	case detail.StatusNotFound:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `
			<!DOCTYPE html>
			<html>
			<head><title>Producto no encontrado - Vitrina</title></head>
			<body>
				<h1>Producto no encontrado</h1>
				<p><a href="/">Volver al catálogo</a></p>
			</body>
			</html>
		`)
	default:
		h.renderProduct(w, res.Product)
	}
}

func (h *ProductDetailHandler) renderProduct(w http.ResponseWriter, p domain.Product) {
	final := pricing.FinalPrice(p.Precio, p.PorcentajeOferta)

	// TODO: Render template with product
	// For now, return simple HTML stub
	fmt.Fprintf(w, `
		<!DOCTYPE html>
		<html>
		<head><title>%s - Vitrina</title></head>
		<body>
			<h1>%s</h1>
			<img src="%s" alt="%s" width="360">
	`, template.HTMLEscapeString(p.Nombre), template.HTMLEscapeString(p.Nombre),
		p.Imagen, template.HTMLEscapeString(p.Nombre))

	if p.PorcentajeOferta.IsPositive() {
		fmt.Fprintf(w, `<p><s>$%s</s> <strong>$%s</strong> <span class="badge">-%s%%</span></p>`,
			p.Precio.StringFixed(2), final.StringFixed(2), p.PorcentajeOferta.String())
	} else {
		fmt.Fprintf(w, `<p><strong>$%s</strong></p>`, final.StringFixed(2))
	}

	fmt.Fprintf(w, `<p>%s</p>`, pricing.AvailabilityLabel(p.CantidadDisponible))

	h.renderDetalles(w, p.Detalles)

	if p.CantidadDisponible > 0 {
		fmt.Fprintf(w, `<form method="post" action="/product/%s/buy"><button type="submit">Comprar</button></form>`, p.ID)
	}

	fmt.Fprint(w, `
			<p><a href="/">Volver al catálogo</a></p>
		</body>
		</html>
	`)
}

func (h *ProductDetailHandler) renderDetalles(w http.ResponseWriter, d domain.Detalles) {
	switch d.Kind() {
	case domain.DetallesAttributes:
		attrs := d.Attributes()
		fmt.Fprint(w, `<h2>Detalles</h2><dl>`)
		for _, name := range d.AttributeNames() {
			fmt.Fprintf(w, `<dt>%s</dt><dd>%s</dd>`,
				template.HTMLEscapeString(name), template.HTMLEscapeString(attrs[name]))
		}
		fmt.Fprint(w, `</dl>`)
	case domain.DetallesNotes:
		fmt.Fprint(w, `<h2>Detalles</h2><ul>`)
		for _, note := range d.Notes() {
			fmt.Fprintf(w, `<li>%s</li>`, template.HTMLEscapeString(note))
		}
		fmt.Fprint(w, `</ul>`)
	}
}

// StockDecrementer reserves one unit of a product.
type StockDecrementer interface {
	DecrementStock(id string) error
}

// BuyHandler handles the buy button on the detail page
type BuyHandler struct {
	catalog StockDecrementer
	logger  *slog.Logger
}

// NewBuyHandler creates a new buy handler
func NewBuyHandler(catalog StockDecrementer, logger *slog.Logger) *BuyHandler {
	return &BuyHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ServeHTTP handles POST /product/{id}/buy
func (h *BuyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Producto no especificado", http.StatusBadRequest)
		return
	}

	if err := h.catalog.DecrementStock(id); err != nil {
		switch domain.ErrorCode(err) {
		case domain.ENOTFOUND:
			http.Error(w, "Producto no encontrado", http.StatusNotFound)
		case domain.ECONFLICT:
			h.logger.Info("buy rejected, out of stock", "product_id", id)
			http.Redirect(w, r, "/product/"+id, http.StatusSeeOther)
		default:
			h.logger.Error("buy failed", "product_id", id, "error", err)
			http.Error(w, domain.ErrorMessage(err), http.StatusServiceUnavailable)
		}
		return
	}

	h.logger.Info("stock decremented", "product_id", id)
	http.Redirect(w, r, "/product/"+id, http.StatusSeeOther)
}
