// Package admin holds the operator-facing handlers. Product creation posts
// a multipart form that flows through the ingest pipeline.
package admin

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vitrina/vitrina/internal/domain"
	"github.com/vitrina/vitrina/internal/gateway"
)

// ProductFormHandler handles the new-product form page
type ProductFormHandler struct{}

// NewProductFormHandler creates a new product form handler
func NewProductFormHandler() *ProductFormHandler {
	return &ProductFormHandler{}
}

// ServeHTTP handles GET /admin/products/new
func (h *ProductFormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderProductForm(w, nil, nil)
}

// renderProductForm renders the product form, optionally echoing submitted
// values and per-field errors back to the operator.
func renderProductForm(w io.Writer, values map[string]string, fieldErrors map[string]string) {
	get := func(name string) string {
		return template.HTMLEscapeString(values[name])
	}
	errFor := func(name string) string {
		if msg := fieldErrors[name]; msg != "" {
			return fmt.Sprintf(`<p class="field-error">%s</p>`, template.HTMLEscapeString(msg))
		}
		return ""
	}

	// TODO: Render template for the form
	// For now, return simple HTML stub
	fmt.Fprintf(w, `
		<!DOCTYPE html>
		<html>
		<head><title>Nuevo producto - Vitrina</title></head>
		<body>
			<h1>Nuevo producto</h1>
			<form method="post" action="/admin/products" enctype="multipart/form-data">
				<label>Nombre <input type="text" name="nombre" value="%s"></label>%s
				<label>Precio <input type="text" name="precio" value="%s"></label>%s
				<label>Porcentaje de oferta <input type="text" name="porcentajeOferta" value="%s"></label>%s
				<label>Cantidad disponible <input type="number" name="cantidadDisponible" value="%s"></label>%s
				<label>Detalles (una nota por línea) <textarea name="detalles">%s</textarea></label>
				<label>Imagen <input type="file" name="imagen" accept="image/*"></label>%s
				<button type="submit">Crear</button>
			</form>
		</body>
		</html>
	`,
		get("nombre"), errFor("nombre"),
		get("precio"), errFor("precio"),
		get("porcentajeOferta"), errFor("porcentajeOferta"),
		get("cantidadDisponible"), errFor("cantidadDisponible"),
		get("detalles"), errFor("imagen"),
	)
}

// ProductIngester is the slice of the pipeline the create handler needs.
type ProductIngester interface {
	Add(ctx context.Context, draft domain.DraftProduct) (string, error)
}

// ProductCreateHandler handles product creation submissions
type ProductCreateHandler struct {
	pipeline ProductIngester
	logger   *slog.Logger
}

// NewProductCreateHandler creates a new product create handler
func NewProductCreateHandler(pipeline ProductIngester, logger *slog.Logger) *ProductCreateHandler {
	return &ProductCreateHandler{
		pipeline: pipeline,
		logger:   logger,
	}
}

// maxImageMemory bounds the multipart parse buffer; larger parts spill to
// temp files.
const maxImageMemory = 8 << 20

// ServeHTTP handles POST /admin/products
func (h *ProductCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageMemory); err != nil {
		http.Error(w, "Formulario inválido", http.StatusBadRequest)
		return
	}

	draft, values, parseErrors := h.parseDraft(r)
	if len(parseErrors) > 0 {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		renderProductForm(w, values, parseErrors)
		return
	}

	_, err := h.pipeline.Add(r.Context(), draft)
	if err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		renderProductForm(w, values, ve.Fields)
		return
	}

	var pe *gateway.PersistError
	if errors.As(err, &pe) {
		// The image is already on the asset host with nothing referencing
		// it; keep the URL in the logs so it can be reclaimed.
		h.logger.Error("product persist failed, asset orphaned",
			"asset_url", pe.AssetURL, "error", err)
		http.Error(w, "No se pudo guardar el producto.", http.StatusBadGateway)
		return
	}

	h.logger.Error("product creation failed", "error", err)
	http.Error(w, "No se pudo crear el producto.", http.StatusBadGateway)
}

// parseDraft builds a draft from the form. Unparseable numbers are reported
// per field; validation proper happens in the pipeline.
func (h *ProductCreateHandler) parseDraft(r *http.Request) (domain.DraftProduct, map[string]string, map[string]string) {
	values := map[string]string{
		"nombre":             strings.TrimSpace(r.FormValue("nombre")),
		"precio":             strings.TrimSpace(r.FormValue("precio")),
		"porcentajeOferta":   strings.TrimSpace(r.FormValue("porcentajeOferta")),
		"cantidadDisponible": strings.TrimSpace(r.FormValue("cantidadDisponible")),
		"detalles":           r.FormValue("detalles"),
	}
	parseErrors := make(map[string]string)

	draft := domain.DraftProduct{Nombre: values["nombre"]}

	if values["precio"] != "" {
		precio, err := decimal.NewFromString(values["precio"])
		if err != nil {
			parseErrors["precio"] = "El precio debe ser un número."
		} else {
			draft.Precio = precio
		}
	}

	if values["porcentajeOferta"] != "" {
		oferta, err := decimal.NewFromString(values["porcentajeOferta"])
		if err != nil {
			parseErrors["porcentajeOferta"] = "El porcentaje de oferta debe ser un número."
		} else {
			draft.PorcentajeOferta = oferta
		}
	}

	if values["cantidadDisponible"] != "" {
		cantidad, err := strconv.Atoi(values["cantidadDisponible"])
		if err != nil {
			parseErrors["cantidadDisponible"] = "La cantidad disponible debe ser un número entero."
		} else {
			draft.CantidadDisponible = cantidad
		}
	}

	var notes []string
	for _, line := range strings.Split(values["detalles"], "\n") {
		if line = strings.TrimSpace(line); line != "" {
			notes = append(notes, line)
		}
	}
	draft.Detalles = domain.NoteDetails(notes)

	file, header, err := r.FormFile("imagen")
	if err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			parseErrors["imagen"] = "No se pudo leer la imagen."
		} else {
			draft.Image = domain.ImagePayload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			}
		}
	}

	return draft, values, parseErrors
}
