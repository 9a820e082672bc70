// Package ingest drives product creation: validate the draft, hand it to the
// gateway for the upload-then-persist sequence, then trigger one catalog
// refresh so every consumer sees the new product.
package ingest

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/vitrina/vitrina/internal/domain"
)

// ProductAdder is the slice of the gateway the pipeline needs.
type ProductAdder interface {
	AddProduct(ctx context.Context, draft domain.DraftProduct) (string, error)
}

// Refresher triggers a catalog refresh after a successful ingest.
type Refresher interface {
	Refresh()
}

// Pipeline validates drafts and runs them through the gateway.
type Pipeline struct {
	adder     ProductAdder
	refresher Refresher
	validate  *validator.Validate
	logger    *slog.Logger
}

func New(adder ProductAdder, refresher Refresher, logger *slog.Logger) *Pipeline {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(draftRules, domain.DraftProduct{})

	return &Pipeline{
		adder:     adder,
		refresher: refresher,
		validate:  v,
		logger:    logger,
	}
}

// Add runs one creation attempt. Validation failures return a
// *domain.ValidationError before anything touches the network. On success
// exactly one refresh is triggered; on gateway failure none is, and the
// typed gateway error passes through for the caller to present.
func (p *Pipeline) Add(ctx context.Context, draft domain.DraftProduct) (string, error) {
	if err := p.validateDraft(draft); err != nil {
		return "", err
	}

	id, err := p.adder.AddProduct(ctx, draft)
	if err != nil {
		p.logger.Error("product ingest failed", "nombre", draft.Nombre, "error", err)
		return "", err
	}

	p.logger.Info("product ingested", "id", id, "nombre", draft.Nombre)
	p.refresher.Refresh()

	return id, nil
}

// Field messages shown to the operator, keyed by struct field.
var draftMessages = map[string]string{
	"Nombre":             "El nombre es obligatorio.",
	"Precio":             "El precio debe ser mayor que cero.",
	"PorcentajeOferta":   "El porcentaje de oferta debe estar entre 0 y 100.",
	"CantidadDisponible": "La cantidad disponible no puede ser negativa.",
	"Image":              "La imagen es obligatoria.",
}

// Document field names for the error map, keyed by struct field.
var draftFieldNames = map[string]string{
	"Nombre":             "nombre",
	"Precio":             "precio",
	"PorcentajeOferta":   "porcentajeOferta",
	"CantidadDisponible": "cantidadDisponible",
	"Image":              "imagen",
}

func (p *Pipeline) validateDraft(draft domain.DraftProduct) error {
	err := p.validate.Struct(draft)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.Internal(err, "ingest.validate", "error de validación")
	}

	ve := &domain.ValidationError{
		Op:     "ingest.validate",
		Fields: make(map[string]string, len(fieldErrs)),
	}
	for _, fe := range fieldErrs {
		name := draftFieldNames[fe.StructField()]
		if name == "" {
			name = fe.StructField()
		}
		msg := draftMessages[fe.StructField()]
		if msg == "" {
			msg = "Valor inválido."
		}
		ve.Fields[name] = msg
	}

	return ve
}

var oneHundred = decimal.NewFromInt(100)

// draftRules covers what struct tags cannot: decimal bounds and the image
// payload.
func draftRules(sl validator.StructLevel) {
	draft := sl.Current().Interface().(domain.DraftProduct)

	if !draft.Precio.IsPositive() {
		sl.ReportError(draft.Precio, "Precio", "Precio", "gt_zero", "")
	}
	if draft.PorcentajeOferta.IsNegative() || draft.PorcentajeOferta.GreaterThan(oneHundred) {
		sl.ReportError(draft.PorcentajeOferta, "PorcentajeOferta", "PorcentajeOferta", "pct_range", "")
	}
	if draft.Image.Filename == "" || len(draft.Image.Data) == 0 {
		sl.ReportError(draft.Image, "Image", "Image", "image_required", "")
	}
}
