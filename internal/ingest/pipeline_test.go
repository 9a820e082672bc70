package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrina/vitrina/internal/domain"
	"github.com/vitrina/vitrina/internal/gateway"
)

type mockAdder struct {
	addFn func(ctx context.Context, draft domain.DraftProduct) (string, error)
	calls int
}

func (m *mockAdder) AddProduct(ctx context.Context, draft domain.DraftProduct) (string, error) {
	m.calls++
	return m.addFn(ctx, draft)
}

type mockRefresher struct {
	calls int
}

func (m *mockRefresher) Refresh() { m.calls++ }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validDraft() domain.DraftProduct {
	return domain.DraftProduct{
		Nombre:             "Café de Altura",
		Precio:             decimal.RequireFromString("1500.50"),
		PorcentajeOferta:   decimal.NewFromInt(10),
		CantidadDisponible: 5,
		Image: domain.ImagePayload{
			Filename:    "cafe.jpg",
			ContentType: "image/jpeg",
			Data:        []byte{0xff, 0xd8},
		},
	}
}

func TestPipelineAdd(t *testing.T) {
	adder := &mockAdder{
		addFn: func(ctx context.Context, draft domain.DraftProduct) (string, error) {
			assert.Equal(t, "Café de Altura", draft.Nombre)
			return "doc-1", nil
		},
	}
	refresher := &mockRefresher{}
	pipeline := New(adder, refresher, testLogger())

	id, err := pipeline.Add(context.Background(), validDraft())

	require.NoError(t, err)
	assert.Equal(t, "doc-1", id)
	assert.Equal(t, 1, adder.calls)
	assert.Equal(t, 1, refresher.calls, "exactly one refresh after success")
}

func TestPipelineValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*domain.DraftProduct)
		wantField string
	}{
		{
			name:      "empty name",
			mutate:    func(d *domain.DraftProduct) { d.Nombre = "" },
			wantField: "nombre",
		},
		{
			name:      "zero price",
			mutate:    func(d *domain.DraftProduct) { d.Precio = decimal.Zero },
			wantField: "precio",
		},
		{
			name:      "negative price",
			mutate:    func(d *domain.DraftProduct) { d.Precio = decimal.NewFromInt(-10) },
			wantField: "precio",
		},
		{
			name:      "discount above 100",
			mutate:    func(d *domain.DraftProduct) { d.PorcentajeOferta = decimal.NewFromInt(150) },
			wantField: "porcentajeOferta",
		},
		{
			name:      "negative discount",
			mutate:    func(d *domain.DraftProduct) { d.PorcentajeOferta = decimal.NewFromInt(-1) },
			wantField: "porcentajeOferta",
		},
		{
			name:      "negative stock",
			mutate:    func(d *domain.DraftProduct) { d.CantidadDisponible = -1 },
			wantField: "cantidadDisponible",
		},
		{
			name:      "missing image",
			mutate:    func(d *domain.DraftProduct) { d.Image = domain.ImagePayload{} },
			wantField: "imagen",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adder := &mockAdder{
				addFn: func(ctx context.Context, draft domain.DraftProduct) (string, error) {
					return "doc-1", nil
				},
			}
			refresher := &mockRefresher{}
			pipeline := New(adder, refresher, testLogger())

			draft := validDraft()
			tt.mutate(&draft)

			_, err := pipeline.Add(context.Background(), draft)

			require.True(t, domain.IsValidationError(err), "expected validation error, got %v", err)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.wantField)
			assert.Equal(t, 0, adder.calls, "validation must precede any network call")
			assert.Equal(t, 0, refresher.calls)
		})
	}
}

func TestPipelineCollectsAllFieldErrors(t *testing.T) {
	pipeline := New(&mockAdder{}, &mockRefresher{}, testLogger())

	_, err := pipeline.Add(context.Background(), domain.DraftProduct{
		Precio:             decimal.Zero,
		CantidadDisponible: -1,
	})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "nombre")
	assert.Contains(t, ve.Fields, "precio")
	assert.Contains(t, ve.Fields, "cantidadDisponible")
	assert.Contains(t, ve.Fields, "imagen")
}

func TestPipelineGatewayFailure(t *testing.T) {
	persistErr := &gateway.PersistError{
		Op:       "gateway.AddProduct",
		AssetURL: "https://assets.example.com/products/x.jpg",
		Err:      errors.New("insert failed"),
	}
	adder := &mockAdder{
		addFn: func(ctx context.Context, draft domain.DraftProduct) (string, error) {
			return "", persistErr
		},
	}
	refresher := &mockRefresher{}
	pipeline := New(adder, refresher, testLogger())

	_, err := pipeline.Add(context.Background(), validDraft())

	var pe *gateway.PersistError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, persistErr.AssetURL, pe.AssetURL)
	assert.Equal(t, 0, refresher.calls, "no refresh on failure")
}
