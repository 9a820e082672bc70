package admin

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrina/vitrina/internal/domain"
	"github.com/vitrina/vitrina/internal/gateway"
)

type mockPipeline struct {
	addFn func(ctx context.Context, draft domain.DraftProduct) (string, error)
	calls int
}

func (m *mockPipeline) Add(ctx context.Context, draft domain.DraftProduct) (string, error) {
	m.calls++
	if m.addFn != nil {
		return m.addFn(ctx, draft)
	}
	return "doc-1", nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// productForm builds a multipart submission. A nil image omits the file part.
func productForm(t *testing.T, fields map[string]string, image []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}
	if image != nil {
		part, err := mw.CreateFormFile("imagen", "producto.jpg")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/products", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func validForm() map[string]string {
	return map[string]string{
		"nombre":             "Café de Altura",
		"precio":             "1500.50",
		"porcentajeOferta":   "10",
		"cantidadDisponible": "5",
		"detalles":           "Tueste medio\nOrigen Colombia\n",
	}
}

func TestProductFormHandler(t *testing.T) {
	handler := NewProductFormHandler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/products/new", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/admin/products"`)
	assert.Contains(t, w.Body.String(), `enctype="multipart/form-data"`)
	assert.Contains(t, w.Body.String(), `name="imagen"`)
}

func TestProductCreateHandler(t *testing.T) {
	t.Run("success redirects to catalog", func(t *testing.T) {
		var got domain.DraftProduct
		pipeline := &mockPipeline{
			addFn: func(ctx context.Context, draft domain.DraftProduct) (string, error) {
				got = draft
				return "doc-1", nil
			},
		}
		handler := NewProductCreateHandler(pipeline, testLogger())

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, productForm(t, validForm(), []byte{0xff, 0xd8, 0xff}))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))

		assert.Equal(t, "Café de Altura", got.Nombre)
		assert.Equal(t, "1500.5", got.Precio.String())
		assert.Equal(t, 5, got.CantidadDisponible)
		assert.Equal(t, domain.DetallesNotes, got.Detalles.Kind())
		assert.Equal(t, []string{"Tueste medio", "Origen Colombia"}, got.Detalles.Notes())
		assert.Equal(t, "producto.jpg", got.Image.Filename)
		assert.NotEmpty(t, got.Image.Data)
	})

	t.Run("unparseable price re-renders form without ingest", func(t *testing.T) {
		pipeline := &mockPipeline{}
		handler := NewProductCreateHandler(pipeline, testLogger())

		fields := validForm()
		fields["precio"] = "not-a-number"

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, productForm(t, fields, []byte{0x01}))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "El precio debe ser un número.")
		assert.Contains(t, w.Body.String(), `value="Café de Altura"`, "submitted values echoed back")
		assert.Equal(t, 0, pipeline.calls)
	})

	t.Run("validation failure re-renders with field errors", func(t *testing.T) {
		pipeline := &mockPipeline{
			addFn: func(ctx context.Context, draft domain.DraftProduct) (string, error) {
				return "", &domain.ValidationError{
					Fields: map[string]string{"imagen": "La imagen es obligatoria."},
				}
			},
		}
		handler := NewProductCreateHandler(pipeline, testLogger())

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, productForm(t, validForm(), nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "La imagen es obligatoria.")
	})

	t.Run("persist failure reports bad gateway", func(t *testing.T) {
		pipeline := &mockPipeline{
			addFn: func(ctx context.Context, draft domain.DraftProduct) (string, error) {
				return "", &gateway.PersistError{
					Op:       "gateway.AddProduct",
					AssetURL: "https://assets.example.com/x.jpg",
					Err:      errors.New("insert failed"),
				}
			},
		}
		handler := NewProductCreateHandler(pipeline, testLogger())

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, productForm(t, validForm(), []byte{0x01}))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "No se pudo guardar el producto.")
	})

	t.Run("upload failure reports bad gateway", func(t *testing.T) {
		pipeline := &mockPipeline{
			addFn: func(ctx context.Context, draft domain.DraftProduct) (string, error) {
				return "", &gateway.UploadError{Op: "gateway.UploadImage", Err: errors.New("host down")}
			},
		}
		handler := NewProductCreateHandler(pipeline, testLogger())

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, productForm(t, validForm(), []byte{0x01}))

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
