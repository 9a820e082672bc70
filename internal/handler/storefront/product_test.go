package storefront

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/vitrina/vitrina/internal/detail"
	"github.com/vitrina/vitrina/internal/domain"
)

type mockResolver struct {
	resolution detail.Resolution
}

func (m *mockResolver) Resolve(id string) detail.Resolution { return m.resolution }

func detailRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/product/"+id, nil)
	req.SetPathValue("id", id)
	return req
}

func TestProductDetailHandler(t *testing.T) {
	tests := []struct {
		name       string
		resolution detail.Resolution
		wantStatus int
		wantBody   []string
	}{
		{
			name:       "loading",
			resolution: detail.Resolution{Status: detail.StatusLoading},
			wantStatus: http.StatusOK,
			wantBody:   []string{"Cargando producto..."},
		},
		{
			name: "catalog error",
			resolution: detail.Resolution{
				Status:  detail.StatusError,
				Message: "No se pudieron cargar los productos. Intenta de nuevo más tarde.",
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   []string{"No se pudieron cargar los productos", `action="/refresh"`},
		},
		{
			name:       "not found",
			resolution: detail.Resolution{Status: detail.StatusNotFound},
			wantStatus: http.StatusNotFound,
			wantBody:   []string{"Producto no encontrado"},
		},
		{
			name: "found with discount and attributes",
			resolution: detail.Resolution{
				Status: detail.StatusFound,
				Product: domain.Product{
					ID:                 "p1",
					Nombre:             "Café de Altura",
					Imagen:             "https://assets.example.com/p1.jpg",
					Precio:             decimal.NewFromInt(1000),
					PorcentajeOferta:   decimal.NewFromInt(25),
					CantidadDisponible: 3,
					Detalles: domain.AttributeDetails(map[string]string{
						"Origen":  "Colombia",
						"Tostado": "Medio",
					}),
				},
			},
			wantStatus: http.StatusOK,
			wantBody: []string{
				"Café de Altura",
				"<s>$1000.00</s>",
				"<strong>$750.00</strong>",
				"3 unidades disponibles",
				"<dt>Origen</dt><dd>Colombia</dd>",
				"<dt>Tostado</dt><dd>Medio</dd>",
				`action="/product/p1/buy"`,
			},
		},
		{
			name: "found exhausted hides buy button",
			resolution: detail.Resolution{
				Status: detail.StatusFound,
				Product: domain.Product{
					ID:       "p2",
					Nombre:   "Taza",
					Precio:   decimal.NewFromInt(50),
					Detalles: domain.NoteDetails([]string{"Cerámica artesanal"}),
				},
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{"Agotado", "<li>Cerámica artesanal</li>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewProductDetailHandler(&mockResolver{resolution: tt.resolution}, testLogger())

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, detailRequest("p1"))

			assert.Equal(t, tt.wantStatus, w.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, w.Body.String(), want)
			}
			if tt.name == "found exhausted hides buy button" {
				assert.NotContains(t, w.Body.String(), "/buy")
			}
		})
	}
}

type mockDecrementer struct {
	err   error
	calls int
	ids   []string
}

func (m *mockDecrementer) DecrementStock(id string) error {
	m.calls++
	m.ids = append(m.ids, id)
	return m.err
}

func buyRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/product/"+id+"/buy", nil)
	req.SetPathValue("id", id)
	return req
}

func TestBuyHandler(t *testing.T) {
	t.Run("success redirects to detail", func(t *testing.T) {
		catalog := &mockDecrementer{}
		handler := NewBuyHandler(catalog, testLogger())

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, buyRequest("p1"))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/product/p1", w.Header().Get("Location"))
		assert.Equal(t, []string{"p1"}, catalog.ids)
	})

	t.Run("unknown product", func(t *testing.T) {
		catalog := &mockDecrementer{err: domain.NotFound("catalog.decrement", "product", "p1")}
		handler := NewBuyHandler(catalog, testLogger())

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, buyRequest("p1"))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("out of stock redirects back", func(t *testing.T) {
		catalog := &mockDecrementer{err: domain.Conflict("catalog.decrement", "Agotado")}
		handler := NewBuyHandler(catalog, testLogger())

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, buyRequest("p1"))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/product/p1", w.Header().Get("Location"))
	})

	t.Run("catalog not ready", func(t *testing.T) {
		catalog := &mockDecrementer{err: domain.Invalid("catalog.decrement", "el catálogo no está disponible")}
		handler := NewBuyHandler(catalog, testLogger())

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, buyRequest("p1"))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
