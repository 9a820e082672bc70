package routes

import (
	"github.com/vitrina/vitrina/internal/router"
)

// RegisterStorefrontRoutes registers all customer-facing routes.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Catalog
	r.Get("/", deps.CatalogHandler.ServeHTTP)
	r.Post("/refresh", deps.RefreshHandler.ServeHTTP)

	// Product detail and purchase
	r.Get("/product/{id}", deps.ProductDetailHandler.ServeHTTP)
	r.Post("/product/{id}/buy", deps.BuyHandler.ServeHTTP)

	// Static auth pages. There is no account system behind them yet.
	r.Get("/login", deps.LoginPageHandler.ServeHTTP)
	r.Get("/register", deps.RegisterPageHandler.ServeHTTP)
}
