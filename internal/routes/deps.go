package routes

import (
	"github.com/vitrina/vitrina/internal/handler/admin"
	"github.com/vitrina/vitrina/internal/handler/storefront"
)

// StorefrontDeps contains dependencies for customer-facing routes
type StorefrontDeps struct {
	// Catalog listing and refresh
	CatalogHandler *storefront.CatalogHandler
	RefreshHandler *storefront.RefreshHandler

	// Product detail and purchase
	ProductDetailHandler *storefront.ProductDetailHandler
	BuyHandler           *storefront.BuyHandler

	// Static auth pages
	LoginPageHandler    *storefront.LoginPageHandler
	RegisterPageHandler *storefront.RegisterPageHandler
}

// AdminDeps contains dependencies for operator routes
type AdminDeps struct {
	ProductFormHandler   *admin.ProductFormHandler
	ProductCreateHandler *admin.ProductCreateHandler
}
