package routes

import (
	"github.com/vitrina/vitrina/internal/middleware"
	"github.com/vitrina/vitrina/internal/router"
)

// RegisterAdminRoutes registers the operator routes. Product creation
// carries an image payload, so it gets the larger body limit.
func RegisterAdminRoutes(r *router.Router, deps AdminDeps) {
	r.Get("/admin/products/new", deps.ProductFormHandler.ServeHTTP)
	r.Post("/admin/products", deps.ProductCreateHandler.ServeHTTP,
		middleware.MaxBodySize(middleware.UploadMaxBodySize))
}
