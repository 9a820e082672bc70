package storefront

import (
	"fmt"
	"net/http"
)

// LoginPageHandler handles the login page
type LoginPageHandler struct{}

// NewLoginPageHandler creates a new login page handler
func NewLoginPageHandler() *LoginPageHandler {
	return &LoginPageHandler{}
}

// ServeHTTP handles GET /login
func (h *LoginPageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	// Static placeholder; there is no account system behind it yet.
	fmt.Fprint(w, `
		<!DOCTYPE html>
		<html>
		<head><title>Iniciar sesión - Vitrina</title></head>
		<body>
			<h1>Iniciar sesión</h1>
			<p>Próximamente.</p>
			<p><a href="/">Volver al catálogo</a></p>
		</body>
		</html>
	`)
}

// RegisterPageHandler handles the registration page
type RegisterPageHandler struct{}

// NewRegisterPageHandler creates a new registration page handler
func NewRegisterPageHandler() *RegisterPageHandler {
	return &RegisterPageHandler{}
}

// ServeHTTP handles GET /register
func (h *RegisterPageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	fmt.Fprint(w, `
		<!DOCTYPE html>
		<html>
		<head><title>Crear cuenta - Vitrina</title></head>
		<body>
			<h1>Crear cuenta</h1>
			<p>Próximamente.</p>
			<p><a href="/">Volver al catálogo</a></p>
		</body>
		</html>
	`)
}
