package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the public widget routes and the token-gated admin
// console routes. The company profile lives under /admin/parent, which
// is the path the console expects.
func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	// Public routes
	r.Post("/login", apiHandler.LoginHandler)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(apiHandler.AdminAuthMiddleware)

		r.Post("/admin/product", apiHandler.CreateProductHandler)
		r.Put("/admin/product/{id}", apiHandler.UpdateProductHandler)
		r.Delete("/admin/product/{id}", apiHandler.DeleteProductHandler)
		r.Put("/admin/parent", apiHandler.UpdateCompanyHandler)
	})

	// User routes
	r.Get("/user/chat", apiHandler.ChatQueryHandler)
	r.Post("/user/chat/save", apiHandler.SaveChatHandler)
	r.Get("/user/image", apiHandler.ImageLinkHandler)

	return r
}
