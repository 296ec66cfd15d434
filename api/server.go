/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers
  and applies the auth boundaries.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the register frontends

AUTH BOUNDARIES:
  /api/auth/check-employee, /api/auth/login   public
  everything else under /api                  RequireAuth
  product writes, employees, close/restore    RequireAuth + RequireAdmin

STATIC FILE SERVING:
  Serves the register frontends from ./public when present, otherwise a
  plain landing page listing the API.

SEE ALSO:
  - handlers.go: Handler implementations
  - auth/middleware.go: RequireAuth / RequireAdmin
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ampos/pos-engine/auth"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, tokens *auth.TokenManager) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		// Register terminals connect from whatever host serves them.
		AllowOriginFunc:  func(r *http.Request, origin string) bool { return true },
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "x-access-token"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public auth routes
		r.Post("/auth/check-employee", h.CheckEmployee)
		r.Post("/auth/login", h.Login)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/auth/check", h.CheckAuth)
			r.Post("/auth/logout", h.Logout)

			r.Get("/products", h.ListProducts)

			r.Post("/process-payment", h.ProcessPayment)
			r.Get("/daily-sales", h.DailySales)
			r.Get("/sales-by-date", h.SalesByDate)
			r.Get("/invoice-items/{invoiceID}", h.InvoiceItems)

			// Admin routes
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)

				r.Post("/products", h.CreateProduct)
				r.Put("/products/{id}", h.UpdateProduct)
				r.Delete("/products/{id}", h.DeleteProduct)

				r.Get("/employees", h.ListEmployees)
				r.Post("/employees", h.CreateEmployee)
				r.Put("/employees/{id}", h.UpdateEmployee)
				r.Delete("/employees/{id}", h.DeleteEmployee)

				r.Post("/close-day", h.CloseDay)
				r.Post("/restore-day", h.RestoreDay)
			})
		})
	})

	// Serve the register frontends from ./public when present.
	staticDir := "./public"
	if _, err := os.Stat(staticDir); err == nil {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/" {
				http.ServeFile(w, r, filepath.Join(staticDir, "login.html"))
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	} else {
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>POS Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>POS Engine API</h1>
<p>No frontend found in ./public. The API is available under /api.</p>
<h2>API Endpoints</h2>
<ul>
<li>POST /api/auth/login - Sign in</li>
<li>GET /api/products - List products</li>
<li>POST /api/process-payment - Record a sale</li>
<li>GET /api/daily-sales - Today's report</li>
</ul>
</body>
</html>`))
		})
	}

	return r
}
