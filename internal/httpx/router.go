package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Evolvetech-Johnn/holystreetstore/internal/auth"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/cart"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/catalog"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/order"
)

// NewRouter assembles the full API surface.
func NewRouter(authSvc *auth.Service, products *catalog.Provider, carts *cart.Service, orders *order.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	ah := NewAuthHandler(authSvc)
	ph := NewProductHandler(products)
	ch := NewCartHandler(carts)
	oh := NewOrderHandler(orders, products)

	authed := RequireAuth(authSvc)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", ah.Register)
			r.Post("/login", ah.Login)

			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Get("/profile", ah.Profile)
				r.Put("/profile", ah.UpdateProfile)
				r.Post("/logout", ah.Logout)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", ph.List)
			r.Get("/featured/list", ph.Featured)
			r.Get("/categories/list", ph.Categories)
			r.Get("/{id}", ph.Get)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(authed)
			r.Get("/", ch.Get)
			r.Get("/count", ch.Count)
			r.Post("/add", ch.Add)
			r.Put("/update/{itemId}", ch.Update)
			r.Delete("/remove/{itemId}", ch.Remove)
			r.Delete("/clear", ch.Clear)
		})

		r.Route("/orders", func(r chi.Router) {
			// Tracking is public; everything else requires a token.
			r.Get("/track/{orderNumber}", oh.Track)

			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Post("/", oh.Create)
				r.Get("/", oh.List)
				r.Get("/stats/summary", oh.Stats)
				r.Get("/{id}", oh.Get)
				r.Put("/{id}/cancel", oh.Cancel)
			})
		})
	})

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]any{"status": "ok"})
}
