package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		h.withTraceID,
		h.withLogging,
		withMetrics,
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: h.allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
			ExposedHeaders: []string{traceIDHeader},
			MaxAge:         300,
		}),
	)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// promhttp negotiates compression on its own
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		r.Get("/version", h.getServerVersion)

		// routes without authorization
		r.Post("/user/signup", h.signup)
		r.Post("/user/login", h.login)
		r.Get("/offers", h.searchOffers)
		r.Get("/offer/{id}", h.getOffer)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Post("/user/change-avatar", h.changeAvatar)
			r.Post("/offer/publish", h.publishOffer)
			r.Put("/offer/modify/{id}", h.modifyOffer)
			r.Delete("/offer/delete/{id}", h.deleteOffer)
		})
	})

	if h.mediaDir != "" {
		router.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(h.mediaDir))))
	}

	router.NotFound(routeDoesNotExist)
	router.MethodNotAllowed(routeDoesNotExist)

	return router
}
