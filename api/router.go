package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"labyrinth-server/server"
)

// NewAPIRouter builds the /api router with middlewares and routes.
func NewAPIRouter(gameServer *server.GameServer) chi.Router {
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	mh := NewMetricsHandler(gameServer)
	rh := NewRoomHandler(gameServer)
	r.Route("/v1", func(sub chi.Router) {
		// Health
		sub.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})
		rh.Routes(sub)
		mh.Routes(sub)
	})

	return r
}
