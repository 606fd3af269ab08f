package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/tastypick/recipe-recommender/internal/handler"
)

func Setup(h *handler.Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler)

	// Routes
	r.Route("/users/{userID}", func(r chi.Router) {
		r.Get("/recommendations", h.GetRecommendations)
		r.Get("/recommendations/history", h.GetRecommendationHistory)
		r.Post("/recommendations/{recID}/interaction", h.PostRecommendationFeedback)
		r.Get("/interactions", h.GetInteractions)
		r.Post("/interactions", h.PostInteraction)
		r.Get("/preference", h.GetPreference)
		r.Put("/preference", h.PutPreference)
	})
	r.Get("/recommendations/batch", h.GetBatchRecommendations)
	r.Post("/admin/similarity/rebuild", h.TriggerRebuild)
	r.Get("/health", healthCheck)

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
