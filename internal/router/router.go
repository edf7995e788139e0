// internal/router/router.go
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/pavlohrechko/go-dating-recommendations/internal/api/activity"
	"github.com/pavlohrechko/go-dating-recommendations/internal/api/recommendation"
	"github.com/pavlohrechko/go-dating-recommendations/internal/notifications"
)

// Config contains the handlers the router wires up.
type Config struct {
	RecommendationHandler *recommendation.HandlerImpl
	ActivityHandler       *activity.HandlerImpl
	NotificationHub       *notifications.Hub
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are applied before
// mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Heartbeat
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/recommendations", cfg.RecommendationHandler.GetRecommendations)

		r.Route("/activities/{userID}", func(r chi.Router) {
			r.Post("/", cfg.ActivityHandler.CreateActivityRecord)
			r.Post("/swipes", cfg.ActivityHandler.RecordSwipe)
			r.Post("/liked-by", cfg.ActivityHandler.AddLikeFrom)
			r.Delete("/liked-by/{likerID}", cfg.ActivityHandler.RemoveLikeFrom)
		})
	})

	// Real-time like notifications
	r.Get("/ws", cfg.NotificationHub.ServeWS)

	return r
}
