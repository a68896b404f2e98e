package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/pixelpets/arena/internal/api/handler"
	apimiddleware "github.com/pixelpets/arena/internal/api/middleware"
	"github.com/pixelpets/arena/internal/middleware"
	"github.com/pixelpets/arena/internal/services/game"
	"github.com/pixelpets/arena/internal/services/match"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	MatchController *match.Controller
	GameController  *game.Controller

	// AllowedOrigins for CORS; empty allows all (the browser app runs
	// on a different origin in development)
	AllowedOrigins []string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	matchHandler := handler.NewMatchHandler(cfg.MatchController)
	gameHandler := handler.NewGameHandler(cfg.GameController)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(apimiddleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Matchmaking routes
	api.HandleFunc("/matchmaking", matchHandler.FindOrWait).Methods(http.MethodPost)
	api.HandleFunc("/matchmaking", matchHandler.CancelWait).Methods(http.MethodDelete)
	api.HandleFunc("/matchmaking/status", matchHandler.Status).Methods(http.MethodGet)

	// Game routes
	api.HandleFunc("/games", matchHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games/host", matchHandler.Host).Methods(http.MethodPost)
	api.HandleFunc("/games/join", matchHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/gesture", gameHandler.SubmitGesture).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/status", gameHandler.Status).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})

	return c.Handler(r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
