package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/maddken/jokerparty/internal/api/handler"
	"github.com/maddken/jokerparty/internal/api/middleware"
	"github.com/maddken/jokerparty/internal/services/chat"
	"github.com/maddken/jokerparty/internal/services/game"
	"github.com/maddken/jokerparty/internal/services/roster"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController game.ControllerInterface
	RosterService  *roster.Service
	ChatService    *chat.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.RosterService)
	chatHandler := handler.NewChatHandler(cfg.GameController, cfg.ChatService)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/{code}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{code}/verify", gameHandler.VerifyPassword).Methods(http.MethodPost)
	api.HandleFunc("/games/{code}/join", gameHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/games/{code}/players", gameHandler.Players).Methods(http.MethodGet)
	api.HandleFunc("/games/{code}/players/{player_id}", gameHandler.Kick).Methods(http.MethodDelete)
	api.HandleFunc("/games/{code}/joker-target", gameHandler.SetJokerTarget).Methods(http.MethodPut)
	api.HandleFunc("/games/{code}/start", gameHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/games/{code}/next-round", gameHandler.NextRound).Methods(http.MethodPost)
	api.HandleFunc("/games/{code}/stop", gameHandler.Stop).Methods(http.MethodPost)
	api.HandleFunc("/games/{code}/messages", chatHandler.Post).Methods(http.MethodPost)
	api.HandleFunc("/games/{code}/messages", chatHandler.List).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
