package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/maddken/jokerparty/internal/api/request"
	"github.com/maddken/jokerparty/internal/api/response"
	"github.com/maddken/jokerparty/internal/model"
	"github.com/maddken/jokerparty/internal/services/game"
	"github.com/maddken/jokerparty/internal/services/roster"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController game.ControllerInterface
	rosterService  *roster.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController game.ControllerInterface, rosterService *roster.Service) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		rosterService:  rosterService,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	// An empty body creates an open game; anything else must parse
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	created, err := h.gameController.CreateGame(r.Context(), req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(created))
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameController.ListGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}

// Get handles GET /api/v1/games/{code}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.GameCode(mux.Vars(r)["code"])

	found, err := h.gameController.GetGameByCode(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(found))
}

// VerifyPassword handles POST /api/v1/games/{code}/verify
func (h *GameHandler) VerifyPassword(w http.ResponseWriter, r *http.Request) {
	code := model.GameCode(mux.Vars(r)["code"])

	var req request.VerifyPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.gameController.VerifyPassword(r.Context(), code, req.Password); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Join handles POST /api/v1/games/{code}/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := model.GameCode(mux.Vars(r)["code"])

	var req request.JoinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.DeviceID == "" {
		WriteError(w, NewInvalidRequestError("device_id is required"))
		return
	}

	found, err := h.gameController.GetGameByCode(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.rosterService.Join(r.Context(), found.ID, req.DeviceID, req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Players handles GET /api/v1/games/{code}/players
func (h *GameHandler) Players(w http.ResponseWriter, r *http.Request) {
	code := model.GameCode(mux.Vars(r)["code"])

	found, err := h.gameController.GetGameByCode(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	players, err := h.rosterService.List(r.Context(), found.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Kick handles DELETE /api/v1/games/{code}/players/{player_id}
func (h *GameHandler) Kick(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := model.GameCode(vars["code"])
	playerID := model.PlayerID(vars["player_id"])

	if err := h.gameController.Kick(r.Context(), code, playerID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// SetJokerTarget handles PUT /api/v1/games/{code}/joker-target
func (h *GameHandler) SetJokerTarget(w http.ResponseWriter, r *http.Request) {
	code := model.GameCode(mux.Vars(r)["code"])

	var req request.SetJokerTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	updated, err := h.gameController.SetJokerTarget(r.Context(), code, req.Count)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(updated))
}

// Start handles POST /api/v1/games/{code}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	code := model.GameCode(mux.Vars(r)["code"])

	// An empty body starts with the stored joker target; anything else must parse
	var req request.StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.gameController.Start(r.Context(), code, req.JokerTarget); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// NextRound handles POST /api/v1/games/{code}/next-round
func (h *GameHandler) NextRound(w http.ResponseWriter, r *http.Request) {
	code := model.GameCode(mux.Vars(r)["code"])

	if err := h.gameController.NextRound(r.Context(), code); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Stop handles POST /api/v1/games/{code}/stop
func (h *GameHandler) Stop(w http.ResponseWriter, r *http.Request) {
	code := model.GameCode(mux.Vars(r)["code"])

	if err := h.gameController.Stop(r.Context(), code); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
