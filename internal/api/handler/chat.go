package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/maddken/jokerparty/internal/api/request"
	"github.com/maddken/jokerparty/internal/api/response"
	"github.com/maddken/jokerparty/internal/model"
	"github.com/maddken/jokerparty/internal/services/chat"
	"github.com/maddken/jokerparty/internal/services/game"
)

// ChatHandler handles message endpoints
type ChatHandler struct {
	gameController game.ControllerInterface
	chatService    *chat.Service
}

// NewChatHandler creates a new chat handler
func NewChatHandler(gameController game.ControllerInterface, chatService *chat.Service) *ChatHandler {
	return &ChatHandler{
		gameController: gameController,
		chatService:    chatService,
	}
}

// Post handles POST /api/v1/games/{code}/messages
func (h *ChatHandler) Post(w http.ResponseWriter, r *http.Request) {
	code := model.GameCode(mux.Vars(r)["code"])

	var req request.PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}
	if req.Content == "" {
		WriteError(w, NewInvalidRequestError("content is required"))
		return
	}

	found, err := h.gameController.GetGameByCode(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	var to *model.PlayerID
	if req.ToPlayerID != nil && *req.ToPlayerID != "" {
		t := model.PlayerID(*req.ToPlayerID)
		to = &t
	}

	msg, err := h.chatService.Post(r.Context(), found.ID, model.PlayerID(req.PlayerID), req.Content, to)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MessageFromModel(msg))
}

// List handles GET /api/v1/games/{code}/messages?viewer={player_id}
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	code := model.GameCode(mux.Vars(r)["code"])

	viewer := r.URL.Query().Get("viewer")
	if viewer == "" {
		WriteError(w, NewInvalidRequestError("viewer query parameter is required"))
		return
	}

	found, err := h.gameController.GetGameByCode(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	msgs, err := h.chatService.ListFor(r.Context(), found.ID, model.PlayerID(viewer))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessagesFromModel(msgs))
}
