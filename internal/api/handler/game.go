package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pixelpets/arena/internal/api/request"
	"github.com/pixelpets/arena/internal/api/response"
	"github.com/pixelpets/arena/internal/model"
	"github.com/pixelpets/arena/internal/services/game"
)

// GameHandler handles gesture submission and game status endpoints
type GameHandler struct {
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller) *GameHandler {
	return &GameHandler{
		gameController: gameController,
	}
}

// SubmitGesture handles POST /api/v1/games/{id}/gesture
func (h *GameHandler) SubmitGesture(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["id"])

	var req request.SubmitGestureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}
	if req.Gesture == "" {
		WriteError(w, NewInvalidRequestError("gesture is required"))
		return
	}

	outcome, err := h.gameController.SubmitGesture(
		r.Context(),
		gameID,
		model.PlayerID(req.PlayerID),
		model.Gesture(req.Gesture),
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitGestureResponse{
		Success:      true,
		GameComplete: outcome.Complete,
		Result:       response.ResultFromModel(outcome.Result),
	})
}

// Status handles GET /api/v1/games/{id}/status
func (h *GameHandler) Status(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["id"])

	playerID := model.PlayerID(r.URL.Query().Get("player_id"))
	if playerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	g, err := h.gameController.Status(r.Context(), gameID, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStatusFromModel(g, playerID))
}
