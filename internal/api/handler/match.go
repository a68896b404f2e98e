package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pixelpets/arena/internal/api/request"
	"github.com/pixelpets/arena/internal/api/response"
	"github.com/pixelpets/arena/internal/model"
	"github.com/pixelpets/arena/internal/services/match"
)

// MatchHandler handles matchmaking and game creation endpoints
type MatchHandler struct {
	matchController *match.Controller
}

// NewMatchHandler creates a new matchmaking handler
func NewMatchHandler(matchController *match.Controller) *MatchHandler {
	return &MatchHandler{
		matchController: matchController,
	}
}

// FindOrWait handles POST /api/v1/matchmaking
func (h *MatchHandler) FindOrWait(w http.ResponseWriter, r *http.Request) {
	var req request.FindOrWaitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	player := model.Player{
		ID:   model.PlayerID(req.PlayerID),
		Name: req.PlayerName,
	}

	outcome, err := h.matchController.FindOrWait(r.Context(), player)
	if err != nil {
		WriteError(w, err)
		return
	}

	if outcome.Waiting {
		response.JSON(w, http.StatusOK, response.MatchmakingStatus{State: "waiting"})
		return
	}

	status := response.GameStatusFromModel(outcome.Game, player.ID)
	response.JSON(w, http.StatusOK, response.MatchmakingStatus{
		State:    "matched",
		Game:     &status,
		Opponent: status.Opponent,
	})
}

// Status handles GET /api/v1/matchmaking/status
func (h *MatchHandler) Status(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(r.URL.Query().Get("player_id"))
	if playerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	game, err := h.matchController.FindGameForPlayer(r.Context(), playerID)
	if err == nil {
		status := response.GameStatusFromModel(game, playerID)
		response.JSON(w, http.StatusOK, response.MatchmakingStatus{
			State:    "matched",
			Game:     &status,
			Opponent: status.Opponent,
		})
		return
	}
	if !errors.Is(err, model.ErrGameNotFound) {
		WriteError(w, err)
		return
	}

	waiting, err := h.matchController.IsWaiting(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	state := "idle"
	if waiting {
		state = "waiting"
	}
	response.JSON(w, http.StatusOK, response.MatchmakingStatus{State: state})
}

// CancelWait handles DELETE /api/v1/matchmaking
func (h *MatchHandler) CancelWait(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(r.URL.Query().Get("player_id"))
	if playerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	if err := h.matchController.CancelWait(r.Context(), playerID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Create handles POST /api/v1/games
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	player := model.Player{
		ID:   model.PlayerID(req.PlayerID),
		Name: req.PlayerName,
	}

	game, err := h.matchController.CreateGame(r.Context(), player)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameStatusFromModel(game, player.ID))
}

// Host handles POST /api/v1/games/host
func (h *MatchHandler) Host(w http.ResponseWriter, r *http.Request) {
	var req request.HostGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.HostID == "" {
		WriteError(w, NewInvalidRequestError("host_id is required"))
		return
	}

	game, err := h.matchController.HostGame(r.Context(), model.PlayerID(req.HostID), req.HostName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameStatusFromModel(game, model.PlayerID(req.HostID)))
}

// Join handles POST /api/v1/games/join
func (h *MatchHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Code == "" {
		WriteError(w, NewInvalidRequestError("code is required"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	player := model.Player{
		ID:   model.PlayerID(req.PlayerID),
		Name: req.PlayerName,
	}

	game, err := h.matchController.JoinByCode(r.Context(), model.GameCode(req.Code), player)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStatusFromModel(game, player.ID))
}
