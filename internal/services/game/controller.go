package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pixelpets/arena/internal/dependencies/clock"
	"github.com/pixelpets/arena/internal/model"
	"github.com/pixelpets/arena/internal/storage"
)

// Controller records gestures and resolves games once both are present
type Controller struct {
	storage storage.Store
	clock   clock.Clock

	// mu is shared with every service that runs check-then-mutate
	// sequences against the same store
	mu *sync.Mutex

	logger *slog.Logger
}

// NewController creates a new game controller
func NewController(storage storage.Store, clock clock.Clock, mu *sync.Mutex, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		mu:      mu,
		logger:  logger,
	}
}

// SubmitOutcome reports the effect of a gesture submission
type SubmitOutcome struct {
	Game     *model.Game
	Complete bool
	Result   *model.Result
}

// SubmitGesture records the player's choice. If this submission is the
// second of the pair the round is resolved in the same call: the result
// is computed, the state moves to complete, and no later submission can
// change it. Callers observe completion by polling Status.
func (c *Controller) SubmitGesture(ctx context.Context, gameID model.GameID, playerID model.PlayerID, gesture model.Gesture) (*SubmitOutcome, error) {
	if !gesture.Valid() {
		return nil, model.ErrInvalidGesture
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if game.State == model.GameStateComplete {
		return nil, model.ErrGameComplete
	}
	if game.State != model.GameStateActive {
		return nil, model.ErrGameNotActive
	}

	player := game.GetPlayer(playerID)
	if player == nil {
		return nil, model.ErrNotInGame
	}

	player.Gesture = gesture
	game.UpdatedAt = c.clock.Now()

	if game.AllGesturesIn() {
		game.State = model.GameStateComplete
		game.Result = resolve(game.Players[0], game.Players[1])

		c.logger.Info("game resolved",
			slog.String("game_id", string(game.ID)),
			slog.String("winner", string(game.Result.WinnerID)),
		)
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	return &SubmitOutcome{
		Game:     game,
		Complete: game.State == model.GameStateComplete,
		Result:   game.Result,
	}, nil
}

// Status returns the game for polling. Seated players and the recorded
// host may look; anyone else is rejected.
func (c *Controller) Status(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if game.GetPlayer(playerID) == nil && game.HostID != playerID {
		return nil, model.ErrNotInGame
	}

	return game, nil
}

// resolve computes the outcome from the pair of gestures. The result
// depends only on the set of gestures, not on submission order.
func resolve(p1, p2 model.Player) *model.Result {
	if p1.Gesture == p2.Gesture {
		return &model.Result{Message: "It's a tie!"}
	}

	winner := p1
	if p2.Gesture.Beats(p1.Gesture) {
		winner = p2
	}

	return &model.Result{
		WinnerID: winner.ID,
		Message:  fmt.Sprintf("%s wins!", winner.Name),
	}
}
