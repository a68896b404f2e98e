package match

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/pixelpets/arena/internal/dependencies/clock"
	"github.com/pixelpets/arena/internal/dependencies/random"
	"github.com/pixelpets/arena/internal/model"
	"github.com/pixelpets/arena/internal/storage"
)

const (
	// CodeLength is the length of generated game codes
	CodeLength = 5
	// CodeAlphabet is the characters used in game codes (avoid confusing chars)
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	// codeAttempts bounds collision retries during code generation.
	// After this many collisions the last candidate is accepted; a
	// duplicate is possible but the alphabet makes it very unlikely.
	codeAttempts = 10
)

// Controller decides how two players become associated with the same game
type Controller struct {
	storage storage.Store
	clock   clock.Clock
	random  random.Random

	// mu serializes check-then-mutate sequences against the store. A
	// single storage call is atomic on its own; the multi-call sequences
	// below are not, so every service sharing the store holds this lock
	// across them.
	mu *sync.Mutex

	logger *slog.Logger
}

// NewController creates a new matchmaking controller
func NewController(storage storage.Store, clock clock.Clock, random random.Random, mu *sync.Mutex, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		mu:      mu,
		logger:  logger,
	}
}

// Outcome is the result of a find-or-wait request
type Outcome struct {
	// Game is set when the player is seated in a game
	Game *model.Game
	// Waiting is true when the player is queued for pairing instead
	Waiting bool
}

// FindOrWait pairs the player with the oldest waiting opponent, or queues
// them if nobody is waiting. If the player already belongs to a
// non-complete game the existing game is returned unchanged.
func (c *Controller) FindOrWait(ctx context.Context, player model.Player) (*Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, err := c.storage.FindGameForPlayer(ctx, player.ID)
	if err == nil {
		return &Outcome{Game: existing}, nil
	}
	if !errors.Is(err, model.ErrGameNotFound) {
		return nil, err
	}

	head, err := c.storage.PeekWaiting(ctx)
	if err != nil && !errors.Is(err, model.ErrQueueEmpty) {
		return nil, err
	}

	// Never pair a player with themselves; a repeat request refreshes the
	// existing entry's attributes but keeps its queue position.
	if err != nil || head.Player.ID == player.ID {
		return c.enqueue(ctx, player)
	}

	opponent, err := c.storage.DequeueWaiting(ctx)
	if err != nil {
		if errors.Is(err, model.ErrQueueEmpty) {
			return c.enqueue(ctx, player)
		}
		return nil, err
	}

	// The requester may hold a stale entry further back in the queue
	if err := c.storage.RemoveWaiting(ctx, player.ID); err != nil && !errors.Is(err, model.ErrNotWaiting) {
		return nil, err
	}

	game, err := c.newGame(ctx)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game.State = model.GameStateActive
	game.Players = []model.Player{
		{ID: opponent.Player.ID, Name: opponent.Player.Name, JoinedAt: opponent.CreatedAt},
		{ID: player.ID, Name: player.Name, JoinedAt: now},
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("players paired",
		slog.String("game_id", string(game.ID)),
		slog.String("player1", string(opponent.Player.ID)),
		slog.String("player2", string(player.ID)),
	)

	return &Outcome{Game: game}, nil
}

func (c *Controller) enqueue(ctx context.Context, player model.Player) (*Outcome, error) {
	entry := &model.WaitingEntry{
		Player:    player,
		CreatedAt: c.clock.Now(),
	}
	if err := c.storage.EnqueueWaiting(ctx, entry); err != nil {
		return nil, err
	}
	return &Outcome{Waiting: true}, nil
}

// CancelWait removes the player from the waiting queue
func (c *Controller) CancelWait(ctx context.Context, playerID model.PlayerID) error {
	return c.storage.RemoveWaiting(ctx, playerID)
}

// IsWaiting reports whether the player is currently queued
func (c *Controller) IsWaiting(ctx context.Context, playerID model.PlayerID) (bool, error) {
	_, err := c.storage.GetWaiting(ctx, playerID)
	if err != nil {
		if errors.Is(err, model.ErrNotWaiting) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// FindGameForPlayer returns the player's current non-complete game, if any
func (c *Controller) FindGameForPlayer(ctx context.Context, playerID model.PlayerID) (*model.Game, error) {
	return c.storage.FindGameForPlayer(ctx, playerID)
}

// CreateGame creates a waiting game with the creator seated in slot 1
func (c *Controller) CreateGame(ctx context.Context, creator model.Player) (*model.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.newGame(ctx)
	if err != nil {
		return nil, err
	}

	creator.JoinedAt = c.clock.Now()
	game.Players = []model.Player{creator}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("code", string(game.Code)),
		slog.String("creator", string(creator.ID)),
	)

	return game, nil
}

// HostGame creates a waiting game with zero seated players for a
// third-party-run session. The host is recorded but never seated.
func (c *Controller) HostGame(ctx context.Context, hostID model.PlayerID, hostName string) (*model.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.newGame(ctx)
	if err != nil {
		return nil, err
	}

	game.HostID = hostID
	game.HostName = hostName

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game hosted",
		slog.String("game_id", string(game.ID)),
		slog.String("code", string(game.Code)),
		slog.String("host", string(hostID)),
	)

	return game, nil
}

// JoinByCode seats the player in the game with the given code.
// Joining is idempotent for a player who already holds a seat; once a
// game leaves the waiting state its membership is immutable.
func (c *Controller) JoinByCode(ctx context.Context, code model.GameCode, player model.Player) (*model.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.storage.GetGameByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if game.GetPlayer(player.ID) != nil {
		return game, nil
	}

	// A waiting game always has a free seat: the state flips to active
	// in the same operation that fills the second one.
	if game.State != model.GameStateWaiting {
		return nil, model.ErrJoinClosed
	}

	now := c.clock.Now()
	player.Gesture = model.GestureNone
	player.JoinedAt = now
	game.Players = append(game.Players, player)

	if game.IsFull() {
		game.State = model.GameStateActive
	}
	game.UpdatedAt = now

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("player joined",
		slog.String("game_id", string(game.ID)),
		slog.String("player", string(player.ID)),
		slog.String("state", string(game.State)),
	)

	return game, nil
}

// newGame allocates a game with a fresh ID and collision-checked code
func (c *Controller) newGame(ctx context.Context) (*model.Game, error) {
	code, err := c.newCode(ctx)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	return &model.Game{
		ID:        model.GameID(uuid.NewString()),
		Code:      code,
		State:     model.GameStateWaiting,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (c *Controller) newCode(ctx context.Context) (model.GameCode, error) {
	var code model.GameCode
	for attempt := 0; attempt < codeAttempts; attempt++ {
		code = model.GameCode(c.random.String(CodeLength, CodeAlphabet))
		exists, err := c.storage.GameCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	c.logger.Warn("accepting possibly colliding game code",
		slog.String("code", string(code)),
		slog.Int("attempts", codeAttempts),
	)
	return code, nil
}
