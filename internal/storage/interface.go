package storage

import (
	"context"

	"github.com/pixelpets/arena/internal/model"
)

// Store defines the interface for session persistence.
// All request-handling paths and the sweeper share one Store instance.
type Store interface {
	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	GetGameByCode(ctx context.Context, code model.GameCode) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	GameCodeExists(ctx context.Context, code model.GameCode) (bool, error)

	// ListGames returns every live game, in no particular order
	ListGames(ctx context.Context) ([]*model.Game, error)

	// FindGameForPlayer returns the non-complete game the player is seated
	// in, or ErrGameNotFound if there is none
	FindGameForPlayer(ctx context.Context, playerID model.PlayerID) (*model.Game, error)

	// Waiting queue operations. The queue is FIFO with at most one entry
	// per player ID; re-enqueueing refreshes the entry's display name but
	// keeps its position and CreatedAt, so queue order implies age order.
	EnqueueWaiting(ctx context.Context, entry *model.WaitingEntry) error
	DequeueWaiting(ctx context.Context) (*model.WaitingEntry, error)
	PeekWaiting(ctx context.Context) (*model.WaitingEntry, error)
	GetWaiting(ctx context.Context, playerID model.PlayerID) (*model.WaitingEntry, error)
	RemoveWaiting(ctx context.Context, playerID model.PlayerID) error
	WaitingLen(ctx context.Context) (int, error)
}
