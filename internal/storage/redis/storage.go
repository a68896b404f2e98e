package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pixelpets/arena/internal/model"
	"github.com/pixelpets/arena/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	prev, err := s.GetGame(ctx, game.ID)
	if err != nil && !errors.Is(err, model.ErrGameNotFound) {
		return err
	}

	// Pipeline for atomic save + code index update
	pipe := s.client.Pipeline()
	if prev != nil && prev.Code != game.Code {
		pipe.Del(ctx, codeIndexKey(prev.Code))
	}
	pipe.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL)
	pipe.Set(ctx, codeIndexKey(game.Code), string(game.ID), s.cfg.GameTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) GetGameByCode(ctx context.Context, code model.GameCode) (*model.Game, error) {
	gameIDStr, err := s.client.Get(ctx, codeIndexKey(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	return s.GetGame(ctx, model.GameID(gameIDStr))
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	game, err := s.GetGame(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, gameKey(id))
	pipe.Del(ctx, codeIndexKey(game.Code))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GameCodeExists(ctx context.Context, code model.GameCode) (bool, error) {
	exists, err := s.client.Exists(ctx, codeIndexKey(code)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	var games []*model.Game

	iter := s.client.Scan(ctx, 0, gameKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Expired between scan and get
				continue
			}
			return nil, err
		}

		var game model.Game
		if err := json.Unmarshal(data, &game); err != nil {
			return nil, err
		}
		games = append(games, &game)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return games, nil
}

func (s *Storage) FindGameForPlayer(ctx context.Context, playerID model.PlayerID) (*model.Game, error) {
	games, err := s.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	for _, game := range games {
		if game.State == model.GameStateComplete {
			continue
		}
		if game.GetPlayer(playerID) != nil {
			return game, nil
		}
	}
	return nil, model.ErrGameNotFound
}

// Waiting queue operations
//
// The queue is a Redis LIST of player IDs; each entry's snapshot lives at
// its own key. Removal deletes the snapshot and LREMs the ID.

func (s *Storage) EnqueueWaiting(ctx context.Context, entry *model.WaitingEntry) error {
	existing, err := s.GetWaiting(ctx, entry.Player.ID)
	if err == nil {
		// Refresh attributes only; position and CreatedAt are kept so that
		// queue order continues to imply age order for the sweeper.
		existing.Player.Name = entry.Player.Name
		data, err := json.Marshal(existing)
		if err != nil {
			return err
		}
		return s.client.Set(ctx, waitingEntryKey(entry.Player.ID), data, 0).Err()
	}
	if !errors.Is(err, model.ErrNotWaiting) {
		return err
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, waitingEntryKey(entry.Player.ID), data, 0)
	pipe.RPush(ctx, waitingQueueKey(), string(entry.Player.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) DequeueWaiting(ctx context.Context) (*model.WaitingEntry, error) {
	for {
		idStr, err := s.client.LPop(ctx, waitingQueueKey()).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil, model.ErrQueueEmpty
			}
			return nil, err
		}

		entry, err := s.GetWaiting(ctx, model.PlayerID(idStr))
		if errors.Is(err, model.ErrNotWaiting) {
			// Snapshot gone, skip the stale ID
			continue
		}
		if err != nil {
			return nil, err
		}

		if err := s.client.Del(ctx, waitingEntryKey(entry.Player.ID)).Err(); err != nil {
			return nil, err
		}
		return entry, nil
	}
}

func (s *Storage) PeekWaiting(ctx context.Context) (*model.WaitingEntry, error) {
	for {
		ids, err := s.client.LRange(ctx, waitingQueueKey(), 0, 0).Result()
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, model.ErrQueueEmpty
		}

		entry, err := s.GetWaiting(ctx, model.PlayerID(ids[0]))
		if errors.Is(err, model.ErrNotWaiting) {
			// Stale ID at the head; drop it and look again
			if err := s.client.LRem(ctx, waitingQueueKey(), 1, ids[0]).Err(); err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		return entry, nil
	}
}

func (s *Storage) GetWaiting(ctx context.Context, playerID model.PlayerID) (*model.WaitingEntry, error) {
	data, err := s.client.Get(ctx, waitingEntryKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNotWaiting
		}
		return nil, err
	}

	var entry model.WaitingEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Storage) RemoveWaiting(ctx context.Context, playerID model.PlayerID) error {
	deleted, err := s.client.Del(ctx, waitingEntryKey(playerID)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return model.ErrNotWaiting
	}
	return s.client.LRem(ctx, waitingQueueKey(), 1, string(playerID)).Err()
}

func (s *Storage) WaitingLen(ctx context.Context) (int, error) {
	n, err := s.client.LLen(ctx, waitingQueueKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
