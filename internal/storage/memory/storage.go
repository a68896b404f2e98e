package memory

import (
	"context"
	"sync"

	"github.com/pixelpets/arena/internal/model"
	"github.com/pixelpets/arena/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Each call is atomic under the mutex, and games cross the boundary as
// deep copies in both directions, so callers never share a record with
// the store or with each other. Multi-call sequences still need the
// serialization the services provide; a single call here is not enough
// to make check-then-mutate safe.
type Storage struct {
	mu sync.RWMutex

	games     map[model.GameID]*model.Game
	codeIndex map[model.GameCode]model.GameID
	waiting   []*model.WaitingEntry
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:     make(map[model.GameID]*model.Game),
		codeIndex: make(map[model.GameCode]model.GameID),
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.games[game.ID]; ok && prev.Code != game.Code {
		delete(s.codeIndex, prev.Code)
	}
	s.games[game.ID] = game.Clone()
	s.codeIndex[game.Code] = game.ID
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *Storage) GetGameByCode(ctx context.Context, code model.GameCode) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.codeIndex[code]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if game, ok := s.games[id]; ok {
		delete(s.codeIndex, game.Code)
	}
	delete(s.games, id)
	return nil
}

func (s *Storage) GameCodeExists(ctx context.Context, code model.GameCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.codeIndex[code]
	return ok, nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, game := range s.games {
		games = append(games, game.Clone())
	}
	return games, nil
}

func (s *Storage) FindGameForPlayer(ctx context.Context, playerID model.PlayerID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, game := range s.games {
		if game.State == model.GameStateComplete {
			continue
		}
		if game.GetPlayer(playerID) != nil {
			return game.Clone(), nil
		}
	}
	return nil, model.ErrGameNotFound
}

// Waiting queue operations

func copyEntry(entry *model.WaitingEntry) *model.WaitingEntry {
	c := *entry
	return &c
}

func (s *Storage) EnqueueWaiting(ctx context.Context, entry *model.WaitingEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.waiting {
		if existing.Player.ID == entry.Player.ID {
			// Refresh attributes only; position and CreatedAt are kept so
			// that queue order continues to imply age order for the sweeper.
			existing.Player.Name = entry.Player.Name
			return nil
		}
	}
	s.waiting = append(s.waiting, copyEntry(entry))
	return nil
}

func (s *Storage) DequeueWaiting(ctx context.Context) (*model.WaitingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.waiting) == 0 {
		return nil, model.ErrQueueEmpty
	}
	entry := s.waiting[0]
	s.waiting = s.waiting[1:]
	return entry, nil
}

func (s *Storage) PeekWaiting(ctx context.Context) (*model.WaitingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.waiting) == 0 {
		return nil, model.ErrQueueEmpty
	}
	return copyEntry(s.waiting[0]), nil
}

func (s *Storage) GetWaiting(ctx context.Context, playerID model.PlayerID) (*model.WaitingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.waiting {
		if entry.Player.ID == playerID {
			return copyEntry(entry), nil
		}
	}
	return nil, model.ErrNotWaiting
}

func (s *Storage) RemoveWaiting(ctx context.Context, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, entry := range s.waiting {
		if entry.Player.ID == playerID {
			s.waiting = append(s.waiting[:i], s.waiting[i+1:]...)
			return nil
		}
	}
	return model.ErrNotWaiting
}

func (s *Storage) WaitingLen(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.waiting), nil
}
