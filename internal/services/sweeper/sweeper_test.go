package sweeper

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pixelpets/arena/internal/dependencies/mocks"
	"github.com/pixelpets/arena/internal/model"
	"github.com/pixelpets/arena/internal/storage/memory"
	"github.com/pixelpets/arena/internal/testutil"
)

type SweeperSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	sweeper *Sweeper
	ctx     context.Context
}

func TestSweeperSuite(t *testing.T) {
	suite.Run(t, new(SweeperSuite))
}

func (s *SweeperSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.sweeper = New(s.storage, s.clock, DefaultConfig(), &sync.Mutex{}, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *SweeperSuite) saveGame(id, code string, state model.GameState, updatedAt time.Time) {
	game := &model.Game{
		ID:        model.GameID(id),
		Code:      model.GameCode(code),
		State:     state,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))
}

func (s *SweeperSuite) enqueue(id string, createdAt time.Time) {
	entry := &model.WaitingEntry{
		Player:    model.Player{ID: model.PlayerID(id), Name: id},
		CreatedAt: createdAt,
	}
	s.Require().NoError(s.storage.EnqueueWaiting(s.ctx, entry))
}

func (s *SweeperSuite) TestEvictsIdleGames() {
	now := s.clock.Now()
	s.saveGame("old", "AAAAA", model.GameStateActive, now.Add(-31*time.Minute))
	s.saveGame("fresh", "BBBBB", model.GameStateActive, now.Add(-5*time.Minute))

	s.sweeper.Sweep(s.ctx)

	_, err := s.storage.GetGame(s.ctx, "old")
	s.ErrorIs(err, model.ErrGameNotFound)

	_, err = s.storage.GetGame(s.ctx, "fresh")
	s.NoError(err)
}

func (s *SweeperSuite) TestEvictsIdleGamesInAnyState() {
	now := s.clock.Now()
	s.saveGame("waiting", "AAAAA", model.GameStateWaiting, now.Add(-31*time.Minute))
	s.saveGame("complete", "BBBBB", model.GameStateComplete, now.Add(-31*time.Minute))

	s.sweeper.Sweep(s.ctx)

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *SweeperSuite) TestGameAtExactTTLSurvives() {
	now := s.clock.Now()
	s.saveGame("edge", "AAAAA", model.GameStateActive, now.Add(-30*time.Minute))

	s.sweeper.Sweep(s.ctx)

	_, err := s.storage.GetGame(s.ctx, "edge")
	s.NoError(err)
}

func (s *SweeperSuite) TestEvictedCodeIsReusable() {
	now := s.clock.Now()
	s.saveGame("old", "AAAAA", model.GameStateActive, now.Add(-31*time.Minute))

	s.sweeper.Sweep(s.ctx)

	exists, err := s.storage.GameCodeExists(s.ctx, "AAAAA")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *SweeperSuite) TestEvictsExpiredWaitingEntries() {
	now := s.clock.Now()
	s.enqueue("p1", now.Add(-11*time.Minute))
	s.enqueue("p2", now.Add(-2*time.Minute))

	s.sweeper.Sweep(s.ctx)

	_, err := s.storage.GetWaiting(s.ctx, "p1")
	s.ErrorIs(err, model.ErrNotWaiting)

	head, err := s.storage.PeekWaiting(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p2"), head.Player.ID)
}

func (s *SweeperSuite) TestWaitingSweepStopsAtFirstFreshEntry() {
	now := s.clock.Now()
	s.enqueue("p1", now.Add(-2*time.Minute))
	s.enqueue("p2", now.Add(-1*time.Minute))

	s.sweeper.Sweep(s.ctx)

	n, err := s.storage.WaitingLen(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
}

func (s *SweeperSuite) TestSweepAfterClockAdvance() {
	now := s.clock.Now()
	s.saveGame("game", "AAAAA", model.GameStateActive, now)
	s.enqueue("p1", now)

	s.sweeper.Sweep(s.ctx)
	_, err := s.storage.GetGame(s.ctx, "game")
	s.NoError(err)

	s.clock.Advance(31 * time.Minute)
	s.sweeper.Sweep(s.ctx)

	_, err = s.storage.GetGame(s.ctx, "game")
	s.ErrorIs(err, model.ErrGameNotFound)
	_, err = s.storage.GetWaiting(s.ctx, "p1")
	s.ErrorIs(err, model.ErrNotWaiting)
}

func (s *SweeperSuite) TestRunStopsOnContextCancel() {
	cfg := DefaultConfig()
	cfg.Interval = time.Millisecond
	sweeper := New(s.storage, s.clock, cfg, &sync.Mutex{}, testutil.NopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("sweeper did not stop after cancel")
	}
}
