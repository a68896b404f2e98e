package match

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pixelpets/arena/internal/dependencies/mocks"
	"github.com/pixelpets/arena/internal/model"
	"github.com/pixelpets/arena/internal/storage/memory"
	"github.com/pixelpets/arena/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.controller = NewController(s.storage, s.clock, s.random, &sync.Mutex{}, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ControllerSuite) player(id, name string) model.Player {
	return model.Player{ID: model.PlayerID(id), Name: name}
}

// Find-or-wait

func (s *ControllerSuite) TestFirstPlayerWaits() {
	outcome, err := s.controller.FindOrWait(s.ctx, s.player("p1", "Alice"))
	s.Require().NoError(err)
	s.True(outcome.Waiting)
	s.Nil(outcome.Game)

	waiting, err := s.controller.IsWaiting(s.ctx, "p1")
	s.Require().NoError(err)
	s.True(waiting)
}

func (s *ControllerSuite) TestSecondPlayerIsPaired() {
	s.random.QueueString("AAAAA")

	_, err := s.controller.FindOrWait(s.ctx, s.player("p1", "Alice"))
	s.Require().NoError(err)

	s.clock.Advance(time.Second)
	outcome, err := s.controller.FindOrWait(s.ctx, s.player("p2", "Bob"))
	s.Require().NoError(err)

	s.False(outcome.Waiting)
	s.Require().NotNil(outcome.Game)
	s.Equal(model.GameStateActive, outcome.Game.State)
	s.Require().Len(outcome.Game.Players, 2)
	s.Equal(model.PlayerID("p1"), outcome.Game.Players[0].ID)
	s.Equal(model.PlayerID("p2"), outcome.Game.Players[1].ID)

	// The waiter is out of the queue once paired
	waiting, err := s.controller.IsWaiting(s.ctx, "p1")
	s.Require().NoError(err)
	s.False(waiting)
}

func (s *ControllerSuite) TestOldestWaiterIsPairedFirst() {
	s.random.QueueString("AAAAA")

	now := s.clock.Now()
	_ = s.storage.EnqueueWaiting(s.ctx, &model.WaitingEntry{Player: s.player("p1", "Alice"), CreatedAt: now})
	_ = s.storage.EnqueueWaiting(s.ctx, &model.WaitingEntry{Player: s.player("p2", "Bob"), CreatedAt: now.Add(time.Second)})
	s.clock.Advance(2 * time.Second)

	outcome, err := s.controller.FindOrWait(s.ctx, s.player("p3", "Cara"))
	s.Require().NoError(err)
	s.Require().NotNil(outcome.Game)
	s.Equal(model.PlayerID("p1"), outcome.Game.Players[0].ID)
	s.Equal(model.PlayerID("p3"), outcome.Game.Players[1].ID)

	// p2 is still queued for the next arrival
	waiting, err := s.controller.IsWaiting(s.ctx, "p2")
	s.Require().NoError(err)
	s.True(waiting)
}

func (s *ControllerSuite) TestPlayerIsNeverPairedWithThemselves() {
	_, _ = s.controller.FindOrWait(s.ctx, s.player("p1", "Alice"))

	outcome, err := s.controller.FindOrWait(s.ctx, s.player("p1", "Alice"))
	s.Require().NoError(err)
	s.True(outcome.Waiting)

	n, err := s.storage.WaitingLen(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *ControllerSuite) TestRepeatRequestKeepsQueuePosition() {
	s.random.QueueString("AAAAA")

	_, _ = s.controller.FindOrWait(s.ctx, s.player("p1", "Alice"))
	s.clock.Advance(time.Second)
	_, _ = s.controller.FindOrWait(s.ctx, s.player("p1", "Alicia"))

	// p1 is still at the head despite the later repeat request
	s.clock.Advance(time.Second)
	outcome, err := s.controller.FindOrWait(s.ctx, s.player("p3", "Cara"))
	s.Require().NoError(err)
	s.Require().NotNil(outcome.Game)
	s.Equal(model.PlayerID("p1"), outcome.Game.Players[0].ID)
	s.Equal("Alicia", outcome.Game.Players[0].Name)
}

func (s *ControllerSuite) TestQueuedPlayerPairingClearsOwnEntry() {
	s.random.QueueString("AAAAA")

	now := s.clock.Now()
	_ = s.storage.EnqueueWaiting(s.ctx, &model.WaitingEntry{Player: s.player("p1", "Alice"), CreatedAt: now})
	_ = s.storage.EnqueueWaiting(s.ctx, &model.WaitingEntry{Player: s.player("p2", "Bob"), CreatedAt: now.Add(time.Second)})

	// p2 is queued behind p1; when a fresh request from p2 pairs it with
	// p1 the stale p2 entry must not linger for a third player to match.
	outcome, err := s.controller.FindOrWait(s.ctx, s.player("p2", "Bob"))
	s.Require().NoError(err)
	s.Require().NotNil(outcome.Game)

	n, err := s.storage.WaitingLen(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, n)
}

func (s *ControllerSuite) TestExistingGameReturnedUnchanged() {
	s.random.QueueString("AAAAA")

	_, _ = s.controller.FindOrWait(s.ctx, s.player("p1", "Alice"))
	paired, _ := s.controller.FindOrWait(s.ctx, s.player("p2", "Bob"))

	outcome, err := s.controller.FindOrWait(s.ctx, s.player("p1", "Alice"))
	s.Require().NoError(err)
	s.False(outcome.Waiting)
	s.Require().NotNil(outcome.Game)
	s.Equal(paired.Game.ID, outcome.Game.ID)
}

func (s *ControllerSuite) TestCancelWait() {
	_, _ = s.controller.FindOrWait(s.ctx, s.player("p1", "Alice"))

	err := s.controller.CancelWait(s.ctx, "p1")
	s.Require().NoError(err)

	waiting, err := s.controller.IsWaiting(s.ctx, "p1")
	s.Require().NoError(err)
	s.False(waiting)

	err = s.controller.CancelWait(s.ctx, "p1")
	s.ErrorIs(err, model.ErrNotWaiting)
}

// Create / host / join

func (s *ControllerSuite) TestCreateGameSeatsCreator() {
	s.random.QueueString("AB2CD")

	game, err := s.controller.CreateGame(s.ctx, s.player("p1", "Alice"))
	s.Require().NoError(err)
	s.Equal(model.GameCode("AB2CD"), game.Code)
	s.Equal(model.GameStateWaiting, game.State)
	s.Require().Len(game.Players, 1)
	s.Equal(model.PlayerID("p1"), game.Players[0].ID)
	s.NotEmpty(game.ID)
}

func (s *ControllerSuite) TestHostGameSeatsNobody() {
	s.random.QueueString("AB2CD")

	game, err := s.controller.HostGame(s.ctx, "host-1", "Judge")
	s.Require().NoError(err)
	s.Equal(model.GameStateWaiting, game.State)
	s.Empty(game.Players)
	s.Equal(model.PlayerID("host-1"), game.HostID)
	s.Equal("Judge", game.HostName)
}

func (s *ControllerSuite) TestJoinByCode() {
	s.random.QueueString("AB2CD")
	_, _ = s.controller.CreateGame(s.ctx, s.player("p1", "Alice"))

	game, err := s.controller.JoinByCode(s.ctx, "AB2CD", s.player("p2", "Bob"))
	s.Require().NoError(err)
	s.Equal(model.GameStateActive, game.State)
	s.Require().Len(game.Players, 2)
	s.Equal(model.PlayerID("p2"), game.Players[1].ID)
}

func (s *ControllerSuite) TestJoinHostedGameStaysWaitingUntilFull() {
	s.random.QueueString("AB2CD")
	_, _ = s.controller.HostGame(s.ctx, "host-1", "Judge")

	game, err := s.controller.JoinByCode(s.ctx, "AB2CD", s.player("p1", "Alice"))
	s.Require().NoError(err)
	s.Equal(model.GameStateWaiting, game.State)
	s.Len(game.Players, 1)

	game, err = s.controller.JoinByCode(s.ctx, "AB2CD", s.player("p2", "Bob"))
	s.Require().NoError(err)
	s.Equal(model.GameStateActive, game.State)
	s.Len(game.Players, 2)
}

func (s *ControllerSuite) TestJoinUnknownCode() {
	_, err := s.controller.JoinByCode(s.ctx, "ZZZZZ", s.player("p1", "Alice"))
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestJoinIsIdempotentForSeatedPlayer() {
	s.random.QueueString("AB2CD")
	_, _ = s.controller.CreateGame(s.ctx, s.player("p1", "Alice"))
	_, _ = s.controller.JoinByCode(s.ctx, "AB2CD", s.player("p2", "Bob"))

	game, err := s.controller.JoinByCode(s.ctx, "AB2CD", s.player("p2", "Bob"))
	s.Require().NoError(err)
	s.Equal(model.GameStateActive, game.State)
	s.Len(game.Players, 2)
}

func (s *ControllerSuite) TestThirdPlayerCannotJoin() {
	s.random.QueueString("AB2CD")
	_, _ = s.controller.CreateGame(s.ctx, s.player("p1", "Alice"))
	_, _ = s.controller.JoinByCode(s.ctx, "AB2CD", s.player("p2", "Bob"))

	_, err := s.controller.JoinByCode(s.ctx, "AB2CD", s.player("p3", "Cara"))
	s.ErrorIs(err, model.ErrJoinClosed)
}

func (s *ControllerSuite) TestConcurrentJoinsSeatExactlyOnePlayer() {
	s.random.QueueString("AB2CD")
	_, _ = s.controller.CreateGame(s.ctx, s.player("p1", "Alice"))

	const joiners = 8
	results := make(chan error, joiners)

	var wg sync.WaitGroup
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := s.controller.JoinByCode(s.ctx, "AB2CD", model.Player{
				ID:   model.PlayerID(fmt.Sprintf("joiner-%d", n)),
				Name: "Joiner",
			})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	seated := 0
	for err := range results {
		if err == nil {
			seated++
		} else {
			s.ErrorIs(err, model.ErrJoinClosed)
		}
	}
	s.Equal(1, seated)

	game, err := s.storage.GetGameByCode(s.ctx, "AB2CD")
	s.Require().NoError(err)
	s.Equal(model.GameStateActive, game.State)
	s.Len(game.Players, 2)
}

func (s *ControllerSuite) TestCodeCollisionRetries() {
	s.random.QueueString("AAAAA", "AAAAA", "BBBBB")

	first, err := s.controller.CreateGame(s.ctx, s.player("p1", "Alice"))
	s.Require().NoError(err)
	s.Equal(model.GameCode("AAAAA"), first.Code)

	// Second game draws a colliding code first, then a fresh one
	second, err := s.controller.CreateGame(s.ctx, s.player("p2", "Bob"))
	s.Require().NoError(err)
	s.Equal(model.GameCode("BBBBB"), second.Code)
}
