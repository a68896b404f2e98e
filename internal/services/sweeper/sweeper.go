package sweeper

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/pixelpets/arena/internal/dependencies/clock"
	"github.com/pixelpets/arena/internal/model"
	"github.com/pixelpets/arena/internal/storage"
)

// Config holds sweep intervals and inactivity thresholds
type Config struct {
	// Interval between sweep passes
	Interval time.Duration
	// GameTTL is the maximum inactivity before a game is evicted,
	// regardless of its state
	GameTTL time.Duration
	// WaitingTTL is the maximum age of a waiting queue entry
	WaitingTTL time.Duration
}

// DefaultConfig returns the reference sweep settings
func DefaultConfig() Config {
	return Config{
		Interval:   5 * time.Minute,
		GameTTL:    30 * time.Minute,
		WaitingTTL: 10 * time.Minute,
	}
}

// Sweeper periodically evicts stale games and waiting entries. It is an
// explicit task owned by the server lifecycle: started at startup and
// stopped by cancelling the context passed to Run.
type Sweeper struct {
	storage storage.Store
	clock   clock.Clock
	cfg     Config

	// mu is shared with the services so that an eviction decision and
	// its delete cannot interleave with a fetch-mutate-save in flight
	mu *sync.Mutex

	logger *slog.Logger
}

// New creates a new Sweeper
func New(storage storage.Store, clock clock.Clock, cfg Config, mu *sync.Mutex, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		storage: storage,
		clock:   clock,
		cfg:     cfg,
		mu:      mu,
		logger:  logger,
	}
}

// Run executes sweep passes on the configured interval until ctx is
// cancelled. Sweeping is best-effort: failures are logged and never
// propagate to request handlers.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.logger.Info("sweeper started",
		slog.Duration("interval", s.cfg.Interval),
		slog.Duration("game_ttl", s.cfg.GameTTL),
		slog.Duration("waiting_ttl", s.cfg.WaitingTTL),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return
		case <-ticker.C:
			s.safeSweep(ctx)
		}
	}
}

func (s *Sweeper) safeSweep(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic during sweep", slog.Any("error", r))
		}
	}()
	s.Sweep(ctx)
}

// Sweep runs a single eviction pass
func (s *Sweeper) Sweep(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.sweepGames(ctx, now)
	s.sweepWaiting(ctx, now)
}

func (s *Sweeper) sweepGames(ctx context.Context, now time.Time) {
	games, err := s.storage.ListGames(ctx)
	if err != nil {
		s.logger.Error("failed to list games for sweep", slog.String("error", err.Error()))
		return
	}

	evicted := 0
	for _, game := range games {
		if now.Sub(game.UpdatedAt) <= s.cfg.GameTTL {
			continue
		}
		if err := s.storage.DeleteGame(ctx, game.ID); err != nil {
			s.logger.Error("failed to evict game",
				slog.String("game_id", string(game.ID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		evicted++
	}

	if evicted > 0 {
		s.logger.Info("evicted stale games", slog.Int("count", evicted))
	}
}

// sweepWaiting pops expired entries from the queue head only. Entries are
// kept in arrival order and re-enqueueing never moves an entry, so the
// first fresh entry ends the scan.
func (s *Sweeper) sweepWaiting(ctx context.Context, now time.Time) {
	evicted := 0
	for {
		head, err := s.storage.PeekWaiting(ctx)
		if err != nil {
			if !errors.Is(err, model.ErrQueueEmpty) {
				s.logger.Error("failed to peek waiting queue", slog.String("error", err.Error()))
			}
			break
		}

		if now.Sub(head.CreatedAt) <= s.cfg.WaitingTTL {
			break
		}

		if _, err := s.storage.DequeueWaiting(ctx); err != nil {
			if !errors.Is(err, model.ErrQueueEmpty) {
				s.logger.Error("failed to dequeue stale entry", slog.String("error", err.Error()))
			}
			break
		}
		evicted++
	}

	if evicted > 0 {
		s.logger.Info("evicted stale waiting entries", slog.Int("count", evicted))
	}
}
