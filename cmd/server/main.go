package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pixelpets/arena/internal/api"
	"github.com/pixelpets/arena/internal/factory"
	"github.com/pixelpets/arena/internal/services/sweeper"
	redisstorage "github.com/pixelpets/arena/internal/storage/redis"
)

func main() {
	// Load .env in development; missing file is fine
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := factory.Config{
		Logger:        logger,
		StorageType:   os.Getenv("STORAGE_TYPE"),
		SweeperConfig: sweeperConfigFromEnv(),
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		MatchController: app.MatchController,
		GameController:  app.GameController,
		AllowedOrigins:  corsOriginsFromEnv(),
	})

	serverConfig := api.DefaultServerConfig()
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		serverConfig.Port = port
	}
	server := api.NewServer(router, serverConfig, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// The sweeper runs for the lifetime of the server and is stopped by
	// the same context as the shutdown path
	go app.Sweeper.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// sweeperConfigFromEnv applies any TTL overrides from the environment
func sweeperConfigFromEnv() sweeper.Config {
	cfg := sweeper.DefaultConfig()
	if d := durationEnv("SWEEP_INTERVAL"); d > 0 {
		cfg.Interval = d
	}
	if d := durationEnv("GAME_TTL"); d > 0 {
		cfg.GameTTL = d
	}
	if d := durationEnv("WAITING_TTL"); d > 0 {
		cfg.WaitingTTL = d
	}
	return cfg
}

func durationEnv(key string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0
	}
	return d
}

func corsOriginsFromEnv() []string {
	v := os.Getenv("CORS_ORIGINS")
	if v == "" {
		return nil
	}
	return strings.Split(v, ",")
}
