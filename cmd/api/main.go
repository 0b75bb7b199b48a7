package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/baharkarakas/legion/internal/api"
	"github.com/baharkarakas/legion/internal/app"
	"github.com/baharkarakas/legion/internal/auth"
	"github.com/baharkarakas/legion/internal/config"
	"github.com/baharkarakas/legion/internal/events"
	"github.com/baharkarakas/legion/internal/logger"
	"github.com/baharkarakas/legion/internal/metrics"
	"github.com/baharkarakas/legion/internal/seed"
	"github.com/baharkarakas/legion/internal/services"
	"github.com/baharkarakas/legion/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("startup", "err", err)
		os.Exit(1)
	}
}

// run owns every resource it opens, so deferred cleanup happens on each
// return path before main exits.
func run(cfg config.Config, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(ctx, cfg, false, log)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer store.Close()

	hasher := auth.NewHasher()
	if cfg.Seed {
		snap, err := seed.Bundled()
		if err == nil {
			_, err = seed.Run(ctx, store, hasher, snap, log)
		}
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	var pub events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		pub = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		log.Info("publishing events", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	defer pub.Close()

	// stopped before pub is closed so queued events are flushed
	wp := worker.NewPool(cfg.WorkerCount, 0)
	defer wp.Stop()
	em := events.NewDispatcher(pub, wp, log)

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	users := services.NewUserService(store, hasher, em)
	deps := api.RouterDeps{
		Cfg:      cfg,
		Tokens:   tm,
		Members:  services.NewMemberService(store, hasher, em),
		Workouts: services.NewWorkoutService(store, em),
		Records:  services.NewRecordService(store, em),
		Users:    users,
		Auth:     services.NewAuthService(users, tm),
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Warn("redis close", "err", err)
			}
		}()
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		deps.Redis = rdb
	}

	metrics.Init()
	r := api.NewRouter(deps)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
	return nil
}
