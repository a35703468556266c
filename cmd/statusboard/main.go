// Package main provides the statusboard binary entry point.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/staffboard/statusboard/internal/api"
	"github.com/staffboard/statusboard/internal/core/service"
	mongodb "github.com/staffboard/statusboard/internal/infrastructure/db/mongo"
	redisdb "github.com/staffboard/statusboard/internal/infrastructure/db/redis"
	"github.com/staffboard/statusboard/internal/infrastructure/feed"
	"github.com/staffboard/statusboard/internal/pkg/config"
	"github.com/staffboard/statusboard/pkg/logger"
)

// @title           Staff Status Board API
// @version         1.0
// @description     Live staff availability roster with authenticated updates.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

func main() {
	root := &cobra.Command{
		Use:           "statusboard",
		Short:         "Staff availability status board service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the starter roster into an empty personnel collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed()
		},
	}
}

func runServe() error {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	rosterRepo := mongodb.NewRosterRepository(db)
	authRepo := mongodb.NewAuthRepository(db)
	if err := rosterRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("personnel index creation failed")
	}
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("auth index creation failed")
	}

	// Live feed: Redis change signals → full snapshot reload → hub fan-out.
	hub := feed.NewHub(logger.For("feed"))
	bridge := feed.NewBridge(hub, rosterRepo, redisdb.NewChangeListener(rdb), logger.For("feed"))
	go func() {
		if err := bridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("feed bridge stopped")
		}
	}()

	// Startup seeding is a background convenience: failures are logged,
	// never surfaced to viewers.
	if cfg.SeedOnStart {
		notifier := redisdb.NewChangeNotifier(rdb)
		seeder := service.NewSeeder(rosterRepo, notifier, logger.For("seeder"))
		go func() {
			if err := seeder.SeedIfEmpty(ctx); err != nil {
				log.Error().Err(err).Msg("starter roster seeding failed")
			}
		}()
	}

	e := api.NewRouter(db, rdb, hub, cfg.JWTSecret, cfg.TokenTTL, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("status board listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func runSeed() error {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	seeder := service.NewSeeder(
		mongodb.NewRosterRepository(db),
		redisdb.NewChangeNotifier(rdb),
		logger.For("seeder"),
	)
	if err := seeder.SeedIfEmpty(ctx); err != nil {
		return err
	}

	log.Info().Msg("seed check complete")
	return nil
}
