package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"supplycore/internal/backup"
	"supplycore/internal/blob"
	"supplycore/internal/config"
	"supplycore/internal/core"
	"supplycore/internal/server"
)

func main() {
	// .env for local development; real env vars take precedence.
	_ = gotenv.Load()

	cfg, err := config.Load(os.Getenv("SUPPLYCORE_CONFIG"))
	if err != nil {
		panic("load config: " + err.Error())
	}

	logger := server.NewLogger(os.Getenv("SUPPLYCORE_LOG_LEVEL"))
	defer func() { _ = logger.Sync() }()

	logger.Info("configuration loaded",
		zap.String("env", cfg.App.Env),
		zap.String("addr", cfg.HTTP.Addr),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("archive_driver", cfg.Archive.Driver),
		zap.Bool("metrics", cfg.Metrics.Enabled),
	)

	medium, err := core.OpenKV(core.StorageConfig{
		Driver:      cfg.Storage.Driver,
		SQLitePath:  cfg.Storage.SQLitePath,
		PostgresDSN: cfg.Storage.PostgresDSN,
		FSDir:       cfg.Storage.FSDir,
	})
	if err != nil {
		logger.Fatal("open storage", zap.Error(err))
	}
	defer func() { _ = medium.Close() }()

	ctx := context.Background()

	var metrics *core.PromMetrics
	opts := []core.StoreOption{core.WithLogger(logger)}
	if cfg.Metrics.Enabled {
		metrics = core.NewPromMetrics()
		opts = append(opts, core.WithMetrics(metrics))
	}
	store := core.NewStore(ctx, medium, nil, opts...)

	session := core.NewSession(ctx, store, logger)
	svc := core.NewService(store, logger, session.ActorName)

	archive, err := blob.Open(ctx, cfg.Archive.Driver, cfg.Archive.FSRoot)
	if err != nil {
		logger.Fatal("open archive store", zap.Error(err))
	}
	archiver := backup.NewArchiver(store, archive)

	tokens := server.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	router := server.NewRouter(server.Deps{
		Service:  svc,
		Session:  session,
		Archiver: archiver,
		Tokens:   tokens,
		Metrics:  metrics,
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
