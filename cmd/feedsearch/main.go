package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/konectfeed/feedsearch/internal/config"
	dbRedis "github.com/konectfeed/feedsearch/internal/db/redis"
	logpkg "github.com/konectfeed/feedsearch/internal/logger"
	listingrepo "github.com/konectfeed/feedsearch/internal/repository/listing"
	chiTransport "github.com/konectfeed/feedsearch/internal/transport/chi"
	healthuc "github.com/konectfeed/feedsearch/internal/usecase/health"
	searchuc "github.com/konectfeed/feedsearch/internal/usecase/search"
	"github.com/konectfeed/feedsearch/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting feedsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("strategy", cfg.Search.Strategy),
		zap.String("field_match", cfg.Search.FieldMatch),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := logpkg.ContextWithLogger(context.Background(), logger)
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	repo := listingrepo.New(store, cfg.Search.KeyPrefix, cfg.Search.CandidateWindow)
	if err := repo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure listings index", zap.Error(err))
	}

	searchSvc := searchuc.New(repo, cfg.QueryPolicy(), cfg.PlanPolicy())
	searchSvc.WarnOnMissingCapability(ctx)
	healthSvc := healthuc.New(store)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
