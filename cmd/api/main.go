package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/anrssnbv/flight-requests-backend/internal/api"
	"github.com/anrssnbv/flight-requests-backend/internal/core/service"
	"github.com/anrssnbv/flight-requests-backend/internal/infrastructure/config"
	mongodb "github.com/anrssnbv/flight-requests-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/anrssnbv/flight-requests-backend/internal/infrastructure/db/redis"
	"github.com/anrssnbv/flight-requests-backend/internal/infrastructure/queue"
	"github.com/anrssnbv/flight-requests-backend/pkg/logger"

	_ "github.com/anrssnbv/flight-requests-backend/docs" // swagger docs
)

// @title        Flight Request API
// @version      1.0
// @description  Flight-operation request submission and decision workflow.

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	authRepo := mongodb.NewAuthRepository(db)
	requestRepo := mongodb.NewRequestRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	sessions := redisdb.NewSessionStore(rdb)

	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := requestRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create request indexes")
	}

	// --- Audit pipeline ---
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, log)
	dispatcher.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(authRepo, sessions, cfg.JWTSecret, cfg.TokenTTL, log)
	requestService := service.NewRequestService(requestRepo, dispatcher, log)

	if err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Organization); err != nil {
		log.Fatal().Err(err).Msg("admin provisioning failed")
	}

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		AuthService:    authService,
		RequestService: requestService,
		Sessions:       sessions,
		Mongo:          db,
		Redis:          rdb,
		JWTSecret:      cfg.JWTSecret,
		Log:            log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
