package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prysm/crm-system/internal/api"
	"github.com/prysm/crm-system/internal/api/handler"
	"github.com/prysm/crm-system/internal/core/domain"
	"github.com/prysm/crm-system/internal/core/service"
	"github.com/prysm/crm-system/internal/infrastructure/config"
	"github.com/prysm/crm-system/internal/infrastructure/db/mongo"
	"github.com/prysm/crm-system/internal/infrastructure/db/redis"
	"github.com/prysm/crm-system/internal/infrastructure/http/handlers"
	"github.com/prysm/crm-system/internal/infrastructure/queue"
	"github.com/prysm/crm-system/pkg/logger"
)

// @title CRM System API
// @version 1.0
// @description Mini CRM backend with customers, tasks, users, JWT authentication and role-based access control.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "crm-api",
		Pretty:  cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Data stores ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	userRepo := mongo.NewUserRepository(db)
	customerRepo := mongo.NewCustomerRepository(db)
	taskRepo := mongo.NewTaskRepository(db)
	activityRepo := mongo.NewActivityRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":         userRepo.EnsureIndexes,
		"customers":     customerRepo.EnsureIndexes,
		"tasks":         taskRepo.EnsureIndexes,
		"task_activity": activityRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Services ---
	statuses := domain.NewStatusSet(cfg.TaskStatuses)

	activityService := service.NewActivityService(activityRepo, log)
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activityService, log)
	dispatcher.Start(ctx)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	customerService := service.NewCustomerService(customerRepo, redis.NewCustomerCache(rdb), log)
	taskService := service.NewTaskService(taskRepo, userRepo, customerRepo, activityRepo, dispatcher, statuses, log)
	userService := service.NewUserService(userRepo, log)

	// --- Router ---
	e := api.NewRouter(api.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Customer: handler.NewCustomerHandler(customerService),
		Task:     handler.NewTaskHandler(taskService),
		User:     handler.NewUserHandler(userService),
		Health:   handlers.NewHealthHandler(),
		Ready:    handlers.NewHealthDependenciesHandler(db, rdb),
	}, cfg.JWTSecret, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
