// @title           MyAcademyDask API
// @version         1.0
// @description     Role and claims management for multi-tenant sports academies.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bhargav3929/myacademydask-sub000/internal/api"
	"github.com/bhargav3929/myacademydask-sub000/internal/core/service"
	mongodb "github.com/bhargav3929/myacademydask-sub000/internal/infrastructure/db/mongo"
	redisdb "github.com/bhargav3929/myacademydask-sub000/internal/infrastructure/db/redis"
	"github.com/bhargav3929/myacademydask-sub000/internal/infrastructure/http/handlers"
	"github.com/bhargav3929/myacademydask-sub000/internal/infrastructure/queue"
	"github.com/bhargav3929/myacademydask-sub000/internal/pkg/config"
	"github.com/bhargav3929/myacademydask-sub000/pkg/logger"

	_ "github.com/bhargav3929/myacademydask-sub000/docs"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "academy-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// --- Stores ---
	identity := mongodb.NewIdentityRepository(db)
	profiles := mongodb.NewProfileRepository(db)
	stadiums := mongodb.NewStadiumRepository(db)
	owners := mongodb.NewOwnerRepository(db)
	claims := redisdb.NewClaimsStore(rdb)
	sessions := redisdb.NewSessionStore(rdb, cfg.Session.TTL)

	audit := queue.NewAuditWriter(cfg.Audit.Workers, mongodb.NewAuditRepository(db), logger.Component("audit"))
	audit.Start(context.Background())

	// --- Services ---
	reconciler := service.NewRoleReconciler(claims, profiles, logger.Component("reconciler"))
	authSvc := service.NewAuthService(identity, profiles, claims, sessions, reconciler, service.AuthConfig{
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.Session.TTL,
		EmailDomain: cfg.Session.OwnerEmailDomain,
	}, logger.Component("auth"))
	accountSvc := service.NewAccountService(service.AccountDeps{
		Identity:   identity,
		Profiles:   profiles,
		Stadiums:   stadiums,
		Owners:     owners,
		Sessions:   sessions,
		Batch:      mongodb.NewBatch(mongoClient),
		Reconciler: reconciler,
		Audit:      audit,
	}, cfg.Session.OwnerEmailDomain, logger.Component("accounts"))

	e := api.NewRouter(api.RouterDeps{
		Auth:         authSvc,
		Accounts:     accountSvc,
		Profiles:     profiles,
		Reconciler:   reconciler,
		Health:       handlers.NewHealthHandler(handlers.MongoDependency(db), handlers.RedisDependency(rdb)),
		WebRoot:      cfg.Web.Root,
		CookieSecure: cfg.Session.CookieSecure,
		Log:          logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	audit.Stop()
	log.Info().Msg("server stopped")
}
