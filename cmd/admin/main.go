package main

import (
	"context"
	"os"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/service"
	mongodb "github.com/bhargav3929/myacademydask-sub000/internal/infrastructure/db/mongo"
	redisdb "github.com/bhargav3929/myacademydask-sub000/internal/infrastructure/db/redis"
	"github.com/bhargav3929/myacademydask-sub000/internal/infrastructure/queue"
	"github.com/bhargav3929/myacademydask-sub000/internal/pkg/config"
	"github.com/bhargav3929/myacademydask-sub000/pkg/logger"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Output: os.Stderr, Service: "academy-admin"})
	ctx := context.Background()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to mongo")
		return 1
	}
	defer mongoClient.Disconnect(ctx)

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to redis")
		return 1
	}
	defer rdb.Close()

	profiles := mongodb.NewProfileRepository(db)
	audit := queue.NewAuditWriter(1, mongodb.NewAuditRepository(db), logger.Component("audit"))
	audit.Start(ctx)
	defer audit.Stop()

	reconciler := service.NewRoleReconciler(redisdb.NewClaimsStore(rdb), profiles, logger.Component("reconciler"))
	accounts := service.NewAccountService(service.AccountDeps{
		Identity:   mongodb.NewIdentityRepository(db),
		Profiles:   profiles,
		Stadiums:   mongodb.NewStadiumRepository(db),
		Owners:     mongodb.NewOwnerRepository(db),
		Sessions:   redisdb.NewSessionStore(rdb, cfg.Session.TTL),
		Batch:      mongodb.NewBatch(mongoClient),
		Reconciler: reconciler,
		Audit:      audit,
	}, cfg.Session.OwnerEmailDomain, logger.Component("accounts"))

	cli := commandLine{accounts: accounts, reconciler: reconciler, out: os.Stdout}
	if err := cli.run(ctx, os.Args); err != nil {
		if err != errHelp {
			log.Error().Err(err).Msg("command failed")
		}
		return 1
	}
	return 0
}
