// @title        SkillForge LMS API
// @version      1.0
// @description  REST backend for the SkillForge learning platform.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillforge/lms-platform/internal/api"
	lmsmongo "github.com/skillforge/lms-platform/internal/infrastructure/db/mongo"
	lmsredis "github.com/skillforge/lms-platform/internal/infrastructure/db/redis"
	"github.com/skillforge/lms-platform/internal/infrastructure/payment"
	"github.com/skillforge/lms-platform/internal/pkg/config"
	"github.com/skillforge/lms-platform/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := lmsmongo.Connect(ctx, lmsmongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := lmsredis.Connect(ctx, lmsredis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	gateway := payment.NewGateway(cfg.Razorpay.KeyID, cfg.Razorpay.Secret)

	e := api.NewRouter(cfg, db, rdb, gateway, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := lmsmongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := lmsmongo.NewDeviceRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return lmsmongo.NewCourseRepository(db).EnsureIndexes(ctx)
}
