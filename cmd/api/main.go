package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gatherly/events-api/internal/api"
	"github.com/gatherly/events-api/internal/api/middleware"
	"github.com/gatherly/events-api/internal/infrastructure/config"
	mongodb "github.com/gatherly/events-api/internal/infrastructure/db/mongo"
	redisdb "github.com/gatherly/events-api/internal/infrastructure/db/redis"
	"github.com/gatherly/events-api/internal/notify"
	"github.com/gatherly/events-api/pkg/logger"
)

// @title        Events API
// @version      1.0
// @description  Community event management service: accounts, events, registrations.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in           header
// @name         Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connect")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes")
	}
	if err := mongodb.NewEventRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("event indexes")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	// --- Mail dispatcher ---
	mailer := notify.NewSMTPMailer(notify.SMTPConfig{
		Host:    cfg.SMTP.Host,
		Port:    cfg.SMTP.Port,
		User:    cfg.SMTP.User,
		Pass:    cfg.SMTP.Pass,
		From:    cfg.SMTP.From,
		Enabled: cfg.SMTP.Enabled,
	}, log)
	dispatcher := notify.NewDispatcher(cfg.Mail.Workers, mailer, log)
	dispatcher.Start(ctx)

	var limiter middleware.Limiter = redisdb.NewRateLimiter(rdb, "auth", cfg.RateLimit.Max, cfg.RateLimit.Window)

	e := api.NewRouter(db, rdb, dispatcher, api.RouterConfig{
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.TokenTTL,
		RateLimiter: limiter,
	}, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("server stopped")
}
