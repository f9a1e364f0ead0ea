package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vytor/funzone/internal/api"
	"github.com/vytor/funzone/internal/background"
	"github.com/vytor/funzone/internal/config"
	"github.com/vytor/funzone/internal/db"
	"github.com/vytor/funzone/internal/jobs"
	"github.com/vytor/funzone/internal/logger"
	"github.com/vytor/funzone/internal/mailer"
	"github.com/vytor/funzone/internal/metrics"
	"github.com/vytor/funzone/internal/repository"
	"github.com/vytor/funzone/internal/repository/redisstore"
	"github.com/vytor/funzone/internal/repository/sqlite"
	"github.com/vytor/funzone/internal/rng"
	"github.com/vytor/funzone/internal/scheduler"
	"github.com/vytor/funzone/internal/services"
	"github.com/vytor/funzone/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(logger.ParseFormat(cfg.LogFormat)),
		logger.WithColors(logger.ParseFormat(cfg.LogFormat) == logger.FormatText),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("FunZone Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("log_format=%s", cfg.LogFormat)
	log.Debug("redis_addr=%s", cfg.RedisAddr)
	log.Debug("smtp_host=%s:%d", cfg.SMTPHost, cfg.SMTPPort)
	log.Debug("result_worker_count=%d", cfg.ResultWorkerCount)
	log.Debug("result_queue_size=%d", cfg.ResultQueueSize)
	log.Debug("session_idle_timeout=%s", cfg.SessionIdleTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	readyChecks := map[string]api.ReadyCheck{"database": database.Ready}

	var rdb redis.UniversalClient
	client, err := redisstore.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	switch {
	case err != nil:
		log.Warn("redis unavailable, using sqlite scores and no rate limit: %v", err)
	case client != nil:
		log.Info("connected to redis at %s", cfg.RedisAddr)
		rdb = client
		readyChecks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		defer client.Close()
	}

	var scores repository.ScoreRepository
	if rdb != nil {
		scores = redisstore.NewScoreRepository(rdb, "funzone")
	} else {
		scores = sqlite.NewScoreRepository(database.DB)
	}
	results := sqlite.NewResultRepository(database.DB)

	if !cfg.MailConfigured() {
		log.Warn("EMAIL_USER/EMAIL_PASS not set, contact messages will fail")
	}
	sender := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.EmailUser,
		Password: cfg.EmailPass,
	})

	m := metrics.New()
	resultPool := worker.NewPool(cfg.ResultWorkerCount, cfg.ResultQueueSize)
	clock := scheduler.NewReal()

	gameService := services.NewGameService(scores, jobs.NewWorkerQueue(resultPool, results), m, services.GameServiceConfig{
		Scheduler:   clock,
		NewSource:   rng.NewFromTime,
		IdleTimeout: cfg.SessionIdleTimeout,
	})
	statsService := services.NewStatsService(results, scores)
	contactService := services.NewContactService(sender, cfg.EmailUser, cfg.ContactTo, m)

	streamsDone := make(chan struct{})
	bgOpts := background.DefaultOptions()
	bgOpts.Nodes = cfg.BackgroundNodes

	srv := &api.Server{
		GameService:    gameService,
		StatsService:   statsService,
		ContactService: contactService,
		Metrics:        m,
		Limiter:        api.NewRateLimiter(rdb, cfg.ContactRateLimit, cfg.ContactRateWindow, m),
		ReadyChecks:    readyChecks,
		Background: api.BackgroundConfig{
			Options:   bgOpts,
			FPS:       cfg.BackgroundFPS,
			Scheduler: clock,
			NewSource: rng.NewFromTime,
			Done:      streamsDone,
		},
		CORSOrigin: cfg.CORSOrigin,
	}

	resultPool.Start(ctx)
	sweeper := gameService.StartSweeper(time.Minute)

	httpServer := &http.Server{
		Addr:        cfg.Addr,
		Handler:     srv.Routes(),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
	httpServer.RegisterOnShutdown(func() { close(streamsDone) })

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping session sweeper")
	sweeper.Cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// drain queued results before the database closes
	log.Debug("stopping result pool")
	resultPool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("FunZone Server Stopped")
	log.Info("===========================================")
}
