package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"

	"github.com/vertexinsure/insurance-connector/internal/application"
	"github.com/vertexinsure/insurance-connector/internal/config"
	"github.com/vertexinsure/insurance-connector/internal/kafka"
	"github.com/vertexinsure/insurance-connector/internal/logger"
	"github.com/vertexinsure/insurance-connector/internal/migrate"
	"github.com/vertexinsure/insurance-connector/internal/presentation"
	"github.com/vertexinsure/insurance-connector/internal/repository"
	"github.com/vertexinsure/insurance-connector/internal/signature"
)

func main() {
	logger.Init()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}

	// DB pool
	pool, err := pgxpool.New(context.Background(), cfg.DB_STRING)
	if err != nil {
		logger.Error("pgxpool new failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Postgres may still be coming up alongside us; retry the ping with
	// backoff instead of crash-looping.
	backoff := retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(context.Background(), backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			logger.Warn("db ping failed, retrying", "err", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		logger.Error("db unreachable", "err", err)
		os.Exit(1)
	}
	logger.Info("db connected")

	if err := migrate.Up(cfg.DB_STRING); err != nil {
		logger.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	// Wiring
	repo := repository.NewManifestRepository(pool)

	var pub application.ManifestPublisher
	if cfg.KAFKA_BROKERS != "" && cfg.KAFKA_TOPIC != "" {
		prod := kafka.NewProducer(cfg.KAFKA_BROKERS, cfg.KAFKA_TOPIC)
		defer prod.Close()
		pub = prod
		logger.Info("kafka publishing enabled", "topic", cfg.KAFKA_TOPIC)
	}

	svc := application.NewManifestService(repo, pub)
	verifier := signature.NewVerifier(cfg.WEBHOOK_SECRET, signature.Encoding(cfg.SIGNATURE_ENCODING))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	h := presentation.NewWebhookHandler(svc, verifier)
	h.Register(r)

	addr := ":" + cfg.HTTP_PORT
	logger.Info("starting http", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Error("http server crashed", "err", err)
		os.Exit(1)
	}
}
