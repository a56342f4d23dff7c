// Command server wires the profile, integration, and engine features behind
// one HTTP listener. Backends degrade gracefully: without Postgres, Redis, or
// Kafka configured it runs fully in-memory, which is how local development
// and the test suites exercise it.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"noesis/internal/audit"
	auditkafka "noesis/internal/audit/kafka"
	"noesis/internal/engine/cache"
	enginehandler "noesis/internal/engine/handler"
	enginemetrics "noesis/internal/engine/metrics"
	engineservice "noesis/internal/engine/service"
	"noesis/internal/integration"
	"noesis/internal/platform/config"
	"noesis/internal/platform/httpserver"
	"noesis/internal/platform/logger"
	"noesis/internal/platform/middleware"
	"noesis/internal/platform/postgres"
	platformredis "noesis/internal/platform/redis"
	profilehandler "noesis/internal/profile/handler"
	profilemetrics "noesis/internal/profile/metrics"
	profileservice "noesis/internal/profile/service"
	"noesis/internal/profile/store"
	memorystore "noesis/internal/profile/store/memory"
	postgresstore "noesis/internal/profile/store/postgres"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Profile store: Postgres when configured, in-memory otherwise.
	var profiles store.Store
	pool, err := postgres.NewPool(ctx, cfg.PostgresURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
		pgStore, err := postgresstore.New(ctx, pool)
		if err != nil {
			log.Error("postgres schema setup failed", "error", err)
			os.Exit(1)
		}
		profiles = pgStore
		log.Info("using postgres profile store")
	} else {
		profiles = memorystore.New()
		log.Info("using in-memory profile store")
	}

	// Snapshot cache: Redis when configured, process-local otherwise.
	var snapshots cache.Cache
	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		snapshots = cache.NewRedis(redisClient.Client, cfg.SnapshotTTL)
		log.Info("using redis snapshot cache")
	} else {
		snapshots = cache.NewMemory(cfg.SnapshotTTL)
		log.Info("using in-memory snapshot cache")
	}

	// Activity trail, optionally mirrored to Kafka.
	auditOpts := []audit.Option{audit.WithLogger(log), audit.WithAsyncBuffer(256)}
	if len(cfg.KafkaBrokers) > 0 {
		sink, err := auditkafka.New(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Error("kafka connection failed", "error", err)
			os.Exit(1)
		}
		defer sink.Close()
		auditOpts = append(auditOpts, audit.WithSink(sink))
		log.Info("mirroring activity trail to kafka", "topic", cfg.KafkaTopic)
	}
	auditor := audit.NewPublisher(audit.NewInMemoryStore(), auditOpts...)
	defer auditor.Close()

	profileSvc := profileservice.New(profiles, integration.NewMapper(),
		profileservice.WithLogger(log),
		profileservice.WithAuditPublisher(auditor),
		profileservice.WithMetrics(profilemetrics.New()),
	)
	engineSvc := engineservice.New(profiles,
		engineservice.WithCache(snapshots),
		engineservice.WithLogger(log),
		engineservice.WithMetrics(enginemetrics.New()),
	)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))

	profilehandler.New(profileSvc, log).Register(router)
	enginehandler.New(engineSvc, log).Register(router)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		if pool != nil && pool.Ping(r.Context()) != nil {
			status = http.StatusServiceUnavailable
		}
		if redisClient != nil && redisClient.Health(r.Context()) != nil {
			status = http.StatusServiceUnavailable
		}
		w.WriteHeader(status)
	})
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
