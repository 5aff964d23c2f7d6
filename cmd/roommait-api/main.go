package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/saswath-06/roommait/internal/auth"
	"github.com/saswath-06/roommait/internal/catalog"
	"github.com/saswath-06/roommait/internal/config"
	"github.com/saswath-06/roommait/internal/events"
	httpapi "github.com/saswath-06/roommait/internal/http"
	"github.com/saswath-06/roommait/internal/repository"
	"github.com/saswath-06/roommait/internal/service"
	"github.com/saswath-06/roommait/internal/store"
	"github.com/saswath-06/roommait/pkg/database"
	"github.com/saswath-06/roommait/pkg/logger"
	"github.com/saswath-06/roommait/pkg/mqtt"
)

func main() {
	cfg := config.Load()

	lg, err := logger.New(logger.Options{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Service:     "roommait-api",
		Environment: cfg.Environment,
	})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer lg.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Persistence: PostgreSQL when reachable, in-memory otherwise.
	var db *sql.DB
	repos := repository.NewMemoryStore()
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(cfg.Database); err == nil {
			if err := repository.EnsureSchema(ctx, d); err != nil {
				lg.Error("Schema bootstrap failed, falling back to memory store", zap.Error(err))
				_ = d.Close()
			} else {
				db = d
				repos = repository.NewPostgresStore(db)
				lg.Info("DB enabled for roommait-api", zap.String("host", cfg.Database.Host), zap.String("database", cfg.Database.Database))
			}
		} else {
			lg.Warn("DB enabled but connection failed, falling back to memory store", zap.Error(err))
		}
	}
	if db != nil {
		defer db.Close()
	}

	// JWKS cache: Redis when reachable, process memory otherwise.
	var kv store.KV = store.NewMemoryKV()
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		rc := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rc.Ping(pingCtx).Err(); err != nil {
			lg.Warn("Redis unavailable, using in-memory key cache", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
			_ = rc.Close()
		} else {
			redisClient = rc
			kv = store.NewRedisKV(rc)
		}
		pingCancel()
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	keys := auth.NewHTTPKeySource(cfg.Auth.JWKSURL(), cfg.Auth.Timeout, cfg.Auth.JWKSCacheTTL, kv, lg)
	verifier := auth.NewVerifier(cfg.Auth, keys, lg)
	if !verifier.Configured() {
		lg.Warn("AUTH0_DOMAIN not set: optional endpoints run anonymously, required endpoints return 500")
	}

	static, err := catalog.DefaultStaticCatalog()
	if err != nil {
		lg.Fatal("Failed to load product catalog", zap.Error(err))
	}
	var lookup catalog.Lookup = static
	if cfg.Catalog.SearchURL != "" {
		lookup = catalog.NewRetailClient(cfg.Catalog.SearchURL, cfg.Catalog.APIKey, cfg.Catalog.Timeout, static, lg)
		lg.Info("Using retail product search", zap.String("url", cfg.Catalog.SearchURL))
	}

	var sinks events.Fanout
	if cfg.MQTT.Enabled {
		client, err := mqtt.NewClient(mqtt.Config{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
			QoS:      1,
		})
		if err != nil {
			lg.Warn("MQTT unavailable, events disabled", zap.String("broker", cfg.MQTT.Broker), zap.Error(err))
		} else {
			defer client.Disconnect()
			sinks = append(sinks, events.NewMQTTPublisher(client, cfg.MQTT.TopicPrefix, lg))
		}
	}
	if cfg.Events.RedisStream != "" && redisClient != nil {
		sinks = append(sinks, events.NewStreamPublisher(redisClient, cfg.Events.RedisStream, cfg.Events.StreamMaxLen, lg))
	}
	var publisher events.Publisher = events.NopPublisher{}
	if len(sinks) > 0 {
		publisher = sinks
	}

	svc := service.NewServices(repos, catalog.NewGenerator(lookup), publisher, lg)
	if cfg.SeedModels {
		if n, err := svc.Models.SeedDefaults(ctx); err != nil {
			lg.Warn("Seeding generic models failed", zap.Error(err))
		} else {
			lg.Info("Generic models seeded", zap.Int("count", n))
		}
	}

	var dbPing, redisPing httpapi.Pinger
	if db != nil {
		dbPing = db.PingContext
	}
	if redisClient != nil {
		redisPing = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	health := httpapi.NewHealthHandler(cfg.Environment, dbPing, redisPing, verifier.Configured(), lg)

	limiter := httpapi.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxyHeaders, lg)
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiter.Cleanup(10 * time.Minute)
			}
		}
	}()

	handler := httpapi.NewAPI(cfg, svc, verifier, health, limiter, lg)
	srv := service.NewServer(cfg.HTTP.Addr, handler, lg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		lg.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		lg.Error("HTTP server stopped", zap.Error(err))
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		lg.Error("Graceful shutdown failed", zap.Error(err))
	}
}
