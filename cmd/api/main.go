// Package main is the entry point for the site-visit API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/site-visits/internal/auth"
	"github.com/pkordes/site-visits/internal/config"
	"github.com/pkordes/site-visits/internal/handler"
	"github.com/pkordes/site-visits/internal/middleware"
	"github.com/pkordes/site-visits/internal/notify"
	"github.com/pkordes/site-visits/internal/repo"
	"github.com/pkordes/site-visits/internal/service"
	"github.com/pkordes/site-visits/migrations"
	"github.com/pkordes/site-visits/spec"
)

// stores groups the repositories of whichever backend STORE_DRIVER selects.
type stores struct {
	visits        repo.VisitRepo
	profiles      repo.ProfileRepo
	notifications repo.NotificationRepo
	close         func()
}

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Record store -----------------------------------------------------
	st, err := openStores(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open record store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer st.close()
	slog.Info("record store ready", "driver", cfg.StoreDriver)

	// --- Notifications ----------------------------------------------------
	// Every notification lands in the inbox table; Redis push is optional.
	var publisher notify.Publisher
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			slog.Warn("redis unreachable; live push will fail until it recovers", "addr", cfg.RedisAddr, "error", err)
		}
		publisher = notify.NewRedisPublisher(rdb)
	}
	notifier := notify.NewAsync(
		notify.NewDispatcher(st.notifications, publisher, logger),
		logger,
		notify.WithTimeout(cfg.NotifyTimeout),
	)

	// --- Services ---------------------------------------------------------
	visits := service.NewVisitService(st.visits, st.profiles, notifier, logger)
	server := handler.NewServer(
		visits,
		service.NewNotificationService(st.notifications),
		service.NewTripLogService(st.visits, st.profiles),
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit → bearer auth.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Use(middleware.NewAuthHandler(auth.NewVerifier(cfg.JWTSecret)))

	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec.OpenAPI)
	})
	handler.NewHTTPHandler(server, logger, r)

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// and notification deliveries up to 15 seconds to complete.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	if err := notifier.Wait(ctx); err != nil {
		slog.Error("notifications still in flight at shutdown", "error", err)
	}
	slog.Info("server stopped")
}

// openStores connects to the configured backend and applies pending migrations.
func openStores(ctx context.Context, cfg config.Config) (stores, error) {
	if cfg.StoreDriver == config.StoreSQLite {
		db, err := repo.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return stores{}, err
		}
		return stores{
			visits:        repo.NewSQLiteVisitRepo(db),
			profiles:      repo.NewSQLiteProfileRepo(db),
			notifications: repo.NewSQLiteNotificationRepo(db),
			close:         func() { _ = db.Close() },
		}, nil
	}

	// goose drives database/sql, so migrations run over the pgx stdlib driver
	// before the pool is opened.
	sqlDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return stores{}, fmt.Errorf("open migration connection: %w", err)
	}
	err = migrations.Up(ctx, sqlDB, goose.DialectPostgres)
	_ = sqlDB.Close()
	if err != nil {
		return stores{}, err
	}

	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return stores{}, fmt.Errorf("create pool: %w", err)
	}
	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return stores{}, fmt.Errorf("ping: %w", err)
	}
	return stores{
		visits:        repo.NewVisitRepo(pool),
		profiles:      repo.NewProfileRepo(pool),
		notifications: repo.NewNotificationRepo(pool),
		close:         pool.Close,
	}, nil
}
