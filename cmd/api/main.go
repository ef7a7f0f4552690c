package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/todohub/internal/auth"
	"github.com/geocoder89/todohub/internal/config"
	"github.com/geocoder89/todohub/internal/db"
	httpx "github.com/geocoder89/todohub/internal/http"
	"github.com/geocoder89/todohub/internal/observability"
	"github.com/geocoder89/todohub/internal/repo/postgres"
	"github.com/geocoder89/todohub/internal/security"
	"github.com/geocoder89/todohub/internal/service"
	"github.com/geocoder89/todohub/internal/validation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load the config set up; missing required values are fatal
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// start up the observability logger
	logger, closeLog := observability.NewLogger(cfg)
	defer closeLog()
	slog.SetDefault(logger)

	ctx := context.Background()

	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(ctx, cfg)
		if err != nil {
			logger.Error("tracer init failed", "err", err)
			os.Exit(1)
		}
		defer func() {
			tctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdownTracer(tctx)
		}()
	}

	if cfg.DBAutoMigrate {
		if err := db.Migrate(ctx, cfg.DBURL, db.MigrateUp); err != nil {
			logger.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}

	pool, err := db.NewPool(ctx, cfg.DBURL, cfg.DBMaxConns)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewProm(reg)

	// wire up repositories and services
	usersRepo := postgres.NewUsersRepo(pool, prom)
	todosRepo := postgres.NewTodosRepo(pool, prom)

	val := validation.New()
	tokens := auth.NewManager(cfg.JWTSecret, auth.AccessTokenTTL)
	hasher := security.NewArgon2Hasher(security.DefaultParams)

	router := httpx.NewRouter(cfg, logger, httpx.Deps{
		Accounts: service.NewAccountService(usersRepo, hasher, tokens, val, logger),
		Todos:    service.NewTodoService(todosRepo, val, logger),
		Tokens:   tokens,
		Ping:     pool.Ping,
		Prom:     prom,
		Gatherer: reg,
	})

	// server set up
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// start server using a concurrent go-routine driven anonymous function.
	serverErr := make(chan error, 1)

	go func() {
		logger.Info("server starting", "addr", cfg.Addr(), "url", cfg.BaseURL(), "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Info("server shutting down", "signal", sig.String())
	case err := <-serverErr:
		logger.Error("server failed", "err", err)
	}

	shutdownCtx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		return
	}

	logger.Info("shutdown complete")
}
