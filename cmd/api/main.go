package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Marco21c/backend-noticias/internal/config"
	"github.com/Marco21c/backend-noticias/internal/db"
	httpx "github.com/Marco21c/backend-noticias/internal/http"
	"github.com/Marco21c/backend-noticias/internal/observability"
	"github.com/Marco21c/backend-noticias/internal/ratelimit"
	"github.com/Marco21c/backend-noticias/internal/security"
	"github.com/Marco21c/backend-noticias/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		slog.Default().Error("api stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	// Load the config set up
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	startCtx, cancelStart := config.WithTimeout(30 * time.Second)
	defer cancelStart()

	shutdownTracer, err := observability.InitTracer(startCtx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		ctx, cancel := config.WithTimeout(5 * time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	backend, err := storage.Open(startCtx, cfg, prom, log)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := config.WithTimeout(5 * time.Second)
		defer cancel()
		if err := backend.Close(ctx); err != nil {
			log.Error("closing storage failed", "err", err)
		}
	}()

	hasher := security.NewHasher()

	if cfg.InitSuperadmin {
		sa, created, err := db.EnsureSuperadmin(startCtx, backend.Users, hasher, db.SuperadminFromConfig(cfg))
		if err != nil {
			return fmt.Errorf("ensuring superadmin: %w", err)
		}
		log.Info("superadmin checked", "email", sa.Email, "created", created)
	}

	var loginLimiter ratelimit.Limiter = ratelimit.NewMemory(cfg.LoginRateLimit, cfg.LoginRateWindow)
	if cfg.RedisAddr != "" {
		rdb, err := ratelimit.DialRedis(startCtx, ratelimit.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		loginLimiter = ratelimit.NewRedis(rdb, "noticias:ratelimit:", cfg.LoginRateLimit, cfg.LoginRateWindow)
		log.Info("rate limiting through redis", "addr", cfg.RedisAddr)
	}

	// set up routers with the log
	router, err := httpx.NewRouter(log, cfg, httpx.Deps{
		Stores: httpx.Stores{
			Users:      backend.Users,
			Categories: backend.Categories,
			News:       backend.News,
			Ping:       backend,
		},
		Hasher:       hasher,
		LoginLimiter: loginLimiter,
		Prom:         prom,
		Gatherer:     reg,
	})
	if err != nil {
		return err
	}

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "storage", backend.Driver)
		err := srv.ListenAndServe()

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Graceful shutdown

	stop, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-stop.Done():
	}

	log.Info("server shutting down")

	ctx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("shutdown complete")
	return nil
}
