// Package server boots gymcore: config, database, Redis, storage, audit
// sink, then the HTTP and gRPC listeners with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/gymstack/gymcore/app/routes"
	"github.com/gymstack/gymcore/config"
	"github.com/gymstack/gymcore/internal/kernel"
	"github.com/gymstack/gymcore/pkg/auth"
	"github.com/gymstack/gymcore/pkg/cache"
	"github.com/gymstack/gymcore/pkg/database"
	"github.com/gymstack/gymcore/pkg/event"
	grpcserver "github.com/gymstack/gymcore/pkg/grpc"
	"github.com/gymstack/gymcore/pkg/logger"
	"github.com/gymstack/gymcore/pkg/middleware"
	"github.com/gymstack/gymcore/pkg/storage"
	"github.com/gymstack/gymcore/pkg/throttle"
)

const shutdownTimeout = 15 * time.Second

// Runtime owns every process-wide resource opened by Boot.
type Runtime struct {
	Deps  routes.Deps
	redis *redis.Client
	audit *logger.AuditHandler
}

// Boot validates config and opens the database, the throttle store, the
// export disk and the optional audit sink. Redis is optional: without it
// login throttling falls back to an in-process counter.
func Boot(ctx context.Context) (*Runtime, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	logger.Setup(config.AppEnv())

	if err := database.Connect(); err != nil {
		return nil, err
	}

	rt := &Runtime{}

	var store throttle.Store
	if rdb, err := cache.Connect(ctx); err != nil {
		logger.Warn("redis unavailable, login throttle is per-process", "error", err)
		store = throttle.NewMemoryStore()
	} else {
		rt.redis = rdb
		store = throttle.NewRedisStore(rdb)
	}

	disk, err := storage.Open(ctx)
	if err != nil {
		rt.Close()
		return nil, err
	}

	if uri := config.AuditMongoURI(); uri != "" {
		h, err := logger.NewAuditHandler(uri, config.AuditMongoDB())
		if err != nil {
			logger.Warn("audit sink disabled", "error", err)
		} else {
			rt.audit = h
			logger.Tee(h)
		}
	}

	secret := []byte(config.JWTSecret())
	issuer, err := auth.NewIssuer(secret, config.TokenTTL())
	if err != nil {
		rt.Close()
		return nil, err
	}
	verifier, err := auth.NewVerifier(secret)
	if err != nil {
		rt.Close()
		return nil, err
	}

	proxies, err := middleware.ParseTrustedProxies(config.TrustedProxies())
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("config: TRUSTED_PROXIES: %w", err)
	}

	bus := event.NewBus()
	bus.ListenAll(event.AuditLog)

	rt.Deps = routes.Deps{
		DB:         database.DB,
		Issuer:     issuer,
		Verifier:   verifier,
		AuthHeader: config.AuthHeader(),
		Limiter:    throttle.New(store, config.LoginMaxAttempts(), config.LoginLockout()),
		Bus:        bus,
		Disk:       disk,

		TrustedProxies: proxies,
	}
	return rt, nil
}

// Close releases everything Boot opened, in reverse order.
func (rt *Runtime) Close() {
	if rt.audit != nil {
		rt.audit.Close()
	}
	if rt.redis != nil {
		if err := rt.redis.Close(); err != nil {
			logger.Warn("redis close", "error", err)
		}
	}
	if database.DB != nil {
		if err := database.Close(database.DB); err != nil {
			logger.Warn("database close", "error", err)
		}
	}
}

// Start serves HTTP and gRPC until SIGINT or SIGTERM, then drains both.
func Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := Boot(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	k := kernel.NewHTTP(rt.Deps)
	httpSrv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	grpcSrv := grpcserver.New(func(ctx context.Context) error { return kernel.Ping(ctx, rt.Deps) })
	lis, err := grpcserver.Listen(config.GRPCPort())
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("gRPC server listening", "addr", lis.Addr().String())
		return grpcSrv.Serve(lis)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		grpcserver.Stop(grpcSrv)
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
