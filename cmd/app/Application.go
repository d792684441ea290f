package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"order-tracker/internal/app"
	"order-tracker/internal/config"
	"order-tracker/internal/handler"
	"order-tracker/internal/logger/sl"
	"order-tracker/internal/ratelimit"
	"order-tracker/internal/service"
	"order-tracker/internal/shopify"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Application struct {
	cfg      *config.Config
	srv      *app.Server
	memLimit *ratelimit.MemoryLimiter
	redis    *redis.Client
	log      *slog.Logger
}

func NewApplication(cfg *config.Config, log *slog.Logger) (*Application, error) {
	application := &Application{cfg: cfg, log: log}

	limiter, err := application.newLimiter()
	if err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	client := shopify.NewClient(cfg.Shopify)
	orderService := service.NewOrderService(client, log)
	orderHandler := handler.NewOrderHandler(orderService, client, cfg.Shopify, log)

	if log.Enabled(context.Background(), slog.LevelDebug) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := handler.NewRouter(orderHandler, limiter, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	application.srv = app.NewServer(router)

	return application, nil
}

func (a *Application) newLimiter() (ratelimit.Limiter, error) {
	rl := a.cfg.RateLimit
	switch {
	case !rl.Enabled:
		return ratelimit.Noop{}, nil
	case rl.RedisAddr != "":
		a.redis = redis.NewClient(&redis.Options{Addr: rl.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := a.redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis %s: %w", rl.RedisAddr, err)
		}
		return ratelimit.NewRedisLimiter(a.redis, rl.Requests, rl.Window), nil
	default:
		a.memLimit = ratelimit.NewMemoryLimiter(rl.Requests, rl.Window, a.log)
		return a.memLimit, nil
	}
}

func (a *Application) Run(ctx context.Context) error {
	if a.memLimit != nil {
		go func() {
			if err := a.memLimit.GC(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.log.Error("rate limiter gc stopped", sl.Err(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("starting HTTP server",
			slog.String("addr", a.cfg.HTTP.Addr),
			slog.String("shopify_domain", a.cfg.Shopify.Domain),
			slog.String("api_version", a.cfg.Shopify.APIVersion),
			slog.String("token", a.cfg.Shopify.MaskedToken()),
		)
		if err := a.srv.Run(a.cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case runErr = <-errCh:
		a.log.Error("HTTP server failed", sl.Err(runErr))
	}

	// give in-flight lookups 5 seconds to finish
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.Shutdown(shutdownCtx)

	return runErr
}

func (a *Application) Shutdown(ctx context.Context) {
	if err := a.srv.Stop(ctx); err != nil {
		a.log.Error("stop HTTP server", sl.Err(err))
	}
	if a.memLimit != nil {
		a.memLimit.Stop()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("close redis", sl.Err(err))
		}
	}
}
