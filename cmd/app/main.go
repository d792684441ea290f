package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"order-tracker/internal/config"
	"order-tracker/internal/logger"
	"order-tracker/internal/logger/sl"
	"order-tracker/internal/trace"

	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// a missing .env is fine, the environment may come from the platform
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	log := logger.Setup(cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", sl.Err(err))
		os.Exit(1)
	}

	if cfg.Tracing.Enabled {
		tp, err := trace.InitTracer(ctx, cfg.Tracing.ServiceName)
		if err != nil {
			log.Error("init tracer", sl.Err(err))
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				log.Error("tracer shutdown", sl.Err(err))
			}
		}()
	}

	application, err := NewApplication(cfg, log)
	if err != nil {
		log.Error("init application", sl.Err(err))
		os.Exit(1)
	}
	if err = application.Run(ctx); err != nil {
		log.Error("application stopped with error", sl.Err(err))
		os.Exit(1)
	}
	log.Info("service stopped", slog.String("service", cfg.Tracing.ServiceName))
}
