package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/manish9869/onehealth-api/internal/infra/app"
	"github.com/manish9869/onehealth-api/internal/infra/config"
)

// @title OneHealth Admin API
// @version 1.0
// @description REST backend for the OneHealth clinic admin dashboard.
// @BasePath /api/v1
func main() {
	// Missing .env is fine; configuration falls back to real env vars and
	// defaults.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("init app: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		log.Fatalf("run app: %v", err)
	}
}
