package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/bootstrap"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/config"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
)

func main() {
	cfg := config.Load()
	log := logger.NewLogger("identity-service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	go func() { <-quit; cancel() }()

	bootstrap.Run(ctx, cfg, log)
}
