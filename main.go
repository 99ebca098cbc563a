package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/config"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"

	driverboot "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/bootstrap"
	identityboot "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/bootstrap"
	tripboot "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/bootstrap"
)

func main() {
	svc := flag.String("service", "trip", "identity|trip|driver|all")
	flag.Parse()

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	go func() { <-quit; cancel() }()

	switch *svc {
	case "identity":
		log := logger.NewLogger("identity-service")
		identityboot.Run(ctx, cfg, log)

	case "trip":
		log := logger.NewLogger("trip-service")
		tripboot.Run(ctx, cfg, log)

	case "driver":
		log := logger.NewLogger("driver-service")
		driverboot.Run(ctx, cfg, log)

	case "all":
		identityLog := logger.NewLogger("identity-service")
		tripLog := logger.NewLogger("trip-service")
		driverLog := logger.NewLogger("driver-service")

		go identityboot.Run(ctx, cfg, identityLog)
		go tripboot.Run(ctx, cfg, tripLog)
		go driverboot.Run(ctx, cfg, driverLog)

	default:
		log := logger.NewLogger("bootstrap")
		log.Fatal(logger.Entry{Action: "invalid_service", Message: *svc})
	}

	<-ctx.Done()
}
