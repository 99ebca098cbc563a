package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/auth"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/config"
	dbconn "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/db"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/mq"
	sharedws "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/ws"
	inamqp "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/adapters/in/in_amqp"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/adapters/in/transport"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/adapters/out/cache"
	outamqp "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/adapters/out/out_amqp"
	outws "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/adapters/out/out_ws"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/adapters/out/repo"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/usecase"
)

// Run собирает и запускает Trip Service: REST API жизненного цикла
// заявки, консьюмеры платежей и ответов водителей, WebSocket
// уведомления клиентам.
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) {
	log.Info(logger.Entry{Action: "trip_service_starting", Message: "initializing trip service"})

	// --- инфраструктура ---

	dbPool, err := dbconn.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "db_connection_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	defer dbconn.Close(dbPool, log)

	mqConn, err := mq.NewRabbitMQ(ctx, cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "rabbitmq_connection_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	defer mqConn.Close()

	if err := mq.SetupTopology(mqConn); err != nil {
		log.Fatal(logger.Entry{
			Action:  "rabbitmq_topology_setup_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { _ = redisClient.Close() }()

	jwtService := auth.NewJWTService(cfg.JWT)

	// --- websocket hub ---

	hub := sharedws.NewHub(jwtService.ExtractAccountID, log)
	go hub.Run(ctx)

	// --- адаптеры ---

	tripRepo := repo.NewTripPgRepository(dbPool, log)
	eventPublisher := outamqp.NewEventPublisher(mqConn)
	tripNotifier := outws.NewTripNotifier(hub)
	snapshotReader := cache.NewRedisSnapshotReader(redisClient)

	// --- use cases ---

	requestTripUC := usecase.NewRequestTripService(tripRepo, eventPublisher, tripNotifier, log)
	getTripUC := usecase.NewGetTripService(tripRepo)
	getCustomerUC := usecase.NewGetTripCustomerService(tripRepo, snapshotReader)
	confirmTripUC := usecase.NewConfirmTripService(tripRepo, eventPublisher, tripNotifier, log)
	assignDriverUC := usecase.NewAssignDriverService(tripRepo, eventPublisher, tripNotifier, log)
	cancelTripUC := usecase.NewCancelTripService(tripRepo, eventPublisher, tripNotifier, log)
	recordPaymentUC := usecase.NewRecordPaymentService(tripRepo, eventPublisher, tripNotifier, log)
	driverResponseUC := usecase.NewDriverResponseService(tripRepo, eventPublisher, tripNotifier, log)

	// --- консьюмеры ---

	paymentConsumer := inamqp.NewPaymentConsumer(mqConn, recordPaymentUC, log)
	go func() {
		if err := paymentConsumer.Start(ctx); err != nil {
			log.Error(logger.Entry{
				Action:  "payment_consumer_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}()

	driverResponseConsumer := inamqp.NewDriverResponseConsumer(mqConn, driverResponseUC, log)
	go func() {
		if err := driverResponseConsumer.Start(ctx); err != nil {
			log.Error(logger.Entry{
				Action:  "driver_response_consumer_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}()

	// --- HTTP ---

	httpHandler := transport.NewHTTPHandler(
		requestTripUC, getTripUC, getCustomerUC,
		confirmTripUC, assignDriverUC, cancelTripUC, recordPaymentUC,
		log,
	)

	mux := http.NewServeMux()
	optionalAuth := transport.OptionalAuthMiddleware(jwtService, log)
	adminAuth := transport.AdminAuthMiddleware(jwtService, log)
	httpHandler.RegisterRoutes(mux, optionalAuth, adminAuth)
	mux.HandleFunc("/ws", hub.ServeWS)

	addr := fmt.Sprintf(":%d", cfg.Services.TripServicePort)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info(logger.Entry{
			Action:  "http_server_starting",
			Message: fmt.Sprintf("listening on %s", addr),
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(logger.Entry{
				Action:  "http_server_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}()

	<-ctx.Done()
	log.Info(logger.Entry{Action: "trip_service_stopping", Message: "shutting down trip service"})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(logger.Entry{
			Action:  "http_server_shutdown_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	log.Info(logger.Entry{Action: "trip_service_stopped", Message: "trip service stopped"})
}
