package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	inamqp "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/adapters/in/in_amqp"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/adapters/in/transport"
	outamqp "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/adapters/out/out_amqp"
	outws "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/adapters/out/out_ws"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/adapters/out/repo"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/application/usecase"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/auth"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/config"
	dbconn "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/db"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/mq"
	sharedws "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/ws"
	tripoutamqp "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/adapters/out/out_amqp"
	triprepo "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/adapters/out/repo"
)

// Run собирает и запускает Driver Service: API водителя (доступность,
// ответ на предложение, этапы поездки), консьюмер назначений и
// WebSocket канал для push предложений.
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) {
	log.Info(logger.Entry{Action: "driver_service_starting", Message: "initializing driver service"})

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

	jwtService := auth.NewJWTService(cfg.JWT)

	// --- websocket hub для водителей ---

	hub := sharedws.NewHub(jwtService.ExtractAccountID, log)
	go hub.Run(ctx)

	// --- адаптеры ---

	driverRepo := repo.NewDriverPgRepository(dbPool, log)
	tripRepo := triprepo.NewTripPgRepository(dbPool, log)
	responsePublisher := outamqp.NewEventPublisher(mqConn)
	tripPublisher := tripoutamqp.NewEventPublisher(mqConn)
	driverNotifier := outws.NewDriverNotifier(hub)

	// --- use cases ---

	registerUC := usecase.NewRegisterService(driverRepo, log)
	setAvailabilityUC := usecase.NewSetAvailabilityService(driverRepo, log)
	respondUC := usecase.NewRespondService(driverRepo, tripRepo, responsePublisher, log)
	startTripUC := usecase.NewStartTripService(driverRepo, tripRepo, tripPublisher, log)
	markArrivalUC := usecase.NewMarkArrivalService(driverRepo, tripRepo, tripPublisher, log)
	completeTripUC := usecase.NewCompleteTripService(driverRepo, tripRepo, tripPublisher, log)

	// --- консьюмер назначений ---

	assignmentConsumer := inamqp.NewAssignmentConsumer(mqConn, driverRepo, driverNotifier, log)
	go func() {
		if err := assignmentConsumer.Start(ctx); err != nil {
			log.Error(logger.Entry{
				Action:  "assignment_consumer_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}()

	// --- HTTP ---

	httpHandler := transport.NewHTTPHandler(
		registerUC, setAvailabilityUC, respondUC,
		startTripUC, markArrivalUC, completeTripUC,
		log,
	)

	mux := http.NewServeMux()
	driverAuth := transport.DriverAuthMiddleware(jwtService, log)
	httpHandler.RegisterRoutes(mux, driverAuth)
	mux.HandleFunc("/ws", hub.ServeWS)

	addr := fmt.Sprintf(":%d", cfg.Services.DriverServicePort)
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
	log.Info(logger.Entry{Action: "driver_service_stopping", Message: "shutting down driver service"})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(logger.Entry{
			Action:  "http_server_shutdown_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	log.Info(logger.Entry{Action: "driver_service_stopped", Message: "driver service stopped"})
}
