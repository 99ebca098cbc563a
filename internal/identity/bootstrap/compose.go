package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	inamqp "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/adapters/in/in_amqp"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/adapters/in/transport"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/adapters/out/cache"
	outamqp "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/adapters/out/out_amqp"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/adapters/out/source"
	idws "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/adapters/out/ws"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/application/usecase"
	iddomain "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/domain"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/account"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/auth"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/config"
	dbconn "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/db"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/mq"
	sharedws "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/ws"
	triprepo "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/adapters/out/repo"
)

// Run собирает и запускает Identity Service: движок пересчета каталога,
// admin REST API, WebSocket для админки и AMQP-консьюмер сигналов
// об изменениях.
//
// Порядок сборки: инфраструктура → источники → движок → use cases →
// адаптеры → HTTP сервер.
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) {
	log.Info(logger.Entry{Action: "identity_service_starting", Message: "initializing identity service"})

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

	// Identity владеет схемой: миграции применяет только этот сервис
	if err := dbconn.Migrate(ctx, dbPool); err != nil {
		log.Fatal(logger.Entry{
			Action:  "db_migration_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

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

	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		// Без Redis сервис живет, но trip-service не увидит снимок
		log.Error(logger.Entry{
			Action:  "redis_connection_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	cancelPing()

	jwtService := auth.NewJWTService(cfg.JWT)

	// --- websocket hub для админки ---

	hub := sharedws.NewHub(jwtService.ExtractAccountID, log)
	go hub.Run(ctx)

	// --- репозитории и источники ---

	accountRepo := account.NewPgRepository(dbPool, log)
	tripRepo := triprepo.NewTripPgRepository(dbPool, log)
	src := source.NewPgSource(accountRepo, tripRepo, log)

	// --- движок пересчета каталога ---

	snapshotCache := cache.NewRedisSnapshotCache(redisClient)
	engine := usecase.NewEngine(log, snapshotCache)

	dirNotifier := idws.NewDirectoryNotifier(hub)
	unsubNotify := engine.OnDirectoryChanged(func(snap iddomain.Snapshot) {
		if err := dirNotifier.NotifySnapshot(ctx, snap); err != nil {
			log.Error(logger.Entry{
				Action:  "directory_notify_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	})
	defer unsubNotify()

	stopEngine, err := engine.Start(ctx, src, src)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "engine_start_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	defer stopEngine()

	// --- консьюмер сигналов об изменениях ---

	changeConsumer := inamqp.NewChangeConsumer(mqConn, src, log)
	go func() {
		if err := changeConsumer.Start(ctx); err != nil {
			log.Error(logger.Entry{
				Action:  "change_consumer_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}()

	// --- use cases ---

	eventPublisher := outamqp.NewEventPublisher(mqConn)

	createAccountUC := usecase.NewCreateAccountUseCase(accountRepo, eventPublisher, log)
	listCustomersUC := usecase.NewListCustomersUseCase(engine)
	getOverviewUC := usecase.NewGetOverviewUseCase(engine)
	listAccountsUC := usecase.NewListAccountsUseCase(accountRepo)

	// --- HTTP ---

	httpHandler := transport.NewHTTPHandler(listCustomersUC, getOverviewUC, createAccountUC, listAccountsUC, log)

	mux := http.NewServeMux()
	adminAuth := transport.AdminAuthMiddleware(jwtService, log)
	httpHandler.RegisterRoutes(mux, adminAuth)
	mux.HandleFunc("/ws", hub.ServeWS)

	addr := fmt.Sprintf(":%d", cfg.Services.IdentityServicePort)
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
	log.Info(logger.Entry{Action: "identity_service_stopping", Message: "shutting down identity service"})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(logger.Entry{
			Action:  "http_server_shutdown_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	log.Info(logger.Entry{Action: "identity_service_stopped", Message: "identity service stopped"})
}
