package in_amqp

import (
	"context"
	"encoding/json"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/mq"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

// DriverResponseEvent — ответ водителя из driver-сервиса
type DriverResponseEvent struct {
	TripID   string `json:"trip_id"`
	DriverID string `json:"driver_id"`
	Accepted bool   `json:"accepted"`
}

// DriverResponseConsumer слушает driver.response: отказ водителя
// возвращает заявку диспетчеру
type DriverResponseConsumer struct {
	mq      *mq.RabbitMQ
	respond in.RespondToAssignmentUseCase
	log     *logger.Logger
}

func NewDriverResponseConsumer(rabbit *mq.RabbitMQ, respond in.RespondToAssignmentUseCase, log *logger.Logger) *DriverResponseConsumer {
	return &DriverResponseConsumer{mq: rabbit, respond: respond, log: log}
}

func (c *DriverResponseConsumer) Start(ctx context.Context) error {
	return c.mq.Consume(ctx, mq.QueueTripDriverResponses, "trip-driver-responses", c.handle)
}

func (c *DriverResponseConsumer) handle(d amqp.Delivery) {
	var event DriverResponseEvent
	if err := json.Unmarshal(d.Body, &event); err != nil || event.TripID == "" || event.DriverID == "" {
		c.log.Warn(logger.Entry{
			Action:  "driver_response_malformed",
			Message: "unparseable driver response dropped",
		})
		_ = d.Nack(false, false)
		return
	}

	_, err := c.respond.Execute(context.Background(), in.DriverResponseInput{
		TripID:   event.TripID,
		DriverID: event.DriverID,
		Accepted: event.Accepted,
	})
	if err != nil {
		var conflict *domain.StatusConflictError
		var illegal *domain.IllegalTransitionError
		switch {
		case errors.As(err, &conflict), errors.As(err, &illegal),
			errors.Is(err, domain.ErrUnauthorized):
			// Устаревший или чужой ответ: заявка уже живет дальше
			c.log.Info(logger.Entry{
				Action:  "driver_response_stale",
				Message: err.Error(),
				TripID:  event.TripID,
			})
			_ = d.Ack(false)
		case errors.Is(err, domain.ErrTripNotFound):
			_ = d.Nack(false, false)
		default:
			c.log.Error(logger.Entry{
				Action:  "driver_response_failed",
				Message: err.Error(),
				TripID:  event.TripID,
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
			_ = d.Nack(false, true)
		}
		return
	}

	_ = d.Ack(false)
}
