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

// PaymentEvent — событие подтверждения оплаты от платежной подсистемы
type PaymentEvent struct {
	TripID      string `json:"trip_id"`
	AutoConfirm bool   `json:"auto_confirm,omitempty"`
}

// PaymentConsumer слушает payment.confirmed и двигает заявку
// из awaiting_payment дальше
type PaymentConsumer struct {
	mq            *mq.RabbitMQ
	recordPayment in.RecordPaymentUseCase
	log           *logger.Logger
}

func NewPaymentConsumer(rabbit *mq.RabbitMQ, recordPayment in.RecordPaymentUseCase, log *logger.Logger) *PaymentConsumer {
	return &PaymentConsumer{mq: rabbit, recordPayment: recordPayment, log: log}
}

func (c *PaymentConsumer) Start(ctx context.Context) error {
	return c.mq.Consume(ctx, mq.QueueTripPaymentEvents, "trip-payment-events", c.handle)
}

func (c *PaymentConsumer) handle(d amqp.Delivery) {
	var event PaymentEvent
	if err := json.Unmarshal(d.Body, &event); err != nil || event.TripID == "" {
		c.log.Warn(logger.Entry{
			Action:  "payment_event_malformed",
			Message: "unparseable payment event dropped",
		})
		// Битое событие не станет лучше от requeue
		_ = d.Nack(false, false)
		return
	}

	_, err := c.recordPayment.Execute(context.Background(), in.RecordPaymentInput{
		TripID:      event.TripID,
		AutoConfirm: event.AutoConfirm,
	})
	if err != nil {
		var conflict *domain.StatusConflictError
		var illegal *domain.IllegalTransitionError
		switch {
		case errors.As(err, &conflict), errors.As(err, &illegal):
			// Повторная доставка: оплата уже записана, заявка ушла дальше
			c.log.Info(logger.Entry{
				Action:  "payment_event_already_applied",
				Message: err.Error(),
				TripID:  event.TripID,
			})
			_ = d.Ack(false)
		case errors.Is(err, domain.ErrTripNotFound):
			c.log.Warn(logger.Entry{
				Action:  "payment_event_unknown_trip",
				Message: event.TripID,
			})
			_ = d.Nack(false, false)
		default:
			c.log.Error(logger.Entry{
				Action:  "payment_event_failed",
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
