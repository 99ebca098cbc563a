package in_amqp

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/adapters/out/source"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/mq"
)

// ChangeConsumer слушает события об изменении аккаунтов и заявок.
// Событие — только сигнал "перечитай"; payload не разбирается, потому что
// источником правды для пересчета всегда служит полный набор из БД.
// Повторная доставка того же события безвредна: перечитывание отдаст
// тот же набор, пересчет тот же снимок.
type ChangeConsumer struct {
	mq     *mq.RabbitMQ
	source *source.PgSource
	log    *logger.Logger
}

func NewChangeConsumer(rabbit *mq.RabbitMQ, src *source.PgSource, log *logger.Logger) *ChangeConsumer {
	return &ChangeConsumer{mq: rabbit, source: src, log: log}
}

// Start подписывает консьюмера на обе очереди
func (c *ChangeConsumer) Start(ctx context.Context) error {
	if err := c.mq.Consume(ctx, mq.QueueIdentityAccountChanges, "identity-account-changes", c.handleAccountChange); err != nil {
		return err
	}
	return c.mq.Consume(ctx, mq.QueueIdentityTripChanges, "identity-trip-changes", c.handleTripChange)
}

func (c *ChangeConsumer) handleAccountChange(d amqp.Delivery) {
	c.log.Debug(logger.Entry{
		Action:  "account_change_received",
		Message: "account change event, refreshing account set",
		Additional: map[string]any{
			"routing_key": d.RoutingKey,
		},
	})

	if err := c.source.RefreshAccounts(context.Background()); err != nil {
		// Refresh уже залогировал; nack с requeue, событие догонит позже
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}

func (c *ChangeConsumer) handleTripChange(d amqp.Delivery) {
	c.log.Debug(logger.Entry{
		Action:  "trip_change_received",
		Message: "trip change event, refreshing trip set",
		Additional: map[string]any{
			"routing_key": d.RoutingKey,
		},
	})

	if err := c.source.RefreshTrips(context.Background()); err != nil {
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}
