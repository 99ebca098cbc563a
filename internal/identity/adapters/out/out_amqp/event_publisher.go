package out_amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/mq"
)

// EventPublisher публикует события identity-сервиса в account_topic
type EventPublisher struct {
	mq *mq.RabbitMQ
}

func NewEventPublisher(rabbit *mq.RabbitMQ) *EventPublisher {
	return &EventPublisher{mq: rabbit}
}

func (p *EventPublisher) PublishAccountCreated(ctx context.Context, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal account event: %w", err)
	}
	return p.mq.Publish(ctx, mq.ExchangeAccount, model.RKAccountCreated, body)
}
