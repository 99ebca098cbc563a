package out_amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/application/ports/out"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/mq"
)

// EventPublisher публикует события driver-сервиса в driver_topic
type EventPublisher struct {
	mq *mq.RabbitMQ
}

func NewEventPublisher(rabbit *mq.RabbitMQ) *EventPublisher {
	return &EventPublisher{mq: rabbit}
}

func (p *EventPublisher) PublishDriverResponse(ctx context.Context, data out.DriverResponseData) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal driver response: %w", err)
	}
	return p.mq.Publish(ctx, mq.ExchangeDriver, model.RKDriverResponse, body)
}
