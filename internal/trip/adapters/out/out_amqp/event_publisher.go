package out_amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/mq"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/utils"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/out"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

// EventPublisher публикует события поездок в trip_topic
type EventPublisher struct {
	mq *mq.RabbitMQ
}

func NewEventPublisher(rabbit *mq.RabbitMQ) *EventPublisher {
	return &EventPublisher{mq: rabbit}
}

func (p *EventPublisher) PublishTripEvent(ctx context.Context, eventType, routingKey string, data out.TripEventData) error {
	event := domain.TripEvent{
		ID:        utils.NewUUID(),
		TripID:    data.TripID,
		EventType: eventType,
		EventData: data,
		CreatedAt: time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal trip event: %w", err)
	}
	return p.mq.Publish(ctx, mq.ExchangeTrip, routingKey, body)
}
