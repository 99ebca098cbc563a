package in_amqp

import (
	"context"
	"encoding/json"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/application/ports/out"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/domain"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/mq"
)

// assignmentEvent — событие trip.assignment_offered из trip-сервиса
type assignmentEvent struct {
	EventData struct {
		TripID         string `json:"trip_id"`
		DriverID       string `json:"driver_id"`
		AdditionalData struct {
			PickupLocation  string  `json:"pickup_location"`
			DropoffLocation string  `json:"dropoff_location"`
			TotalCost       float64 `json:"total_cost"`
		} `json:"additional_data"`
	} `json:"event_data"`
}

// AssignmentConsumer слушает предложения заявок и доставляет их
// водителю по WS
type AssignmentConsumer struct {
	mq       *mq.RabbitMQ
	drivers  out.DriverRepository
	notifier out.DriverNotifier
	log      *logger.Logger
}

func NewAssignmentConsumer(rabbit *mq.RabbitMQ, drivers out.DriverRepository, notifier out.DriverNotifier, log *logger.Logger) *AssignmentConsumer {
	return &AssignmentConsumer{mq: rabbit, drivers: drivers, notifier: notifier, log: log}
}

func (c *AssignmentConsumer) Start(ctx context.Context) error {
	return c.mq.Consume(ctx, mq.QueueDriverAssignments, "driver-assignments", c.handle)
}

func (c *AssignmentConsumer) handle(d amqp.Delivery) {
	var event assignmentEvent
	if err := json.Unmarshal(d.Body, &event); err != nil || event.EventData.TripID == "" || event.EventData.DriverID == "" {
		c.log.Warn(logger.Entry{
			Action:  "assignment_event_malformed",
			Message: "unparseable assignment event dropped",
		})
		_ = d.Nack(false, false)
		return
	}

	driver, err := c.drivers.FindByID(context.Background(), event.EventData.DriverID)
	if err != nil {
		if errors.Is(err, domain.ErrDriverNotFound) {
			c.log.Warn(logger.Entry{
				Action:  "assignment_unknown_driver",
				Message: event.EventData.DriverID,
				TripID:  event.EventData.TripID,
			})
			_ = d.Nack(false, false)
			return
		}
		_ = d.Nack(false, true)
		return
	}

	offer := out.AssignmentOffer{
		TripID:          event.EventData.TripID,
		PickupLocation:  event.EventData.AdditionalData.PickupLocation,
		DropoffLocation: event.EventData.AdditionalData.DropoffLocation,
		TotalCost:       event.EventData.AdditionalData.TotalCost,
	}
	if err := c.notifier.NotifyAssignment(context.Background(), driver.AccountID, offer); err != nil {
		c.log.Error(logger.Entry{
			Action:  "notify_assignment_failed",
			Message: err.Error(),
			TripID:  offer.TripID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		// Водитель не в сети — предложение он увидит при следующем
		// подключении через GET текущего задания
	}

	_ = d.Ack(false)
}
