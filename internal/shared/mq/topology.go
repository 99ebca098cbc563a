package mq

import (
	"fmt"
)

// Exchanges
const (
	ExchangeTrip    = "trip_topic"
	ExchangeAccount = "account_topic"
	ExchangePayment = "payment_topic"
	ExchangeDriver  = "driver_topic"
)

// Queues
const (
	QueueIdentityAccountChanges = "identity.account_changes"
	QueueIdentityTripChanges    = "identity.trip_changes"
	QueueTripPaymentEvents      = "trip.payment_events"
	QueueTripDriverResponses    = "trip.driver_responses"
	QueueDriverAssignments      = "driver.assignments"
)

// SetupTopology создает все exchanges, queues и bindings.
//
// account_topic ── account.*            ──▶ identity.account_changes
// trip_topic    ── trip.requested       ──▶ identity.trip_changes
//               ── trip.status_changed  ──▶ identity.trip_changes
//               ── trip.assignment_offered ─▶ driver.assignments
// payment_topic ── payment.confirmed    ──▶ trip.payment_events
// driver_topic  ── driver.response      ──▶ trip.driver_responses
func SetupTopology(mq *RabbitMQ) error {
	ch := mq.Channel()
	if ch == nil {
		return fmt.Errorf("rabbitmq channel not available")
	}

	exchanges := []string{ExchangeTrip, ExchangeAccount, ExchangePayment, ExchangeDriver}
	for _, ex := range exchanges {
		if err := ch.ExchangeDeclare(
			ex,      // name
			"topic", // type
			true,    // durable
			false,   // auto-deleted
			false,   // internal
			false,   // no-wait
			nil,     // args
		); err != nil {
			return fmt.Errorf("declare exchange %s: %w", ex, err)
		}
	}

	queues := []string{
		QueueIdentityAccountChanges,
		QueueIdentityTripChanges,
		QueueTripPaymentEvents,
		QueueTripDriverResponses,
		QueueDriverAssignments,
	}
	for _, q := range queues {
		if _, err := ch.QueueDeclare(
			q,     // name
			true,  // durable
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			nil,   // args
		); err != nil {
			return fmt.Errorf("declare queue %s: %w", q, err)
		}
	}

	bindings := []struct {
		queue, key, exchange string
	}{
		{QueueIdentityAccountChanges, "account.*", ExchangeAccount},
		{QueueIdentityTripChanges, "trip.requested", ExchangeTrip},
		{QueueIdentityTripChanges, "trip.status_changed", ExchangeTrip},
		{QueueDriverAssignments, "trip.assignment_offered", ExchangeTrip},
		{QueueTripPaymentEvents, "payment.confirmed", ExchangePayment},
		{QueueTripDriverResponses, "driver.response", ExchangeDriver},
	}
	for _, b := range bindings {
		if err := ch.QueueBind(b.queue, b.key, b.exchange, false, nil); err != nil {
			return fmt.Errorf("bind %s to %s (%s): %w", b.queue, b.exchange, b.key, err)
		}
	}

	return nil
}
