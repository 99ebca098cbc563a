package out

import (
	"context"
)

// TripEventData — payload события поездки
type TripEventData struct {
	TripID         string         `json:"trip_id"`
	AccountID      string         `json:"account_id,omitempty"`
	Status         string         `json:"status"`
	PrevStatus     string         `json:"prev_status,omitempty"`
	DriverID       string         `json:"driver_id,omitempty"`
	AdditionalData map[string]any `json:"additional_data,omitempty"`
}

// EventPublisher публикует события поездок в шину.
// Каждое успешное изменение статуса уходит событием: его слушают
// identity-движок (пересчет каталога) и driver-сервис.
type EventPublisher interface {
	PublishTripEvent(ctx context.Context, eventType, routingKey string, data TripEventData) error
}
