package out

import "context"

// DriverResponseData — ответ водителя на предложение заявки
type DriverResponseData struct {
	TripID   string `json:"trip_id"`
	DriverID string `json:"driver_id"`
	Accepted bool   `json:"accepted"`
}

// EventPublisher публикует события driver-сервиса в шину
type EventPublisher interface {
	PublishDriverResponse(ctx context.Context, data DriverResponseData) error
}
