package in

import (
	"context"
)

// RequestTripInput — входные данные для создания заявки.
// AccountID заполняется из JWT; гостевая заявка несет email/phone/имя.
type RequestTripInput struct {
	AccountID       string
	Email           string
	Phone           string
	FirstName       string
	LastName        string
	PickupLocation  string
	DropoffLocation string

	// Координаты опциональны; без них действует базовый тариф
	PickupLat  *float64
	PickupLng  *float64
	DropoffLat *float64
	DropoffLng *float64
}

// RequestTripOutput — результат создания заявки
type RequestTripOutput struct {
	TripID          string  `json:"trip_id"`
	Status          string  `json:"status"`
	TotalCost       float64 `json:"total_cost"`
	PickupLocation  string  `json:"pickup_location"`
	DropoffLocation string  `json:"dropoff_location"`
	CreatedAt       string  `json:"created_at"`
}

// RequestTripUseCase — use case создания заявки
type RequestTripUseCase interface {
	Execute(ctx context.Context, input RequestTripInput) (*RequestTripOutput, error)
}
