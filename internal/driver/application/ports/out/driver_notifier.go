package out

import "context"

// AssignmentOffer — предложение заявки, доставляемое водителю
type AssignmentOffer struct {
	TripID          string  `json:"trip_id"`
	PickupLocation  string  `json:"pickup_location"`
	DropoffLocation string  `json:"dropoff_location"`
	TotalCost       float64 `json:"total_cost"`
}

// DriverNotifier доставляет предложения и обновления водителю (WS)
type DriverNotifier interface {
	NotifyAssignment(ctx context.Context, driverAccountID string, offer AssignmentOffer) error
}
