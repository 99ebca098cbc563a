package domain

import "time"

// TripRequest представляет одно бронирование поездки.
// Создается booking-флоу; status и driver меняются на протяжении жизни
// заявки, сама заявка никогда не удаляется.
type TripRequest struct {
	ID              string     `json:"id" db:"id"`
	AccountID       string     `json:"account_id,omitempty" db:"account_id"` // пусто для гостевых заявок
	Email           string     `json:"email,omitempty" db:"email"`
	Phone           string     `json:"phone,omitempty" db:"phone"`
	FirstName       string     `json:"first_name,omitempty" db:"first_name"`
	LastName        string     `json:"last_name,omitempty" db:"last_name"`
	PickupLocation  string     `json:"pickup_location" db:"pickup_location"`
	DropoffLocation string     `json:"dropoff_location" db:"dropoff_location"`
	TotalCost       float64    `json:"total_cost" db:"total_cost"`
	Status          string     `json:"status" db:"status"`
	DriverID        *string    `json:"driver_id,omitempty" db:"driver_id"`
	DriverName      *string    `json:"driver_name,omitempty" db:"driver_name"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty" db:"cancelled_at"`
}

// RequesterName собирает отображаемое имя из first/last name
func (t *TripRequest) RequesterName() string {
	switch {
	case t.FirstName != "" && t.LastName != "":
		return t.FirstName + " " + t.LastName
	case t.FirstName != "":
		return t.FirstName
	default:
		return t.LastName
	}
}

// IsWellFormed — заявка без id или без адресов не участвует в агрегации
func (t *TripRequest) IsWellFormed() bool {
	return t.ID != "" && t.PickupLocation != "" && t.DropoffLocation != "" && t.TotalCost >= 0
}

// TripEvent — событие, которое отправляется в RabbitMQ.
type TripEvent struct {
	ID        string    `json:"id"`
	TripID    string    `json:"trip_id"`
	EventType string    `json:"event_type"`
	EventData any       `json:"event_data"`
	CreatedAt time.Time `json:"created_at"`
}
