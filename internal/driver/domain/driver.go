package domain

import (
	"errors"
	"time"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
)

var (
	// ErrDriverNotFound водитель не найден
	ErrDriverNotFound = errors.New("driver not found")

	// ErrDriverBusy водитель уже на заявке
	ErrDriverBusy = errors.New("driver is busy with another trip")

	// ErrDriverOffline водитель вне смены
	ErrDriverOffline = errors.New("driver is offline")
)

// Driver — профиль водителя тук-тука.
// Учетная запись (логин, роль DRIVER) живет в accounts; здесь рабочее
// состояние смены и накопленная статистика.
type Driver struct {
	ID            string    `json:"id" db:"id"`
	AccountID     string    `json:"account_id" db:"account_id"`
	DisplayName   string    `json:"display_name" db:"display_name"`
	VehiclePlate  string    `json:"vehicle_plate,omitempty" db:"vehicle_plate"`
	Status        string    `json:"status" db:"status"` // OFFLINE | AVAILABLE | BUSY
	TotalTrips    int       `json:"total_trips" db:"total_trips"`
	TotalEarnings float64   `json:"total_earnings" db:"total_earnings"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// IsAvailable — водитель на смене и свободен
func (d *Driver) IsAvailable() bool {
	return d.Status == model.DriverStatusAvailable
}

// CanGoOnline — переход в AVAILABLE возможен из OFFLINE или AVAILABLE
// (повторный онлайн безвреден); из BUSY нельзя, заявка не брошена
func (d *Driver) CanGoOnline() bool {
	return d.Status != model.DriverStatusBusy
}
