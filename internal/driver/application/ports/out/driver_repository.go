package out

import (
	"context"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/domain"
)

// DriverRepository — доступ к профилям водителей
type DriverRepository interface {
	// Create сохраняет новый профиль водителя
	Create(ctx context.Context, driver *domain.Driver) error

	// FindByID находит профиль по id. Возвращает domain.ErrDriverNotFound.
	FindByID(ctx context.Context, id string) (*domain.Driver, error)

	// FindByAccountID находит профиль по учетной записи
	FindByAccountID(ctx context.Context, accountID string) (*domain.Driver, error)

	// UpdateStatus меняет статус смены
	UpdateStatus(ctx context.Context, driverID, status string) error

	// RecordCompletedTrip добавляет поездку и заработок в статистику
	// и возвращает водителя в AVAILABLE
	RecordCompletedTrip(ctx context.Context, driverID string, earnings float64) error
}
