package out

import (
	"context"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

// StatusUpdate — дополнительные поля, меняющиеся вместе со статусом
type StatusUpdate struct {
	DriverID    *string // назначение водителя (→ driver_assigned)
	DriverName  *string
	ClearDriver bool     // отказ водителя (driver_assigned → confirmed)
	TotalCost   *float64 // пересчет фактической стоимости (→ completed)
}

// TripRepository — доступ к заявкам на поездку
type TripRepository interface {
	// Create сохраняет новую заявку
	Create(ctx context.Context, trip *domain.TripRequest) error

	// FindByID находит заявку. Возвращает domain.ErrTripNotFound.
	FindByID(ctx context.Context, id string) (*domain.TripRequest, error)

	// FindAll возвращает полный текущий набор заявок
	// (вход для пересчета каталога клиентов)
	FindAll(ctx context.Context) ([]domain.TripRequest, error)

	// ApplyStatusTransition атомарно переводит заявку из from в to:
	// UPDATE ... WHERE id = $1 AND status = $from. Если заявка тем
	// временем ушла в другой статус — domain.StatusConflictError с
	// фактическим статусом; сама заявка не трогается.
	ApplyStatusTransition(ctx context.Context, tripID, from, to string, upd StatusUpdate) (*domain.TripRequest, error)
}
