package in

import (
	"context"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/domain"
	tripdomain "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

// GetTripUseCase возвращает одну заявку по id
type GetTripUseCase interface {
	Execute(ctx context.Context, tripID string) (*tripdomain.TripRequest, error)
}

// TripCustomerOutput — карточка клиента, к которому отнесена заявка
type TripCustomerOutput struct {
	Customer domain.Customer      `json:"customer"`
	Stats    domain.CustomerStats `json:"stats"`
}

// GetTripCustomerUseCase возвращает карточку клиента заявки
// (разрешение — из снимка каталога identity-сервиса)
type GetTripCustomerUseCase interface {
	Execute(ctx context.Context, tripID string) (*TripCustomerOutput, error)
}
