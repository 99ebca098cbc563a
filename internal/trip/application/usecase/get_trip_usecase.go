package usecase

import (
	"context"

	identitydomain "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/domain"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/out"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

// GetTripService возвращает одну заявку
type GetTripService struct {
	trips out.TripRepository
}

func NewGetTripService(trips out.TripRepository) *GetTripService {
	return &GetTripService{trips: trips}
}

func (s *GetTripService) Execute(ctx context.Context, tripID string) (*domain.TripRequest, error) {
	return s.trips.FindByID(ctx, tripID)
}

// GetTripCustomerService возвращает карточку клиента по заявке.
// Разрешение не повторяется локально: сервис читает готовый снимок
// каталога, который identity-движок кладет в Redis при каждом пересчете.
type GetTripCustomerService struct {
	trips    out.TripRepository
	snapshot out.SnapshotReader
}

func NewGetTripCustomerService(trips out.TripRepository, snapshot out.SnapshotReader) *GetTripCustomerService {
	return &GetTripCustomerService{trips: trips, snapshot: snapshot}
}

func (s *GetTripCustomerService) Execute(ctx context.Context, tripID string) (*in.TripCustomerOutput, error) {
	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshot.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, domain.ErrCustomerNotResolved
	}

	// Ищем клиента теми же правилами, что и резолвер: прямое попадание
	// по ключу (account id или синтетический "trip:<id>"), затем скан
	// по нормализованным email/phone в порядке каталога — заявка могла
	// влиться в личность с чужим ключом.
	if c, ok := findCustomer(snap, trip); ok {
		return &in.TripCustomerOutput{
			Customer: c,
			Stats:    snap.Stats[c.Key],
		}, nil
	}

	// Заявка моложе снимка: пересчет ее еще не видел
	return nil, domain.ErrCustomerNotResolved
}

func findCustomer(snap *identitydomain.Snapshot, trip *domain.TripRequest) (identitydomain.Customer, bool) {
	directKeys := []string{}
	if trip.AccountID != "" {
		directKeys = append(directKeys, trip.AccountID)
	}
	directKeys = append(directKeys, "trip:"+trip.ID)

	for _, key := range directKeys {
		for i := range snap.Customers {
			if snap.Customers[i].Key == key {
				return snap.Customers[i], true
			}
		}
	}

	if e := identitydomain.NormalizeEmail(trip.Email); e != "" {
		for i := range snap.Customers {
			if snap.Customers[i].Email == e {
				return snap.Customers[i], true
			}
		}
	}
	if p := identitydomain.NormalizePhone(trip.Phone); p != "" {
		for i := range snap.Customers {
			if snap.Customers[i].Phone == p {
				return snap.Customers[i], true
			}
		}
	}
	return identitydomain.Customer{}, false
}
