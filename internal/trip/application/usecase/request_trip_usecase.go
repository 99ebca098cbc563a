package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/utils"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/out"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

// RequestTripService реализует RequestTripUseCase
type RequestTripService struct {
	trips     out.TripRepository
	publisher out.EventPublisher
	notifier  out.TripNotifier
	log       *logger.Logger
}

// NewRequestTripService создает новый сервис создания заявки
func NewRequestTripService(
	trips out.TripRepository,
	publisher out.EventPublisher,
	notifier out.TripNotifier,
	log *logger.Logger,
) *RequestTripService {
	return &RequestTripService{
		trips:     trips,
		publisher: publisher,
		notifier:  notifier,
		log:       log,
	}
}

// Execute выполняет создание новой заявки на поездку
func (s *RequestTripService) Execute(ctx context.Context, input in.RequestTripInput) (*in.RequestTripOutput, error) {
	if input.PickupLocation == "" || input.DropoffLocation == "" {
		return nil, domain.ErrMissingLocation
	}

	// Гостевая заявка обязана нести хотя бы один контакт,
	// иначе ее не к кому отнести
	if input.AccountID == "" && input.Email == "" && input.Phone == "" {
		return nil, domain.ErrMissingContact
	}

	fare := calculateFare(input)

	// Бесплатная заявка (промо) не ждет оплаты
	status := model.TripStatusAwaitingPayment
	if fare == 0 {
		status = model.TripStatusPending
	}

	now := time.Now().UTC()
	trip := &domain.TripRequest{
		ID:              utils.NewUUID(),
		AccountID:       input.AccountID,
		Email:           input.Email,
		Phone:           input.Phone,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		PickupLocation:  input.PickupLocation,
		DropoffLocation: input.DropoffLocation,
		TotalCost:       fare,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.trips.Create(ctx, trip); err != nil {
		s.log.Error(logger.Entry{
			Action:  "create_trip_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
			Additional: map[string]any{
				"account_id": input.AccountID,
			},
		})
		return nil, fmt.Errorf("create trip: %w", err)
	}

	s.log.Info(logger.Entry{
		Action:  "trip_created",
		Message: trip.PickupLocation + " -> " + trip.DropoffLocation,
		TripID:  trip.ID,
		Additional: map[string]any{
			"account_id": trip.AccountID,
			"status":     trip.Status,
			"total_cost": trip.TotalCost,
		},
	})

	// Публикуем событие в RabbitMQ
	data := out.TripEventData{
		TripID:    trip.ID,
		AccountID: trip.AccountID,
		Status:    trip.Status,
		AdditionalData: map[string]any{
			"pickup_location":  trip.PickupLocation,
			"dropoff_location": trip.DropoffLocation,
			"total_cost":       trip.TotalCost,
		},
	}
	if err := s.publisher.PublishTripEvent(ctx, model.EventTripRequested, model.RKTripRequested, data); err != nil {
		s.log.Error(logger.Entry{
			Action:  "publish_trip_event_failed",
			Message: err.Error(),
			TripID:  trip.ID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		// Не возвращаем ошибку, заявка уже создана
	}

	if trip.AccountID != "" {
		n := out.TripNotification{
			Type:    "trip_requested",
			TripID:  trip.ID,
			Message: "Your trip has been requested",
			Data: map[string]any{
				"status":     trip.Status,
				"total_cost": trip.TotalCost,
			},
		}
		if err := s.notifier.NotifyAccount(ctx, trip.AccountID, n); err != nil {
			s.log.Error(logger.Entry{
				Action:  "notify_account_failed",
				Message: err.Error(),
				TripID:  trip.ID,
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}

	return &in.RequestTripOutput{
		TripID:          trip.ID,
		Status:          trip.Status,
		TotalCost:       trip.TotalCost,
		PickupLocation:  trip.PickupLocation,
		DropoffLocation: trip.DropoffLocation,
		CreatedAt:       now.Format(time.RFC3339),
	}, nil
}

// Тук-тук тариф: базовая посадка + за км
const (
	baseFare  = 40.0
	farePerKm = 12.0
)

// calculateFare считает стоимость по координатам; без координат
// действует базовый тариф
func calculateFare(input in.RequestTripInput) float64 {
	if input.PickupLat == nil || input.PickupLng == nil ||
		input.DropoffLat == nil || input.DropoffLng == nil {
		return baseFare
	}
	distance := calculateDistance(
		*input.PickupLat, *input.PickupLng,
		*input.DropoffLat, *input.DropoffLng,
	)
	fare := baseFare + distance*farePerKm
	return math.Round(fare*100) / 100
}

// calculateDistance вычисляет расстояние между двумя точками (формула Haversine)
func calculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371.0 // км

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
