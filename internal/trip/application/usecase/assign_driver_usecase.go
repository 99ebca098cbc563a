package usecase

import (
	"context"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/out"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

// AssignDriverService — confirmed → driver_assigned + driverRef.
// Назначение — это предложение: пока водитель не принял, он может
// отказаться, и заявка вернется в confirmed.
type AssignDriverService struct {
	tr transitioner
}

func NewAssignDriverService(trips out.TripRepository, publisher out.EventPublisher, notifier out.TripNotifier, log *logger.Logger) *AssignDriverService {
	return &AssignDriverService{tr: transitioner{trips: trips, publisher: publisher, notifier: notifier, log: log}}
}

func (s *AssignDriverService) Execute(ctx context.Context, input in.AssignDriverInput) (*in.TransitionOutput, error) {
	if input.DriverID == "" {
		return nil, domain.ErrDriverNotAvailable
	}

	// Детали заявки едут в событие: водитель видит предложение целиком
	current, err := s.tr.currentStatus(ctx, input.TripID)
	if err != nil {
		return nil, err
	}
	extra := map[string]any{
		"pickup_location":  current.PickupLocation,
		"dropoff_location": current.DropoffLocation,
		"total_cost":       current.TotalCost,
	}

	trip, err := s.tr.apply(ctx, input.TripID,
		model.TripStatusConfirmed, model.TripStatusDriverAssigned,
		out.StatusUpdate{DriverID: &input.DriverID, DriverName: &input.DriverName},
		model.EventTripAssignmentOffer, model.RKTripAssignment, extra,
	)
	if err != nil {
		return nil, err
	}
	return transitionOutput(trip, model.TripStatusConfirmed), nil
}
