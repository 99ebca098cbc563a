package usecase

import (
	"context"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/out"
)

// ConfirmTripService — pending → confirmed
type ConfirmTripService struct {
	tr transitioner
}

func NewConfirmTripService(trips out.TripRepository, publisher out.EventPublisher, notifier out.TripNotifier, log *logger.Logger) *ConfirmTripService {
	return &ConfirmTripService{tr: transitioner{trips: trips, publisher: publisher, notifier: notifier, log: log}}
}

func (s *ConfirmTripService) Execute(ctx context.Context, tripID string) (*in.TransitionOutput, error) {
	trip, err := s.tr.apply(ctx, tripID,
		model.TripStatusPending, model.TripStatusConfirmed,
		out.StatusUpdate{},
		model.EventTripStatusChanged, model.RKTripStatusChanged, nil,
	)
	if err != nil {
		return nil, err
	}
	return transitionOutput(trip, model.TripStatusPending), nil
}
