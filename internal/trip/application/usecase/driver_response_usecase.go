package usecase

import (
	"context"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/out"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

// DriverResponseService обрабатывает ответ водителя на предложение.
// Accept оставляет назначение в силе (статус не меняется).
// Reject возвращает заявку диспетчеру: driver_assigned → confirmed,
// driverRef снимается.
type DriverResponseService struct {
	tr transitioner
}

func NewDriverResponseService(trips out.TripRepository, publisher out.EventPublisher, notifier out.TripNotifier, log *logger.Logger) *DriverResponseService {
	return &DriverResponseService{tr: transitioner{trips: trips, publisher: publisher, notifier: notifier, log: log}}
}

func (s *DriverResponseService) Execute(ctx context.Context, input in.DriverResponseInput) (*in.TransitionOutput, error) {
	trip, err := s.tr.currentStatus(ctx, input.TripID)
	if err != nil {
		return nil, err
	}

	// Отвечать может только назначенный водитель
	if trip.DriverID == nil || *trip.DriverID != input.DriverID {
		return nil, domain.ErrUnauthorized
	}

	if input.Accepted {
		s.tr.log.Info(logger.Entry{
			Action:  "assignment_accepted",
			Message: "driver accepted assignment",
			TripID:  trip.ID,
			Additional: map[string]any{
				"driver_id": input.DriverID,
			},
		})
		return &in.TransitionOutput{
			TripID:     trip.ID,
			Status:     trip.Status,
			PrevStatus: trip.Status,
		}, nil
	}

	updated, err := s.tr.apply(ctx, input.TripID,
		model.TripStatusDriverAssigned, model.TripStatusConfirmed,
		out.StatusUpdate{ClearDriver: true},
		model.EventDriverResponse, model.RKTripStatusChanged, nil,
	)
	if err != nil {
		return nil, err
	}
	return transitionOutput(updated, model.TripStatusDriverAssigned), nil
}
