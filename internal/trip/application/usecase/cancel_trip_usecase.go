package usecase

import (
	"context"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/out"
)

// CancelTripService — любой нетерминальный статус → cancelled.
// Статус читается перед переходом; если заявка тем временем изменилась,
// апдейт промахнется и вызывающий получит конфликт с фактическим статусом.
type CancelTripService struct {
	tr transitioner
}

func NewCancelTripService(trips out.TripRepository, publisher out.EventPublisher, notifier out.TripNotifier, log *logger.Logger) *CancelTripService {
	return &CancelTripService{tr: transitioner{trips: trips, publisher: publisher, notifier: notifier, log: log}}
}

func (s *CancelTripService) Execute(ctx context.Context, tripID string) (*in.TransitionOutput, error) {
	current, err := s.tr.currentStatus(ctx, tripID)
	if err != nil {
		return nil, err
	}

	from := current.Status
	trip, err := s.tr.apply(ctx, tripID,
		from, model.TripStatusCancelled,
		out.StatusUpdate{},
		model.EventTripCancelled, model.RKTripStatusChanged, nil,
	)
	if err != nil {
		// Проигравший гонку получает конфликт с фактическим статусом
		// и сам решает, повторять ли на свежем состоянии
		return nil, err
	}
	return transitionOutput(trip, from), nil
}
