package usecase

import (
	"context"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/out"
)

// RecordPaymentService — awaiting_payment → pending; с AutoConfirm
// заявка сразу уходит в confirmed (два последовательных перехода,
// каждый валиден по таблице)
type RecordPaymentService struct {
	tr transitioner
}

func NewRecordPaymentService(trips out.TripRepository, publisher out.EventPublisher, notifier out.TripNotifier, log *logger.Logger) *RecordPaymentService {
	return &RecordPaymentService{tr: transitioner{trips: trips, publisher: publisher, notifier: notifier, log: log}}
}

func (s *RecordPaymentService) Execute(ctx context.Context, input in.RecordPaymentInput) (*in.TransitionOutput, error) {
	trip, err := s.tr.apply(ctx, input.TripID,
		model.TripStatusAwaitingPayment, model.TripStatusPending,
		out.StatusUpdate{},
		model.EventPaymentConfirmed, model.RKTripStatusChanged, nil,
	)
	if err != nil {
		return nil, err
	}
	prev := model.TripStatusAwaitingPayment

	if input.AutoConfirm {
		trip, err = s.tr.apply(ctx, input.TripID,
			model.TripStatusPending, model.TripStatusConfirmed,
			out.StatusUpdate{},
			model.EventTripStatusChanged, model.RKTripStatusChanged, nil,
		)
		if err != nil {
			// Оплата уже записана; кто-то успел изменить статус первым
			return nil, err
		}
		prev = model.TripStatusPending
	}

	return transitionOutput(trip, prev), nil
}
