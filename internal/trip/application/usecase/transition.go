package usecase

import (
	"context"
	"time"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/out"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

// transitioner — общая механика смены статуса: проверка перехода по
// таблице, атомарный апдейт с ожидаемым статусом, событие + уведомление.
// Конкуренция разрешается в репозитории: проигравший получает
// StatusConflictError с фактическим статусом и сам решает, что дальше.
type transitioner struct {
	trips     out.TripRepository
	publisher out.EventPublisher
	notifier  out.TripNotifier
	log       *logger.Logger
}

func (t *transitioner) apply(ctx context.Context, tripID, from, to string, upd out.StatusUpdate, eventType, routingKey string, extra map[string]any) (*domain.TripRequest, error) {
	if err := domain.CheckTransition(from, to); err != nil {
		return nil, err
	}

	trip, err := t.trips.ApplyStatusTransition(ctx, tripID, from, to, upd)
	if err != nil {
		return nil, err
	}

	t.log.Info(logger.Entry{
		Action:  "trip_status_changed",
		Message: from + " -> " + to,
		TripID:  tripID,
	})

	data := out.TripEventData{
		TripID:         trip.ID,
		AccountID:      trip.AccountID,
		Status:         to,
		PrevStatus:     from,
		AdditionalData: extra,
	}
	if trip.DriverID != nil {
		data.DriverID = *trip.DriverID
	}
	if err := t.publisher.PublishTripEvent(ctx, eventType, routingKey, data); err != nil {
		t.log.Error(logger.Entry{
			Action:  "publish_trip_event_failed",
			Message: err.Error(),
			TripID:  tripID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		// Переход уже применен, событие догонит при следующем изменении
	}

	n := out.TripNotification{
		Type:    "trip_status_changed",
		TripID:  trip.ID,
		Message: "trip is now " + to,
		Data: map[string]any{
			"status":      to,
			"prev_status": from,
		},
	}
	if trip.AccountID != "" {
		if err := t.notifier.NotifyAccount(ctx, trip.AccountID, n); err != nil {
			t.log.Error(logger.Entry{
				Action:  "notify_account_failed",
				Message: err.Error(),
				TripID:  tripID,
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}
	if err := t.notifier.NotifyAdmins(ctx, n); err != nil {
		t.log.Error(logger.Entry{
			Action:  "notify_admins_failed",
			Message: err.Error(),
			TripID:  tripID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	return trip, nil
}

func transitionOutput(trip *domain.TripRequest, prev string) *in.TransitionOutput {
	return &in.TransitionOutput{
		TripID:     trip.ID,
		Status:     trip.Status,
		PrevStatus: prev,
		UpdatedAt:  trip.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// currentStatus перечитывает заявку перед переходом
func (t *transitioner) currentStatus(ctx context.Context, tripID string) (*domain.TripRequest, error) {
	return t.trips.FindByID(ctx, tripID)
}
