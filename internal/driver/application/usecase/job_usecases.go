package usecase

import (
	"context"
	"time"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/application/ports/out"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	tripout "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/out"
	tripdomain "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

// jobService — общая механика переходов текущей заявки водителем:
// проверка владения назначением, таблица переходов, атомарный апдейт,
// событие в шину.
type jobService struct {
	drivers   out.DriverRepository
	trips     tripout.TripRepository
	publisher tripout.EventPublisher
	log       *logger.Logger
}

func (s *jobService) applyJobTransition(ctx context.Context, accountID, tripID, from, to string) (*tripdomain.TripRequest, error) {
	driver, err := s.drivers.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.DriverID == nil || *trip.DriverID != driver.ID {
		return nil, tripdomain.ErrUnauthorized
	}

	if err := tripdomain.CheckTransition(from, to); err != nil {
		return nil, err
	}

	updated, err := s.trips.ApplyStatusTransition(ctx, tripID, from, to, tripout.StatusUpdate{})
	if err != nil {
		return nil, err
	}

	s.log.Info(logger.Entry{
		Action:  "trip_status_changed",
		Message: from + " -> " + to,
		TripID:  tripID,
		Additional: map[string]any{
			"driver_id": driver.ID,
		},
	})

	data := tripout.TripEventData{
		TripID:     updated.ID,
		AccountID:  updated.AccountID,
		Status:     to,
		PrevStatus: from,
		DriverID:   driver.ID,
	}
	if err := s.publisher.PublishTripEvent(ctx, model.EventTripStatusChanged, model.RKTripStatusChanged, data); err != nil {
		s.log.Error(logger.Entry{
			Action:  "publish_trip_event_failed",
			Message: err.Error(),
			TripID:  tripID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	return updated, nil
}

func jobOutput(trip *tripdomain.TripRequest, prev string) *in.JobTransitionOutput {
	return &in.JobTransitionOutput{
		TripID:     trip.ID,
		Status:     trip.Status,
		PrevStatus: prev,
	}
}

// StartTripService — водитель выехал к клиенту
type StartTripService struct {
	jobService
}

func NewStartTripService(drivers out.DriverRepository, trips tripout.TripRepository, publisher tripout.EventPublisher, log *logger.Logger) *StartTripService {
	return &StartTripService{jobService{drivers: drivers, trips: trips, publisher: publisher, log: log}}
}

func (s *StartTripService) Execute(ctx context.Context, input in.JobTransitionInput) (*in.JobTransitionOutput, error) {
	trip, err := s.applyJobTransition(ctx, input.AccountID, input.TripID,
		model.TripStatusDriverAssigned, model.TripStatusDriverEnRoute)
	if err != nil {
		return nil, err
	}
	return jobOutput(trip, model.TripStatusDriverAssigned), nil
}

// MarkArrivalService — водитель подал машину, поездка началась
type MarkArrivalService struct {
	jobService
}

func NewMarkArrivalService(drivers out.DriverRepository, trips tripout.TripRepository, publisher tripout.EventPublisher, log *logger.Logger) *MarkArrivalService {
	return &MarkArrivalService{jobService{drivers: drivers, trips: trips, publisher: publisher, log: log}}
}

func (s *MarkArrivalService) Execute(ctx context.Context, input in.JobTransitionInput) (*in.JobTransitionOutput, error) {
	trip, err := s.applyJobTransition(ctx, input.AccountID, input.TripID,
		model.TripStatusDriverEnRoute, model.TripStatusInProgress)
	if err != nil {
		return nil, err
	}
	return jobOutput(trip, model.TripStatusDriverEnRoute), nil
}

// CompleteTripService — поездка завершена; заработок уходит
// в статистику, водитель возвращается в AVAILABLE
type CompleteTripService struct {
	jobService
}

func NewCompleteTripService(drivers out.DriverRepository, trips tripout.TripRepository, publisher tripout.EventPublisher, log *logger.Logger) *CompleteTripService {
	return &CompleteTripService{jobService{drivers: drivers, trips: trips, publisher: publisher, log: log}}
}

func (s *CompleteTripService) Execute(ctx context.Context, input in.JobTransitionInput) (*in.JobTransitionOutput, error) {
	driver, err := s.drivers.FindByAccountID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	trip, err := s.applyJobTransition(ctx, input.AccountID, input.TripID,
		model.TripStatusInProgress, model.TripStatusCompleted)
	if err != nil {
		return nil, err
	}

	if err := s.drivers.RecordCompletedTrip(ctx, driver.ID, trip.TotalCost); err != nil {
		// Поездка уже завершена; статистику догонит сверка
		s.log.Error(logger.Entry{
			Action:  "record_completed_trip_failed",
			Message: err.Error(),
			TripID:  trip.ID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	s.log.Info(logger.Entry{
		Action:  "trip_completed",
		Message: trip.PickupLocation + " -> " + trip.DropoffLocation,
		TripID:  trip.ID,
		Additional: map[string]any{
			"driver_id": driver.ID,
			"earnings":  trip.TotalCost,
			"duration":  time.Since(trip.CreatedAt).String(),
		},
	})

	return jobOutput(trip, model.TripStatusInProgress), nil
}
