package usecase

import (
	"context"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/application/ports/out"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	tripdomain "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
	tripout "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/out"
)

// RespondService — ответ водителя на предложение заявки.
// Сам переход статуса заявки применяет trip-сервис, получив
// driver.response из шины; здесь меняется только состояние водителя.
type RespondService struct {
	drivers   out.DriverRepository
	trips     tripout.TripRepository
	publisher out.EventPublisher
	log       *logger.Logger
}

func NewRespondService(drivers out.DriverRepository, trips tripout.TripRepository, publisher out.EventPublisher, log *logger.Logger) *RespondService {
	return &RespondService{drivers: drivers, trips: trips, publisher: publisher, log: log}
}

func (s *RespondService) Execute(ctx context.Context, input in.RespondInput) (*in.RespondOutput, error) {
	driver, err := s.drivers.FindByAccountID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	trip, err := s.trips.FindByID(ctx, input.TripID)
	if err != nil {
		return nil, err
	}

	// Отвечать можно только на собственное предложение
	if trip.DriverID == nil || *trip.DriverID != driver.ID {
		return nil, tripdomain.ErrUnauthorized
	}

	status := driver.Status
	if input.Accepted {
		if err := s.drivers.UpdateStatus(ctx, driver.ID, model.DriverStatusBusy); err != nil {
			return nil, err
		}
		status = model.DriverStatusBusy
	}

	data := out.DriverResponseData{
		TripID:   trip.ID,
		DriverID: driver.ID,
		Accepted: input.Accepted,
	}
	if err := s.publisher.PublishDriverResponse(ctx, data); err != nil {
		s.log.Error(logger.Entry{
			Action:  "publish_driver_response_failed",
			Message: err.Error(),
			TripID:  trip.ID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, err
	}

	s.log.Info(logger.Entry{
		Action:  "driver_responded",
		Message: map[bool]string{true: "accepted", false: "rejected"}[input.Accepted],
		TripID:  trip.ID,
		Additional: map[string]any{
			"driver_id": driver.ID,
		},
	})

	return &in.RespondOutput{
		TripID:       trip.ID,
		DriverStatus: status,
		Accepted:     input.Accepted,
	}, nil
}
