package usecase

import (
	"context"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/application/ports/out"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/domain"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
)

// SetAvailabilityService переключает смену водителя.
// Уйти оффлайн с активной заявкой нельзя: сначала доведи поездку.
type SetAvailabilityService struct {
	drivers out.DriverRepository
	log     *logger.Logger
}

func NewSetAvailabilityService(drivers out.DriverRepository, log *logger.Logger) *SetAvailabilityService {
	return &SetAvailabilityService{drivers: drivers, log: log}
}

func (s *SetAvailabilityService) Execute(ctx context.Context, input in.SetAvailabilityInput) (*in.SetAvailabilityOutput, error) {
	driver, err := s.drivers.FindByAccountID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	target := model.DriverStatusOffline
	if input.Online {
		target = model.DriverStatusAvailable
	}

	if driver.Status == model.DriverStatusBusy {
		return nil, domain.ErrDriverBusy
	}

	if driver.Status != target {
		if err := s.drivers.UpdateStatus(ctx, driver.ID, target); err != nil {
			return nil, err
		}
	}

	s.log.Info(logger.Entry{
		Action:  "driver_availability_changed",
		Message: target,
		Additional: map[string]any{
			"driver_id": driver.ID,
		},
	})

	return &in.SetAvailabilityOutput{
		DriverID: driver.ID,
		Status:   target,
	}, nil
}
