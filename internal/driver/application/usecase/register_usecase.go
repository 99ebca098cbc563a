package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/application/ports/out"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/domain"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/utils"
)

var ErrMissingDisplayName = errors.New("display name is required")

// RegisterService заводит профиль водителя для учетной записи.
// Повторная регистрация идемпотентна: возвращается существующий профиль.
type RegisterService struct {
	drivers out.DriverRepository
	log     *logger.Logger
}

func NewRegisterService(drivers out.DriverRepository, log *logger.Logger) *RegisterService {
	return &RegisterService{drivers: drivers, log: log}
}

func (s *RegisterService) Execute(ctx context.Context, input in.RegisterInput) (*in.RegisterOutput, error) {
	existing, err := s.drivers.FindByAccountID(ctx, input.AccountID)
	if err == nil {
		return &in.RegisterOutput{DriverID: existing.ID, Status: existing.Status}, nil
	}
	if !errors.Is(err, domain.ErrDriverNotFound) {
		return nil, err
	}

	if input.DisplayName == "" {
		return nil, ErrMissingDisplayName
	}

	now := time.Now().UTC()
	driver := &domain.Driver{
		ID:           utils.NewUUID(),
		AccountID:    input.AccountID,
		DisplayName:  input.DisplayName,
		VehiclePlate: input.VehiclePlate,
		Status:       model.DriverStatusOffline,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.drivers.Create(ctx, driver); err != nil {
		return nil, err
	}

	s.log.Info(logger.Entry{
		Action:  "driver_registered",
		Message: driver.DisplayName,
		Additional: map[string]any{
			"driver_id":  driver.ID,
			"account_id": driver.AccountID,
		},
	})

	return &in.RegisterOutput{DriverID: driver.ID, Status: driver.Status}, nil
}
