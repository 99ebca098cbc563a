package in

import (
	"context"
)

// RegisterInput — создание профиля водителя для учетной записи
type RegisterInput struct {
	AccountID    string // из JWT
	DisplayName  string
	VehiclePlate string
}

// RegisterOutput — созданный (или уже существующий) профиль
type RegisterOutput struct {
	DriverID string `json:"driver_id"`
	Status   string `json:"status"`
}

// RegisterUseCase — заводит профиль водителя; повторный вызов
// возвращает существующий профиль
type RegisterUseCase interface {
	Execute(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
}

// SetAvailabilityInput — смена статуса смены водителя
type SetAvailabilityInput struct {
	AccountID string // из JWT
	Online    bool
}

// SetAvailabilityOutput — результат смены статуса
type SetAvailabilityOutput struct {
	DriverID string `json:"driver_id"`
	Status   string `json:"status"`
}

// SetAvailabilityUseCase — онлайн/оффлайн
type SetAvailabilityUseCase interface {
	Execute(ctx context.Context, input SetAvailabilityInput) (*SetAvailabilityOutput, error)
}

// RespondInput — ответ водителя на предложение заявки
type RespondInput struct {
	AccountID string // из JWT
	TripID    string
	Accepted  bool
}

// RespondOutput — результат ответа
type RespondOutput struct {
	TripID       string `json:"trip_id"`
	DriverStatus string `json:"driver_status"`
	Accepted     bool   `json:"accepted"`
}

// RespondUseCase — accept берет заявку в работу (BUSY),
// reject публикует отказ, заявка возвращается диспетчеру
type RespondUseCase interface {
	Execute(ctx context.Context, input RespondInput) (*RespondOutput, error)
}

// JobTransitionInput — перевод текущей заявки водителем
type JobTransitionInput struct {
	AccountID string // из JWT
	TripID    string
}

// JobTransitionOutput — результат перевода
type JobTransitionOutput struct {
	TripID     string `json:"trip_id"`
	Status     string `json:"status"`
	PrevStatus string `json:"prev_status"`
}

// StartTripUseCase — driver_assigned → driver_en_route
type StartTripUseCase interface {
	Execute(ctx context.Context, input JobTransitionInput) (*JobTransitionOutput, error)
}

// MarkArrivalUseCase — driver_en_route → in_progress
type MarkArrivalUseCase interface {
	Execute(ctx context.Context, input JobTransitionInput) (*JobTransitionOutput, error)
}

// CompleteTripUseCase — in_progress → completed + статистика водителя
type CompleteTripUseCase interface {
	Execute(ctx context.Context, input JobTransitionInput) (*JobTransitionOutput, error)
}
