package in

import (
	"context"
)

// TransitionOutput — результат успешного перевода статуса
type TransitionOutput struct {
	TripID     string `json:"trip_id"`
	Status     string `json:"status"`
	PrevStatus string `json:"prev_status"`
	UpdatedAt  string `json:"updated_at"`
}

// ConfirmTripUseCase — pending → confirmed (админ/система)
type ConfirmTripUseCase interface {
	Execute(ctx context.Context, tripID string) (*TransitionOutput, error)
}

// AssignDriverInput — назначение водителя на подтвержденную заявку
type AssignDriverInput struct {
	TripID     string
	DriverID   string
	DriverName string
}

// AssignDriverUseCase — confirmed → driver_assigned + driverRef
type AssignDriverUseCase interface {
	Execute(ctx context.Context, input AssignDriverInput) (*TransitionOutput, error)
}

// CancelTripUseCase — любой нетерминальный статус → cancelled
type CancelTripUseCase interface {
	Execute(ctx context.Context, tripID string) (*TransitionOutput, error)
}

// RecordPaymentInput — подтверждение оплаты заявки
type RecordPaymentInput struct {
	TripID string
	// AutoConfirm: оплата сразу подтверждает заявку
	// (awaiting_payment → pending → confirmed одним вызовом)
	AutoConfirm bool
}

// RecordPaymentUseCase — awaiting_payment → pending (или → confirmed)
type RecordPaymentUseCase interface {
	Execute(ctx context.Context, input RecordPaymentInput) (*TransitionOutput, error)
}

// DriverResponseInput — ответ водителя на предложение заявки
type DriverResponseInput struct {
	TripID   string
	DriverID string
	Accepted bool
}

// RespondToAssignmentUseCase — accept оставляет назначение;
// reject применяет driver_assigned → confirmed и снимает водителя
type RespondToAssignmentUseCase interface {
	Execute(ctx context.Context, input DriverResponseInput) (*TransitionOutput, error)
}
