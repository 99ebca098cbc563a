package domain

import (
	"fmt"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
)

// transitions — единственная таблица допустимых переходов статуса заявки.
//
//	awaiting_payment → pending | confirmed   (платежный коллаборатор)
//	pending          → confirmed             (admin/system)
//	confirmed        → driver_assigned       (диспетчеризация)
//	driver_assigned  → driver_en_route       (водитель начал поездку)
//	driver_assigned  → confirmed             (водитель отклонил назначение)
//	driver_en_route  → in_progress           (водитель у точки подачи)
//	in_progress      → completed             (водитель у точки назначения)
//	любой нетерминальный → cancelled         (admin/customer)
var transitions = map[string][]string{
	model.TripStatusAwaitingPayment: {model.TripStatusPending, model.TripStatusConfirmed, model.TripStatusCancelled},
	model.TripStatusPending:         {model.TripStatusConfirmed, model.TripStatusCancelled},
	model.TripStatusConfirmed:       {model.TripStatusDriverAssigned, model.TripStatusCancelled},
	model.TripStatusDriverAssigned:  {model.TripStatusDriverEnRoute, model.TripStatusConfirmed, model.TripStatusCancelled},
	model.TripStatusDriverEnRoute:   {model.TripStatusInProgress, model.TripStatusCancelled},
	model.TripStatusInProgress:      {model.TripStatusCompleted, model.TripStatusCancelled},
	model.TripStatusCompleted:       {},
	model.TripStatusCancelled:       {},
}

// IsValidStatus проверяет, что статус известен машине состояний
func IsValidStatus(status string) bool {
	_, ok := transitions[status]
	return ok
}

// IsTerminal — completed и cancelled неизменяемы
func IsTerminal(status string) bool {
	return status == model.TripStatusCompleted || status == model.TripStatusCancelled
}

// IsActive — заявка "в полете" (не достигла терминального статуса)
func IsActive(status string) bool {
	return IsValidStatus(status) && !IsTerminal(status)
}

// IllegalTransitionError — запрошенный переход не входит в таблицу.
// Никогда не применяется молча, всегда возвращается вызывающему.
type IllegalTransitionError struct {
	From string
	To   string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition %s -> %s", e.From, e.To)
}

// StatusConflictError — optimistic-concurrency precondition не выполнился:
// другой актор уже изменил статус. Вызывающий перечитывает заявку и решает
// сам, повторять ли операцию.
type StatusConflictError struct {
	TripID   string
	Expected string
	Actual   string
}

func (e *StatusConflictError) Error() string {
	return fmt.Sprintf("trip %s: expected status %q, found %q", e.TripID, e.Expected, e.Actual)
}

// CheckTransition валидирует переход from → to.
// Возвращает *IllegalTransitionError для любого ребра вне таблицы.
func CheckTransition(from, to string) error {
	allowed, ok := transitions[from]
	if !ok {
		return &IllegalTransitionError{From: from, To: to}
	}
	for _, s := range allowed {
		if s == to {
			return nil
		}
	}
	return &IllegalTransitionError{From: from, To: to}
}
