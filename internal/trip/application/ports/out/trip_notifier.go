package out

import "context"

// TripNotification — WS-уведомление об изменении заявки
type TripNotification struct {
	Type    string         `json:"type"`
	TripID  string         `json:"trip_id"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// TripNotifier доставляет уведомления подключенным клиентам
type TripNotifier interface {
	// NotifyAccount шлет уведомление владельцу заявки (если подключен)
	NotifyAccount(ctx context.Context, accountID string, n TripNotification) error

	// NotifyAdmins шлет уведомление админским сессиям
	NotifyAdmins(ctx context.Context, n TripNotification) error
}
