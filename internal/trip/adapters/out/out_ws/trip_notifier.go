package out_ws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	sharedws "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/ws"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/out"
)

// TripNotifier доставляет уведомления о заявках через WS-хаб
type TripNotifier struct {
	hub *sharedws.Hub
}

func NewTripNotifier(hub *sharedws.Hub) *TripNotifier {
	return &TripNotifier{hub: hub}
}

func (n *TripNotifier) NotifyAccount(_ context.Context, accountID string, notification out.TripNotification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal trip notification: %w", err)
	}
	n.hub.SendToAccount(accountID, body)
	return nil
}

func (n *TripNotifier) NotifyAdmins(_ context.Context, notification out.TripNotification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal trip notification: %w", err)
	}
	n.hub.SendToRole(model.RoleAdmin, body)
	return nil
}
