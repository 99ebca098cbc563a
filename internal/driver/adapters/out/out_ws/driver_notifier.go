package out_ws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/application/ports/out"
	sharedws "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/ws"
)

// DriverNotifier доставляет предложения заявок через WS-хаб
type DriverNotifier struct {
	hub *sharedws.Hub
}

func NewDriverNotifier(hub *sharedws.Hub) *DriverNotifier {
	return &DriverNotifier{hub: hub}
}

type assignmentMessage struct {
	Type    string              `json:"type"`
	Payload out.AssignmentOffer `json:"payload"`
}

func (n *DriverNotifier) NotifyAssignment(_ context.Context, driverAccountID string, offer out.AssignmentOffer) error {
	msg := assignmentMessage{Type: "assignment_offer", Payload: offer}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal assignment offer: %w", err)
	}
	n.hub.SendToAccount(driverAccountID, body)
	return nil
}
