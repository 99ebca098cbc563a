package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/domain"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	sharedws "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/ws"
)

// DirectoryNotifier толкает свежий снимок каталога админским WS-сессиям
type DirectoryNotifier struct {
	hub *sharedws.Hub
}

func NewDirectoryNotifier(hub *sharedws.Hub) *DirectoryNotifier {
	return &DirectoryNotifier{hub: hub}
}

type snapshotMessage struct {
	Type      string          `json:"type"`
	Timestamp string          `json:"timestamp"`
	Payload   domain.Snapshot `json:"payload"`
}

// NotifySnapshot рассылает снимок всем подключенным ADMIN-клиентам
func (n *DirectoryNotifier) NotifySnapshot(_ context.Context, snap domain.Snapshot) error {
	msg := snapshotMessage{
		Type:      "directory_snapshot",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Payload:   snap,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal snapshot message: %w", err)
	}
	n.hub.SendToRole(model.RoleAdmin, body)
	return nil
}
