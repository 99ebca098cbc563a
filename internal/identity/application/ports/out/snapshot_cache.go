package out

import (
	"context"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/domain"
)

// SnapshotCache хранит последний опубликованный снимок для других сервисов
type SnapshotCache interface {
	StoreSnapshot(ctx context.Context, snap domain.Snapshot) error
}
