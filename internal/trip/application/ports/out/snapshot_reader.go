package out

import (
	"context"

	identitydomain "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/domain"
)

// SnapshotReader читает последний снимок каталога клиентов,
// опубликованный identity-сервисом (Redis)
type SnapshotReader interface {
	LoadSnapshot(ctx context.Context) (*identitydomain.Snapshot, error)
}
