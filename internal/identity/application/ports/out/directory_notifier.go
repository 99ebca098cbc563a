package out

import (
	"context"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/domain"
)

// DirectoryNotifier доставляет свежий снимок наблюдающим UI-поверхностям
type DirectoryNotifier interface {
	NotifySnapshot(ctx context.Context, snap domain.Snapshot) error
}
