package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/domain"
)

// SnapshotKey — ключ последнего снимка каталога.
// Его читают другие сервисы (trip-service отдает карточку клиента по заявке).
const SnapshotKey = "tuktik:identity:snapshot:latest"

// RedisSnapshotCache публикует снимок каталога в Redis
type RedisSnapshotCache struct {
	client *redis.Client
}

func NewRedisSnapshotCache(client *redis.Client) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client}
}

// StoreSnapshot сериализует снимок и кладет под фиксированный ключ.
// TTL нет: снимок живет до следующего пересчета, замещение атомарно.
func (c *RedisSnapshotCache) StoreSnapshot(ctx context.Context, snap domain.Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.client.Set(ctx, SnapshotKey, body, 0).Err(); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot читает последний снимок (для чтения из других сервисов)
func (c *RedisSnapshotCache) LoadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	body, err := c.client.Get(ctx, SnapshotKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
