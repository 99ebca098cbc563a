package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	identitycache "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/adapters/out/cache"
	identitydomain "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/domain"
)

// RedisSnapshotReader читает снимок каталога клиентов, который
// identity-сервис публикует при каждом пересчете
type RedisSnapshotReader struct {
	client *redis.Client
}

func NewRedisSnapshotReader(client *redis.Client) *RedisSnapshotReader {
	return &RedisSnapshotReader{client: client}
}

func (r *RedisSnapshotReader) LoadSnapshot(ctx context.Context) (*identitydomain.Snapshot, error) {
	body, err := r.client.Get(ctx, identitycache.SnapshotKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("load directory snapshot: %w", err)
	}

	var snap identitydomain.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("decode directory snapshot: %w", err)
	}
	return &snap, nil
}
