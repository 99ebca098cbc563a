package out

import "context"

// EventPublisher публикует доменные события в шину
type EventPublisher interface {
	PublishAccountCreated(ctx context.Context, event any) error
}
