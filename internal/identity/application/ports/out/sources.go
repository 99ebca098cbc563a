package out

import (
	"context"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/account"
	tripdomain "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

// Unsubscribe отменяет подписку. После вызова callback-и не приходят.
type Unsubscribe func()

// AccountSource — upstream-поток аккаунтов.
// onChange всегда получает ПОЛНЫЙ текущий набор, не дельты.
type AccountSource interface {
	SubscribeAccounts(ctx context.Context, onChange func([]account.Account)) (Unsubscribe, error)
}

// TripSource — upstream-поток заявок.
// onChange всегда получает ПОЛНЫЙ текущий набор, не дельты.
type TripSource interface {
	SubscribeTripRequests(ctx context.Context, onChange func([]tripdomain.TripRequest)) (Unsubscribe, error)
}
