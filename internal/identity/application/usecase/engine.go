package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/application/ports/out"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/domain"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/account"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	tripdomain "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

// Engine — реактивный драйвер пересчета. Держит последние ПОЛНЫЕ наборы
// аккаунтов и заявок; любое изменение прогоняет Resolve + Aggregate и
// атомарно публикует новый снимок всем наблюдателям.
//
// Каждая UI-поверхность подписывается независимо; разделяемого
// мутабельного кеша между ними нет — наблюдатели получают один и тот же
// иммутабельный снимок.
type Engine struct {
	log *logger.Logger

	mu          sync.RWMutex
	accounts    []account.Account
	trips       []tripdomain.TripRequest
	prevTrips   map[string]tripdomain.TripRequest
	snapshot    domain.Snapshot
	hasSnapshot bool

	obsMu          sync.Mutex
	nextObserverID int
	dirObservers   map[int]func(domain.Snapshot)
	tripObservers  map[int]func(tripdomain.TripRequest)

	sinks []out.SnapshotCache
}

// NewEngine создает новый движок пересчета
func NewEngine(log *logger.Logger, sinks ...out.SnapshotCache) *Engine {
	return &Engine{
		log:           log,
		prevTrips:     make(map[string]tripdomain.TripRequest),
		dirObservers:  make(map[int]func(domain.Snapshot)),
		tripObservers: make(map[int]func(tripdomain.TripRequest)),
		sinks:         sinks,
	}
}

// Start подписывает движок на оба upstream-потока.
// Возвращенная функция отменяет обе подписки; после отмены пересчеты
// не запускаются.
func (e *Engine) Start(ctx context.Context, accounts out.AccountSource, trips out.TripSource) (out.Unsubscribe, error) {
	unsubAccounts, err := accounts.SubscribeAccounts(ctx, func(set []account.Account) {
		e.SetAccounts(ctx, set)
	})
	if err != nil {
		return nil, err
	}

	unsubTrips, err := trips.SubscribeTripRequests(ctx, func(set []tripdomain.TripRequest) {
		e.SetTripRequests(ctx, set)
	})
	if err != nil {
		unsubAccounts()
		return nil, err
	}

	return func() {
		unsubAccounts()
		unsubTrips()
	}, nil
}

// SetAccounts принимает полный набор аккаунтов и запускает пересчет.
// Последний полученный снимок всегда авторитетен; дельты не вычисляются.
func (e *Engine) SetAccounts(ctx context.Context, set []account.Account) {
	e.mu.Lock()
	e.accounts = make([]account.Account, len(set))
	copy(e.accounts, set)
	e.mu.Unlock()

	e.recompute(ctx)
}

// SetTripRequests принимает полный набор заявок и запускает пересчет
func (e *Engine) SetTripRequests(ctx context.Context, set []tripdomain.TripRequest) {
	e.mu.Lock()
	e.trips = make([]tripdomain.TripRequest, len(set))
	copy(e.trips, set)
	e.mu.Unlock()

	e.recompute(ctx)
	e.emitChangedTrips(set)
}

// Snapshot возвращает последний опубликованный снимок
func (e *Engine) Snapshot() (domain.Snapshot, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot, e.hasSnapshot
}

// OnDirectoryChanged регистрирует наблюдателя каталога.
// Если снимок уже есть, наблюдатель получает его сразу.
func (e *Engine) OnDirectoryChanged(fn func(domain.Snapshot)) out.Unsubscribe {
	e.obsMu.Lock()
	id := e.nextObserverID
	e.nextObserverID++
	e.dirObservers[id] = fn
	e.obsMu.Unlock()

	if snap, ok := e.Snapshot(); ok {
		fn(snap)
	}

	return func() {
		e.obsMu.Lock()
		delete(e.dirObservers, id)
		e.obsMu.Unlock()
	}
}

// OnTripChanged регистрирует наблюдателя отдельных заявок (сырой поток
// для поверхностей вроде текущего задания водителя). Наблюдатель сам
// диффит прошлый и новый статус, движок диффов не встраивает.
func (e *Engine) OnTripChanged(fn func(tripdomain.TripRequest)) out.Unsubscribe {
	e.obsMu.Lock()
	id := e.nextObserverID
	e.nextObserverID++
	e.tripObservers[id] = fn
	e.obsMu.Unlock()

	return func() {
		e.obsMu.Lock()
		delete(e.tripObservers, id)
		e.obsMu.Unlock()
	}
}

// recompute прогоняет чистые Resolve + Aggregate над текущими наборами
// и замещает снимок. Ошибки отдельных записей разрешаются внутри Resolve
// диагностиками; пересчет не прерывается.
func (e *Engine) recompute(ctx context.Context) {
	e.mu.Lock()
	accounts := e.accounts
	trips := e.trips

	res := domain.Resolve(accounts, trips)
	stats, global := domain.Aggregate(res.Directory, res.Attribution, trips)

	snap := domain.Snapshot{
		Directory:   res.Directory,
		Customers:   res.Directory.Customers(),
		Stats:       stats,
		Global:      global,
		Diagnostics: res.Diagnostics,
		ComputedAt:  time.Now().UTC(),
	}
	e.snapshot = snap
	e.hasSnapshot = true
	e.mu.Unlock()

	e.log.Info(logger.Entry{
		Action:  "directory_recomputed",
		Message: "customer directory recomputed",
		Additional: map[string]any{
			"customers":   global.TotalCustomers,
			"trips":       len(trips),
			"diagnostics": len(res.Diagnostics),
		},
	})

	for _, d := range res.Diagnostics {
		e.log.Warn(logger.Entry{
			Action:  "resolution_diagnostic",
			Message: d.Detail,
			Additional: map[string]any{
				"kind":      d.Kind,
				"record_id": d.RecordID,
			},
		})
	}

	// Наблюдатели зовутся вне mu: снимок уже иммутабелен
	e.obsMu.Lock()
	observers := make([]func(domain.Snapshot), 0, len(e.dirObservers))
	for _, fn := range e.dirObservers {
		observers = append(observers, fn)
	}
	e.obsMu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}

	for _, sink := range e.sinks {
		if err := sink.StoreSnapshot(ctx, snap); err != nil {
			e.log.Error(logger.Entry{
				Action:  "snapshot_sink_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
			// Кеш не критичен, снимок уже опубликован наблюдателям
		}
	}
}

// emitChangedTrips отдает trip-наблюдателям заявки, которые появились или
// изменились относительно прошлого набора. Повторная доставка того же
// набора ничего не эмитит (идемпотентность по ре-доставке).
func (e *Engine) emitChangedTrips(set []tripdomain.TripRequest) {
	e.mu.Lock()
	changed := make([]tripdomain.TripRequest, 0)
	next := make(map[string]tripdomain.TripRequest, len(set))
	for _, t := range set {
		next[t.ID] = t
		prev, seen := e.prevTrips[t.ID]
		if !seen || prev.Status != t.Status || !prev.UpdatedAt.Equal(t.UpdatedAt) {
			changed = append(changed, t)
		}
	}
	e.prevTrips = next
	e.mu.Unlock()

	if len(changed) == 0 {
		return
	}

	e.obsMu.Lock()
	observers := make([]func(tripdomain.TripRequest), 0, len(e.tripObservers))
	for _, fn := range e.tripObservers {
		observers = append(observers, fn)
	}
	e.obsMu.Unlock()

	for _, t := range changed {
		for _, fn := range observers {
			fn(t)
		}
	}
}
