package source

import (
	"context"
	"sync"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/application/ports/out"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/account"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	tripdomain "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

// TripFinder — читающая часть репозитория заявок, нужная источнику
type TripFinder interface {
	FindAll(ctx context.Context) ([]tripdomain.TripRequest, error)
}

// PgSource — upstream-источник для движка пересчета.
// Подписчик сразу получает полный набор из Postgres; дальше Refresh*
// (их дергает AMQP-консьюмер) перечитывает таблицу и раздает новый набор.
// Подписчики всегда видят полные наборы, не дельты.
type PgSource struct {
	accounts account.Repository
	trips    TripFinder
	log      *logger.Logger

	mu        sync.Mutex
	nextSubID int
	accSubs   map[int]func([]account.Account)
	tripSubs  map[int]func([]tripdomain.TripRequest)
}

func NewPgSource(accounts account.Repository, trips TripFinder, log *logger.Logger) *PgSource {
	return &PgSource{
		accounts: accounts,
		trips:    trips,
		log:      log,
		accSubs:  make(map[int]func([]account.Account)),
		tripSubs: make(map[int]func([]tripdomain.TripRequest)),
	}
}

func (s *PgSource) SubscribeAccounts(ctx context.Context, onChange func([]account.Account)) (out.Unsubscribe, error) {
	set, err := s.accounts.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.accSubs[id] = onChange
	s.mu.Unlock()

	onChange(set)

	return func() {
		s.mu.Lock()
		delete(s.accSubs, id)
		s.mu.Unlock()
	}, nil
}

func (s *PgSource) SubscribeTripRequests(ctx context.Context, onChange func([]tripdomain.TripRequest)) (out.Unsubscribe, error) {
	set, err := s.trips.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.tripSubs[id] = onChange
	s.mu.Unlock()

	onChange(set)

	return func() {
		s.mu.Lock()
		delete(s.tripSubs, id)
		s.mu.Unlock()
	}, nil
}

// RefreshAccounts перечитывает аккаунты и раздает набор подписчикам
func (s *PgSource) RefreshAccounts(ctx context.Context) error {
	set, err := s.accounts.FindAll(ctx)
	if err != nil {
		s.log.Error(logger.Entry{
			Action:  "refresh_accounts_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return err
	}

	for _, fn := range s.accountSubscribers() {
		fn(set)
	}
	return nil
}

// RefreshTrips перечитывает заявки и раздает набор подписчикам
func (s *PgSource) RefreshTrips(ctx context.Context) error {
	set, err := s.trips.FindAll(ctx)
	if err != nil {
		s.log.Error(logger.Entry{
			Action:  "refresh_trips_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return err
	}

	for _, fn := range s.tripSubscribers() {
		fn(set)
	}
	return nil
}

func (s *PgSource) accountSubscribers() []func([]account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs := make([]func([]account.Account), 0, len(s.accSubs))
	for _, fn := range s.accSubs {
		subs = append(subs, fn)
	}
	return subs
}

func (s *PgSource) tripSubscribers() []func([]tripdomain.TripRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs := make([]func([]tripdomain.TripRequest), 0, len(s.tripSubs))
	for _, fn := range s.tripSubs {
		subs = append(subs, fn)
	}
	return subs
}
