package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/application/ports/out"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/domain"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/account"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	tripdomain "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

var engineBase = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func testAccount(id, email string) account.Account {
	return account.Account{
		ID:        id,
		Email:     email,
		Role:      model.RoleCustomer,
		Status:    model.AccountStatusActive,
		CreatedAt: engineBase,
	}
}

func testTrip(id, accountID string, cost float64, status string, created time.Time) tripdomain.TripRequest {
	return tripdomain.TripRequest{
		ID:              id,
		AccountID:       accountID,
		PickupLocation:  "Old Town",
		DropoffLocation: "Airport",
		TotalCost:       cost,
		Status:          status,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
}

func newTestEngine() *Engine {
	return NewEngine(logger.NewLogger("identity-service-test"))
}

func TestEngine_RecomputeOnNewData(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	var got []domain.Snapshot
	e.OnDirectoryChanged(func(s domain.Snapshot) { got = append(got, s) })

	e.SetAccounts(ctx, []account.Account{testAccount("u1", "a@x.com")})
	e.SetTripRequests(ctx, []tripdomain.TripRequest{
		testTrip("t1", "u1", 1000, model.TripStatusCompleted, engineBase.Add(time.Hour)),
	})

	if len(got) != 2 {
		t.Fatalf("observer called %d times, want 2", len(got))
	}
	last := got[len(got)-1]
	if last.Global.TotalCustomers != 1 {
		t.Errorf("total customers = %d, want 1", last.Global.TotalCustomers)
	}
	if last.Stats["u1"].TotalSpent != 1000 {
		t.Errorf("u1 totalSpent = %v, want 1000", last.Stats["u1"].TotalSpent)
	}

	snap, ok := e.Snapshot()
	if !ok {
		t.Fatal("engine has no snapshot after recompute")
	}
	if snap.Global.TotalCompletedTrips != 1 {
		t.Errorf("completed trips = %d, want 1", snap.Global.TotalCompletedTrips)
	}
}

func TestEngine_LateObserverGetsCurrentSnapshot(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	e.SetAccounts(ctx, []account.Account{testAccount("u1", "a@x.com")})

	var got *domain.Snapshot
	e.OnDirectoryChanged(func(s domain.Snapshot) { got = &s })

	if got == nil {
		t.Fatal("late observer did not receive current snapshot")
	}
	if got.Global.TotalCustomers != 1 {
		t.Errorf("total customers = %d, want 1", got.Global.TotalCustomers)
	}
}

func TestEngine_UnsubscribeStopsNotifications(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	calls := 0
	unsub := e.OnDirectoryChanged(func(domain.Snapshot) { calls++ })

	e.SetAccounts(ctx, []account.Account{testAccount("u1", "a@x.com")})
	if calls != 1 {
		t.Fatalf("observer called %d times before unsubscribe, want 1", calls)
	}

	unsub()
	e.SetAccounts(ctx, []account.Account{testAccount("u1", "a@x.com"), testAccount("u2", "b@x.com")})
	if calls != 1 {
		t.Errorf("observer called %d times after unsubscribe, want 1", calls)
	}
}

func TestEngine_TripObserverSeesOnlyChangedTrips(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	var seen []string
	e.OnTripChanged(func(tr tripdomain.TripRequest) {
		seen = append(seen, tr.ID+":"+tr.Status)
	})

	t1 := testTrip("t1", "", 500, model.TripStatusPending, engineBase)
	t2 := testTrip("t2", "", 300, model.TripStatusPending, engineBase.Add(time.Minute))
	e.SetTripRequests(ctx, []tripdomain.TripRequest{t1, t2})

	if len(seen) != 2 {
		t.Fatalf("observer saw %d trips on first delivery, want 2", len(seen))
	}

	// повторная доставка того же набора ничего не эмитит
	seen = nil
	e.SetTripRequests(ctx, []tripdomain.TripRequest{t1, t2})
	if len(seen) != 0 {
		t.Fatalf("redelivery emitted %d trips, want 0", len(seen))
	}

	// меняется только t1
	t1.Status = model.TripStatusConfirmed
	t1.UpdatedAt = engineBase.Add(2 * time.Minute)
	e.SetTripRequests(ctx, []tripdomain.TripRequest{t1, t2})
	if len(seen) != 1 || seen[0] != "t1:confirmed" {
		t.Fatalf("changed-trip emission = %v, want [t1:confirmed]", seen)
	}
}

func TestEngine_StartSubscribesBothSources(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	accSrc := &fakeAccountSource{}
	tripSrc := &fakeTripSource{}

	unsub, err := e.Start(ctx, accSrc, tripSrc)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	accSrc.publish([]account.Account{testAccount("u1", "a@x.com")})
	tripSrc.publish([]tripdomain.TripRequest{
		testTrip("t1", "u1", 1000, model.TripStatusCompleted, engineBase.Add(time.Hour)),
	})

	snap, ok := e.Snapshot()
	if !ok {
		t.Fatal("no snapshot after both sources published")
	}
	if snap.Global.TotalRevenue != 1000 {
		t.Errorf("total revenue = %v, want 1000", snap.Global.TotalRevenue)
	}

	unsub()
	if !accSrc.unsubscribed || !tripSrc.unsubscribed {
		t.Error("Start unsubscribe did not cancel both upstream subscriptions")
	}
}

func TestEngine_SnapshotIsReplacedNotMutated(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	e.SetAccounts(ctx, []account.Account{testAccount("u1", "a@x.com")})
	first, _ := e.Snapshot()

	e.SetAccounts(ctx, []account.Account{testAccount("u1", "a@x.com"), testAccount("u2", "b@x.com")})
	second, _ := e.Snapshot()

	if first.Global.TotalCustomers != 1 {
		t.Errorf("earlier snapshot mutated: total customers = %d, want 1", first.Global.TotalCustomers)
	}
	if second.Global.TotalCustomers != 2 {
		t.Errorf("new snapshot total customers = %d, want 2", second.Global.TotalCustomers)
	}
}

type fakeAccountSource struct {
	onChange     func([]account.Account)
	unsubscribed bool
}

func (f *fakeAccountSource) SubscribeAccounts(_ context.Context, onChange func([]account.Account)) (out.Unsubscribe, error) {
	f.onChange = onChange
	return func() { f.unsubscribed = true }, nil
}

func (f *fakeAccountSource) publish(set []account.Account) {
	if f.onChange != nil && !f.unsubscribed {
		f.onChange(set)
	}
}

type fakeTripSource struct {
	onChange     func([]tripdomain.TripRequest)
	unsubscribed bool
}

func (f *fakeTripSource) SubscribeTripRequests(_ context.Context, onChange func([]tripdomain.TripRequest)) (out.Unsubscribe, error) {
	f.onChange = onChange
	return func() { f.unsubscribed = true }, nil
}

func (f *fakeTripSource) publish(set []tripdomain.TripRequest) {
	if f.onChange != nil && !f.unsubscribed {
		f.onChange(set)
	}
}
