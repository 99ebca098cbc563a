package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/application/ports/out"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/domain"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	tripout "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/out"
	tripdomain "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

var testLog = logger.NewLogger("driver-service-test")

type fakeDriverRepo struct {
	mu      sync.Mutex
	drivers map[string]*domain.Driver // по id
}

func newFakeDriverRepo(drivers ...*domain.Driver) *fakeDriverRepo {
	r := &fakeDriverRepo{drivers: make(map[string]*domain.Driver)}
	for _, d := range drivers {
		cp := *d
		r.drivers[d.ID] = &cp
	}
	return r
}

func (r *fakeDriverRepo) Create(_ context.Context, d *domain.Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.drivers[d.ID] = &cp
	return nil
}

func (r *fakeDriverRepo) FindByID(_ context.Context, id string) (*domain.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drivers[id]
	if !ok {
		return nil, domain.ErrDriverNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDriverRepo) FindByAccountID(_ context.Context, accountID string) (*domain.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.drivers {
		if d.AccountID == accountID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, domain.ErrDriverNotFound
}

func (r *fakeDriverRepo) UpdateStatus(_ context.Context, driverID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drivers[driverID]
	if !ok {
		return domain.ErrDriverNotFound
	}
	d.Status = status
	return nil
}

func (r *fakeDriverRepo) RecordCompletedTrip(_ context.Context, driverID string, earnings float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drivers[driverID]
	if !ok {
		return domain.ErrDriverNotFound
	}
	d.TotalTrips++
	d.TotalEarnings += earnings
	d.Status = model.DriverStatusAvailable
	return nil
}

type fakeTripStore struct {
	mu    sync.Mutex
	trips map[string]*tripdomain.TripRequest
}

func newFakeTripStore(trips ...*tripdomain.TripRequest) *fakeTripStore {
	r := &fakeTripStore{trips: make(map[string]*tripdomain.TripRequest)}
	for _, t := range trips {
		cp := *t
		r.trips[t.ID] = &cp
	}
	return r
}

func (r *fakeTripStore) Create(_ context.Context, t *tripdomain.TripRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.trips[t.ID] = &cp
	return nil
}

func (r *fakeTripStore) FindByID(_ context.Context, id string) (*tripdomain.TripRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[id]
	if !ok {
		return nil, tripdomain.ErrTripNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTripStore) FindAll(_ context.Context) ([]tripdomain.TripRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]tripdomain.TripRequest, 0, len(r.trips))
	for _, t := range r.trips {
		all = append(all, *t)
	}
	return all, nil
}

func (r *fakeTripStore) ApplyStatusTransition(_ context.Context, tripID, from, to string, upd tripout.StatusUpdate) (*tripdomain.TripRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[tripID]
	if !ok {
		return nil, tripdomain.ErrTripNotFound
	}
	if t.Status != from {
		return nil, &tripdomain.StatusConflictError{TripID: tripID, Expected: from, Actual: t.Status}
	}
	t.Status = to
	t.UpdatedAt = time.Now().UTC()
	if upd.ClearDriver {
		t.DriverID = nil
		t.DriverName = nil
	}
	cp := *t
	return &cp, nil
}

type nopTripPublisher struct{}

func (nopTripPublisher) PublishTripEvent(context.Context, string, string, tripout.TripEventData) error {
	return nil
}

type fakeResponsePublisher struct {
	responses []out.DriverResponseData
}

func (p *fakeResponsePublisher) PublishDriverResponse(_ context.Context, data out.DriverResponseData) error {
	p.responses = append(p.responses, data)
	return nil
}

func testDriver(status string) *domain.Driver {
	return &domain.Driver{
		ID:          "d1",
		AccountID:   "acc-d1",
		DisplayName: "Somchai",
		Status:      status,
	}
}

func assignedTrip(driverID string) *tripdomain.TripRequest {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return &tripdomain.TripRequest{
		ID:              "t1",
		AccountID:       "u1",
		PickupLocation:  "Old Town",
		DropoffLocation: "Airport",
		TotalCost:       350,
		Status:          model.TripStatusDriverAssigned,
		DriverID:        &driverID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestRegister_CreatesProfileOffline(t *testing.T) {
	repo := newFakeDriverRepo()
	uc := NewRegisterService(repo, testLog)

	got, err := uc.Execute(context.Background(), in.RegisterInput{
		AccountID: "acc-d1", DisplayName: "Somchai", VehiclePlate: "กท-1234",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Status != model.DriverStatusOffline {
		t.Errorf("status = %q, want OFFLINE", got.Status)
	}

	d, err := repo.FindByAccountID(context.Background(), "acc-d1")
	if err != nil {
		t.Fatalf("FindByAccountID: %v", err)
	}
	if d.DisplayName != "Somchai" || d.VehiclePlate != "กท-1234" {
		t.Errorf("profile = %+v, want name/plate persisted", d)
	}
}

func TestRegister_Idempotent(t *testing.T) {
	repo := newFakeDriverRepo(testDriver(model.DriverStatusAvailable))
	uc := NewRegisterService(repo, testLog)

	got, err := uc.Execute(context.Background(), in.RegisterInput{
		AccountID: "acc-d1", DisplayName: "Другое имя",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.DriverID != "d1" {
		t.Errorf("driver id = %q, want existing d1", got.DriverID)
	}
	if got.Status != model.DriverStatusAvailable {
		t.Errorf("status = %q, want existing AVAILABLE", got.Status)
	}
}

func TestRegister_RequiresDisplayName(t *testing.T) {
	uc := NewRegisterService(newFakeDriverRepo(), testLog)

	_, err := uc.Execute(context.Background(), in.RegisterInput{AccountID: "acc-d1"})
	if !errors.Is(err, ErrMissingDisplayName) {
		t.Errorf("err = %v, want ErrMissingDisplayName", err)
	}
}

func TestSetAvailability_Toggle(t *testing.T) {
	repo := newFakeDriverRepo(testDriver(model.DriverStatusOffline))
	uc := NewSetAvailabilityService(repo, testLog)

	got, err := uc.Execute(context.Background(), in.SetAvailabilityInput{AccountID: "acc-d1", Online: true})
	if err != nil {
		t.Fatalf("go online: %v", err)
	}
	if got.Status != model.DriverStatusAvailable {
		t.Errorf("status = %q, want AVAILABLE", got.Status)
	}

	got, err = uc.Execute(context.Background(), in.SetAvailabilityInput{AccountID: "acc-d1", Online: false})
	if err != nil {
		t.Fatalf("go offline: %v", err)
	}
	if got.Status != model.DriverStatusOffline {
		t.Errorf("status = %q, want OFFLINE", got.Status)
	}
}

func TestSetAvailability_BusyDriverCannotLeave(t *testing.T) {
	repo := newFakeDriverRepo(testDriver(model.DriverStatusBusy))
	uc := NewSetAvailabilityService(repo, testLog)

	_, err := uc.Execute(context.Background(), in.SetAvailabilityInput{AccountID: "acc-d1", Online: false})
	if !errors.Is(err, domain.ErrDriverBusy) {
		t.Errorf("err = %v, want ErrDriverBusy", err)
	}
}

func TestRespond_AcceptMarksBusyAndPublishes(t *testing.T) {
	drivers := newFakeDriverRepo(testDriver(model.DriverStatusAvailable))
	trips := newFakeTripStore(assignedTrip("d1"))
	pub := &fakeResponsePublisher{}
	uc := NewRespondService(drivers, trips, pub, testLog)

	got, err := uc.Execute(context.Background(), in.RespondInput{
		AccountID: "acc-d1", TripID: "t1", Accepted: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.DriverStatus != model.DriverStatusBusy {
		t.Errorf("driver status = %q, want BUSY", got.DriverStatus)
	}
	if len(pub.responses) != 1 || !pub.responses[0].Accepted {
		t.Errorf("responses = %+v, want one accepted", pub.responses)
	}
}

func TestRespond_RejectKeepsDriverAvailable(t *testing.T) {
	drivers := newFakeDriverRepo(testDriver(model.DriverStatusAvailable))
	trips := newFakeTripStore(assignedTrip("d1"))
	pub := &fakeResponsePublisher{}
	uc := NewRespondService(drivers, trips, pub, testLog)

	got, err := uc.Execute(context.Background(), in.RespondInput{
		AccountID: "acc-d1", TripID: "t1", Accepted: false,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.DriverStatus != model.DriverStatusAvailable {
		t.Errorf("driver status = %q, want AVAILABLE", got.DriverStatus)
	}
	if len(pub.responses) != 1 || pub.responses[0].Accepted {
		t.Errorf("responses = %+v, want one rejected", pub.responses)
	}
}

func TestRespond_ForeignAssignmentRejected(t *testing.T) {
	drivers := newFakeDriverRepo(testDriver(model.DriverStatusAvailable))
	trips := newFakeTripStore(assignedTrip("d2"))
	uc := NewRespondService(drivers, trips, &fakeResponsePublisher{}, testLog)

	_, err := uc.Execute(context.Background(), in.RespondInput{
		AccountID: "acc-d1", TripID: "t1", Accepted: true,
	})
	if !errors.Is(err, tripdomain.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestJobFlow_StartArriveComplete(t *testing.T) {
	drivers := newFakeDriverRepo(testDriver(model.DriverStatusBusy))
	trips := newFakeTripStore(assignedTrip("d1"))

	start := NewStartTripService(drivers, trips, nopTripPublisher{}, testLog)
	arrive := NewMarkArrivalService(drivers, trips, nopTripPublisher{}, testLog)
	complete := NewCompleteTripService(drivers, trips, nopTripPublisher{}, testLog)
	ctx := context.Background()
	input := in.JobTransitionInput{AccountID: "acc-d1", TripID: "t1"}

	got, err := start.Execute(ctx, input)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if got.Status != model.TripStatusDriverEnRoute {
		t.Errorf("after start status = %q, want driver_en_route", got.Status)
	}

	got, err = arrive.Execute(ctx, input)
	if err != nil {
		t.Fatalf("arrive: %v", err)
	}
	if got.Status != model.TripStatusInProgress {
		t.Errorf("after arrive status = %q, want in_progress", got.Status)
	}

	got, err = complete.Execute(ctx, input)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got.Status != model.TripStatusCompleted {
		t.Errorf("after complete status = %q, want completed", got.Status)
	}

	d, _ := drivers.FindByID(ctx, "d1")
	if d.TotalTrips != 1 || d.TotalEarnings != 350 {
		t.Errorf("driver stats = %d trips / %v earnings, want 1 / 350", d.TotalTrips, d.TotalEarnings)
	}
	if d.Status != model.DriverStatusAvailable {
		t.Errorf("driver status = %q, want AVAILABLE after completion", d.Status)
	}
}

func TestJobFlow_CannotSkipStages(t *testing.T) {
	drivers := newFakeDriverRepo(testDriver(model.DriverStatusBusy))
	trips := newFakeTripStore(assignedTrip("d1"))
	arrive := NewMarkArrivalService(drivers, trips, nopTripPublisher{}, testLog)

	// Заявка еще в driver_assigned, подача зафиксирована быть не может
	_, err := arrive.Execute(context.Background(), in.JobTransitionInput{AccountID: "acc-d1", TripID: "t1"})
	var conflict *tripdomain.StatusConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want StatusConflictError", err)
	}
	if conflict.Actual != model.TripStatusDriverAssigned {
		t.Errorf("actual = %q, want driver_assigned", conflict.Actual)
	}
}
