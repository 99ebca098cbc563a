package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

func TestRequestTrip_Authenticated(t *testing.T) {
	repo := newFakeTripRepo()
	pub := &fakeTripPublisher{}
	uc := NewRequestTripService(repo, pub, fakeTripNotifier{}, testLog)

	got, err := uc.Execute(context.Background(), in.RequestTripInput{
		AccountID:       "u1",
		PickupLocation:  "Old Town",
		DropoffLocation: "Airport",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Status != model.TripStatusAwaitingPayment {
		t.Errorf("status = %q, want awaiting_payment", got.Status)
	}
	if got.TotalCost != baseFare {
		t.Errorf("fare without coordinates = %v, want base %v", got.TotalCost, baseFare)
	}

	stored, err := repo.FindByID(context.Background(), got.TripID)
	if err != nil {
		t.Fatalf("trip was not persisted: %v", err)
	}
	if stored.AccountID != "u1" {
		t.Errorf("account id = %q, want u1", stored.AccountID)
	}
	if len(pub.events) != 1 || pub.events[0] != model.EventTripRequested {
		t.Errorf("events = %v, want [TRIP_REQUESTED]", pub.events)
	}
}

func TestRequestTrip_GuestNeedsContact(t *testing.T) {
	uc := NewRequestTripService(newFakeTripRepo(), &fakeTripPublisher{}, fakeTripNotifier{}, testLog)

	_, err := uc.Execute(context.Background(), in.RequestTripInput{
		PickupLocation:  "Old Town",
		DropoffLocation: "Airport",
	})
	if !errors.Is(err, domain.ErrMissingContact) {
		t.Errorf("err = %v, want ErrMissingContact", err)
	}

	got, err := uc.Execute(context.Background(), in.RequestTripInput{
		Phone:           "081-234-5678",
		FirstName:       "Nok",
		PickupLocation:  "Old Town",
		DropoffLocation: "Airport",
	})
	if err != nil {
		t.Fatalf("guest trip with phone: %v", err)
	}
	if got.Status != model.TripStatusAwaitingPayment {
		t.Errorf("status = %q, want awaiting_payment", got.Status)
	}
}

func TestRequestTrip_MissingLocations(t *testing.T) {
	uc := NewRequestTripService(newFakeTripRepo(), &fakeTripPublisher{}, fakeTripNotifier{}, testLog)

	_, err := uc.Execute(context.Background(), in.RequestTripInput{
		AccountID:      "u1",
		PickupLocation: "Old Town",
	})
	if !errors.Is(err, domain.ErrMissingLocation) {
		t.Errorf("err = %v, want ErrMissingLocation", err)
	}
}

func TestRequestTrip_FareFromDistance(t *testing.T) {
	// Чиангмай: старый город → аэропорт, ~3 км
	pickupLat, pickupLng := 18.7883, 98.9853
	dropLat, dropLng := 18.7678, 98.9625

	uc := NewRequestTripService(newFakeTripRepo(), &fakeTripPublisher{}, fakeTripNotifier{}, testLog)
	got, err := uc.Execute(context.Background(), in.RequestTripInput{
		AccountID:       "u1",
		PickupLocation:  "Old Town",
		DropoffLocation: "Airport",
		PickupLat:       &pickupLat,
		PickupLng:       &pickupLng,
		DropoffLat:      &dropLat,
		DropoffLng:      &dropLng,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.TotalCost <= baseFare {
		t.Errorf("fare = %v, want above base %v for a 3km trip", got.TotalCost, baseFare)
	}
	if got.TotalCost > baseFare+10*farePerKm {
		t.Errorf("fare = %v, implausibly high for a short hop", got.TotalCost)
	}
}
