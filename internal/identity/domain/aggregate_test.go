package domain

import (
	"testing"
	"time"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/account"
	tripdomain "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

func TestAggregate_StatsAccuracy(t *testing.T) {
	accounts := []account.Account{
		acc("u1", "a@x.com", "", "", model.RoleCustomer, baseTime),
	}
	trips := []tripdomain.TripRequest{
		trip("t1", "u1", "", "", 100, model.TripStatusCompleted, baseTime.Add(1*time.Minute)),
		trip("t2", "u1", "", "", 250, model.TripStatusCancelled, baseTime.Add(2*time.Minute)),
		trip("t3", "u1", "", "", 400, model.TripStatusInProgress, baseTime.Add(3*time.Minute)),
		trip("t4", "", "g@x.com", "", 50, model.TripStatusCompleted, baseTime.Add(4*time.Minute)),
	}

	res := Resolve(accounts, trips)
	stats, global := Aggregate(res.Directory, res.Attribution, trips)

	wantU1 := CustomerStats{TripCount: 3, TotalSpent: 500, CompletedTripCount: 1}
	if stats["u1"] != wantU1 {
		t.Errorf("u1 stats = %+v, want %+v", stats["u1"], wantU1)
	}
	wantGuest := CustomerStats{TripCount: 1, TotalSpent: 50, CompletedTripCount: 1}
	if stats["g@x.com"] != wantGuest {
		t.Errorf("guest stats = %+v, want %+v", stats["g@x.com"], wantGuest)
	}

	if global.TotalCustomers != 2 {
		t.Errorf("TotalCustomers = %d, want 2", global.TotalCustomers)
	}
	if global.RegisteredCount != 1 || global.GuestCount != 1 {
		t.Errorf("split = %d/%d, want 1 registered+merged / 1 guest",
			global.RegisteredCount, global.GuestCount)
	}
	if global.TotalRevenue != 550 {
		t.Errorf("TotalRevenue = %v, want 550", global.TotalRevenue)
	}
	if global.TotalCompletedTrips != 2 {
		t.Errorf("TotalCompletedTrips = %d, want 2", global.TotalCompletedTrips)
	}
	if global.ActiveTrips != 1 {
		t.Errorf("ActiveTrips = %d, want 1 (only t3)", global.ActiveTrips)
	}
}

// Клиент без заявок присутствует в статистике с нулями.
func TestAggregate_ZeroStatsForIdleCustomer(t *testing.T) {
	accounts := []account.Account{
		acc("u1", "a@x.com", "", "", model.RoleCustomer, baseTime),
	}

	res := Resolve(accounts, nil)
	stats, global := Aggregate(res.Directory, res.Attribution, nil)

	s, ok := stats["u1"]
	if !ok {
		t.Fatal("idle customer missing from stats")
	}
	if s != (CustomerStats{}) {
		t.Errorf("idle customer stats = %+v, want zeros", s)
	}
	if global.TotalCustomers != 1 || global.TotalRevenue != 0 {
		t.Errorf("global = %+v, want one customer with zero revenue", global)
	}
}

// Повторный пересчет на тех же входах дает идентичную статистику
// (wholesale recompute, без дрейфа).
func TestAggregate_RecomputeStable(t *testing.T) {
	trips := []tripdomain.TripRequest{
		trip("t1", "", "g@x.com", "", 75, model.TripStatusCompleted, baseTime),
	}

	res := Resolve(nil, trips)
	first, firstGlobal := Aggregate(res.Directory, res.Attribution, trips)
	second, secondGlobal := Aggregate(res.Directory, res.Attribution, trips)

	if first["g@x.com"] != second["g@x.com"] {
		t.Error("per-customer stats drifted between recomputes")
	}
	if firstGlobal != secondGlobal {
		t.Error("global stats drifted between recomputes")
	}
}
