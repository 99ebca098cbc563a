package domain

import (
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	tripdomain "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

// CustomerStats — производная статистика по одному клиенту.
// Пересчитывается целиком, никогда не патчится инкрементально —
// иначе накапливается дрейф относительно каталога.
type CustomerStats struct {
	TripCount          int     `json:"trip_count"`
	TotalSpent         float64 `json:"total_spent"` // без cancelled-заявок
	CompletedTripCount int     `json:"completed_trip_count"`
}

// GlobalStats — сводка по всему портфелю.
type GlobalStats struct {
	TotalCustomers      int     `json:"total_customers"`
	RegisteredCount     int     `json:"registered_count"` // registered + merged
	GuestCount          int     `json:"guest_count"`
	TotalRevenue        float64 `json:"total_revenue"`
	TotalCompletedTrips int     `json:"total_completed_trips"`
	ActiveTrips         int     `json:"active_trips"`
}

// Aggregate пересчитывает статистику по каталогу и полному набору заявок.
// Каждая заявка относится к ключу, который ей назначил Resolve
// (attribution); заявки без атрибуции (битые) пропускаются.
func Aggregate(dir *Directory, attribution map[string]string, trips []tripdomain.TripRequest) (map[string]CustomerStats, GlobalStats) {
	perCustomer := make(map[string]CustomerStats, dir.Len())
	for _, k := range dir.Keys() {
		perCustomer[k] = CustomerStats{}
	}

	var global GlobalStats

	for i := range trips {
		t := &trips[i]
		key, ok := attribution[t.ID]
		if !ok {
			continue
		}

		stats := perCustomer[key]
		stats.TripCount++
		if t.Status != model.TripStatusCancelled {
			stats.TotalSpent += t.TotalCost
		}
		if t.Status == model.TripStatusCompleted {
			stats.CompletedTripCount++
		}
		perCustomer[key] = stats

		if tripdomain.IsActive(t.Status) {
			global.ActiveTrips++
		}
	}

	global.TotalCustomers = dir.Len()
	for _, c := range dir.Customers() {
		switch c.SourceTag {
		case model.SourceRegistered, model.SourceMerged:
			global.RegisteredCount++
		case model.SourceGuest:
			global.GuestCount++
		}
		s := perCustomer[c.Key]
		global.TotalRevenue += s.TotalSpent
		global.TotalCompletedTrips += s.CompletedTripCount
	}

	return perCustomer, global
}
