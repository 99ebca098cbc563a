package domain

import (
	"reflect"
	"testing"
	"time"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/account"
	tripdomain "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

var baseTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func acc(id, email, phone, name, role string, created time.Time) account.Account {
	return account.Account{
		ID:          id,
		Email:       email,
		Phone:       phone,
		DisplayName: name,
		Role:        role,
		Status:      model.AccountStatusActive,
		CreatedAt:   created,
	}
}

func trip(id, accountID, email, phone string, cost float64, status string, created time.Time) tripdomain.TripRequest {
	return tripdomain.TripRequest{
		ID:              id,
		AccountID:       accountID,
		Email:           email,
		Phone:           phone,
		PickupLocation:  "Old Town",
		DropoffLocation: "Airport",
		TotalCost:       cost,
		Status:          status,
		CreatedAt:       created,
	}
}

// Сценарий: аккаунт + авторизованная завершенная заявка = один клиент
// с ключом account id.
func TestResolve_RegisteredAccountWithTrip(t *testing.T) {
	accounts := []account.Account{
		acc("u1", "a@x.com", "", "", model.RoleCustomer, baseTime),
	}
	trips := []tripdomain.TripRequest{
		trip("t1", "u1", "", "", 1000, model.TripStatusCompleted, baseTime.Add(time.Hour)),
	}

	res := Resolve(accounts, trips)

	if res.Directory.Len() != 1 {
		t.Fatalf("directory has %d customers, want 1", res.Directory.Len())
	}
	c, ok := res.Directory.Get("u1")
	if !ok {
		t.Fatal("customer u1 not found")
	}
	if c.Email != "a@x.com" {
		t.Errorf("email = %q, want a@x.com", c.Email)
	}
	if c.SourceTag != model.SourceMerged {
		t.Errorf("sourceTag = %q, want merged", c.SourceTag)
	}
	if res.Attribution["t1"] != "u1" {
		t.Errorf("t1 attributed to %q, want u1", res.Attribution["t1"])
	}

	stats, _ := Aggregate(res.Directory, res.Attribution, trips)
	want := CustomerStats{TripCount: 1, TotalSpent: 1000, CompletedTripCount: 1}
	if stats["u1"] != want {
		t.Errorf("stats = %+v, want %+v", stats["u1"], want)
	}
}

// Сценарий: две гостевые заявки с одним email сливаются в одного гостя;
// cancelled-заявка не попадает в totalSpent.
func TestResolve_GuestTripsMergeByEmail(t *testing.T) {
	trips := []tripdomain.TripRequest{
		trip("t1", "", "b@x.com", "", 500, model.TripStatusPending, baseTime),
		trip("t2", "", "b@x.com", "+6680000000", 700, model.TripStatusCancelled, baseTime.Add(time.Minute)),
	}

	res := Resolve(nil, trips)

	if res.Directory.Len() != 1 {
		t.Fatalf("directory has %d customers, want 1", res.Directory.Len())
	}
	c, ok := res.Directory.Get("b@x.com")
	if !ok {
		t.Fatalf("customer b@x.com not found, keys: %v", res.Directory.Keys())
	}
	if c.SourceTag != model.SourceGuest {
		t.Errorf("sourceTag = %q, want guest", c.SourceTag)
	}
	if c.Phone != "+6680000000" {
		t.Errorf("phone = %q, want filled from t2", c.Phone)
	}

	stats, _ := Aggregate(res.Directory, res.Attribution, trips)
	want := CustomerStats{TripCount: 2, TotalSpent: 500, CompletedTripCount: 0}
	if stats["b@x.com"] != want {
		t.Errorf("stats = %+v, want %+v", stats["b@x.com"], want)
	}
}

// Идемпотентность и детерминизм: повторный прогон на тех же входах дает
// идентичный каталог, атрибуцию и порядок ключей.
func TestResolve_Idempotent(t *testing.T) {
	accounts := []account.Account{
		acc("u1", "a@x.com", "+661", "Anna", model.RoleCustomer, baseTime),
		acc("u2", "", "+662", "Boh", model.RoleCustomer, baseTime.Add(time.Minute)),
	}
	trips := []tripdomain.TripRequest{
		trip("t1", "u1", "", "", 100, model.TripStatusCompleted, baseTime.Add(time.Hour)),
		trip("t2", "", "c@x.com", "", 200, model.TripStatusPending, baseTime.Add(2*time.Hour)),
		trip("t3", "", "", "+662", 300, model.TripStatusConfirmed, baseTime.Add(3*time.Hour)),
	}

	first := Resolve(accounts, trips)
	second := Resolve(accounts, trips)

	if !reflect.DeepEqual(first.Directory.Keys(), second.Directory.Keys()) {
		t.Fatalf("key order differs: %v vs %v", first.Directory.Keys(), second.Directory.Keys())
	}
	if !reflect.DeepEqual(first.Directory.Customers(), second.Directory.Customers()) {
		t.Fatal("customers differ between runs")
	}
	if !reflect.DeepEqual(first.Attribution, second.Attribution) {
		t.Fatal("attribution differs between runs")
	}
}

// Детерминизм не зависит от порядка входных срезов: Resolve сортирует сам.
func TestResolve_InputOrderIrrelevant(t *testing.T) {
	accounts := []account.Account{
		acc("u1", "a@x.com", "", "", model.RoleCustomer, baseTime),
		acc("u2", "b@x.com", "", "", model.RoleCustomer, baseTime.Add(time.Minute)),
	}
	trips := []tripdomain.TripRequest{
		trip("t1", "", "g@x.com", "", 10, model.TripStatusPending, baseTime.Add(time.Hour)),
		trip("t2", "", "g@x.com", "+669", 20, model.TripStatusPending, baseTime.Add(2*time.Hour)),
	}

	straight := Resolve(accounts, trips)

	revAccounts := []account.Account{accounts[1], accounts[0]}
	revTrips := []tripdomain.TripRequest{trips[1], trips[0]}
	reversed := Resolve(revAccounts, revTrips)

	if !reflect.DeepEqual(straight.Directory.Customers(), reversed.Directory.Customers()) {
		t.Fatal("shuffled input produced a different directory")
	}
	if !reflect.DeepEqual(straight.Attribution, reversed.Attribution) {
		t.Fatal("shuffled input produced a different attribution")
	}
}

// Консервация: каждая корректная заявка относится ровно к одному ключу,
// и этот ключ присутствует в каталоге.
func TestResolve_Conservation(t *testing.T) {
	accounts := []account.Account{
		acc("u1", "a@x.com", "", "", model.RoleCustomer, baseTime),
	}
	trips := []tripdomain.TripRequest{
		trip("t1", "u1", "", "", 1, model.TripStatusPending, baseTime.Add(time.Minute)),
		trip("t2", "", "b@x.com", "", 2, model.TripStatusPending, baseTime.Add(2*time.Minute)),
		trip("t3", "", "", "+663", 3, model.TripStatusPending, baseTime.Add(3*time.Minute)),
		trip("t4", "", "", "", 4, model.TripStatusPending, baseTime.Add(4*time.Minute)), // только synthetic key
	}

	res := Resolve(accounts, trips)

	for _, tr := range trips {
		key, ok := res.Attribution[tr.ID]
		if !ok {
			t.Fatalf("trip %s is orphaned", tr.ID)
		}
		if _, ok := res.Directory.Get(key); !ok {
			t.Fatalf("trip %s attributed to missing customer %q", tr.ID, key)
		}
	}
	if res.Attribution["t4"] != "trip:t4" {
		t.Errorf("t4 key = %q, want trip:t4", res.Attribution["t4"])
	}
}

// Заявка, чей email и phone указывают на разных клиентов: побеждает email,
// конфликт всплывает диагностикой AmbiguousMatch.
func TestResolve_AmbiguousMatchEmailWins(t *testing.T) {
	accounts := []account.Account{
		acc("u1", "a@x.com", "+661", "", model.RoleCustomer, baseTime),
		acc("u2", "b@x.com", "+662", "", model.RoleCustomer, baseTime.Add(time.Minute)),
	}
	trips := []tripdomain.TripRequest{
		trip("t1", "", "b@x.com", "+661", 50, model.TripStatusPending, baseTime.Add(time.Hour)),
	}

	res := Resolve(accounts, trips)

	if got := res.Attribution["t1"]; got != "u2" {
		t.Errorf("t1 attributed to %q, want u2 (email match)", got)
	}

	var found bool
	for _, d := range res.Diagnostics {
		if d.Kind == DiagAmbiguousMatch && d.RecordID == "t1" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected AmbiguousMatch diagnostic for t1, got %+v", res.Diagnostics)
	}
}

// Монотонность sourceTag: merged никогда не откатывается.
func TestResolve_SourceTagMonotonic(t *testing.T) {
	accounts := []account.Account{
		acc("u1", "a@x.com", "", "", model.RoleCustomer, baseTime),
	}
	trips := []tripdomain.TripRequest{
		trip("t1", "u1", "", "+661", 10, model.TripStatusCompleted, baseTime.Add(time.Hour)),
		trip("t2", "u1", "", "", 20, model.TripStatusPending, baseTime.Add(2*time.Hour)),
	}

	res := Resolve(accounts, trips)
	c, _ := res.Directory.Get("u1")
	if c.SourceTag != model.SourceMerged {
		t.Fatalf("sourceTag = %q, want merged", c.SourceTag)
	}

	// заявка с accountId, влившаяся в гостя, тоже дает merged
	guestTrips := []tripdomain.TripRequest{
		trip("g1", "", "g@x.com", "", 10, model.TripStatusPending, baseTime),
		trip("g2", "ghost", "g@x.com", "", 20, model.TripStatusPending, baseTime.Add(time.Minute)),
	}
	guestRes := Resolve(nil, guestTrips)
	gc, _ := guestRes.Directory.Get("g@x.com")
	if gc.SourceTag != model.SourceMerged {
		t.Errorf("guest merged with account-claimed trip: sourceTag = %q, want merged", gc.SourceTag)
	}
}

// Fill-only-if-empty: непустые поля клиента не перезаписываются заявкой.
func TestResolve_MergeNeverOverwrites(t *testing.T) {
	accounts := []account.Account{
		acc("u1", "a@x.com", "", "Anna", model.RoleCustomer, baseTime),
	}
	trips := []tripdomain.TripRequest{
		func() tripdomain.TripRequest {
			tr := trip("t1", "u1", "other@x.com", "+669", 10, model.TripStatusPending, baseTime.Add(time.Hour))
			tr.FirstName = "Other"
			return tr
		}(),
	}

	res := Resolve(accounts, trips)
	c, _ := res.Directory.Get("u1")

	if c.Email != "a@x.com" {
		t.Errorf("email overwritten: %q", c.Email)
	}
	if c.Phone != "+669" {
		t.Errorf("empty phone not filled: %q", c.Phone)
	}
	if c.DisplayName != "Anna" {
		t.Errorf("display name overwritten: %q", c.DisplayName)
	}
	if !c.LastActivityAt.Equal(baseTime.Add(time.Hour)) {
		t.Errorf("lastActivityAt = %v, want bumped to trip time", c.LastActivityAt)
	}
}

// Служебные аккаунты не попадают в каталог.
func TestResolve_StaffExcluded(t *testing.T) {
	accounts := []account.Account{
		acc("a1", "admin@x.com", "", "", model.RoleAdmin, baseTime),
		acc("o1", "ops@x.com", "", "", model.RoleOperator, baseTime),
		acc("u1", "u@x.com", "", "", model.RoleCustomer, baseTime),
	}

	res := Resolve(accounts, nil)

	if res.Directory.Len() != 1 {
		t.Fatalf("directory has %d customers, want 1 (staff excluded)", res.Directory.Len())
	}
	if _, ok := res.Directory.Get("u1"); !ok {
		t.Error("customer u1 missing")
	}
}

// Битая заявка пропускается с диагностикой и не ломает остальной пересчет.
func TestResolve_MalformedSkipped(t *testing.T) {
	bad := tripdomain.TripRequest{
		ID:        "bad1",
		TotalCost: 10,
		Status:    model.TripStatusPending,
		CreatedAt: baseTime,
		// нет pickup/dropoff
	}
	good := trip("t1", "", "ok@x.com", "", 10, model.TripStatusPending, baseTime.Add(time.Minute))

	res := Resolve(nil, []tripdomain.TripRequest{bad, good})

	if _, ok := res.Attribution["bad1"]; ok {
		t.Error("malformed trip must not be attributed")
	}
	if _, ok := res.Attribution["t1"]; !ok {
		t.Error("well-formed trip lost because of a malformed sibling")
	}

	var found bool
	for _, d := range res.Diagnostics {
		if d.Kind == DiagMalformedRecord && d.RecordID == "bad1" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected MalformedRecord diagnostic, got %+v", res.Diagnostics)
	}
}

// Tie-break при равных createdAt — по возрастанию id.
func TestResolve_TieBreakByID(t *testing.T) {
	trips := []tripdomain.TripRequest{
		trip("t2", "", "same@x.com", "", 10, model.TripStatusPending, baseTime),
		trip("t1", "", "same@x.com", "", 20, model.TripStatusPending, baseTime),
	}

	res := Resolve(nil, trips)
	c, ok := res.Directory.Get("same@x.com")
	if !ok {
		t.Fatal("customer same@x.com not found")
	}
	// t1 обрабатывается первым, значит firstSeenAt берется из t1
	if !c.FirstSeenAt.Equal(baseTime) {
		t.Errorf("firstSeenAt = %v, want %v", c.FirstSeenAt, baseTime)
	}
	if res.Directory.Len() != 1 {
		t.Errorf("directory has %d customers, want 1", res.Directory.Len())
	}
}
