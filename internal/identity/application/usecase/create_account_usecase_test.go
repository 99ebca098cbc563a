package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/account"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	tripdomain "github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

type fakeAccountRepo struct {
	created []account.Account
	byEmail map[string]bool
}

func (f *fakeAccountRepo) Create(_ context.Context, acc *account.Account) error {
	if f.byEmail == nil {
		f.byEmail = map[string]bool{}
	}
	if acc.Email != "" && f.byEmail[acc.Email] {
		return account.ErrAccountAlreadyExists
	}
	f.byEmail[acc.Email] = true
	f.created = append(f.created, *acc)
	return nil
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id string) (*account.Account, error) {
	for i := range f.created {
		if f.created[i].ID == id {
			a := f.created[i]
			return &a, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (f *fakeAccountRepo) List(_ context.Context, _ account.ListFilters) ([]account.Account, int, error) {
	return f.created, len(f.created), nil
}

func (f *fakeAccountRepo) FindAll(_ context.Context) ([]account.Account, error) {
	return f.created, nil
}

type fakePublisher struct {
	events []any
	fail   bool
}

func (f *fakePublisher) PublishAccountCreated(_ context.Context, event any) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.events = append(f.events, event)
	return nil
}

func TestCreateAccount_HashesAndNormalizes(t *testing.T) {
	repo := &fakeAccountRepo{}
	pub := &fakePublisher{}
	uc := NewCreateAccountUseCase(repo, pub, logger.NewLogger("identity-service-test"))

	out, err := uc.Execute(context.Background(), in.CreateAccountInput{
		Email:    "  Ana@Example.COM ",
		Phone:    "+66 (81) 234-5678",
		Password: "correcthorse",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if out.Email != "ana@example.com" {
		t.Errorf("email = %q, want normalized ana@example.com", out.Email)
	}
	if out.Role != model.RoleCustomer {
		t.Errorf("default role = %q, want CUSTOMER", out.Role)
	}

	if len(repo.created) != 1 {
		t.Fatalf("created %d accounts, want 1", len(repo.created))
	}
	acc := repo.created[0]
	if acc.Phone != "+66812345678" {
		t.Errorf("stored phone = %q, want +66812345678", acc.Phone)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("correcthorse")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
	if len(pub.events) != 1 {
		t.Errorf("published %d events, want 1", len(pub.events))
	}
}

func TestCreateAccount_Validation(t *testing.T) {
	uc := NewCreateAccountUseCase(&fakeAccountRepo{}, &fakePublisher{}, logger.NewLogger("identity-service-test"))

	tests := []struct {
		name  string
		input in.CreateAccountInput
		want  error
	}{
		{"no contact", in.CreateAccountInput{Password: "correcthorse"}, ErrMissingIdentity},
		{"short password", in.CreateAccountInput{Email: "a@x.com", Password: "short"}, ErrWeakPassword},
		{"bad role", in.CreateAccountInput{Email: "a@x.com", Password: "correcthorse", Role: "SUPERUSER"}, ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreateAccount_BrokerFailureIsNotFatal(t *testing.T) {
	repo := &fakeAccountRepo{}
	uc := NewCreateAccountUseCase(repo, &fakePublisher{fail: true}, logger.NewLogger("identity-service-test"))

	_, err := uc.Execute(context.Background(), in.CreateAccountInput{
		Email:    "a@x.com",
		Password: "correcthorse",
	})
	if err != nil {
		t.Fatalf("Execute returned error on broker failure: %v", err)
	}
	if len(repo.created) != 1 {
		t.Errorf("account was not persisted")
	}
}

func TestListCustomers_FilterAndPaginate(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	e.SetAccounts(ctx, []account.Account{
		testAccount("u1", "a@x.com"),
		testAccount("u2", "b@x.com"),
	})
	guest := testTrip("t1", "", 500, model.TripStatusCompleted, engineBase.Add(time.Hour))
	guest.Email = "guest@x.com"
	e.SetTripRequests(ctx, []tripdomain.TripRequest{
		testTrip("t2", "u1", 1000, model.TripStatusCompleted, engineBase.Add(2*time.Hour)),
		guest,
	})

	uc := NewListCustomersUseCase(e)

	all, err := uc.Execute(ctx, in.ListCustomersInput{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if all.TotalCount != 3 {
		t.Fatalf("total = %d, want 3 (two registered + one guest)", all.TotalCount)
	}

	guests, err := uc.Execute(ctx, in.ListCustomersInput{SourceTag: model.SourceGuest})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if guests.TotalCount != 1 {
		t.Errorf("guest total = %d, want 1", guests.TotalCount)
	}

	page, err := uc.Execute(ctx, in.ListCustomersInput{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(page.Customers) != 1 {
		t.Errorf("page of offset 2 has %d customers, want 1", len(page.Customers))
	}
}

func TestGetOverview_RequiresSnapshot(t *testing.T) {
	uc := NewGetOverviewUseCase(newTestEngine())

	_, err := uc.Execute(context.Background(), in.GetOverviewInput{})
	if !errors.Is(err, ErrSnapshotNotReady) {
		t.Errorf("err = %v, want ErrSnapshotNotReady", err)
	}
}
