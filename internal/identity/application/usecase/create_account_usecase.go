package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/application/ports/out"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/domain"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/account"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/utils"
)

var (
	ErrInvalidRole     = errors.New("invalid role")
	ErrMissingIdentity = errors.New("email or phone required")
	ErrWeakPassword    = errors.New("password must be at least 8 characters")
)

// CreateAccountUseCase создает новую учетную запись
type CreateAccountUseCase struct {
	accounts  account.Repository
	publisher out.EventPublisher
	log       *logger.Logger
}

func NewCreateAccountUseCase(accounts account.Repository, publisher out.EventPublisher, log *logger.Logger) *CreateAccountUseCase {
	return &CreateAccountUseCase{accounts: accounts, publisher: publisher, log: log}
}

func (uc *CreateAccountUseCase) Execute(ctx context.Context, input in.CreateAccountInput) (*in.CreateAccountOutput, error) {
	email := domain.NormalizeEmail(input.Email)
	phone := domain.NormalizePhone(input.Phone)

	if email == "" && phone == "" {
		return nil, ErrMissingIdentity
	}
	role := input.Role
	if role == "" {
		role = model.RoleCustomer
	}
	if !account.IsValidRole(role) {
		return nil, ErrInvalidRole
	}
	if len(input.Password) < 8 {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	provider := input.Provider
	if provider == "" {
		provider = "local"
	}

	now := time.Now().UTC()
	acc := &account.Account{
		ID:           utils.NewUUID(),
		Email:        email,
		Phone:        phone,
		DisplayName:  input.DisplayName,
		Role:         role,
		Status:       model.AccountStatusActive,
		Provider:     provider,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.accounts.Create(ctx, acc); err != nil {
		return nil, err
	}

	uc.log.Info(logger.Entry{
		Action:  "account_created",
		Message: "account created",
		Additional: map[string]any{
			"account_id": acc.ID,
			"role":       acc.Role,
		},
	})

	// Событие дергает пересчет каталога у identity-консьюмеров.
	// Аккаунт уже в БД, так что отказ шины не фатален.
	event := map[string]any{
		"event_type": model.EventAccountCreated,
		"account_id": acc.ID,
		"role":       acc.Role,
		"created_at": now.Format(time.RFC3339),
	}
	if err := uc.publisher.PublishAccountCreated(ctx, event); err != nil {
		uc.log.Error(logger.Entry{
			Action:  "account_event_publish_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	return &in.CreateAccountOutput{
		AccountID: acc.ID,
		Email:     acc.Email,
		Role:      acc.Role,
		Status:    acc.Status,
		CreatedAt: now.Format(time.RFC3339),
	}, nil
}
