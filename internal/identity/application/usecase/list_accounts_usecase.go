package usecase

import (
	"context"
	"time"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/application/ports/in"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/account"
)

// ListAccountsUseCase — админская выборка учетных записей
type ListAccountsUseCase struct {
	accounts account.Repository
}

func NewListAccountsUseCase(accounts account.Repository) *ListAccountsUseCase {
	return &ListAccountsUseCase{accounts: accounts}
}

func (uc *ListAccountsUseCase) Execute(ctx context.Context, input in.ListAccountsInput) (*in.ListAccountsOutput, error) {
	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	accs, total, err := uc.accounts.List(ctx, account.ListFilters{
		Role:   input.Role,
		Status: input.Status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	dtos := make([]in.AccountDTO, 0, len(accs))
	for i := range accs {
		a := &accs[i]
		dtos = append(dtos, in.AccountDTO{
			AccountID:   a.ID,
			Email:       a.Email,
			Phone:       a.Phone,
			DisplayName: a.DisplayName,
			Role:        a.Role,
			Status:      a.Status,
			CreatedAt:   a.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt:   a.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}

	return &in.ListAccountsOutput{
		Accounts:   dtos,
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}
