package in

import (
	"context"
)

// ListAccountsInput — входные данные для списка аккаунтов
type ListAccountsInput struct {
	Role   string
	Status string
	Limit  int
	Offset int
}

// AccountDTO — аккаунт для ответа API
type AccountDTO struct {
	AccountID   string `json:"account_id"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ListAccountsOutput — выходные данные списка аккаунтов
type ListAccountsOutput struct {
	Accounts   []AccountDTO `json:"accounts"`
	TotalCount int          `json:"total_count"`
	Limit      int          `json:"limit"`
	Offset     int          `json:"offset"`
}

// ListAccountsUseCase — use case списка аккаунтов
type ListAccountsUseCase interface {
	Execute(ctx context.Context, input ListAccountsInput) (*ListAccountsOutput, error)
}
