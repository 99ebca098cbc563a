package in

import (
	"context"
)

// CreateAccountInput — входные данные для создания аккаунта
type CreateAccountInput struct {
	Email       string
	Phone       string
	DisplayName string
	Password    string // plain text, будет захеширован
	Role        string // CUSTOMER | DRIVER | ADMIN | OPERATOR
	Provider    string
}

// CreateAccountOutput — результат создания аккаунта
type CreateAccountOutput struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"` // ISO8601
}

// CreateAccountUseCase — интерфейс use case создания аккаунта
type CreateAccountUseCase interface {
	Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error)
}
