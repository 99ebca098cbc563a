package in

import (
	"context"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/identity/domain"
)

// ListCustomersInput — входные данные для списка клиентов
type ListCustomersInput struct {
	SourceTag string // фильтр: registered | guest | merged, пусто = все
	Limit     int
	Offset    int
}

// CustomerDTO — клиент вместе с его статистикой
type CustomerDTO struct {
	domain.Customer
	Stats domain.CustomerStats `json:"stats"`
}

// ListCustomersOutput — выходные данные списка клиентов
type ListCustomersOutput struct {
	Customers  []CustomerDTO `json:"customers"`
	TotalCount int           `json:"total_count"`
	Limit      int           `json:"limit"`
	Offset     int           `json:"offset"`
}

// ListCustomersUseCase — use case списка клиентов
type ListCustomersUseCase interface {
	Execute(ctx context.Context, input ListCustomersInput) (*ListCustomersOutput, error)
}
