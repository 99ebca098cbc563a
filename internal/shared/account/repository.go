package account

import (
	"context"
	"errors"
)

var (
	// ErrAccountNotFound аккаунт не найден
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountAlreadyExists аккаунт с таким email уже существует
	ErrAccountAlreadyExists = errors.New("account with this email already exists")
)

// ListFilters — фильтры для выборки аккаунтов
type ListFilters struct {
	Role   string
	Status string
	Limit  int
	Offset int
}

// Repository — интерфейс доступа к аккаунтам
type Repository interface {
	// Create сохраняет новый аккаунт.
	// Возвращает ErrAccountAlreadyExists при конфликте email.
	Create(ctx context.Context, acc *Account) error

	// FindByID находит аккаунт по ID.
	// Возвращает ErrAccountNotFound если не найден.
	FindByID(ctx context.Context, id string) (*Account, error)

	// List возвращает аккаунты с фильтрами и общее количество
	List(ctx context.Context, filters ListFilters) ([]Account, int, error)

	// FindAll возвращает полный текущий набор аккаунтов
	// (вход для пересчета каталога клиентов)
	FindAll(ctx context.Context) ([]Account, error)
}
