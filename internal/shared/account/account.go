package account

import (
	"time"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
)

// Account — зарегистрированная учетная запись.
// Владелец данных — подсистема аутентификации; ядро читает их как вход.
type Account struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email,omitempty" db:"email"`
	Phone        string    `json:"phone,omitempty" db:"phone"`
	DisplayName  string    `json:"display_name,omitempty" db:"display_name"`
	Role         string    `json:"role" db:"role"`     // CUSTOMER | DRIVER | ADMIN | OPERATOR
	Status       string    `json:"status" db:"status"` // ACTIVE | INACTIVE | BANNED
	Provider     string    `json:"provider,omitempty" db:"provider"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// IsActive проверяет, активен ли аккаунт
func (a *Account) IsActive() bool {
	return a.Status == model.AccountStatusActive
}

// IsStaff — операторские/админские аккаунты не попадают в каталог клиентов
func (a *Account) IsStaff() bool {
	return a.Role == model.RoleAdmin || a.Role == model.RoleOperator
}

// IsValidRole проверяет корректность роли
func IsValidRole(role string) bool {
	switch role {
	case model.RoleCustomer, model.RoleDriver, model.RoleAdmin, model.RoleOperator:
		return true
	default:
		return false
	}
}

// IsValidStatus проверяет корректность статуса
func IsValidStatus(status string) bool {
	switch status {
	case model.AccountStatusActive, model.AccountStatusInactive, model.AccountStatusBanned:
		return true
	default:
		return false
	}
}
