package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgRepository — Postgres реализация Repository
type PgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewPgRepository создает новый репозиторий аккаунтов
func NewPgRepository(pool *pgxpool.Pool, log *logger.Logger) *PgRepository {
	return &PgRepository{
		pool: pool,
		log:  log,
	}
}

// Create сохраняет новый аккаунт
func (r *PgRepository) Create(ctx context.Context, acc *Account) error {
	query := `
		INSERT INTO accounts (id, email, phone, display_name, role, status, provider, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		acc.ID,
		acc.Email,
		acc.Phone,
		acc.DisplayName,
		acc.Role,
		acc.Status,
		acc.Provider,
		acc.PasswordHash,
		acc.CreatedAt,
		acc.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAccountAlreadyExists
		}
		r.log.Error(logger.Entry{
			Action:  "db_create_account_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return fmt.Errorf("insert account: %w", err)
	}

	return nil
}

// FindByID находит аккаунт по ID
func (r *PgRepository) FindByID(ctx context.Context, id string) (*Account, error) {
	query := `
		SELECT id, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(display_name, ''),
		       role, status, COALESCE(provider, ''), COALESCE(password_hash, ''),
		       created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	var acc Account
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&acc.ID,
		&acc.Email,
		&acc.Phone,
		&acc.DisplayName,
		&acc.Role,
		&acc.Status,
		&acc.Provider,
		&acc.PasswordHash,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("query account by id: %w", err)
	}

	return &acc, nil
}

// List возвращает аккаунты с фильтрами и общее количество
func (r *PgRepository) List(ctx context.Context, filters ListFilters) ([]Account, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	i := 1

	if filters.Role != "" {
		where += fmt.Sprintf(" AND role = $%d", i)
		args = append(args, filters.Role)
		i++
	}
	if filters.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, filters.Status)
		i++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM accounts"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	query := `
		SELECT id, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(display_name, ''),
		       role, status, COALESCE(provider, ''), created_at, updated_at
		FROM accounts` + where + fmt.Sprintf(" ORDER BY created_at, id LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]Account, 0, filters.Limit)
	for rows.Next() {
		var acc Account
		if err := rows.Scan(
			&acc.ID, &acc.Email, &acc.Phone, &acc.DisplayName,
			&acc.Role, &acc.Status, &acc.Provider, &acc.CreatedAt, &acc.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}

	return accounts, total, rows.Err()
}

// FindAll возвращает полный текущий набор аккаунтов
func (r *PgRepository) FindAll(ctx context.Context) ([]Account, error) {
	query := `
		SELECT id, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(display_name, ''),
		       role, status, COALESCE(provider, ''), created_at, updated_at
		FROM accounts
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query all accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var acc Account
		if err := rows.Scan(
			&acc.ID, &acc.Email, &acc.Phone, &acc.DisplayName,
			&acc.Role, &acc.Status, &acc.Provider, &acc.CreatedAt, &acc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}

	return accounts, rows.Err()
}
