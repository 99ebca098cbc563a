package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/driver/domain"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
)

const driverColumns = `
	id, COALESCE(account_id::text, ''), display_name, COALESCE(vehicle_plate, ''),
	status, total_trips, total_earnings, created_at, updated_at`

// DriverPgRepository — Postgres реализация DriverRepository
type DriverPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewDriverPgRepository создает новый репозиторий водителей
func NewDriverPgRepository(pool *pgxpool.Pool, log *logger.Logger) *DriverPgRepository {
	return &DriverPgRepository{pool: pool, log: log}
}

// Create сохраняет новый профиль водителя
func (r *DriverPgRepository) Create(ctx context.Context, d *domain.Driver) error {
	query := `
		INSERT INTO drivers (id, account_id, display_name, vehicle_plate, status, created_at, updated_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		d.ID, d.AccountID, d.DisplayName, d.VehiclePlate, d.Status, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:  "db_create_driver_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return fmt.Errorf("insert driver: %w", err)
	}
	return nil
}

// FindByID находит профиль по id
func (r *DriverPgRepository) FindByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `SELECT` + driverColumns + ` FROM drivers WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// FindByAccountID находит профиль по учетной записи
func (r *DriverPgRepository) FindByAccountID(ctx context.Context, accountID string) (*domain.Driver, error) {
	query := `SELECT` + driverColumns + ` FROM drivers WHERE account_id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, accountID))
}

// UpdateStatus меняет статус смены
func (r *DriverPgRepository) UpdateStatus(ctx context.Context, driverID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE drivers SET status = $2, updated_at = now() WHERE id = $1`,
		driverID, status,
	)
	if err != nil {
		return fmt.Errorf("update driver status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDriverNotFound
	}
	return nil
}

// RecordCompletedTrip добавляет поездку в статистику и освобождает водителя
func (r *DriverPgRepository) RecordCompletedTrip(ctx context.Context, driverID string, earnings float64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE drivers
		SET total_trips = total_trips + 1,
		    total_earnings = total_earnings + $2,
		    status = $3,
		    updated_at = now()
		WHERE id = $1
	`, driverID, earnings, model.DriverStatusAvailable)
	if err != nil {
		return fmt.Errorf("record completed trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDriverNotFound
	}
	return nil
}

func (r *DriverPgRepository) scanOne(row pgx.Row) (*domain.Driver, error) {
	var d domain.Driver
	err := row.Scan(
		&d.ID, &d.AccountID, &d.DisplayName, &d.VehiclePlate,
		&d.Status, &d.TotalTrips, &d.TotalEarnings, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDriverNotFound
		}
		return nil, fmt.Errorf("query driver: %w", err)
	}
	return &d, nil
}
