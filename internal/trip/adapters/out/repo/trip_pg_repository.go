package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/application/ports/out"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/trip/domain"
)

const tripColumns = `
	id, COALESCE(account_id::text, ''), COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(first_name, ''), COALESCE(last_name, ''),
	pickup_location, dropoff_location, total_cost, status,
	driver_id::text, driver_name, created_at, updated_at, completed_at, cancelled_at`

// TripPgRepository — Postgres реализация TripRepository
type TripPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewTripPgRepository создает новый репозиторий заявок
func NewTripPgRepository(pool *pgxpool.Pool, log *logger.Logger) *TripPgRepository {
	return &TripPgRepository{pool: pool, log: log}
}

// Create сохраняет новую заявку
func (r *TripPgRepository) Create(ctx context.Context, trip *domain.TripRequest) error {
	query := `
		INSERT INTO trip_requests
			(id, account_id, email, phone, first_name, last_name,
			 pickup_location, dropoff_location, total_cost, status, created_at, updated_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		trip.ID,
		trip.AccountID,
		trip.Email,
		trip.Phone,
		trip.FirstName,
		trip.LastName,
		trip.PickupLocation,
		trip.DropoffLocation,
		trip.TotalCost,
		trip.Status,
		trip.CreatedAt,
		trip.UpdatedAt,
	)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:  "db_create_trip_failed",
			Message: err.Error(),
			TripID:  trip.ID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return fmt.Errorf("insert trip request: %w", err)
	}

	return nil
}

// FindByID находит заявку по ID
func (r *TripPgRepository) FindByID(ctx context.Context, id string) (*domain.TripRequest, error) {
	query := `SELECT` + tripColumns + ` FROM trip_requests WHERE id = $1`

	trip, err := scanTrip(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTripNotFound
		}
		return nil, fmt.Errorf("query trip by id: %w", err)
	}
	return trip, nil
}

// FindAll возвращает полный текущий набор заявок в порядке создания
func (r *TripPgRepository) FindAll(ctx context.Context) ([]domain.TripRequest, error) {
	query := `SELECT` + tripColumns + ` FROM trip_requests ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query all trips: %w", err)
	}
	defer rows.Close()

	var trips []domain.TripRequest
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		trips = append(trips, *trip)
	}

	return trips, rows.Err()
}

// ApplyStatusTransition атомарно переводит заявку из from в to.
// Условие status = $from в WHERE — вся конкуренция: проигравший
// не находит строку и получает конфликт с фактическим статусом.
func (r *TripPgRepository) ApplyStatusTransition(ctx context.Context, tripID, from, to string, upd out.StatusUpdate) (*domain.TripRequest, error) {
	query := `
		UPDATE trip_requests
		SET status = $3,
		    updated_at = now(),
		    driver_id = CASE
		        WHEN $4::uuid IS NOT NULL THEN $4::uuid
		        WHEN $6 THEN NULL
		        ELSE driver_id
		    END,
		    driver_name = CASE
		        WHEN $5::text IS NOT NULL THEN $5
		        WHEN $6 THEN NULL
		        ELSE driver_name
		    END,
		    total_cost = COALESCE($7, total_cost),
		    completed_at = CASE WHEN $3 = '` + model.TripStatusCompleted + `' THEN now() ELSE completed_at END,
		    cancelled_at = CASE WHEN $3 = '` + model.TripStatusCancelled + `' THEN now() ELSE cancelled_at END
		WHERE id = $1 AND status = $2
		RETURNING` + tripColumns

	trip, err := scanTrip(r.pool.QueryRow(ctx, query,
		tripID, from, to,
		upd.DriverID, upd.DriverName, upd.ClearDriver, upd.TotalCost,
	))
	if err == nil {
		return trip, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("apply status transition: %w", err)
	}

	// Строка не обновилась: заявки нет или статус уже другой
	current, findErr := r.FindByID(ctx, tripID)
	if findErr != nil {
		return nil, findErr
	}
	return nil, &domain.StatusConflictError{
		TripID:   tripID,
		Expected: from,
		Actual:   current.Status,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.TripRequest, error) {
	var t domain.TripRequest
	err := row.Scan(
		&t.ID, &t.AccountID, &t.Email, &t.Phone,
		&t.FirstName, &t.LastName,
		&t.PickupLocation, &t.DropoffLocation, &t.TotalCost, &t.Status,
		&t.DriverID, &t.DriverName, &t.CreatedAt, &t.UpdatedAt, &t.CompletedAt, &t.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
