package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
)

type TripRepository interface {
	Create(ctx context.Context, trip *models.Trip) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Trip, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Trip, error)
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.Trip, error)
	ListByDriverBetween(ctx context.Context, driverID uuid.UUID, start, end time.Time) ([]*models.Trip, error)
	Update(ctx context.Context, trip *models.Trip) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type tripRepository struct {
	db DBTX
}

func NewTripRepository(db DBTX) TripRepository {
	return &tripRepository{db: db}
}

const tripColumns = `id, company_id, driver_id, load_id, trip_date, origin, destination, distance, rate, rate_type, hours_worked, amount, status, created_at, updated_at`

func scanTrip(row pgx.Row) (*models.Trip, error) {
	t := &models.Trip{}
	err := row.Scan(&t.ID, &t.CompanyID, &t.DriverID, &t.LoadID, &t.TripDate, &t.Origin,
		&t.Destination, &t.Distance, &t.Rate, &t.RateType, &t.HoursWorked, &t.Amount,
		&t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NotFoundf("trip")
		}
		return nil, fmt.Errorf("failed to scan trip: %w", err)
	}
	return t, nil
}

func collectTrips(rows pgx.Rows) ([]*models.Trip, error) {
	trips := make([]*models.Trip, 0)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (r *tripRepository) Create(ctx context.Context, trip *models.Trip) error {
	query := `INSERT INTO trips (id, company_id, driver_id, load_id, trip_date, origin, destination, distance, rate, rate_type, hours_worked, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())`
	_, err := r.db.Exec(ctx, query, trip.ID, trip.CompanyID, trip.DriverID, trip.LoadID,
		trip.TripDate, trip.Origin, trip.Destination, trip.Distance, trip.Rate,
		trip.RateType, trip.HoursWorked, trip.Amount, trip.Status)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

func (r *tripRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`
	return scanTrip(r.db.QueryRow(ctx, query, id))
}

func (r *tripRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE company_id = $1 ORDER BY trip_date DESC`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()
	return collectTrips(rows)
}

func (r *tripRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE driver_id = $1 ORDER BY trip_date DESC`
	rows, err := r.db.Query(ctx, query, driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list driver trips: %w", err)
	}
	defer rows.Close()
	return collectTrips(rows)
}

func (r *tripRepository) ListByDriverBetween(ctx context.Context, driverID uuid.UUID, start, end time.Time) ([]*models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips
		WHERE driver_id = $1 AND trip_date >= $2 AND trip_date <= $3
		ORDER BY trip_date`
	rows, err := r.db.Query(ctx, query, driverID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips in period: %w", err)
	}
	defer rows.Close()
	return collectTrips(rows)
}

func (r *tripRepository) Update(ctx context.Context, trip *models.Trip) error {
	query := `UPDATE trips
		SET driver_id = $1, load_id = $2, trip_date = $3, origin = $4, destination = $5,
			distance = $6, rate = $7, rate_type = $8, hours_worked = $9, amount = $10,
			status = $11, updated_at = NOW()
		WHERE id = $12 AND company_id = $13`
	tag, err := r.db.Exec(ctx, query, trip.DriverID, trip.LoadID, trip.TripDate, trip.Origin,
		trip.Destination, trip.Distance, trip.Rate, trip.RateType, trip.HoursWorked,
		trip.Amount, trip.Status, trip.ID, trip.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("trip")
	}
	return nil
}

func (r *tripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("trip")
	}
	return nil
}
