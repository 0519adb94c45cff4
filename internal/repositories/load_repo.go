package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
)

type LoadRepository interface {
	Create(ctx context.Context, load *models.Load) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Load, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Load, error)
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.Load, error)
	Update(ctx context.Context, load *models.Load) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	AssignDriver(ctx context.Context, id uuid.UUID, driverID *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type loadRepository struct {
	db DBTX
}

func NewLoadRepository(db DBTX) LoadRepository {
	return &loadRepository{db: db}
}

const loadColumns = `id, company_id, driver_id, load_number, customer, pickup_date, delivery_date, origin, destination, distance, rate, status, created_by, created_at, updated_at`

func scanLoad(row pgx.Row) (*models.Load, error) {
	l := &models.Load{}
	err := row.Scan(&l.ID, &l.CompanyID, &l.DriverID, &l.LoadNumber, &l.Customer,
		&l.PickupDate, &l.DeliveryDate, &l.Origin, &l.Destination, &l.Distance,
		&l.Rate, &l.Status, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NotFoundf("load")
		}
		return nil, fmt.Errorf("failed to scan load: %w", err)
	}
	return l, nil
}

func collectLoads(rows pgx.Rows) ([]*models.Load, error) {
	loads := make([]*models.Load, 0)
	for rows.Next() {
		l, err := scanLoad(rows)
		if err != nil {
			return nil, err
		}
		loads = append(loads, l)
	}
	return loads, rows.Err()
}

func (r *loadRepository) Create(ctx context.Context, load *models.Load) error {
	query := `INSERT INTO loads (id, company_id, driver_id, load_number, customer, pickup_date, delivery_date, origin, destination, distance, rate, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())`
	_, err := r.db.Exec(ctx, query, load.ID, load.CompanyID, load.DriverID, load.LoadNumber,
		load.Customer, load.PickupDate, load.DeliveryDate, load.Origin, load.Destination,
		load.Distance, load.Rate, load.Status, load.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to create load: %w", err)
	}
	return nil
}

func (r *loadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Load, error) {
	query := `SELECT ` + loadColumns + ` FROM loads WHERE id = $1`
	return scanLoad(r.db.QueryRow(ctx, query, id))
}

func (r *loadRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Load, error) {
	query := `SELECT ` + loadColumns + ` FROM loads WHERE company_id = $1 ORDER BY pickup_date DESC`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loads: %w", err)
	}
	defer rows.Close()
	return collectLoads(rows)
}

func (r *loadRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.Load, error) {
	query := `SELECT ` + loadColumns + ` FROM loads WHERE driver_id = $1 ORDER BY pickup_date DESC`
	rows, err := r.db.Query(ctx, query, driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list driver loads: %w", err)
	}
	defer rows.Close()
	return collectLoads(rows)
}

func (r *loadRepository) Update(ctx context.Context, load *models.Load) error {
	query := `UPDATE loads
		SET driver_id = $1, load_number = $2, customer = $3, pickup_date = $4, delivery_date = $5,
			origin = $6, destination = $7, distance = $8, rate = $9, status = $10, updated_at = NOW()
		WHERE id = $11 AND company_id = $12`
	tag, err := r.db.Exec(ctx, query, load.DriverID, load.LoadNumber, load.Customer,
		load.PickupDate, load.DeliveryDate, load.Origin, load.Destination, load.Distance,
		load.Rate, load.Status, load.ID, load.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update load: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("load")
	}
	return nil
}

func (r *loadRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE loads SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update load status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("load")
	}
	return nil
}

func (r *loadRepository) AssignDriver(ctx context.Context, id uuid.UUID, driverID *uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE loads SET driver_id = $1, updated_at = NOW() WHERE id = $2`, driverID, id)
	if err != nil {
		return fmt.Errorf("failed to assign load driver: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("load")
	}
	return nil
}

func (r *loadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM loads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete load: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("load")
	}
	return nil
}
