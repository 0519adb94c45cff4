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

type DriverRepository interface {
	Create(ctx context.Context, driver *models.Driver) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Driver, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Driver, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Driver, error)
	Update(ctx context.Context, driver *models.Driver) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type driverRepository struct {
	db DBTX
}

func NewDriverRepository(db DBTX) DriverRepository {
	return &driverRepository{db: db}
}

const driverColumns = `id, company_id, name, email, phone, license, status, type, employment_type, pay_rate, pay_rate_type, tax_withholding_percent, user_id, created_at, updated_at`

func scanDriver(row pgx.Row) (*models.Driver, error) {
	d := &models.Driver{}
	err := row.Scan(&d.ID, &d.CompanyID, &d.Name, &d.Email, &d.Phone, &d.License,
		&d.Status, &d.Type, &d.EmploymentType, &d.PayRate, &d.PayRateType,
		&d.TaxWithholdingPercent, &d.UserID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NotFoundf("driver")
		}
		return nil, fmt.Errorf("failed to scan driver: %w", err)
	}
	return d, nil
}

func (r *driverRepository) Create(ctx context.Context, driver *models.Driver) error {
	query := `INSERT INTO drivers (id, company_id, name, email, phone, license, status, type, employment_type, pay_rate, pay_rate_type, tax_withholding_percent, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())`
	_, err := r.db.Exec(ctx, query, driver.ID, driver.CompanyID, driver.Name, driver.Email,
		driver.Phone, driver.License, driver.Status, driver.Type, driver.EmploymentType,
		driver.PayRate, driver.PayRateType, driver.TaxWithholdingPercent, driver.UserID)
	if err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}
	return nil
}

func (r *driverRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`
	return scanDriver(r.db.QueryRow(ctx, query, id))
}

func (r *driverRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE user_id = $1`
	return scanDriver(r.db.QueryRow(ctx, query, userID))
}

func (r *driverRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE company_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	defer rows.Close()

	drivers := make([]*models.Driver, 0)
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (r *driverRepository) Update(ctx context.Context, driver *models.Driver) error {
	query := `UPDATE drivers
		SET name = $1, email = $2, phone = $3, license = $4, status = $5, type = $6,
			employment_type = $7, pay_rate = $8, pay_rate_type = $9, tax_withholding_percent = $10,
			user_id = $11, updated_at = NOW()
		WHERE id = $12 AND company_id = $13`
	tag, err := r.db.Exec(ctx, query, driver.Name, driver.Email, driver.Phone, driver.License,
		driver.Status, driver.Type, driver.EmploymentType, driver.PayRate, driver.PayRateType,
		driver.TaxWithholdingPercent, driver.UserID, driver.ID, driver.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update driver: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("driver")
	}
	return nil
}

func (r *driverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete driver: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("driver")
	}
	return nil
}
