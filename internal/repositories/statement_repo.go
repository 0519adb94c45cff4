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

type StatementRepository interface {
	Create(ctx context.Context, statement *models.PayStatement) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PayStatement, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.PayStatement, error)
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.PayStatement, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type statementRepository struct {
	db DBTX
}

func NewStatementRepository(db DBTX) StatementRepository {
	return &statementRepository{db: db}
}

const statementColumns = `id, company_id, driver_id, driver_name, period_start, period_end, trip_total, expense_total, cash_advance_total, gross_pay, tax_withholding, deductions_total, net_pay, status, generated_date, created_at, updated_at`

func scanStatement(row pgx.Row) (*models.PayStatement, error) {
	s := &models.PayStatement{}
	err := row.Scan(&s.ID, &s.CompanyID, &s.DriverID, &s.DriverName, &s.PeriodStart,
		&s.PeriodEnd, &s.TripTotal, &s.ExpenseTotal, &s.CashAdvanceTotal, &s.GrossPay,
		&s.TaxWithholding, &s.DeductionsTotal, &s.NetPay, &s.Status, &s.GeneratedDate,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NotFoundf("pay statement")
		}
		return nil, fmt.Errorf("failed to scan pay statement: %w", err)
	}
	return s, nil
}

func collectStatements(rows pgx.Rows) ([]*models.PayStatement, error) {
	statements := make([]*models.PayStatement, 0)
	for rows.Next() {
		s, err := scanStatement(rows)
		if err != nil {
			return nil, err
		}
		statements = append(statements, s)
	}
	return statements, rows.Err()
}

func (r *statementRepository) Create(ctx context.Context, statement *models.PayStatement) error {
	query := `INSERT INTO pay_statements (id, company_id, driver_id, driver_name, period_start, period_end, trip_total, expense_total, cash_advance_total, gross_pay, tax_withholding, deductions_total, net_pay, status, generated_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())`
	_, err := r.db.Exec(ctx, query, statement.ID, statement.CompanyID, statement.DriverID,
		statement.DriverName, statement.PeriodStart, statement.PeriodEnd, statement.TripTotal,
		statement.ExpenseTotal, statement.CashAdvanceTotal, statement.GrossPay,
		statement.TaxWithholding, statement.DeductionsTotal, statement.NetPay,
		statement.Status, statement.GeneratedDate)
	if err != nil {
		return fmt.Errorf("failed to create pay statement: %w", err)
	}
	return nil
}

func (r *statementRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PayStatement, error) {
	query := `SELECT ` + statementColumns + ` FROM pay_statements WHERE id = $1`
	return scanStatement(r.db.QueryRow(ctx, query, id))
}

func (r *statementRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.PayStatement, error) {
	query := `SELECT ` + statementColumns + ` FROM pay_statements WHERE company_id = $1 ORDER BY generated_date DESC`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay statements: %w", err)
	}
	defer rows.Close()
	return collectStatements(rows)
}

func (r *statementRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.PayStatement, error) {
	query := `SELECT ` + statementColumns + ` FROM pay_statements WHERE driver_id = $1 ORDER BY generated_date DESC`
	rows, err := r.db.Query(ctx, query, driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list driver pay statements: %w", err)
	}
	defer rows.Close()
	return collectStatements(rows)
}

// UpdateStatus is the only mutation pay statements support; monetary fields
// are immutable after generation.
func (r *statementRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE pay_statements SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update pay statement status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("pay statement")
	}
	return nil
}

func (r *statementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM pay_statements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pay statement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("pay statement")
	}
	return nil
}
