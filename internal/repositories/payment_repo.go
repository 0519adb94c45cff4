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

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.Payment, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Payment, error)
	ListByDriverTypeBetween(ctx context.Context, driverID uuid.UUID, paymentType string, start, end time.Time) ([]*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type paymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, driver_id, amount, payment_date, status, payment_type, description, statement_id, created_at, updated_at`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	p := &models.Payment{}
	err := row.Scan(&p.ID, &p.DriverID, &p.Amount, &p.PaymentDate, &p.Status,
		&p.PaymentType, &p.Description, &p.StatementID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NotFoundf("payment")
		}
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}
	return p, nil
}

func collectPayments(rows pgx.Rows) ([]*models.Payment, error) {
	payments := make([]*models.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	query := `INSERT INTO payments (id, driver_id, amount, payment_date, status, payment_type, description, statement_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`
	_, err := r.db.Exec(ctx, query, payment.ID, payment.DriverID, payment.Amount,
		payment.PaymentDate, payment.Status, payment.PaymentType, payment.Description, payment.StatementID)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.db.QueryRow(ctx, query, id))
}

func (r *paymentRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE driver_id = $1 ORDER BY payment_date DESC`
	rows, err := r.db.Query(ctx, query, driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list driver payments: %w", err)
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r *paymentRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Payment, error) {
	query := `SELECT p.id, p.driver_id, p.amount, p.payment_date, p.status, p.payment_type, p.description, p.statement_id, p.created_at, p.updated_at
		FROM payments p
		JOIN drivers d ON d.id = p.driver_id
		WHERE d.company_id = $1
		ORDER BY p.payment_date DESC`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company payments: %w", err)
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r *paymentRepository) ListByDriverTypeBetween(ctx context.Context, driverID uuid.UUID, paymentType string, start, end time.Time) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE driver_id = $1 AND payment_type = $2 AND payment_date >= $3 AND payment_date <= $4
		ORDER BY payment_date`
	rows, err := r.db.Query(ctx, query, driverID, paymentType, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments in period: %w", err)
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r *paymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	query := `UPDATE payments
		SET amount = $1, payment_date = $2, status = $3, payment_type = $4, description = $5, statement_id = $6, updated_at = NOW()
		WHERE id = $7`
	tag, err := r.db.Exec(ctx, query, payment.Amount, payment.PaymentDate, payment.Status,
		payment.PaymentType, payment.Description, payment.StatementID, payment.ID)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("payment")
	}
	return nil
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("payment")
	}
	return nil
}
