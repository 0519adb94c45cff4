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

type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Expense, error)
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.Expense, error)
	ListByDriverBetween(ctx context.Context, driverID uuid.UUID, start, end time.Time) ([]*models.Expense, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Expense, error)
	ListByCategory(ctx context.Context, companyID uuid.UUID, category string) ([]*models.Expense, error)
	CategorySummary(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]*models.ExpenseCategorySummary, error)
	DriverSummary(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]*models.ExpenseDriverSummary, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type expenseRepository struct {
	db DBTX
}

func NewExpenseRepository(db DBTX) ExpenseRepository {
	return &expenseRepository{db: db}
}

const expenseColumns = `id, driver_id, category, amount, expense_date, description, receipt_id, user_id, created_at, updated_at`

func scanExpense(row pgx.Row) (*models.Expense, error) {
	e := &models.Expense{}
	err := row.Scan(&e.ID, &e.DriverID, &e.Category, &e.Amount, &e.ExpenseDate,
		&e.Description, &e.ReceiptID, &e.UserID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NotFoundf("expense")
		}
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}
	return e, nil
}

func collectExpenses(rows pgx.Rows) ([]*models.Expense, error) {
	expenses := make([]*models.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *expenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	query := `INSERT INTO expenses (id, driver_id, category, amount, expense_date, description, receipt_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`
	_, err := r.db.Exec(ctx, query, expense.ID, expense.DriverID, expense.Category,
		expense.Amount, expense.ExpenseDate, expense.Description, expense.ReceiptID, expense.UserID)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	return scanExpense(r.db.QueryRow(ctx, query, id))
}

func (r *expenseRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE driver_id = $1 ORDER BY expense_date DESC`
	rows, err := r.db.Query(ctx, query, driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list driver expenses: %w", err)
	}
	defer rows.Close()
	return collectExpenses(rows)
}

func (r *expenseRepository) ListByDriverBetween(ctx context.Context, driverID uuid.UUID, start, end time.Time) ([]*models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses
		WHERE driver_id = $1 AND expense_date >= $2 AND expense_date <= $3
		ORDER BY expense_date`
	rows, err := r.db.Query(ctx, query, driverID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses in period: %w", err)
	}
	defer rows.Close()
	return collectExpenses(rows)
}

func (r *expenseRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Expense, error) {
	query := `SELECT e.id, e.driver_id, e.category, e.amount, e.expense_date, e.description, e.receipt_id, e.user_id, e.created_at, e.updated_at
		FROM expenses e
		JOIN drivers d ON d.id = e.driver_id
		WHERE d.company_id = $1
		ORDER BY e.expense_date DESC`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company expenses: %w", err)
	}
	defer rows.Close()
	return collectExpenses(rows)
}

func (r *expenseRepository) ListByCategory(ctx context.Context, companyID uuid.UUID, category string) ([]*models.Expense, error) {
	query := `SELECT e.id, e.driver_id, e.category, e.amount, e.expense_date, e.description, e.receipt_id, e.user_id, e.created_at, e.updated_at
		FROM expenses e
		JOIN drivers d ON d.id = e.driver_id
		WHERE d.company_id = $1 AND e.category = $2
		ORDER BY e.expense_date DESC`
	rows, err := r.db.Query(ctx, query, companyID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by category: %w", err)
	}
	defer rows.Close()
	return collectExpenses(rows)
}

func (r *expenseRepository) CategorySummary(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]*models.ExpenseCategorySummary, error) {
	query := `SELECT e.category, COALESCE(SUM(e.amount), 0), COUNT(*)
		FROM expenses e
		JOIN drivers d ON d.id = e.driver_id
		WHERE d.company_id = $1 AND e.expense_date >= $2 AND e.expense_date <= $3
		GROUP BY e.category
		ORDER BY SUM(e.amount) DESC`
	rows, err := r.db.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize expenses by category: %w", err)
	}
	defer rows.Close()

	summaries := make([]*models.ExpenseCategorySummary, 0)
	for rows.Next() {
		s := &models.ExpenseCategorySummary{}
		if err := rows.Scan(&s.Category, &s.Total, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *expenseRepository) DriverSummary(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]*models.ExpenseDriverSummary, error) {
	query := `SELECT e.driver_id, d.name, COALESCE(SUM(e.amount), 0), COUNT(*)
		FROM expenses e
		JOIN drivers d ON d.id = e.driver_id
		WHERE d.company_id = $1 AND e.expense_date >= $2 AND e.expense_date <= $3
		GROUP BY e.driver_id, d.name
		ORDER BY SUM(e.amount) DESC`
	rows, err := r.db.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize expenses by driver: %w", err)
	}
	defer rows.Close()

	summaries := make([]*models.ExpenseDriverSummary, 0)
	for rows.Next() {
		s := &models.ExpenseDriverSummary{}
		if err := rows.Scan(&s.DriverID, &s.DriverName, &s.Total, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan driver summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *expenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	query := `UPDATE expenses
		SET category = $1, amount = $2, expense_date = $3, description = $4, receipt_id = $5, updated_at = NOW()
		WHERE id = $6`
	tag, err := r.db.Exec(ctx, query, expense.Category, expense.Amount, expense.ExpenseDate,
		expense.Description, expense.ReceiptID, expense.ID)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("expense")
	}
	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("expense")
	}
	return nil
}
