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

type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	List(ctx context.Context) ([]*models.Company, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type companyRepository struct {
	db DBTX
}

func NewCompanyRepository(db DBTX) CompanyRepository {
	return &companyRepository{db: db}
}

func scanCompany(row pgx.Row) (*models.Company, error) {
	c := &models.Company{}
	err := row.Scan(&c.ID, &c.Name, &c.Status, &c.SubscriptionTier, &c.SubscriptionStatus,
		&c.OwnerID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NotFoundf("company")
		}
		return nil, fmt.Errorf("failed to scan company: %w", err)
	}
	return c, nil
}

func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	query := `INSERT INTO companies (id, name, status, subscription_tier, subscription_status, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`
	_, err := r.db.Exec(ctx, query, company.ID, company.Name, company.Status,
		company.SubscriptionTier, company.SubscriptionStatus, company.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	query := `SELECT id, name, status, subscription_tier, subscription_status, owner_id, created_at, updated_at
		FROM companies WHERE id = $1`
	return scanCompany(r.db.QueryRow(ctx, query, id))
}

func (r *companyRepository) List(ctx context.Context) ([]*models.Company, error) {
	query := `SELECT id, name, status, subscription_tier, subscription_status, owner_id, created_at, updated_at
		FROM companies ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()
	return collectCompanies(rows)
}

func (r *companyRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Company, error) {
	query := `SELECT c.id, c.name, c.status, c.subscription_tier, c.subscription_status, c.owner_id, c.created_at, c.updated_at
		FROM companies c
		JOIN company_users cu ON cu.company_id = c.id
		WHERE cu.user_id = $1
		ORDER BY c.created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies for user: %w", err)
	}
	defer rows.Close()
	return collectCompanies(rows)
}

func collectCompanies(rows pgx.Rows) ([]*models.Company, error) {
	companies := make([]*models.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *companyRepository) Update(ctx context.Context, company *models.Company) error {
	query := `UPDATE companies
		SET name = $1, status = $2, subscription_tier = $3, subscription_status = $4, updated_at = NOW()
		WHERE id = $5`
	tag, err := r.db.Exec(ctx, query, company.Name, company.Status,
		company.SubscriptionTier, company.SubscriptionStatus, company.ID)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("company")
	}
	return nil
}

func (r *companyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("company")
	}
	return nil
}
