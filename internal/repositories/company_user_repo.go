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

type CompanyUserRepository interface {
	Add(ctx context.Context, membership *models.CompanyUser) error
	GetRole(ctx context.Context, companyID, userID uuid.UUID) (models.Role, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.CompanyUser, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.CompanyUser, error)
	Remove(ctx context.Context, companyID, userID uuid.UUID) error
}

type companyUserRepository struct {
	db DBTX
}

func NewCompanyUserRepository(db DBTX) CompanyUserRepository {
	return &companyUserRepository{db: db}
}

func (r *companyUserRepository) Add(ctx context.Context, membership *models.CompanyUser) error {
	query := `INSERT INTO company_users (company_id, user_id, role, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (company_id, user_id) DO UPDATE SET role = EXCLUDED.role`
	_, err := r.db.Exec(ctx, query, membership.CompanyID, membership.UserID, membership.Role)
	if err != nil {
		return fmt.Errorf("failed to add company membership: %w", err)
	}
	return nil
}

func (r *companyUserRepository) GetRole(ctx context.Context, companyID, userID uuid.UUID) (models.Role, error) {
	var role models.Role
	query := `SELECT role FROM company_users WHERE company_id = $1 AND user_id = $2`
	err := r.db.QueryRow(ctx, query, companyID, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", common.NotFoundf("company membership")
		}
		return "", fmt.Errorf("failed to get company role: %w", err)
	}
	return role, nil
}

func (r *companyUserRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.CompanyUser, error) {
	query := `SELECT company_id, user_id, role, created_at FROM company_users WHERE company_id = $1`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company memberships: %w", err)
	}
	defer rows.Close()

	memberships := make([]*models.CompanyUser, 0)
	for rows.Next() {
		m := &models.CompanyUser{}
		if err := rows.Scan(&m.CompanyID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

func (r *companyUserRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.CompanyUser, error) {
	query := `SELECT company_id, user_id, role, created_at FROM company_users WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user memberships: %w", err)
	}
	defer rows.Close()

	memberships := make([]*models.CompanyUser, 0)
	for rows.Next() {
		m := &models.CompanyUser{}
		if err := rows.Scan(&m.CompanyID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

func (r *companyUserRepository) Remove(ctx context.Context, companyID, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM company_users WHERE company_id = $1 AND user_id = $2`, companyID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove company membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("company membership")
	}
	return nil
}
