package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
	"github.com/geraud82/NeoPay-sub000/internal/repositories"
)

type CompanyService interface {
	Create(ctx context.Context, company *models.Company) (*models.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	List(ctx context.Context) ([]*models.Company, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Company, error)
	Update(ctx context.Context, company *models.Company) (*models.Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, companyID, userID uuid.UUID, role models.Role) error
	ListMembers(ctx context.Context, companyID uuid.UUID) ([]*models.CompanyUser, error)
	RemoveMember(ctx context.Context, companyID, userID uuid.UUID) error
}

type companyService struct {
	companyRepo     repositories.CompanyRepository
	companyUserRepo repositories.CompanyUserRepository
	userRepo        repositories.UserRepository
}

func NewCompanyService(companyRepo repositories.CompanyRepository,
	companyUserRepo repositories.CompanyUserRepository, userRepo repositories.UserRepository) CompanyService {
	return &companyService{companyRepo: companyRepo, companyUserRepo: companyUserRepo, userRepo: userRepo}
}

func (s *companyService) Create(ctx context.Context, company *models.Company) (*models.Company, error) {
	if err := common.ValidateRequiredString(company.Name, "name"); err != nil {
		return nil, common.Validationf("%s", err.Error())
	}

	company.ID = uuid.New()
	if company.Status == "" {
		company.Status = "Active"
	}
	if company.SubscriptionTier == "" {
		company.SubscriptionTier = "basic"
	}
	if company.SubscriptionStatus == "" {
		company.SubscriptionStatus = "trial"
	}
	company.CreatedAt = time.Now()
	company.UpdatedAt = company.CreatedAt

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	// The creating user owns and administers the new company.
	membership := &models.CompanyUser{
		CompanyID: company.ID,
		UserID:    company.OwnerID,
		Role:      models.RoleAdmin,
	}
	if err := s.companyUserRepo.Add(ctx, membership); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	return s.companyRepo.GetByID(ctx, id)
}

func (s *companyService) List(ctx context.Context) ([]*models.Company, error) {
	return s.companyRepo.List(ctx)
}

func (s *companyService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Company, error) {
	return s.companyRepo.ListByUser(ctx, userID)
}

func (s *companyService) Update(ctx context.Context, company *models.Company) (*models.Company, error) {
	existing, err := s.companyRepo.GetByID(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(company.Name, "name"); err != nil {
		return nil, common.Validationf("%s", err.Error())
	}

	// ownership is fixed at creation
	company.OwnerID = existing.OwnerID
	company.CreatedAt = existing.CreatedAt

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.companyRepo.Delete(ctx, id)
}

func (s *companyService) AddMember(ctx context.Context, companyID, userID uuid.UUID, role models.Role) error {
	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.companyUserRepo.Add(ctx, &models.CompanyUser{
		CompanyID: companyID,
		UserID:    userID,
		Role:      role,
	})
}

func (s *companyService) ListMembers(ctx context.Context, companyID uuid.UUID) ([]*models.CompanyUser, error) {
	return s.companyUserRepo.ListByCompany(ctx, companyID)
}

func (s *companyService) RemoveMember(ctx context.Context, companyID, userID uuid.UUID) error {
	return s.companyUserRepo.Remove(ctx, companyID, userID)
}
