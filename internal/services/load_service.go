package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
	"github.com/geraud82/NeoPay-sub000/internal/repositories"
)

type LoadService interface {
	Create(ctx context.Context, load *models.Load) (*models.Load, error)
	GetByID(ctx context.Context, companyID, loadID uuid.UUID) (*models.Load, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Load, error)
	ListByDriver(ctx context.Context, companyID, driverID uuid.UUID) ([]*models.Load, error)
	Update(ctx context.Context, load *models.Load) (*models.Load, error)
	UpdateStatus(ctx context.Context, companyID, loadID uuid.UUID, status string) (*models.Load, error)
	AssignDriver(ctx context.Context, companyID, loadID uuid.UUID, driverID *uuid.UUID) (*models.Load, error)
	Delete(ctx context.Context, companyID, loadID uuid.UUID) error
}

type loadService struct {
	loadRepo   repositories.LoadRepository
	driverRepo repositories.DriverRepository
}

func NewLoadService(loadRepo repositories.LoadRepository, driverRepo repositories.DriverRepository) LoadService {
	return &loadService{loadRepo: loadRepo, driverRepo: driverRepo}
}

func (s *loadService) validateLoad(ctx context.Context, load *models.Load) error {
	if err := common.ValidateRequiredString(load.LoadNumber, "load number"); err != nil {
		return common.Validationf("%s", err.Error())
	}
	if load.Distance < 0 {
		return common.Validationf("distance cannot be negative")
	}
	if load.Rate < 0 {
		return common.Validationf("rate cannot be negative")
	}
	if load.Status != "" && !models.ValidLoadStatus(load.Status) {
		return common.Validationf("invalid load status")
	}
	if load.DriverID != nil {
		driver, err := s.driverRepo.GetByID(ctx, *load.DriverID)
		if err != nil {
			return err
		}
		if driver.CompanyID != load.CompanyID {
			return common.Validationf("driver does not belong to this company")
		}
	}
	return nil
}

func (s *loadService) Create(ctx context.Context, load *models.Load) (*models.Load, error) {
	if err := s.validateLoad(ctx, load); err != nil {
		return nil, err
	}

	load.ID = uuid.New()
	if load.Status == "" {
		load.Status = models.LoadStatusAssigned
	}
	load.CreatedAt = time.Now()
	load.UpdatedAt = load.CreatedAt

	if err := s.loadRepo.Create(ctx, load); err != nil {
		return nil, err
	}
	return load, nil
}

func (s *loadService) GetByID(ctx context.Context, companyID, loadID uuid.UUID) (*models.Load, error) {
	load, err := s.loadRepo.GetByID(ctx, loadID)
	if err != nil {
		return nil, err
	}
	if load.CompanyID != companyID {
		return nil, common.NotFoundf("load")
	}
	return load, nil
}

func (s *loadService) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Load, error) {
	return s.loadRepo.ListByCompany(ctx, companyID)
}

func (s *loadService) ListByDriver(ctx context.Context, companyID, driverID uuid.UUID) ([]*models.Load, error) {
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.CompanyID != companyID {
		return nil, common.NotFoundf("driver")
	}
	return s.loadRepo.ListByDriver(ctx, driverID)
}

func (s *loadService) Update(ctx context.Context, load *models.Load) (*models.Load, error) {
	existing, err := s.loadRepo.GetByID(ctx, load.ID)
	if err != nil {
		return nil, err
	}
	if existing.CompanyID != load.CompanyID {
		return nil, common.NotFoundf("load")
	}

	if err := s.validateLoad(ctx, load); err != nil {
		return nil, err
	}

	load.CreatedBy = existing.CreatedBy
	load.CreatedAt = existing.CreatedAt
	if load.Status == "" {
		load.Status = existing.Status
	}

	if err := s.loadRepo.Update(ctx, load); err != nil {
		return nil, err
	}
	return load, nil
}

func (s *loadService) UpdateStatus(ctx context.Context, companyID, loadID uuid.UUID, status string) (*models.Load, error) {
	if !models.ValidLoadStatus(status) {
		return nil, common.Validationf("invalid load status")
	}

	load, err := s.GetByID(ctx, companyID, loadID)
	if err != nil {
		return nil, err
	}

	if err := s.loadRepo.UpdateStatus(ctx, loadID, status); err != nil {
		return nil, err
	}
	load.Status = status
	return load, nil
}

func (s *loadService) AssignDriver(ctx context.Context, companyID, loadID uuid.UUID, driverID *uuid.UUID) (*models.Load, error) {
	load, err := s.GetByID(ctx, companyID, loadID)
	if err != nil {
		return nil, err
	}

	if driverID != nil {
		driver, err := s.driverRepo.GetByID(ctx, *driverID)
		if err != nil {
			return nil, err
		}
		if driver.CompanyID != companyID {
			return nil, common.Validationf("driver does not belong to this company")
		}
	}

	if err := s.loadRepo.AssignDriver(ctx, loadID, driverID); err != nil {
		return nil, err
	}
	load.DriverID = driverID
	return load, nil
}

func (s *loadService) Delete(ctx context.Context, companyID, loadID uuid.UUID) error {
	load, err := s.loadRepo.GetByID(ctx, loadID)
	if err != nil {
		return err
	}
	if load.CompanyID != companyID {
		return common.NotFoundf("load")
	}
	return s.loadRepo.Delete(ctx, loadID)
}
