package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/geraud82/NeoPay-sub000/internal/caching"
	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
	"github.com/geraud82/NeoPay-sub000/internal/repositories"
)

const driverCacheTTL = 10 * time.Minute

type DriverService interface {
	Create(ctx context.Context, driver *models.Driver) (*models.Driver, error)
	GetByID(ctx context.Context, companyID, driverID uuid.UUID) (*models.Driver, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Driver, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Driver, error)
	Update(ctx context.Context, driver *models.Driver) (*models.Driver, error)
	Delete(ctx context.Context, companyID, driverID uuid.UUID) error
}

type driverService struct {
	driverRepo repositories.DriverRepository
	cache      caching.CacheService
}

func NewDriverService(driverRepo repositories.DriverRepository, cache caching.CacheService) DriverService {
	return &driverService{driverRepo: driverRepo, cache: cache}
}

func validDriverType(t string) bool {
	return t == models.DriverTypeCompany || t == models.DriverTypeOwner
}

func validRateType(t string) bool {
	switch t {
	case models.RateTypePerMile, models.RateTypePercentage, models.RateTypeHourly, models.RateTypeFixed:
		return true
	}
	return false
}

func validateDriver(driver *models.Driver) error {
	if err := common.ValidateRequiredString(driver.Name, "name"); err != nil {
		return common.Validationf("%s", err.Error())
	}
	if !validDriverType(driver.Type) {
		return common.Validationf("type must be company or owner")
	}
	if driver.PayRateType != "" && !validRateType(driver.PayRateType) {
		return common.Validationf("invalid pay rate type")
	}
	if driver.PayRate < 0 {
		return common.Validationf("pay rate cannot be negative")
	}
	if driver.TaxWithholdingPercent < 0 || driver.TaxWithholdingPercent > 100 {
		return common.Validationf("tax withholding percent must be between 0 and 100")
	}
	return nil
}

func (s *driverService) Create(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	if err := validateDriver(driver); err != nil {
		return nil, err
	}

	driver.ID = uuid.New()
	driver.ApplyTypeDefaults()
	if driver.Status == "" {
		driver.Status = "active"
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

func (s *driverService) GetByID(ctx context.Context, companyID, driverID uuid.UUID) (*models.Driver, error) {
	if cached, err := s.cache.GetDriver(ctx, companyID, driverID); err == nil && cached != nil {
		return cached, nil
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.CompanyID != companyID {
		return nil, common.NotFoundf("driver")
	}

	if err := s.cache.SetDriver(ctx, companyID, driver, driverCacheTTL); err != nil {
		log.Printf("WARN: failed to cache driver %s: %v", driver.ID, err)
	}
	return driver, nil
}

func (s *driverService) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Driver, error) {
	return s.driverRepo.GetByUserID(ctx, userID)
}

func (s *driverService) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Driver, error) {
	return s.driverRepo.ListByCompany(ctx, companyID)
}

func (s *driverService) Update(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	if err := validateDriver(driver); err != nil {
		return nil, err
	}

	existing, err := s.driverRepo.GetByID(ctx, driver.ID)
	if err != nil {
		return nil, err
	}
	if existing.CompanyID != driver.CompanyID {
		return nil, common.NotFoundf("driver")
	}

	// company_id and created_at never change on update
	driver.CreatedAt = existing.CreatedAt
	driver.ApplyTypeDefaults()

	if err := s.driverRepo.Update(ctx, driver); err != nil {
		return nil, err
	}
	if err := s.cache.DeleteDriver(ctx, driver.CompanyID, driver.ID); err != nil {
		log.Printf("WARN: failed to invalidate driver cache %s: %v", driver.ID, err)
	}
	return driver, nil
}

func (s *driverService) Delete(ctx context.Context, companyID, driverID uuid.UUID) error {
	existing, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return err
	}
	if existing.CompanyID != companyID {
		return common.NotFoundf("driver")
	}

	if err := s.driverRepo.Delete(ctx, driverID); err != nil {
		return err
	}
	if err := s.cache.DeleteDriver(ctx, companyID, driverID); err != nil {
		log.Printf("WARN: failed to invalidate driver cache %s: %v", driverID, err)
	}
	return nil
}
