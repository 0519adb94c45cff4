package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
	"github.com/geraud82/NeoPay-sub000/internal/payroll"
	"github.com/geraud82/NeoPay-sub000/internal/repositories"
)

type TripService interface {
	Create(ctx context.Context, trip *models.Trip) (*models.Trip, error)
	GetByID(ctx context.Context, companyID, tripID uuid.UUID) (*models.Trip, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Trip, error)
	ListByDriver(ctx context.Context, companyID, driverID uuid.UUID) ([]*models.Trip, error)
	Update(ctx context.Context, trip *models.Trip, amountOverride *float64) (*models.Trip, error)
	Delete(ctx context.Context, companyID, tripID uuid.UUID) error
}

type tripService struct {
	tripRepo   repositories.TripRepository
	driverRepo repositories.DriverRepository
	loadRepo   repositories.LoadRepository
}

func NewTripService(tripRepo repositories.TripRepository, driverRepo repositories.DriverRepository,
	loadRepo repositories.LoadRepository) TripService {
	return &tripService{tripRepo: tripRepo, driverRepo: driverRepo, loadRepo: loadRepo}
}

// resolveRate fills rate and rate type. A trip without an explicit rate
// inherits the driver's pay profile.
func (s *tripService) resolveRate(trip *models.Trip, driver *models.Driver) error {
	if trip.RateType == "" {
		if driver.PayRateType != "" {
			trip.RateType = driver.PayRateType
		} else {
			trip.RateType = payroll.DefaultRateType(driver.Type)
		}
	}
	if !validRateType(trip.RateType) {
		return common.Validationf("invalid rate type")
	}
	if trip.Rate == 0 {
		trip.Rate = driver.PayRate
	}
	if trip.Rate < 0 {
		return common.Validationf("rate cannot be negative")
	}

	// Distance drives the pay for mileage-based rates, so it must be
	// strictly positive there; hourly and fixed trips may omit it.
	switch trip.RateType {
	case models.RateTypePerMile, models.RateTypePercentage:
		if err := common.ValidatePositiveFloat(trip.Distance, "distance"); err != nil {
			return common.Validationf("%s", err.Error())
		}
	default:
		if trip.Distance < 0 {
			return common.Validationf("distance cannot be negative")
		}
	}
	return nil
}

func (s *tripService) computeAmount(trip *models.Trip) error {
	amount, err := payroll.ComputeTripAmount(trip.RateType, trip.Distance, trip.Rate, trip.HoursWorked)
	if err != nil {
		return common.Validationf("%s", err.Error())
	}
	trip.Amount = amount
	return nil
}

func (s *tripService) validateTrip(ctx context.Context, trip *models.Trip) (*models.Driver, error) {
	driver, err := s.driverRepo.GetByID(ctx, trip.DriverID)
	if err != nil {
		return nil, err
	}
	if driver.CompanyID != trip.CompanyID {
		return nil, common.Validationf("driver does not belong to this company")
	}

	if trip.LoadID != nil {
		load, err := s.loadRepo.GetByID(ctx, *trip.LoadID)
		if err != nil {
			return nil, err
		}
		if load.CompanyID != trip.CompanyID {
			return nil, common.Validationf("load does not belong to this company")
		}
	}

	if trip.TripDate.IsZero() {
		return nil, common.Validationf("trip date is required")
	}
	return driver, nil
}

func (s *tripService) Create(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	driver, err := s.validateTrip(ctx, trip)
	if err != nil {
		return nil, err
	}
	if err := s.resolveRate(trip, driver); err != nil {
		return nil, err
	}
	if err := s.computeAmount(trip); err != nil {
		return nil, err
	}

	trip.ID = uuid.New()
	if trip.Status == "" {
		trip.Status = models.TripStatusPending
	}
	trip.CreatedAt = time.Now()
	trip.UpdatedAt = trip.CreatedAt

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *tripService) GetByID(ctx context.Context, companyID, tripID uuid.UUID) (*models.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.CompanyID != companyID {
		return nil, common.NotFoundf("trip")
	}
	return trip, nil
}

func (s *tripService) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Trip, error) {
	return s.tripRepo.ListByCompany(ctx, companyID)
}

func (s *tripService) ListByDriver(ctx context.Context, companyID, driverID uuid.UUID) ([]*models.Trip, error) {
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.CompanyID != companyID {
		return nil, common.NotFoundf("driver")
	}
	return s.tripRepo.ListByDriver(ctx, driverID)
}

// Update recomputes the amount whenever distance, rate or rate type changed.
// When all three are unchanged an explicitly supplied amount is accepted as
// an override of the computed value.
func (s *tripService) Update(ctx context.Context, trip *models.Trip, amountOverride *float64) (*models.Trip, error) {
	existing, err := s.tripRepo.GetByID(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	if existing.CompanyID != trip.CompanyID {
		return nil, common.NotFoundf("trip")
	}

	driver, err := s.validateTrip(ctx, trip)
	if err != nil {
		return nil, err
	}
	if err := s.resolveRate(trip, driver); err != nil {
		return nil, err
	}

	payUnchanged := trip.Distance == existing.Distance &&
		trip.Rate == existing.Rate &&
		trip.RateType == existing.RateType
	if payUnchanged && amountOverride != nil {
		if *amountOverride < 0 {
			return nil, common.Validationf("amount cannot be negative")
		}
		trip.Amount = payroll.Round2(*amountOverride)
	} else if err := s.computeAmount(trip); err != nil {
		return nil, err
	}

	trip.CreatedAt = existing.CreatedAt
	if trip.Status == "" {
		trip.Status = existing.Status
	}

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *tripService) Delete(ctx context.Context, companyID, tripID uuid.UUID) error {
	existing, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return err
	}
	if existing.CompanyID != companyID {
		return common.NotFoundf("trip")
	}
	return s.tripRepo.Delete(ctx, tripID)
}
