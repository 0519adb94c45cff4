package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/geraud82/NeoPay-sub000/internal/caching"
	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
	"github.com/geraud82/NeoPay-sub000/internal/payroll"
	"github.com/geraud82/NeoPay-sub000/internal/repositories"
)

const statementCacheTTL = 10 * time.Minute

type StatementService interface {
	Generate(ctx context.Context, companyID, driverID uuid.UUID, periodStart, periodEnd time.Time) (*models.PayStatement, error)
	GetByID(ctx context.Context, companyID, statementID uuid.UUID) (*models.PayStatement, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.PayStatement, error)
	ListByDriver(ctx context.Context, companyID, driverID uuid.UUID) ([]*models.PayStatement, error)
	UpdateStatus(ctx context.Context, companyID, statementID uuid.UUID, status string) (*models.PayStatement, error)
	Delete(ctx context.Context, companyID, statementID uuid.UUID) error
}

type statementService struct {
	statementRepo repositories.StatementRepository
	driverRepo    repositories.DriverRepository
	tripRepo      repositories.TripRepository
	expenseRepo   repositories.ExpenseRepository
	paymentRepo   repositories.PaymentRepository
	cache         caching.CacheService
}

func NewStatementService(statementRepo repositories.StatementRepository, driverRepo repositories.DriverRepository,
	tripRepo repositories.TripRepository, expenseRepo repositories.ExpenseRepository,
	paymentRepo repositories.PaymentRepository, cache caching.CacheService) StatementService {
	return &statementService{
		statementRepo: statementRepo,
		driverRepo:    driverRepo,
		tripRepo:      tripRepo,
		expenseRepo:   expenseRepo,
		paymentRepo:   paymentRepo,
		cache:         cache,
	}
}

// Generate aggregates a driver's period into a draft pay statement and
// records a companion Pending payment for the net amount.
func (s *statementService) Generate(ctx context.Context, companyID, driverID uuid.UUID, periodStart, periodEnd time.Time) (*models.PayStatement, error) {
	if err := common.ValidateDateRange(periodStart, periodEnd); err != nil {
		return nil, common.Validationf("%s", err.Error())
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.CompanyID != companyID {
		return nil, common.NotFoundf("driver")
	}

	trips, err := s.tripRepo.ListByDriverBetween(ctx, driverID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListByDriverBetween(ctx, driverID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	advances, err := s.paymentRepo.ListByDriverTypeBetween(ctx, driverID, models.PaymentTypeCashAdvance, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	deductions, err := s.paymentRepo.ListByDriverTypeBetween(ctx, driverID, models.PaymentTypeDeduction, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	statement := payroll.BuildStatement(payroll.StatementInput{
		CompanyID:             companyID,
		Driver:                driver,
		PeriodStart:           periodStart,
		PeriodEnd:             periodEnd,
		Trips:                 trips,
		Expenses:              expenses,
		CashAdvances:          advances,
		Deductions:            deductions,
		TaxWithholdingPercent: driver.TaxWithholdingPercent,
	})

	if err := s.statementRepo.Create(ctx, statement); err != nil {
		return nil, err
	}

	// The payout itself is tracked as a Pending payment tied to the
	// statement; marking it Paid later is a payment-side operation.
	if statement.NetPay > 0 {
		payment := &models.Payment{
			ID:          uuid.New(),
			DriverID:    driverID,
			Amount:      statement.NetPay,
			PaymentDate: statement.GeneratedDate,
			Status:      models.PaymentStatusPending,
			PaymentType: models.PaymentTypePayment,
			Description: fmt.Sprintf("Pay statement %s to %s", periodStart.Format("2006-01-02"), periodEnd.Format("2006-01-02")),
			StatementID: &statement.ID,
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return nil, err
		}
	}

	return statement, nil
}

func (s *statementService) GetByID(ctx context.Context, companyID, statementID uuid.UUID) (*models.PayStatement, error) {
	if cached, err := s.cache.GetStatement(ctx, companyID, statementID); err == nil && cached != nil {
		return cached, nil
	}

	statement, err := s.statementRepo.GetByID(ctx, statementID)
	if err != nil {
		return nil, err
	}
	if statement.CompanyID != companyID {
		return nil, common.NotFoundf("pay statement")
	}

	if err := s.cache.SetStatement(ctx, companyID, statement, statementCacheTTL); err != nil {
		log.Printf("WARN: failed to cache statement %s: %v", statementID, err)
	}
	return statement, nil
}

func (s *statementService) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.PayStatement, error) {
	return s.statementRepo.ListByCompany(ctx, companyID)
}

func (s *statementService) ListByDriver(ctx context.Context, companyID, driverID uuid.UUID) ([]*models.PayStatement, error) {
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.CompanyID != companyID {
		return nil, common.NotFoundf("driver")
	}
	return s.statementRepo.ListByDriver(ctx, driverID)
}

// UpdateStatus advances a statement along draft → finalized → paid. Any
// other transition, and any attempt to touch monetary fields, is rejected.
func (s *statementService) UpdateStatus(ctx context.Context, companyID, statementID uuid.UUID, status string) (*models.PayStatement, error) {
	statement, err := s.statementRepo.GetByID(ctx, statementID)
	if err != nil {
		return nil, err
	}
	if statement.CompanyID != companyID {
		return nil, common.NotFoundf("pay statement")
	}
	if !models.NextStatementStatus(statement.Status, status) {
		return nil, common.Validationf("cannot move statement from %s to %s", statement.Status, status)
	}

	if err := s.statementRepo.UpdateStatus(ctx, statementID, status); err != nil {
		return nil, err
	}
	statement.Status = status

	if err := s.cache.DeleteStatement(ctx, companyID, statementID); err != nil {
		log.Printf("WARN: failed to invalidate statement cache %s: %v", statementID, err)
	}
	return statement, nil
}

func (s *statementService) Delete(ctx context.Context, companyID, statementID uuid.UUID) error {
	statement, err := s.statementRepo.GetByID(ctx, statementID)
	if err != nil {
		return err
	}
	if statement.CompanyID != companyID {
		return common.NotFoundf("pay statement")
	}
	if statement.Status != models.StatementStatusDraft {
		return common.Validationf("only draft statements can be deleted")
	}

	if err := s.statementRepo.Delete(ctx, statementID); err != nil {
		return err
	}
	if err := s.cache.DeleteStatement(ctx, companyID, statementID); err != nil {
		log.Printf("WARN: failed to invalidate statement cache %s: %v", statementID, err)
	}
	return nil
}
