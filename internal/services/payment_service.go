package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
	"github.com/geraud82/NeoPay-sub000/internal/repositories"
)

type PaymentService interface {
	Create(ctx context.Context, companyID uuid.UUID, payment *models.Payment) (*models.Payment, error)
	GetByID(ctx context.Context, companyID, paymentID uuid.UUID) (*models.Payment, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Payment, error)
	ListByDriver(ctx context.Context, companyID, driverID uuid.UUID) ([]*models.Payment, error)
	Update(ctx context.Context, companyID uuid.UUID, payment *models.Payment) (*models.Payment, error)
	MarkPaid(ctx context.Context, companyID, paymentID uuid.UUID) (*models.Payment, error)
	Delete(ctx context.Context, companyID, paymentID uuid.UUID) error
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	driverRepo  repositories.DriverRepository
}

func NewPaymentService(paymentRepo repositories.PaymentRepository, driverRepo repositories.DriverRepository) PaymentService {
	return &paymentService{paymentRepo: paymentRepo, driverRepo: driverRepo}
}

func (s *paymentService) driverInCompany(ctx context.Context, companyID, driverID uuid.UUID) error {
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return err
	}
	if driver.CompanyID != companyID {
		return common.NotFoundf("driver")
	}
	return nil
}

func validatePayment(payment *models.Payment) error {
	if err := common.ValidatePositiveFloat(payment.Amount, "amount"); err != nil {
		return common.Validationf("%s", err.Error())
	}
	if payment.PaymentType != "" && !models.ValidPaymentType(payment.PaymentType) {
		return common.Validationf("invalid payment type")
	}
	if payment.PaymentDate.IsZero() {
		return common.Validationf("payment date is required")
	}
	return nil
}

func (s *paymentService) Create(ctx context.Context, companyID uuid.UUID, payment *models.Payment) (*models.Payment, error) {
	if payment.PaymentType == "" {
		payment.PaymentType = models.PaymentTypePayment
	}
	if err := validatePayment(payment); err != nil {
		return nil, err
	}
	if err := s.driverInCompany(ctx, companyID, payment.DriverID); err != nil {
		return nil, err
	}

	payment.ID = uuid.New()
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = payment.CreatedAt

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) GetByID(ctx context.Context, companyID, paymentID uuid.UUID) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := s.driverInCompany(ctx, companyID, payment.DriverID); err != nil {
		return nil, common.NotFoundf("payment")
	}
	return payment, nil
}

func (s *paymentService) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Payment, error) {
	return s.paymentRepo.ListByCompany(ctx, companyID)
}

func (s *paymentService) ListByDriver(ctx context.Context, companyID, driverID uuid.UUID) ([]*models.Payment, error) {
	if err := s.driverInCompany(ctx, companyID, driverID); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByDriver(ctx, driverID)
}

func (s *paymentService) Update(ctx context.Context, companyID uuid.UUID, payment *models.Payment) (*models.Payment, error) {
	existing, err := s.GetByID(ctx, companyID, payment.ID)
	if err != nil {
		return nil, err
	}
	if payment.PaymentType == "" {
		payment.PaymentType = existing.PaymentType
	}
	if err := validatePayment(payment); err != nil {
		return nil, err
	}

	// driver and statement linkage are fixed at creation
	payment.DriverID = existing.DriverID
	payment.StatementID = existing.StatementID
	payment.CreatedAt = existing.CreatedAt
	if payment.Status == "" {
		payment.Status = existing.Status
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) MarkPaid(ctx context.Context, companyID, paymentID uuid.UUID) (*models.Payment, error) {
	payment, err := s.GetByID(ctx, companyID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status == models.PaymentStatusPaid {
		return payment, nil
	}

	payment.Status = models.PaymentStatusPaid
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) Delete(ctx context.Context, companyID, paymentID uuid.UUID) error {
	payment, err := s.GetByID(ctx, companyID, paymentID)
	if err != nil {
		return err
	}
	if payment.Status == models.PaymentStatusPaid {
		return common.Validationf("paid payments cannot be deleted")
	}
	return s.paymentRepo.Delete(ctx, paymentID)
}
