package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
	"github.com/geraud82/NeoPay-sub000/internal/repositories"
)

type ExpenseService interface {
	Create(ctx context.Context, companyID uuid.UUID, expense *models.Expense) (*models.Expense, error)
	GetByID(ctx context.Context, companyID, expenseID uuid.UUID) (*models.Expense, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Expense, error)
	ListByDriver(ctx context.Context, companyID, driverID uuid.UUID) ([]*models.Expense, error)
	ListByCategory(ctx context.Context, companyID uuid.UUID, category string) ([]*models.Expense, error)
	CreateFromReceipt(ctx context.Context, companyID, userID, receiptID uuid.UUID, onlyDriverID *uuid.UUID) (*models.Expense, error)
	CategorySummary(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]*models.ExpenseCategorySummary, error)
	DriverSummary(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]*models.ExpenseDriverSummary, error)
	Update(ctx context.Context, companyID uuid.UUID, expense *models.Expense) (*models.Expense, error)
	Delete(ctx context.Context, companyID, expenseID uuid.UUID) error
}

type expenseService struct {
	expenseRepo repositories.ExpenseRepository
	driverRepo  repositories.DriverRepository
	receiptRepo repositories.ReceiptRepository
}

func NewExpenseService(expenseRepo repositories.ExpenseRepository, driverRepo repositories.DriverRepository,
	receiptRepo repositories.ReceiptRepository) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo, driverRepo: driverRepo, receiptRepo: receiptRepo}
}

// driverInCompany resolves the expense's driver and confirms company scope.
func (s *expenseService) driverInCompany(ctx context.Context, companyID, driverID uuid.UUID) error {
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return err
	}
	if driver.CompanyID != companyID {
		return common.NotFoundf("driver")
	}
	return nil
}

func validateExpense(expense *models.Expense) error {
	if err := common.ValidateRequiredString(expense.Category, "category"); err != nil {
		return common.Validationf("%s", err.Error())
	}
	if err := common.ValidatePositiveFloat(expense.Amount, "amount"); err != nil {
		return common.Validationf("%s", err.Error())
	}
	if expense.ExpenseDate.IsZero() {
		return common.Validationf("expense date is required")
	}
	return nil
}

func (s *expenseService) Create(ctx context.Context, companyID uuid.UUID, expense *models.Expense) (*models.Expense, error) {
	if err := validateExpense(expense); err != nil {
		return nil, err
	}
	if err := s.driverInCompany(ctx, companyID, expense.DriverID); err != nil {
		return nil, err
	}

	expense.ID = uuid.New()
	expense.CreatedAt = time.Now()
	expense.UpdatedAt = expense.CreatedAt

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) GetByID(ctx context.Context, companyID, expenseID uuid.UUID) (*models.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if err := s.driverInCompany(ctx, companyID, expense.DriverID); err != nil {
		return nil, common.NotFoundf("expense")
	}
	return expense, nil
}

func (s *expenseService) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Expense, error) {
	return s.expenseRepo.ListByCompany(ctx, companyID)
}

func (s *expenseService) ListByDriver(ctx context.Context, companyID, driverID uuid.UUID) ([]*models.Expense, error) {
	if err := s.driverInCompany(ctx, companyID, driverID); err != nil {
		return nil, err
	}
	return s.expenseRepo.ListByDriver(ctx, driverID)
}

func (s *expenseService) ListByCategory(ctx context.Context, companyID uuid.UUID, category string) ([]*models.Expense, error) {
	if err := common.ValidateRequiredString(category, "category"); err != nil {
		return nil, common.Validationf("%s", err.Error())
	}
	return s.expenseRepo.ListByCategory(ctx, companyID, category)
}

// CreateFromReceipt records an expense from a receipt whose extraction has
// completed, copying the extracted vendor, amount, date and category. A
// non-nil onlyDriverID restricts the import to that driver's receipts.
func (s *expenseService) CreateFromReceipt(ctx context.Context, companyID, userID, receiptID uuid.UUID, onlyDriverID *uuid.UUID) (*models.Expense, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if err := s.driverInCompany(ctx, companyID, receipt.DriverID); err != nil {
		return nil, common.NotFoundf("receipt")
	}
	if onlyDriverID != nil && receipt.DriverID != *onlyDriverID {
		return nil, common.Forbiddenf("receipt belongs to another driver")
	}
	if receipt.Status != models.ReceiptStatusCompleted {
		return nil, common.Validationf("receipt extraction has not completed")
	}
	if receipt.Amount == nil {
		return nil, common.Validationf("receipt has no extracted amount")
	}

	category := "other"
	if receipt.Category != nil && *receipt.Category != "" {
		category = *receipt.Category
	}
	expenseDate := receipt.UploadDate
	if receipt.ReceiptDate != nil {
		expenseDate = *receipt.ReceiptDate
	}
	description := "Imported from receipt " + receipt.FileName
	if receipt.Vendor != nil && *receipt.Vendor != "" {
		description = *receipt.Vendor
	}

	expense := &models.Expense{
		ID:          uuid.New(),
		DriverID:    receipt.DriverID,
		Category:    category,
		Amount:      *receipt.Amount,
		ExpenseDate: expenseDate,
		Description: description,
		ReceiptID:   &receipt.ID,
		UserID:      userID,
	}
	expense.CreatedAt = time.Now()
	expense.UpdatedAt = expense.CreatedAt

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) CategorySummary(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]*models.ExpenseCategorySummary, error) {
	if err := common.ValidateDateRange(start, end); err != nil {
		return nil, common.Validationf("%s", err.Error())
	}
	return s.expenseRepo.CategorySummary(ctx, companyID, start, end)
}

func (s *expenseService) DriverSummary(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]*models.ExpenseDriverSummary, error) {
	if err := common.ValidateDateRange(start, end); err != nil {
		return nil, common.Validationf("%s", err.Error())
	}
	return s.expenseRepo.DriverSummary(ctx, companyID, start, end)
}

func (s *expenseService) Update(ctx context.Context, companyID uuid.UUID, expense *models.Expense) (*models.Expense, error) {
	existing, err := s.GetByID(ctx, companyID, expense.ID)
	if err != nil {
		return nil, err
	}
	if err := validateExpense(expense); err != nil {
		return nil, err
	}

	// driver and creator are fixed at creation
	expense.DriverID = existing.DriverID
	expense.UserID = existing.UserID
	expense.CreatedAt = existing.CreatedAt

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) Delete(ctx context.Context, companyID, expenseID uuid.UUID) error {
	if _, err := s.GetByID(ctx, companyID, expenseID); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, expenseID)
}
