package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/geraud82/NeoPay-sub000/internal/models"
)

type MockDriverRepository struct {
	mock.Mock
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *models.Driver) error {
	args := m.Called(ctx, driver)
	return args.Error(0)
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Driver, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Driver), args.Error(1)
}

func (m *MockDriverRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Driver, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Driver), args.Error(1)
}

func (m *MockDriverRepository) Update(ctx context.Context, driver *models.Driver) error {
	args := m.Called(ctx, driver)
	return args.Error(0)
}

func (m *MockDriverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) Create(ctx context.Context, trip *models.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Trip, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Trip), args.Error(1)
}

func (m *MockTripRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.Trip, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Trip), args.Error(1)
}

func (m *MockTripRepository) ListByDriverBetween(ctx context.Context, driverID uuid.UUID, start, end time.Time) ([]*models.Trip, error) {
	args := m.Called(ctx, driverID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Trip), args.Error(1)
}

func (m *MockTripRepository) Update(ctx context.Context, trip *models.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockLoadRepository struct {
	mock.Mock
}

func (m *MockLoadRepository) Create(ctx context.Context, load *models.Load) error {
	args := m.Called(ctx, load)
	return args.Error(0)
}

func (m *MockLoadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Load, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Load), args.Error(1)
}

func (m *MockLoadRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Load, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Load), args.Error(1)
}

func (m *MockLoadRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.Load, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Load), args.Error(1)
}

func (m *MockLoadRepository) Update(ctx context.Context, load *models.Load) error {
	args := m.Called(ctx, load)
	return args.Error(0)
}

func (m *MockLoadRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockLoadRepository) AssignDriver(ctx context.Context, id uuid.UUID, driverID *uuid.UUID) error {
	args := m.Called(ctx, id, driverID)
	return args.Error(0)
}

func (m *MockLoadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.Expense, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListByDriverBetween(ctx context.Context, driverID uuid.UUID, start, end time.Time) ([]*models.Expense, error) {
	args := m.Called(ctx, driverID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Expense, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListByCategory(ctx context.Context, companyID uuid.UUID, category string) ([]*models.Expense, error) {
	args := m.Called(ctx, companyID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Expense), args.Error(1)
}

func (m *MockExpenseRepository) CategorySummary(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]*models.ExpenseCategorySummary, error) {
	args := m.Called(ctx, companyID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ExpenseCategorySummary), args.Error(1)
}

func (m *MockExpenseRepository) DriverSummary(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]*models.ExpenseDriverSummary, error) {
	args := m.Called(ctx, companyID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ExpenseDriverSummary), args.Error(1)
}

func (m *MockExpenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.Payment, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Payment, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByDriverTypeBetween(ctx context.Context, driverID uuid.UUID, paymentType string, start, end time.Time) ([]*models.Payment, error) {
	args := m.Called(ctx, driverID, paymentType, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStatementRepository struct {
	mock.Mock
}

func (m *MockStatementRepository) Create(ctx context.Context, statement *models.PayStatement) error {
	args := m.Called(ctx, statement)
	return args.Error(0)
}

func (m *MockStatementRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PayStatement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PayStatement), args.Error(1)
}

func (m *MockStatementRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.PayStatement, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PayStatement), args.Error(1)
}

func (m *MockStatementRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.PayStatement, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PayStatement), args.Error(1)
}

func (m *MockStatementRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockStatementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) Create(ctx context.Context, receipt *models.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.Receipt, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) SetExtractionResult(ctx context.Context, receipt *models.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockReceiptRepository) ListStuckProcessing(ctx context.Context, olderThan time.Time) ([]*models.Receipt, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetDriver(ctx context.Context, companyID, driverID uuid.UUID) (*models.Driver, error) {
	args := m.Called(ctx, companyID, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Driver), args.Error(1)
}

func (m *MockCacheService) SetDriver(ctx context.Context, companyID uuid.UUID, driver *models.Driver, ttl time.Duration) error {
	args := m.Called(ctx, companyID, driver, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteDriver(ctx context.Context, companyID, driverID uuid.UUID) error {
	args := m.Called(ctx, companyID, driverID)
	return args.Error(0)
}

func (m *MockCacheService) GetStatement(ctx context.Context, companyID, statementID uuid.UUID) (*models.PayStatement, error) {
	args := m.Called(ctx, companyID, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PayStatement), args.Error(1)
}

func (m *MockCacheService) SetStatement(ctx context.Context, companyID uuid.UUID, statement *models.PayStatement, ttl time.Duration) error {
	args := m.Called(ctx, companyID, statement, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteStatement(ctx context.Context, companyID, statementID uuid.UUID) error {
	args := m.Called(ctx, companyID, statementID)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateCompanyCache(ctx context.Context, companyID uuid.UUID) error {
	args := m.Called(ctx, companyID)
	return args.Error(0)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) UploadReceipt(ctx context.Context, bucketName, objectName, contentType string, reader io.Reader, objectSize int64) error {
	args := m.Called(ctx, bucketName, objectName, contentType, reader, objectSize)
	return args.Error(0)
}

func (m *MockStorageService) GetPresignedURL(bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) DeleteReceipt(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *MockStorageService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}
