package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockDriverRepo  *MockDriverRepository
	mockReceiptRepo *MockReceiptRepository
	service         ExpenseService

	companyID uuid.UUID
	driverID  uuid.UUID
	userID    uuid.UUID
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = &MockExpenseRepository{}
	suite.mockDriverRepo = &MockDriverRepository{}
	suite.mockReceiptRepo = &MockReceiptRepository{}
	suite.service = NewExpenseService(suite.mockExpenseRepo, suite.mockDriverRepo, suite.mockReceiptRepo)

	suite.companyID = uuid.New()
	suite.driverID = uuid.New()
	suite.userID = uuid.New()

	suite.mockExpenseRepo.Test(suite.T())
	suite.mockDriverRepo.Test(suite.T())
	suite.mockReceiptRepo.Test(suite.T())
}

func (suite *ExpenseServiceTestSuite) TearDownTest() {
	suite.mockExpenseRepo.AssertExpectations(suite.T())
	suite.mockDriverRepo.AssertExpectations(suite.T())
	suite.mockReceiptRepo.AssertExpectations(suite.T())
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}

func (suite *ExpenseServiceTestSuite) companyDriver() *models.Driver {
	return &models.Driver{
		ID:        suite.driverID,
		CompanyID: suite.companyID,
		Name:      "Alex Carter",
	}
}

func (suite *ExpenseServiceTestSuite) completedReceipt() *models.Receipt {
	vendor := "Pilot Flying J"
	amount := 84.50
	category := "fuel"
	receiptDate := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	return &models.Receipt{
		ID:          uuid.New(),
		DriverID:    suite.driverID,
		FileName:    "fuel.jpg",
		UploadDate:  time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC),
		Status:      models.ReceiptStatusCompleted,
		Vendor:      &vendor,
		ReceiptDate: &receiptDate,
		Amount:      &amount,
		Category:    &category,
	}
}

func (suite *ExpenseServiceTestSuite) TestCreate_MissingCategory() {
	ctx := context.Background()

	expense, err := suite.service.Create(ctx, suite.companyID, &models.Expense{
		DriverID:    suite.driverID,
		Amount:      25,
		ExpenseDate: time.Now(),
	})
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), expense)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *ExpenseServiceTestSuite) TestCreate_DriverInAnotherCompany() {
	ctx := context.Background()

	suite.mockDriverRepo.On("GetByID", ctx, suite.driverID).Return(&models.Driver{
		ID:        suite.driverID,
		CompanyID: uuid.New(),
	}, nil)

	expense, err := suite.service.Create(ctx, suite.companyID, &models.Expense{
		DriverID:    suite.driverID,
		Category:    "fuel",
		Amount:      25,
		ExpenseDate: time.Now(),
	})
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), expense)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *ExpenseServiceTestSuite) TestCreateFromReceipt_CopiesExtractedFields() {
	ctx := context.Background()
	receipt := suite.completedReceipt()

	suite.mockReceiptRepo.On("GetByID", ctx, receipt.ID).Return(receipt, nil)
	suite.mockDriverRepo.On("GetByID", ctx, suite.driverID).Return(suite.companyDriver(), nil)
	suite.mockExpenseRepo.On("Create", ctx, mock.AnythingOfType("*models.Expense")).Return(nil)

	expense, err := suite.service.CreateFromReceipt(ctx, suite.companyID, suite.userID, receipt.ID, nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.driverID, expense.DriverID)
	assert.Equal(suite.T(), "fuel", expense.Category)
	assert.Equal(suite.T(), 84.50, expense.Amount)
	assert.Equal(suite.T(), *receipt.ReceiptDate, expense.ExpenseDate)
	assert.Equal(suite.T(), "Pilot Flying J", expense.Description)
	assert.Equal(suite.T(), &receipt.ID, expense.ReceiptID)
	assert.Equal(suite.T(), suite.userID, expense.UserID)
}

func (suite *ExpenseServiceTestSuite) TestCreateFromReceipt_RefusesUnprocessedReceipt() {
	ctx := context.Background()
	receipt := suite.completedReceipt()
	receipt.Status = models.ReceiptStatusProcessing

	suite.mockReceiptRepo.On("GetByID", ctx, receipt.ID).Return(receipt, nil)
	suite.mockDriverRepo.On("GetByID", ctx, suite.driverID).Return(suite.companyDriver(), nil)

	expense, err := suite.service.CreateFromReceipt(ctx, suite.companyID, suite.userID, receipt.ID, nil)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), expense)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "Create", ctx, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestCreateFromReceipt_AnotherDriversReceipt() {
	ctx := context.Background()
	receipt := suite.completedReceipt()
	otherDriver := uuid.New()

	suite.mockReceiptRepo.On("GetByID", ctx, receipt.ID).Return(receipt, nil)
	suite.mockDriverRepo.On("GetByID", ctx, suite.driverID).Return(suite.companyDriver(), nil)

	expense, err := suite.service.CreateFromReceipt(ctx, suite.companyID, suite.userID, receipt.ID, &otherDriver)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), expense)
	assert.ErrorIs(suite.T(), err, common.ErrForbidden)
}

func (suite *ExpenseServiceTestSuite) TestCreateFromReceipt_FallsBackToUploadDate() {
	ctx := context.Background()
	receipt := suite.completedReceipt()
	receipt.ReceiptDate = nil
	receipt.Vendor = nil

	suite.mockReceiptRepo.On("GetByID", ctx, receipt.ID).Return(receipt, nil)
	suite.mockDriverRepo.On("GetByID", ctx, suite.driverID).Return(suite.companyDriver(), nil)
	suite.mockExpenseRepo.On("Create", ctx, mock.AnythingOfType("*models.Expense")).Return(nil)

	expense, err := suite.service.CreateFromReceipt(ctx, suite.companyID, suite.userID, receipt.ID, nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), receipt.UploadDate, expense.ExpenseDate)
	assert.Equal(suite.T(), "Imported from receipt fuel.jpg", expense.Description)
}

func (suite *ExpenseServiceTestSuite) TestListByCategory_RequiresCategory() {
	ctx := context.Background()

	expenses, err := suite.service.ListByCategory(ctx, suite.companyID, "")
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), expenses)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *ExpenseServiceTestSuite) TestListByCategory_ScopesToCompany() {
	ctx := context.Background()
	expected := []*models.Expense{{ID: uuid.New(), DriverID: suite.driverID, Category: "fuel"}}

	suite.mockExpenseRepo.On("ListByCategory", ctx, suite.companyID, "fuel").Return(expected, nil)

	expenses, err := suite.service.ListByCategory(ctx, suite.companyID, "fuel")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), expected, expenses)
}
