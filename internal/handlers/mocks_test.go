package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
)

// driverContext builds an Echo context for a driver-role caller whose own
// driver record has already been resolved by the access guard.
func driverContext(e *echo.Echo, method, target, body string, companyID uuid.UUID, driver *models.Driver) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	ctx := req.Context()
	ctx = context.WithValue(ctx, common.UserIDKey, uuid.New())
	ctx = context.WithValue(ctx, common.CompanyIDKey, companyID)
	ctx = context.WithValue(ctx, common.RoleKey, models.RoleDriver)
	ctx = context.WithValue(ctx, common.DriverKey, driver)
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type MockTripService struct {
	mock.Mock
}

func (m *MockTripService) Create(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	args := m.Called(ctx, trip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripService) GetByID(ctx context.Context, companyID, tripID uuid.UUID) (*models.Trip, error) {
	args := m.Called(ctx, companyID, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripService) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Trip, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Trip), args.Error(1)
}

func (m *MockTripService) ListByDriver(ctx context.Context, companyID, driverID uuid.UUID) ([]*models.Trip, error) {
	args := m.Called(ctx, companyID, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Trip), args.Error(1)
}

func (m *MockTripService) Update(ctx context.Context, trip *models.Trip, amountOverride *float64) (*models.Trip, error) {
	args := m.Called(ctx, trip, amountOverride)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripService) Delete(ctx context.Context, companyID, tripID uuid.UUID) error {
	args := m.Called(ctx, companyID, tripID)
	return args.Error(0)
}

type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) Create(ctx context.Context, companyID uuid.UUID, expense *models.Expense) (*models.Expense, error) {
	args := m.Called(ctx, companyID, expense)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expense), args.Error(1)
}

func (m *MockExpenseService) GetByID(ctx context.Context, companyID, expenseID uuid.UUID) (*models.Expense, error) {
	args := m.Called(ctx, companyID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expense), args.Error(1)
}

func (m *MockExpenseService) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Expense, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Expense), args.Error(1)
}

func (m *MockExpenseService) ListByDriver(ctx context.Context, companyID, driverID uuid.UUID) ([]*models.Expense, error) {
	args := m.Called(ctx, companyID, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Expense), args.Error(1)
}

func (m *MockExpenseService) ListByCategory(ctx context.Context, companyID uuid.UUID, category string) ([]*models.Expense, error) {
	args := m.Called(ctx, companyID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Expense), args.Error(1)
}

func (m *MockExpenseService) CreateFromReceipt(ctx context.Context, companyID, userID, receiptID uuid.UUID, onlyDriverID *uuid.UUID) (*models.Expense, error) {
	args := m.Called(ctx, companyID, userID, receiptID, onlyDriverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expense), args.Error(1)
}

func (m *MockExpenseService) CategorySummary(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]*models.ExpenseCategorySummary, error) {
	args := m.Called(ctx, companyID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ExpenseCategorySummary), args.Error(1)
}

func (m *MockExpenseService) DriverSummary(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]*models.ExpenseDriverSummary, error) {
	args := m.Called(ctx, companyID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ExpenseDriverSummary), args.Error(1)
}

func (m *MockExpenseService) Update(ctx context.Context, companyID uuid.UUID, expense *models.Expense) (*models.Expense, error) {
	args := m.Called(ctx, companyID, expense)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expense), args.Error(1)
}

func (m *MockExpenseService) Delete(ctx context.Context, companyID, expenseID uuid.UUID) error {
	args := m.Called(ctx, companyID, expenseID)
	return args.Error(0)
}
