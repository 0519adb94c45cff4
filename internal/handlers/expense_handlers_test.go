package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/geraud82/NeoPay-sub000/internal/models"
)

func TestUpdateExpense_DriverCannotModifyAnotherDriversExpense(t *testing.T) {
	e := echo.New()
	companyID := uuid.New()
	expenseID := uuid.New()
	own := &models.Driver{ID: uuid.New(), CompanyID: companyID, Name: "Alex Carter"}

	expenseSvc := &MockExpenseService{}
	expenseSvc.Test(t)
	// The stored expense belongs to a different driver, no matter whose
	// driverId the request body claims.
	expenseSvc.On("GetByID", mock.Anything, companyID, expenseID).Return(&models.Expense{
		ID:       expenseID,
		DriverID: uuid.New(),
		Category: "fuel",
		Amount:   500,
	}, nil)

	body := `{"driverId":"` + own.ID.String() + `","category":"fuel","amount":1,"date":"2025-03-10"}`
	c, rec := driverContext(e, http.MethodPut, "/api/expenses/"+expenseID.String(), body, companyID, own)
	c.SetPath("/api/expenses/:id")
	c.SetParamNames("id")
	c.SetParamValues(expenseID.String())

	h := NewExpenseHandlers(expenseSvc)
	assert.NoError(t, h.UpdateExpense(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	expenseSvc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateExpense_DriverUpdatesOwnExpense(t *testing.T) {
	e := echo.New()
	companyID := uuid.New()
	expenseID := uuid.New()
	own := &models.Driver{ID: uuid.New(), CompanyID: companyID, Name: "Alex Carter"}

	expenseSvc := &MockExpenseService{}
	expenseSvc.Test(t)
	expenseSvc.On("GetByID", mock.Anything, companyID, expenseID).Return(&models.Expense{
		ID:       expenseID,
		DriverID: own.ID,
		Category: "fuel",
		Amount:   500,
	}, nil)
	expenseSvc.On("Update", mock.Anything, companyID, mock.AnythingOfType("*models.Expense")).Return(&models.Expense{
		ID:          expenseID,
		DriverID:    own.ID,
		Category:    "fuel",
		Amount:      80,
		ExpenseDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}, nil)

	body := `{"driverId":"` + own.ID.String() + `","category":"fuel","amount":80,"date":"2025-03-10"}`
	c, rec := driverContext(e, http.MethodPut, "/api/expenses/"+expenseID.String(), body, companyID, own)
	c.SetPath("/api/expenses/:id")
	c.SetParamNames("id")
	c.SetParamValues(expenseID.String())

	h := NewExpenseHandlers(expenseSvc)
	assert.NoError(t, h.UpdateExpense(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	expenseSvc.AssertExpectations(t)
}
