package payroll

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/geraud82/NeoPay-sub000/internal/models"
)

func testDriver(taxPercent float64) *models.Driver {
	return &models.Driver{
		ID:                    uuid.New(),
		CompanyID:             uuid.New(),
		Name:                  "Dale Horvath",
		Type:                  models.DriverTypeCompany,
		PayRate:               0.55,
		PayRateType:           models.RateTypePerMile,
		TaxWithholdingPercent: taxPercent,
	}
}

func TestBuildStatementAggregation(t *testing.T) {
	driver := testDriver(10)
	companyID := driver.CompanyID
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	stmt := BuildStatement(StatementInput{
		CompanyID:   companyID,
		Driver:      driver,
		PeriodStart: start,
		PeriodEnd:   end,
		Trips: []*models.Trip{
			{Amount: 110.00},
			{Amount: 40.00},
		},
		Expenses: []*models.Expense{
			{Amount: 30.00},
		},
		CashAdvances: []*models.Payment{
			{Amount: 20.00, PaymentType: models.PaymentTypeCashAdvance},
		},
		Deductions: []*models.Payment{
			{Amount: 11.50, PaymentType: models.PaymentTypeDeduction},
		},
		TaxWithholdingPercent: 10,
	})

	assert.Equal(t, 150.00, stmt.TripTotal)
	assert.Equal(t, 150.00, stmt.GrossPay)
	assert.Equal(t, 30.00, stmt.ExpenseTotal)
	assert.Equal(t, 20.00, stmt.CashAdvanceTotal)
	assert.Equal(t, 15.00, stmt.TaxWithholding)
	assert.Equal(t, 11.50, stmt.DeductionsTotal)
	assert.Equal(t, 73.50, stmt.NetPay)
	assert.Equal(t, models.StatementStatusDraft, stmt.Status)
	assert.Equal(t, driver.Name, stmt.DriverName)
	assert.Equal(t, companyID, stmt.CompanyID)
	assert.True(t, stmt.PeriodStart.Equal(start))
	assert.True(t, stmt.PeriodEnd.Equal(end))
}

func TestBuildStatementEmptyPeriod(t *testing.T) {
	driver := testDriver(25)

	stmt := BuildStatement(StatementInput{
		CompanyID:             driver.CompanyID,
		Driver:                driver,
		PeriodStart:           time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:             time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
		TaxWithholdingPercent: 25,
	})

	assert.Equal(t, 0.0, stmt.GrossPay)
	assert.Equal(t, 0.0, stmt.TaxWithholding)
	assert.Equal(t, 0.0, stmt.NetPay)
	assert.Equal(t, models.StatementStatusDraft, stmt.Status)
}

func TestBuildStatementNegativeNetPay(t *testing.T) {
	driver := testDriver(0)

	stmt := BuildStatement(StatementInput{
		CompanyID:   driver.CompanyID,
		Driver:      driver,
		PeriodStart: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		Trips:       []*models.Trip{{Amount: 50.00}},
		CashAdvances: []*models.Payment{
			{Amount: 80.00, PaymentType: models.PaymentTypeCashAdvance},
		},
	})

	assert.Equal(t, -30.00, stmt.NetPay)
}

func TestBuildStatementRoundsTotals(t *testing.T) {
	driver := testDriver(15)

	stmt := BuildStatement(StatementInput{
		CompanyID:   driver.CompanyID,
		Driver:      driver,
		PeriodStart: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Trips: []*models.Trip{
			{Amount: 33.333},
			{Amount: 33.333},
			{Amount: 33.333},
		},
		TaxWithholdingPercent: 15,
	})

	assert.Equal(t, 100.00, stmt.GrossPay)
	assert.Equal(t, 15.00, stmt.TaxWithholding)
	assert.Equal(t, 85.00, stmt.NetPay)
}
