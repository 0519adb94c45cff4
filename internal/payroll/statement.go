package payroll

import (
	"time"

	"github.com/google/uuid"

	"github.com/geraud82/NeoPay-sub000/internal/models"
)

// StatementInput carries everything the aggregation needs; the caller loads
// the trips, expenses and payments falling inside the period.
type StatementInput struct {
	CompanyID             uuid.UUID
	Driver                *models.Driver
	PeriodStart           time.Time
	PeriodEnd             time.Time
	Trips                 []*models.Trip
	Expenses              []*models.Expense
	CashAdvances          []*models.Payment
	Deductions            []*models.Payment
	TaxWithholdingPercent float64
}

// BuildStatement aggregates a driver's period into a pay statement:
//
//	gross = sum(trip amounts)
//	net   = gross - expenses - cash advances - gross*tax% - deductions
//
// All totals are rounded to cents. Monetary fields never go below what the
// math yields; a negative net pay is reported as-is so the shortfall is
// visible on the statement.
func BuildStatement(in StatementInput) *models.PayStatement {
	var tripTotal float64
	for _, t := range in.Trips {
		tripTotal += t.Amount
	}
	var expenseTotal float64
	for _, e := range in.Expenses {
		expenseTotal += e.Amount
	}
	var advanceTotal float64
	for _, p := range in.CashAdvances {
		advanceTotal += p.Amount
	}
	var deductionTotal float64
	for _, p := range in.Deductions {
		deductionTotal += p.Amount
	}

	gross := Round2(tripTotal)
	tax := Round2(gross * in.TaxWithholdingPercent / 100)
	net := Round2(gross - expenseTotal - advanceTotal - tax - deductionTotal)

	now := time.Now()
	return &models.PayStatement{
		ID:               uuid.New(),
		CompanyID:        in.CompanyID,
		DriverID:         in.Driver.ID,
		DriverName:       in.Driver.Name,
		PeriodStart:      in.PeriodStart,
		PeriodEnd:        in.PeriodEnd,
		TripTotal:        gross,
		ExpenseTotal:     Round2(expenseTotal),
		CashAdvanceTotal: Round2(advanceTotal),
		GrossPay:         gross,
		TaxWithholding:   tax,
		DeductionsTotal:  Round2(deductionTotal),
		NetPay:           net,
		Status:           models.StatementStatusDraft,
		GeneratedDate:    now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
