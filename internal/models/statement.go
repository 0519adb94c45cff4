package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatementStatusDraft     = "draft"
	StatementStatusFinalized = "finalized"
	StatementStatusPaid      = "paid"
)

// PayStatement is an immutable payroll snapshot; monetary fields are fixed
// at generation and only the status moves forward afterwards.
type PayStatement struct {
	ID               uuid.UUID `json:"id" db:"id"`
	CompanyID        uuid.UUID `json:"company_id" db:"company_id"`
	DriverID         uuid.UUID `json:"driver_id" db:"driver_id"`
	DriverName       string    `json:"driver_name" db:"driver_name"`
	PeriodStart      time.Time `json:"period_start" db:"period_start"`
	PeriodEnd        time.Time `json:"period_end" db:"period_end"`
	TripTotal        float64   `json:"trip_total" db:"trip_total"`
	ExpenseTotal     float64   `json:"expense_total" db:"expense_total"`
	CashAdvanceTotal float64   `json:"cash_advance_total" db:"cash_advance_total"`
	GrossPay         float64   `json:"gross_pay" db:"gross_pay"`
	TaxWithholding   float64   `json:"tax_withholding" db:"tax_withholding"`
	DeductionsTotal  float64   `json:"deductions_total" db:"deductions_total"`
	NetPay           float64   `json:"net_pay" db:"net_pay"`
	Status           string    `json:"status" db:"status"`
	GeneratedDate    time.Time `json:"generated_date" db:"generated_date"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// NextStatementStatus reports whether a status transition moves forward in
// the draft → finalized → paid chain.
func NextStatementStatus(current, next string) bool {
	switch {
	case current == StatementStatusDraft && next == StatementStatusFinalized:
		return true
	case current == StatementStatusFinalized && next == StatementStatusPaid:
		return true
	}
	return false
}

type PayStatementView struct {
	ID               uuid.UUID `json:"id"`
	CompanyID        uuid.UUID `json:"companyId"`
	DriverID         uuid.UUID `json:"driverId"`
	DriverName       string    `json:"driverName"`
	PeriodStart      string    `json:"periodStart"`
	PeriodEnd        string    `json:"periodEnd"`
	TripTotal        float64   `json:"tripTotal"`
	ExpenseTotal     float64   `json:"expenseTotal"`
	CashAdvanceTotal float64   `json:"cashAdvanceTotal"`
	GrossPay         float64   `json:"grossPay"`
	TaxWithholding   float64   `json:"taxWithholding"`
	DeductionsTotal  float64   `json:"deductionsTotal"`
	NetPay           float64   `json:"netPay"`
	Status           string    `json:"status"`
	GeneratedDate    time.Time `json:"generatedDate"`
}

func (s *PayStatement) View() PayStatementView {
	return PayStatementView{
		ID:               s.ID,
		CompanyID:        s.CompanyID,
		DriverID:         s.DriverID,
		DriverName:       s.DriverName,
		PeriodStart:      s.PeriodStart.Format("2006-01-02"),
		PeriodEnd:        s.PeriodEnd.Format("2006-01-02"),
		TripTotal:        s.TripTotal,
		ExpenseTotal:     s.ExpenseTotal,
		CashAdvanceTotal: s.CashAdvanceTotal,
		GrossPay:         s.GrossPay,
		TaxWithholding:   s.TaxWithholding,
		DeductionsTotal:  s.DeductionsTotal,
		NetPay:           s.NetPay,
		Status:           s.Status,
		GeneratedDate:    s.GeneratedDate,
	}
}

func PayStatementViews(statements []*PayStatement) []PayStatementView {
	views := make([]PayStatementView, 0, len(statements))
	for _, s := range statements {
		views = append(views, s.View())
	}
	return views
}
