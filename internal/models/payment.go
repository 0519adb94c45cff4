package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"

	// payment_type distinguishes ordinary payouts from payroll deduction
	// lines; cash advances and deductions enter the pay-statement math as
	// separate totals.
	PaymentTypePayment     = "payment"
	PaymentTypeCashAdvance = "cash_advance"
	PaymentTypeDeduction   = "deduction"
)

func ValidPaymentType(t string) bool {
	switch t {
	case PaymentTypePayment, PaymentTypeCashAdvance, PaymentTypeDeduction:
		return true
	}
	return false
}

type Payment struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	DriverID    uuid.UUID  `json:"driver_id" db:"driver_id"`
	Amount      float64    `json:"amount" db:"amount"`
	PaymentDate time.Time  `json:"payment_date" db:"payment_date"`
	Status      string     `json:"status" db:"status"`
	PaymentType string     `json:"payment_type" db:"payment_type"`
	Description string     `json:"description" db:"description"`
	StatementID *uuid.UUID `json:"statement_id" db:"statement_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type PaymentView struct {
	ID          uuid.UUID  `json:"id"`
	DriverID    uuid.UUID  `json:"driverId"`
	Amount      float64    `json:"amount"`
	Date        string     `json:"date"`
	Status      string     `json:"status"`
	PaymentType string     `json:"paymentType"`
	Description string     `json:"description"`
	StatementID *uuid.UUID `json:"statementId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (p *Payment) View() PaymentView {
	return PaymentView{
		ID:          p.ID,
		DriverID:    p.DriverID,
		Amount:      p.Amount,
		Date:        p.PaymentDate.Format("2006-01-02"),
		Status:      p.Status,
		PaymentType: p.PaymentType,
		Description: p.Description,
		StatementID: p.StatementID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func PaymentViews(payments []*Payment) []PaymentView {
	views := make([]PaymentView, 0, len(payments))
	for _, p := range payments {
		views = append(views, p.View())
	}
	return views
}
