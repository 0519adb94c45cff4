package models

import (
	"time"

	"github.com/google/uuid"
)

type Expense struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	DriverID    uuid.UUID  `json:"driver_id" db:"driver_id"`
	Category    string     `json:"category" db:"category"`
	Amount      float64    `json:"amount" db:"amount"`
	ExpenseDate time.Time  `json:"expense_date" db:"expense_date"`
	Description string     `json:"description" db:"description"`
	ReceiptID   *uuid.UUID `json:"receipt_id" db:"receipt_id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"` // creator
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type ExpenseView struct {
	ID          uuid.UUID  `json:"id"`
	DriverID    uuid.UUID  `json:"driverId"`
	Category    string     `json:"category"`
	Amount      float64    `json:"amount"`
	Date        string     `json:"date"`
	Description string     `json:"description"`
	ReceiptID   *uuid.UUID `json:"receiptId,omitempty"`
	UserID      uuid.UUID  `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (e *Expense) View() ExpenseView {
	return ExpenseView{
		ID:          e.ID,
		DriverID:    e.DriverID,
		Category:    e.Category,
		Amount:      e.Amount,
		Date:        e.ExpenseDate.Format("2006-01-02"),
		Description: e.Description,
		ReceiptID:   e.ReceiptID,
		UserID:      e.UserID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ExpenseViews(expenses []*Expense) []ExpenseView {
	views := make([]ExpenseView, 0, len(expenses))
	for _, e := range expenses {
		views = append(views, e.View())
	}
	return views
}

// ExpenseCategorySummary is one row of the by-category aggregate.
type ExpenseCategorySummary struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// ExpenseDriverSummary is one row of the by-driver aggregate.
type ExpenseDriverSummary struct {
	DriverID   uuid.UUID `json:"driverId"`
	DriverName string    `json:"driverName"`
	Total      float64   `json:"total"`
	Count      int       `json:"count"`
}
