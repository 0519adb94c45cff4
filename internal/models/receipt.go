package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReceiptStatusProcessing = "Processing"
	ReceiptStatusCompleted  = "Completed"
	ReceiptStatusFailed     = "Failed"
)

type Receipt struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	DriverID    uuid.UUID      `json:"driver_id" db:"driver_id"`
	FileName    string         `json:"file_name" db:"file_name"`
	FilePath    string         `json:"file_path" db:"file_path"` // object key in storage
	UploadDate  time.Time      `json:"upload_date" db:"upload_date"`
	Status      string         `json:"status" db:"status"`
	Vendor      *string        `json:"vendor" db:"vendor"`
	ReceiptDate *time.Time     `json:"receipt_date" db:"receipt_date"`
	Amount      *float64       `json:"amount" db:"amount"`
	Category    *string        `json:"category" db:"category"`
	Items       []*ReceiptItem `json:"items" db:"-"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

type ReceiptItem struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ReceiptID   uuid.UUID `json:"receipt_id" db:"receipt_id"`
	Description string    `json:"description" db:"description"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Price       float64   `json:"price" db:"price"`
}

type ReceiptItemView struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type ReceiptView struct {
	ID          uuid.UUID         `json:"id"`
	DriverID    uuid.UUID         `json:"driverId"`
	FileName    string            `json:"fileName"`
	FilePath    string            `json:"filePath"`
	UploadDate  time.Time         `json:"uploadDate"`
	Status      string            `json:"status"`
	Vendor      *string           `json:"vendor,omitempty"`
	Date        *string           `json:"date,omitempty"`
	Amount      *float64          `json:"amount,omitempty"`
	Category    *string           `json:"category,omitempty"`
	Items       []ReceiptItemView `json:"items"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (r *Receipt) View() ReceiptView {
	v := ReceiptView{
		ID:         r.ID,
		DriverID:   r.DriverID,
		FileName:   r.FileName,
		FilePath:   r.FilePath,
		UploadDate: r.UploadDate,
		Status:     r.Status,
		Vendor:     r.Vendor,
		Amount:     r.Amount,
		Category:   r.Category,
		Items:      make([]ReceiptItemView, 0, len(r.Items)),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.ReceiptDate != nil {
		d := r.ReceiptDate.Format("2006-01-02")
		v.Date = &d
	}
	for _, item := range r.Items {
		v.Items = append(v.Items, ReceiptItemView{
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return v
}

func ReceiptViews(receipts []*Receipt) []ReceiptView {
	views := make([]ReceiptView, 0, len(receipts))
	for _, r := range receipts {
		views = append(views, r.View())
	}
	return views
}
