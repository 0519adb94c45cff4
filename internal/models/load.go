package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	LoadStatusAssigned   = "assigned"
	LoadStatusInProgress = "in_progress"
	LoadStatusCompleted  = "completed"
	LoadStatusCancelled  = "cancelled"
)

// ValidLoadStatus reports membership in the load status literal set. The
// transition graph itself is not enforced at the persistence layer.
func ValidLoadStatus(s string) bool {
	switch s {
	case LoadStatusAssigned, LoadStatusInProgress, LoadStatusCompleted, LoadStatusCancelled:
		return true
	}
	return false
}

type Load struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	CompanyID    uuid.UUID  `json:"company_id" db:"company_id"`
	DriverID     *uuid.UUID `json:"driver_id" db:"driver_id"`
	LoadNumber   string     `json:"load_number" db:"load_number"`
	Customer     string     `json:"customer" db:"customer"`
	PickupDate   time.Time  `json:"pickup_date" db:"pickup_date"`
	DeliveryDate time.Time  `json:"delivery_date" db:"delivery_date"`
	Origin       string     `json:"origin" db:"origin"`
	Destination  string     `json:"destination" db:"destination"`
	Distance     float64    `json:"distance" db:"distance"`
	Rate         float64    `json:"rate" db:"rate"`
	Status       string     `json:"status" db:"status"`
	CreatedBy    uuid.UUID  `json:"created_by" db:"created_by"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

type LoadView struct {
	ID           uuid.UUID  `json:"id"`
	CompanyID    uuid.UUID  `json:"companyId"`
	DriverID     *uuid.UUID `json:"driverId,omitempty"`
	LoadNumber   string     `json:"loadNumber"`
	Customer     string     `json:"customer"`
	PickupDate   string     `json:"pickupDate"`
	DeliveryDate string     `json:"deliveryDate"`
	Origin       string     `json:"origin"`
	Destination  string     `json:"destination"`
	Distance     float64    `json:"distance"`
	Rate         float64    `json:"rate"`
	Status       string     `json:"status"`
	CreatedBy    uuid.UUID  `json:"createdBy"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (l *Load) View() LoadView {
	return LoadView{
		ID:           l.ID,
		CompanyID:    l.CompanyID,
		DriverID:     l.DriverID,
		LoadNumber:   l.LoadNumber,
		Customer:     l.Customer,
		PickupDate:   l.PickupDate.Format("2006-01-02"),
		DeliveryDate: l.DeliveryDate.Format("2006-01-02"),
		Origin:       l.Origin,
		Destination:  l.Destination,
		Distance:     l.Distance,
		Rate:         l.Rate,
		Status:       l.Status,
		CreatedBy:    l.CreatedBy,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func LoadViews(loads []*Load) []LoadView {
	views := make([]LoadView, 0, len(loads))
	for _, l := range loads {
		views = append(views, l.View())
	}
	return views
}
