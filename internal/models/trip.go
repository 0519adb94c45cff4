package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TripStatusPending   = "pending"
	TripStatusCompleted = "completed"
	TripStatusCancelled = "cancelled"
)

type Trip struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	CompanyID   uuid.UUID  `json:"company_id" db:"company_id"`
	DriverID    uuid.UUID  `json:"driver_id" db:"driver_id"`
	LoadID      *uuid.UUID `json:"load_id" db:"load_id"`
	TripDate    time.Time  `json:"trip_date" db:"trip_date"`
	Origin      string     `json:"origin" db:"origin"`
	Destination string     `json:"destination" db:"destination"`
	Distance    float64    `json:"distance" db:"distance"` // miles
	Rate        float64    `json:"rate" db:"rate"`
	RateType    string     `json:"rate_type" db:"rate_type"`
	HoursWorked *float64   `json:"hours_worked" db:"hours_worked"`
	Amount      float64    `json:"amount" db:"amount"`
	Status      string     `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type TripView struct {
	ID          uuid.UUID  `json:"id"`
	CompanyID   uuid.UUID  `json:"companyId"`
	DriverID    uuid.UUID  `json:"driverId"`
	LoadID      *uuid.UUID `json:"loadId,omitempty"`
	Date        string     `json:"date"`
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	Distance    float64    `json:"distance"`
	Rate        float64    `json:"rate"`
	RateType    string     `json:"rateType"`
	HoursWorked *float64   `json:"hoursWorked,omitempty"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (t *Trip) View() TripView {
	return TripView{
		ID:          t.ID,
		CompanyID:   t.CompanyID,
		DriverID:    t.DriverID,
		LoadID:      t.LoadID,
		Date:        t.TripDate.Format("2006-01-02"),
		Origin:      t.Origin,
		Destination: t.Destination,
		Distance:    t.Distance,
		Rate:        t.Rate,
		RateType:    t.RateType,
		HoursWorked: t.HoursWorked,
		Amount:      t.Amount,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func TripViews(trips []*Trip) []TripView {
	views := make([]TripView, 0, len(trips))
	for _, t := range trips {
		views = append(views, t.View())
	}
	return views
}
