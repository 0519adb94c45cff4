package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DriverTypeCompany = "company"
	DriverTypeOwner   = "owner"

	EmploymentW2   = "W2"
	Employment1099 = "1099"

	RateTypePerMile    = "per_mile"
	RateTypePercentage = "percentage"
	RateTypeHourly     = "hourly"
	RateTypeFixed      = "fixed"
)

type Driver struct {
	ID                    uuid.UUID  `json:"id" db:"id"`
	CompanyID             uuid.UUID  `json:"company_id" db:"company_id"`
	Name                  string     `json:"name" db:"name"`
	Email                 string     `json:"email" db:"email"`
	Phone                 string     `json:"phone" db:"phone"`
	License               string     `json:"license" db:"license"`
	Status                string     `json:"status" db:"status"` // active, inactive
	Type                  string     `json:"type" db:"type"`     // company, owner
	EmploymentType        string     `json:"employment_type" db:"employment_type"`
	PayRate               float64    `json:"pay_rate" db:"pay_rate"`
	PayRateType           string     `json:"pay_rate_type" db:"pay_rate_type"`
	TaxWithholdingPercent float64    `json:"tax_withholding_percent" db:"tax_withholding_percent"`
	UserID                *uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at" db:"updated_at"`
}

// ApplyTypeDefaults fills pay_rate_type and employment_type from the driver
// type when they were not explicitly supplied.
func (d *Driver) ApplyTypeDefaults() {
	if d.PayRateType == "" {
		if d.Type == DriverTypeOwner {
			d.PayRateType = RateTypePercentage
		} else {
			d.PayRateType = RateTypePerMile
		}
	}
	if d.EmploymentType == "" {
		if d.Type == DriverTypeOwner {
			d.EmploymentType = Employment1099
		} else {
			d.EmploymentType = EmploymentW2
		}
	}
}

type DriverView struct {
	ID                    uuid.UUID  `json:"id"`
	CompanyID             uuid.UUID  `json:"companyId"`
	Name                  string     `json:"name"`
	Email                 string     `json:"email"`
	Phone                 string     `json:"phone"`
	License               string     `json:"license"`
	Status                string     `json:"status"`
	Type                  string     `json:"type"`
	EmploymentType        string     `json:"employmentType"`
	PayRate               float64    `json:"payRate"`
	PayRateType           string     `json:"payRateType"`
	TaxWithholdingPercent float64    `json:"taxWithholdingPercent"`
	UserID                *uuid.UUID `json:"userId,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

func (d *Driver) View() DriverView {
	return DriverView{
		ID:                    d.ID,
		CompanyID:             d.CompanyID,
		Name:                  d.Name,
		Email:                 d.Email,
		Phone:                 d.Phone,
		License:               d.License,
		Status:                d.Status,
		Type:                  d.Type,
		EmploymentType:        d.EmploymentType,
		PayRate:               d.PayRate,
		PayRateType:           d.PayRateType,
		TaxWithholdingPercent: d.TaxWithholdingPercent,
		UserID:                d.UserID,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
}

func DriverViews(drivers []*Driver) []DriverView {
	views := make([]DriverView, 0, len(drivers))
	for _, d := range drivers {
		views = append(views, d.View())
	}
	return views
}
