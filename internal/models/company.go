package models

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	Status             string    `json:"status" db:"status"` // Active, Inactive, Suspended
	SubscriptionTier   string    `json:"subscription_tier" db:"subscription_tier"`
	SubscriptionStatus string    `json:"subscription_status" db:"subscription_status"`
	OwnerID            uuid.UUID `json:"owner_id" db:"owner_id"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// CompanyView is the camelCase API shape for a company row.
type CompanyView struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Status             string    `json:"status"`
	SubscriptionTier   string    `json:"subscriptionTier"`
	SubscriptionStatus string    `json:"subscriptionStatus"`
	OwnerID            uuid.UUID `json:"ownerId"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (c *Company) View() CompanyView {
	return CompanyView{
		ID:                 c.ID,
		Name:               c.Name,
		Status:             c.Status,
		SubscriptionTier:   c.SubscriptionTier,
		SubscriptionStatus: c.SubscriptionStatus,
		OwnerID:            c.OwnerID,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
