package common

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/geraud82/NeoPay-sub000/internal/models"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	CompanyIDKey contextKey = "company_id"
	RoleKey      contextKey = "role"
	DriverKey    contextKey = "driver"
)

// GetUserIDFromContext extracts the authenticated user ID.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetCompanyIDFromContext extracts the caller's company scope. ok is false
// for company-agnostic administrative accounts, which carry no company claim
// and are scoped to all companies.
func GetCompanyIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	companyID, ok := ctx.Value(CompanyIDKey).(uuid.UUID)
	if !ok || companyID == uuid.Nil {
		return uuid.Nil, false
	}
	return companyID, true
}

// GetRoleFromContext extracts the caller's role, defaulting to user.
func GetRoleFromContext(ctx context.Context) models.Role {
	role, ok := ctx.Value(RoleKey).(models.Role)
	if !ok {
		return models.RoleUser
	}
	return role
}

// GetDriverFromContext returns the caller's own driver record when the
// driver-access guard resolved one.
func GetDriverFromContext(ctx context.Context) (*models.Driver, bool) {
	driver, ok := ctx.Value(DriverKey).(*models.Driver)
	return driver, ok && driver != nil
}

// CompanyScopeAllows reports whether the caller's company claim permits
// touching a resource owned by companyID.
func CompanyScopeAllows(ctx context.Context, companyID uuid.UUID) bool {
	claim, ok := GetCompanyIDFromContext(ctx)
	if !ok {
		return true // company-agnostic administrative account
	}
	return claim == companyID
}

// ValidateUUID parses a required UUID field.
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID", fieldName)
	}
	return id, nil
}

// ValidateRequiredString validates required string fields.
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateDate parses a YYYY-MM-DD date field.
func ValidateDate(dateStr, fieldName string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be in YYYY-MM-DD format", fieldName)
	}
	return date, nil
}

// ValidateDateRange checks inclusive period bounds.
func ValidateDateRange(start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("end date cannot be before start date")
	}
	return nil
}

// ValidatePositiveFloat validates strictly positive numeric fields.
func ValidatePositiveFloat(value float64, fieldName string) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	return nil
}

// ValidatePaginationParams clamps limit/offset to sane bounds.
func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// SafeString safely dereferences string pointers.
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SafeFloat64 safely dereferences float64 pointers.
func SafeFloat64(f *float64) float64 {
	if f == nil {
		return 0.0
	}
	return *f
}
