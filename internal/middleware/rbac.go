package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
	"github.com/geraud82/NeoPay-sub000/internal/services"
)

type RBACMiddleware struct {
	driverSvc services.DriverService
}

func NewRBACMiddleware(driverSvc services.DriverService) *RBACMiddleware {
	return &RBACMiddleware{driverSvc: driverSvc}
}

// Require gates a route on the permission table for an entity/operation pair.
func (m *RBACMiddleware) Require(entity models.Entity, op models.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if _, ok := common.GetUserIDFromContext(ctx); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			role := common.GetRoleFromContext(ctx)
			if !models.Allowed(role, entity, op) {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}

// DriverAccess restricts driver-role callers to their own records. The route
// parameter named by paramName carries the driver ID being accessed; other
// roles pass through untouched. The caller's own driver record, once
// resolved, is stashed in the context.
func (m *RBACMiddleware) DriverAccess(paramName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			role := common.GetRoleFromContext(ctx)
			if !role.IsDriverRole() {
				return next(c)
			}

			userID, ok := common.GetUserIDFromContext(ctx)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			driver, err := m.driverSvc.GetByUserID(ctx, userID)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.SendForbidden(c, "No driver record is linked to this account")
				}
				return common.SendServerError(c, "Failed to resolve driver record", err)
			}

			if paramName != "" {
				requested := c.Param(paramName)
				if requested != "" && requested != driver.ID.String() {
					return common.SendForbidden(c, "Drivers may only access their own data")
				}
			}

			c.SetRequest(c.Request().WithContext(
				context.WithValue(ctx, common.DriverKey, driver)))
			return next(c)
		}
	}
}
