package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
	"github.com/geraud82/NeoPay-sub000/internal/services"
)

type DriverHandlers struct {
	driverService services.DriverService
}

func NewDriverHandlers(driverService services.DriverService) *DriverHandlers {
	return &DriverHandlers{driverService: driverService}
}

type driverRequest struct {
	Name                  string  `json:"name"`
	Email                 string  `json:"email"`
	Phone                 string  `json:"phone"`
	License               string  `json:"license"`
	Status                string  `json:"status"`
	Type                  string  `json:"type"`
	EmploymentType        string  `json:"employmentType"`
	PayRate               float64 `json:"payRate"`
	PayRateType           string  `json:"payRateType"`
	TaxWithholdingPercent float64 `json:"taxWithholdingPercent"`
	UserID                *string `json:"userId"`
}

func (r *driverRequest) toModel(companyID uuid.UUID) (*models.Driver, error) {
	driver := &models.Driver{
		CompanyID:             companyID,
		Name:                  r.Name,
		Email:                 r.Email,
		Phone:                 r.Phone,
		License:               r.License,
		Status:                r.Status,
		Type:                  r.Type,
		EmploymentType:        r.EmploymentType,
		PayRate:               r.PayRate,
		PayRateType:           r.PayRateType,
		TaxWithholdingPercent: r.TaxWithholdingPercent,
	}
	if r.UserID != nil && *r.UserID != "" {
		userID, err := common.ValidateUUID(*r.UserID, "userId")
		if err != nil {
			return nil, err
		}
		driver.UserID = &userID
	}
	return driver, nil
}

// CreateDriver handles POST /api/drivers
func (h *DriverHandlers) CreateDriver(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}

	var req driverRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	driver, err := req.toModel(companyID)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	created, err := h.driverService.Create(ctx, driver)
	if err != nil {
		return common.SendServiceError(c, err, "driver")
	}
	return c.JSON(http.StatusCreated, created.View())
}

// ListDrivers handles GET /api/drivers
func (h *DriverHandlers) ListDrivers(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}

	drivers, err := h.driverService.ListByCompany(ctx, companyID)
	if err != nil {
		return common.SendServiceError(c, err, "driver")
	}
	return c.JSON(http.StatusOK, models.DriverViews(drivers))
}

// GetDriver handles GET /api/drivers/:id
func (h *DriverHandlers) GetDriver(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	driverID, err := pathUUID(c, "id", "driver id")
	if err != nil {
		return err
	}

	driver, err := h.driverService.GetByID(ctx, companyID, driverID)
	if err != nil {
		return common.SendServiceError(c, err, "driver")
	}
	return c.JSON(http.StatusOK, driver.View())
}

// GetOwnDriver handles GET /api/drivers/me for driver-role callers.
func (h *DriverHandlers) GetOwnDriver(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c, "User not authenticated")
	}

	driver, err := h.driverService.GetByUserID(ctx, userID)
	if err != nil {
		return common.SendServiceError(c, err, "driver")
	}
	return c.JSON(http.StatusOK, driver.View())
}

// UpdateDriver handles PUT /api/drivers/:id
func (h *DriverHandlers) UpdateDriver(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	driverID, err := pathUUID(c, "id", "driver id")
	if err != nil {
		return err
	}

	var req driverRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	driver, err := req.toModel(companyID)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	driver.ID = driverID

	updated, err := h.driverService.Update(ctx, driver)
	if err != nil {
		return common.SendServiceError(c, err, "driver")
	}
	return c.JSON(http.StatusOK, updated.View())
}

// DeleteDriver handles DELETE /api/drivers/:id
func (h *DriverHandlers) DeleteDriver(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	driverID, err := pathUUID(c, "id", "driver id")
	if err != nil {
		return err
	}

	if err := h.driverService.Delete(ctx, companyID, driverID); err != nil {
		return common.SendServiceError(c, err, "driver")
	}
	return c.NoContent(http.StatusNoContent)
}
