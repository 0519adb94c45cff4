package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
	"github.com/geraud82/NeoPay-sub000/internal/services"
)

type LoadHandlers struct {
	loadService services.LoadService
}

func NewLoadHandlers(loadService services.LoadService) *LoadHandlers {
	return &LoadHandlers{loadService: loadService}
}

type loadRequest struct {
	DriverID     *string `json:"driverId"`
	LoadNumber   string  `json:"loadNumber"`
	Customer     string  `json:"customer"`
	PickupDate   string  `json:"pickupDate"`
	DeliveryDate string  `json:"deliveryDate"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
	Distance     float64 `json:"distance"`
	Rate         float64 `json:"rate"`
	Status       string  `json:"status"`
}

func (r *loadRequest) toModel(companyID uuid.UUID) (*models.Load, error) {
	pickupDate, err := common.ValidateDate(r.PickupDate, "pickupDate")
	if err != nil {
		return nil, err
	}
	deliveryDate, err := common.ValidateDate(r.DeliveryDate, "deliveryDate")
	if err != nil {
		return nil, err
	}
	if err := common.ValidateDateRange(pickupDate, deliveryDate); err != nil {
		return nil, err
	}

	load := &models.Load{
		CompanyID:    companyID,
		LoadNumber:   r.LoadNumber,
		Customer:     r.Customer,
		PickupDate:   pickupDate,
		DeliveryDate: deliveryDate,
		Origin:       r.Origin,
		Destination:  r.Destination,
		Distance:     r.Distance,
		Rate:         r.Rate,
		Status:       r.Status,
	}
	if r.DriverID != nil && *r.DriverID != "" {
		driverID, err := common.ValidateUUID(*r.DriverID, "driverId")
		if err != nil {
			return nil, err
		}
		load.DriverID = &driverID
	}
	return load, nil
}

// CreateLoad handles POST /api/loads
func (h *LoadHandlers) CreateLoad(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c, "User not authenticated")
	}

	var req loadRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	load, err := req.toModel(companyID)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	load.CreatedBy = userID

	created, err := h.loadService.Create(ctx, load)
	if err != nil {
		return common.SendServiceError(c, err, "load")
	}
	return c.JSON(http.StatusCreated, created.View())
}

// ListLoads handles GET /api/loads
func (h *LoadHandlers) ListLoads(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}

	loads, err := h.loadService.ListByCompany(ctx, companyID)
	if err != nil {
		return common.SendServiceError(c, err, "load")
	}
	return c.JSON(http.StatusOK, models.LoadViews(loads))
}

// ListCompanyLoads handles GET /api/loads/company/:companyId. Callers with a
// company claim may only name their own company; company-agnostic
// administrative accounts may name any.
func (h *LoadHandlers) ListCompanyLoads(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := pathUUID(c, "companyId", "company id")
	if err != nil {
		return err
	}
	if claimed, ok := common.GetCompanyIDFromContext(ctx); ok && claimed != companyID {
		return common.SendForbidden(c, "Unauthorized access to company data")
	}

	loads, err := h.loadService.ListByCompany(ctx, companyID)
	if err != nil {
		return common.SendServiceError(c, err, "load")
	}
	return c.JSON(http.StatusOK, models.LoadViews(loads))
}

// ListDriverLoads handles GET /api/drivers/:driverId/loads
func (h *LoadHandlers) ListDriverLoads(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	driverID, err := pathUUID(c, "driverId", "driver id")
	if err != nil {
		return err
	}

	loads, err := h.loadService.ListByDriver(ctx, companyID, driverID)
	if err != nil {
		return common.SendServiceError(c, err, "load")
	}
	return c.JSON(http.StatusOK, models.LoadViews(loads))
}

// GetLoad handles GET /api/loads/:id
func (h *LoadHandlers) GetLoad(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	loadID, err := pathUUID(c, "id", "load id")
	if err != nil {
		return err
	}

	load, err := h.loadService.GetByID(ctx, companyID, loadID)
	if err != nil {
		return common.SendServiceError(c, err, "load")
	}
	return c.JSON(http.StatusOK, load.View())
}

// UpdateLoad handles PUT /api/loads/:id
func (h *LoadHandlers) UpdateLoad(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	loadID, err := pathUUID(c, "id", "load id")
	if err != nil {
		return err
	}

	var req loadRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	load, err := req.toModel(companyID)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	load.ID = loadID

	updated, err := h.loadService.Update(ctx, load)
	if err != nil {
		return common.SendServiceError(c, err, "load")
	}
	return c.JSON(http.StatusOK, updated.View())
}

// UpdateLoadStatus handles PATCH /api/loads/:id/status
func (h *LoadHandlers) UpdateLoadStatus(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	loadID, err := pathUUID(c, "id", "load id")
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	load, err := h.loadService.UpdateStatus(ctx, companyID, loadID, req.Status)
	if err != nil {
		return common.SendServiceError(c, err, "load")
	}
	return c.JSON(http.StatusOK, load.View())
}

// AssignLoadDriver handles PATCH /api/loads/:id/driver
func (h *LoadHandlers) AssignLoadDriver(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	loadID, err := pathUUID(c, "id", "load id")
	if err != nil {
		return err
	}

	var req struct {
		DriverID *string `json:"driverId"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	var driverID *uuid.UUID
	if req.DriverID != nil && *req.DriverID != "" {
		id, err := common.ValidateUUID(*req.DriverID, "driverId")
		if err != nil {
			return common.SendValidationError(c, err.Error())
		}
		driverID = &id
	}

	load, err := h.loadService.AssignDriver(ctx, companyID, loadID, driverID)
	if err != nil {
		return common.SendServiceError(c, err, "load")
	}
	return c.JSON(http.StatusOK, load.View())
}

// DeleteLoad handles DELETE /api/loads/:id
func (h *LoadHandlers) DeleteLoad(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	loadID, err := pathUUID(c, "id", "load id")
	if err != nil {
		return err
	}

	if err := h.loadService.Delete(ctx, companyID, loadID); err != nil {
		return common.SendServiceError(c, err, "load")
	}
	return c.NoContent(http.StatusNoContent)
}
