package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
	"github.com/geraud82/NeoPay-sub000/internal/services"
)

type StatementHandlers struct {
	statementService services.StatementService
}

func NewStatementHandlers(statementService services.StatementService) *StatementHandlers {
	return &StatementHandlers{statementService: statementService}
}

// GenerateStatement handles POST /api/statements
func (h *StatementHandlers) GenerateStatement(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}

	var req struct {
		DriverID  string `json:"driverId"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	driverID, err := common.ValidateUUID(req.DriverID, "driverId")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	start, err := common.ValidateDate(req.StartDate, "startDate")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	end, err := common.ValidateDate(req.EndDate, "endDate")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	statement, err := h.statementService.Generate(ctx, companyID, driverID, start, end)
	if err != nil {
		return common.SendServiceError(c, err, "pay statement")
	}
	return c.JSON(http.StatusCreated, statement.View())
}

// ListStatements handles GET /api/statements
func (h *StatementHandlers) ListStatements(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}

	if own, ok := common.GetDriverFromContext(ctx); ok {
		statements, err := h.statementService.ListByDriver(ctx, companyID, own.ID)
		if err != nil {
			return common.SendServiceError(c, err, "pay statement")
		}
		return c.JSON(http.StatusOK, models.PayStatementViews(statements))
	}

	statements, err := h.statementService.ListByCompany(ctx, companyID)
	if err != nil {
		return common.SendServiceError(c, err, "pay statement")
	}
	return c.JSON(http.StatusOK, models.PayStatementViews(statements))
}

// ListDriverStatements handles GET /api/drivers/:driverId/statements
func (h *StatementHandlers) ListDriverStatements(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	driverID, err := pathUUID(c, "driverId", "driver id")
	if err != nil {
		return err
	}

	statements, err := h.statementService.ListByDriver(ctx, companyID, driverID)
	if err != nil {
		return common.SendServiceError(c, err, "pay statement")
	}
	return c.JSON(http.StatusOK, models.PayStatementViews(statements))
}

// GetStatement handles GET /api/statements/:id
func (h *StatementHandlers) GetStatement(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	statementID, err := pathUUID(c, "id", "statement id")
	if err != nil {
		return err
	}

	statement, err := h.statementService.GetByID(ctx, companyID, statementID)
	if err != nil {
		return common.SendServiceError(c, err, "pay statement")
	}
	if own, ok := common.GetDriverFromContext(ctx); ok && statement.DriverID != own.ID {
		return common.SendForbidden(c, "Drivers may only access their own pay statements")
	}
	return c.JSON(http.StatusOK, statement.View())
}

// UpdateStatementStatus handles PATCH /api/statements/:id/status
func (h *StatementHandlers) UpdateStatementStatus(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	statementID, err := pathUUID(c, "id", "statement id")
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	statement, err := h.statementService.UpdateStatus(ctx, companyID, statementID, req.Status)
	if err != nil {
		return common.SendServiceError(c, err, "pay statement")
	}
	return c.JSON(http.StatusOK, statement.View())
}

// FinalizeStatement handles POST /api/statements/:id/finalize
func (h *StatementHandlers) FinalizeStatement(c echo.Context) error {
	return h.transitionStatement(c, models.StatementStatusFinalized)
}

// PayStatement handles POST /api/statements/:id/pay
func (h *StatementHandlers) PayStatement(c echo.Context) error {
	return h.transitionStatement(c, models.StatementStatusPaid)
}

func (h *StatementHandlers) transitionStatement(c echo.Context, status string) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	statementID, err := pathUUID(c, "id", "statement id")
	if err != nil {
		return err
	}

	statement, err := h.statementService.UpdateStatus(ctx, companyID, statementID, status)
	if err != nil {
		return common.SendServiceError(c, err, "pay statement")
	}
	return c.JSON(http.StatusOK, statement.View())
}

// DeleteStatement handles DELETE /api/statements/:id
func (h *StatementHandlers) DeleteStatement(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	statementID, err := pathUUID(c, "id", "statement id")
	if err != nil {
		return err
	}

	if err := h.statementService.Delete(ctx, companyID, statementID); err != nil {
		return common.SendServiceError(c, err, "pay statement")
	}
	return c.NoContent(http.StatusNoContent)
}
