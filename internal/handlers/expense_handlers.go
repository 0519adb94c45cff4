package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
	"github.com/geraud82/NeoPay-sub000/internal/services"
)

type ExpenseHandlers struct {
	expenseService services.ExpenseService
}

func NewExpenseHandlers(expenseService services.ExpenseService) *ExpenseHandlers {
	return &ExpenseHandlers{expenseService: expenseService}
}

type expenseRequest struct {
	DriverID    string  `json:"driverId"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	ReceiptID   *string `json:"receiptId"`
}

func (r *expenseRequest) toModel() (*models.Expense, error) {
	driverID, err := common.ValidateUUID(r.DriverID, "driverId")
	if err != nil {
		return nil, err
	}
	expenseDate, err := common.ValidateDate(r.Date, "date")
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		DriverID:    driverID,
		Category:    r.Category,
		Amount:      r.Amount,
		ExpenseDate: expenseDate,
		Description: r.Description,
	}
	if r.ReceiptID != nil && *r.ReceiptID != "" {
		receiptID, err := common.ValidateUUID(*r.ReceiptID, "receiptId")
		if err != nil {
			return nil, err
		}
		expense.ReceiptID = &receiptID
	}
	return expense, nil
}

// CreateExpense handles POST /api/expenses. Driver-role callers are pinned to
// their own driver record by the access guard.
func (h *ExpenseHandlers) CreateExpense(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c, "User not authenticated")
	}

	var req expenseRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	expense, err := req.toModel()
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	expense.UserID = userID

	if own, ok := common.GetDriverFromContext(ctx); ok && expense.DriverID != own.ID {
		return common.SendForbidden(c, "Drivers may only record their own expenses")
	}

	created, err := h.expenseService.Create(ctx, companyID, expense)
	if err != nil {
		return common.SendServiceError(c, err, "expense")
	}
	return c.JSON(http.StatusCreated, created.View())
}

// ListExpenses handles GET /api/expenses
func (h *ExpenseHandlers) ListExpenses(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}

	// Driver-role callers only ever see their own expenses.
	if own, ok := common.GetDriverFromContext(ctx); ok {
		expenses, err := h.expenseService.ListByDriver(ctx, companyID, own.ID)
		if err != nil {
			return common.SendServiceError(c, err, "expense")
		}
		return c.JSON(http.StatusOK, models.ExpenseViews(expenses))
	}

	expenses, err := h.expenseService.ListByCompany(ctx, companyID)
	if err != nil {
		return common.SendServiceError(c, err, "expense")
	}
	return c.JSON(http.StatusOK, models.ExpenseViews(expenses))
}

// ListDriverExpenses handles GET /api/drivers/:driverId/expenses
func (h *ExpenseHandlers) ListDriverExpenses(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	driverID, err := pathUUID(c, "driverId", "driver id")
	if err != nil {
		return err
	}

	expenses, err := h.expenseService.ListByDriver(ctx, companyID, driverID)
	if err != nil {
		return common.SendServiceError(c, err, "expense")
	}
	return c.JSON(http.StatusOK, models.ExpenseViews(expenses))
}

// GetExpense handles GET /api/expenses/:id
func (h *ExpenseHandlers) GetExpense(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	expenseID, err := pathUUID(c, "id", "expense id")
	if err != nil {
		return err
	}

	expense, err := h.expenseService.GetByID(ctx, companyID, expenseID)
	if err != nil {
		return common.SendServiceError(c, err, "expense")
	}
	if own, ok := common.GetDriverFromContext(ctx); ok && expense.DriverID != own.ID {
		return common.SendForbidden(c, "Drivers may only access their own expenses")
	}
	return c.JSON(http.StatusOK, expense.View())
}

// ListExpensesByCategory handles GET /api/expenses/category/:category
func (h *ExpenseHandlers) ListExpensesByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	category := c.Param("category")

	expenses, err := h.expenseService.ListByCategory(ctx, companyID, category)
	if err != nil {
		return common.SendServiceError(c, err, "expense")
	}

	// Driver-role callers only ever see their own expenses.
	if own, ok := common.GetDriverFromContext(ctx); ok {
		filtered := make([]*models.Expense, 0, len(expenses))
		for _, e := range expenses {
			if e.DriverID == own.ID {
				filtered = append(filtered, e)
			}
		}
		expenses = filtered
	}
	return c.JSON(http.StatusOK, models.ExpenseViews(expenses))
}

// CreateFromReceipt handles POST /api/expenses/from-receipt/:receiptId
func (h *ExpenseHandlers) CreateFromReceipt(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c, "User not authenticated")
	}
	receiptID, err := pathUUID(c, "receiptId", "receipt id")
	if err != nil {
		return err
	}

	// Driver-role callers may only import their own receipts.
	var onlyDriver *uuid.UUID
	if own, ok := common.GetDriverFromContext(ctx); ok {
		onlyDriver = &own.ID
	}

	expense, err := h.expenseService.CreateFromReceipt(ctx, companyID, userID, receiptID, onlyDriver)
	if err != nil {
		return common.SendServiceError(c, err, "receipt")
	}
	return c.JSON(http.StatusCreated, expense.View())
}

// CategorySummary handles GET /api/expenses/summary/by-category
func (h *ExpenseHandlers) CategorySummary(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}

	start, err := common.ValidateDate(c.QueryParam("startDate"), "startDate")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	end, err := common.ValidateDate(c.QueryParam("endDate"), "endDate")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	summary, err := h.expenseService.CategorySummary(ctx, companyID, start, end)
	if err != nil {
		return common.SendServiceError(c, err, "expense summary")
	}
	return c.JSON(http.StatusOK, summary)
}

// DriverSummary handles GET /api/expenses/summary/by-driver
func (h *ExpenseHandlers) DriverSummary(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}

	start, err := common.ValidateDate(c.QueryParam("startDate"), "startDate")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	end, err := common.ValidateDate(c.QueryParam("endDate"), "endDate")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	summary, err := h.expenseService.DriverSummary(ctx, companyID, start, end)
	if err != nil {
		return common.SendServiceError(c, err, "expense summary")
	}
	return c.JSON(http.StatusOK, summary)
}

// UpdateExpense handles PUT /api/expenses/:id
func (h *ExpenseHandlers) UpdateExpense(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	expenseID, err := pathUUID(c, "id", "expense id")
	if err != nil {
		return err
	}

	var req expenseRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	expense, err := req.toModel()
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	expense.ID = expenseID

	// Ownership is decided by the stored expense, never by the driverId the
	// caller put in the body.
	if own, ok := common.GetDriverFromContext(ctx); ok {
		existing, err := h.expenseService.GetByID(ctx, companyID, expenseID)
		if err != nil {
			return common.SendServiceError(c, err, "expense")
		}
		if existing.DriverID != own.ID {
			return common.SendForbidden(c, "Drivers may only modify their own expenses")
		}
	}

	updated, err := h.expenseService.Update(ctx, companyID, expense)
	if err != nil {
		return common.SendServiceError(c, err, "expense")
	}
	return c.JSON(http.StatusOK, updated.View())
}

// DeleteExpense handles DELETE /api/expenses/:id
func (h *ExpenseHandlers) DeleteExpense(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	expenseID, err := pathUUID(c, "id", "expense id")
	if err != nil {
		return err
	}

	if own, ok := common.GetDriverFromContext(ctx); ok {
		expense, err := h.expenseService.GetByID(ctx, companyID, expenseID)
		if err != nil {
			return common.SendServiceError(c, err, "expense")
		}
		if expense.DriverID != own.ID {
			return common.SendForbidden(c, "Drivers may only delete their own expenses")
		}
	}

	if err := h.expenseService.Delete(ctx, companyID, expenseID); err != nil {
		return common.SendServiceError(c, err, "expense")
	}
	return c.NoContent(http.StatusNoContent)
}
