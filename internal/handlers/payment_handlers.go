package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
	"github.com/geraud82/NeoPay-sub000/internal/services"
)

type PaymentHandlers struct {
	paymentService   services.PaymentService
	statementService services.StatementService
}

func NewPaymentHandlers(paymentService services.PaymentService, statementService services.StatementService) *PaymentHandlers {
	return &PaymentHandlers{paymentService: paymentService, statementService: statementService}
}

type paymentRequest struct {
	DriverID    string  `json:"driverId"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	PaymentType string  `json:"paymentType"`
	Description string  `json:"description"`
}

func (r *paymentRequest) toModel() (*models.Payment, error) {
	driverID, err := common.ValidateUUID(r.DriverID, "driverId")
	if err != nil {
		return nil, err
	}
	paymentDate, err := common.ValidateDate(r.Date, "date")
	if err != nil {
		return nil, err
	}
	return &models.Payment{
		DriverID:    driverID,
		Amount:      r.Amount,
		PaymentDate: paymentDate,
		PaymentType: r.PaymentType,
		Description: r.Description,
	}, nil
}

// CreatePayment handles POST /api/payments
func (h *PaymentHandlers) CreatePayment(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}

	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	payment, err := req.toModel()
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	created, err := h.paymentService.Create(ctx, companyID, payment)
	if err != nil {
		return common.SendServiceError(c, err, "payment")
	}
	return c.JSON(http.StatusCreated, created.View())
}

// ListPayments handles GET /api/payments
func (h *PaymentHandlers) ListPayments(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}

	if own, ok := common.GetDriverFromContext(ctx); ok {
		payments, err := h.paymentService.ListByDriver(ctx, companyID, own.ID)
		if err != nil {
			return common.SendServiceError(c, err, "payment")
		}
		return c.JSON(http.StatusOK, models.PaymentViews(payments))
	}

	payments, err := h.paymentService.ListByCompany(ctx, companyID)
	if err != nil {
		return common.SendServiceError(c, err, "payment")
	}
	return c.JSON(http.StatusOK, models.PaymentViews(payments))
}

// ListDriverPayments handles GET /api/drivers/:driverId/payments
func (h *PaymentHandlers) ListDriverPayments(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	driverID, err := pathUUID(c, "driverId", "driver id")
	if err != nil {
		return err
	}

	payments, err := h.paymentService.ListByDriver(ctx, companyID, driverID)
	if err != nil {
		return common.SendServiceError(c, err, "payment")
	}
	return c.JSON(http.StatusOK, models.PaymentViews(payments))
}

// GetPayment handles GET /api/payments/:id
func (h *PaymentHandlers) GetPayment(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	paymentID, err := pathUUID(c, "id", "payment id")
	if err != nil {
		return err
	}

	payment, err := h.paymentService.GetByID(ctx, companyID, paymentID)
	if err != nil {
		return common.SendServiceError(c, err, "payment")
	}
	if own, ok := common.GetDriverFromContext(ctx); ok && payment.DriverID != own.ID {
		return common.SendForbidden(c, "Drivers may only access their own payments")
	}
	return c.JSON(http.StatusOK, payment.View())
}

// UpdatePayment handles PUT /api/payments/:id
func (h *PaymentHandlers) UpdatePayment(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	paymentID, err := pathUUID(c, "id", "payment id")
	if err != nil {
		return err
	}

	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	payment, err := req.toModel()
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	payment.ID = paymentID

	updated, err := h.paymentService.Update(ctx, companyID, payment)
	if err != nil {
		return common.SendServiceError(c, err, "payment")
	}
	return c.JSON(http.StatusOK, updated.View())
}

// MarkPaymentPaid handles PATCH /api/payments/:id/paid
func (h *PaymentHandlers) MarkPaymentPaid(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	paymentID, err := pathUUID(c, "id", "payment id")
	if err != nil {
		return err
	}

	payment, err := h.paymentService.MarkPaid(ctx, companyID, paymentID)
	if err != nil {
		return common.SendServiceError(c, err, "payment")
	}
	return c.JSON(http.StatusOK, payment.View())
}

// DeletePayment handles DELETE /api/payments/:id
func (h *PaymentHandlers) DeletePayment(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	paymentID, err := pathUUID(c, "id", "payment id")
	if err != nil {
		return err
	}

	if err := h.paymentService.Delete(ctx, companyID, paymentID); err != nil {
		return common.SendServiceError(c, err, "payment")
	}
	return c.NoContent(http.StatusNoContent)
}

// GenerateStatement handles POST /api/payments/generate-statement, the legacy
// alias for the statement generation endpoint.
func (h *PaymentHandlers) GenerateStatement(c echo.Context) error {
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
