package handlers

import (
	"bytes"
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
	"github.com/geraud82/NeoPay-sub000/internal/services"
)

type ReceiptHandlers struct {
	receiptService services.ReceiptService
}

func NewReceiptHandlers(receiptService services.ReceiptService) *ReceiptHandlers {
	return &ReceiptHandlers{receiptService: receiptService}
}

// UploadReceipt handles POST /api/drivers/:driverId/receipts. The file arrives
// as multipart form field "file"; extraction runs asynchronously and the
// response carries the receipt in Processing status.
func (h *ReceiptHandlers) UploadReceipt(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	driverID, err := pathUUID(c, "driverId", "driver id")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendValidationError(c, "A receipt file is required in form field 'file'")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read uploaded file", err)
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	receipt, err := h.receiptService.Upload(ctx, companyID, driverID, fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		return common.SendServiceError(c, err, "receipt")
	}
	return c.JSON(http.StatusCreated, receipt.View())
}

type receiptUploadRequest struct {
	DriverID    string `json:"driverId"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Data        string `json:"data"`
}

// UploadReceiptBase64 handles POST /api/receipts/upload. The file content
// arrives base64-encoded in the JSON body instead of as a multipart form.
func (h *ReceiptHandlers) UploadReceiptBase64(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}

	var req receiptUploadRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}
	driverID, err := common.ValidateUUID(req.DriverID, "driverId")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	if own, ok := common.GetDriverFromContext(ctx); ok && driverID != own.ID {
		return common.SendForbidden(c, "Drivers may only upload their own receipts")
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return common.SendValidationError(c, "Receipt data must be base64 encoded")
	}
	if len(data) == 0 {
		return common.SendValidationError(c, "Receipt data is required")
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	receipt, err := h.receiptService.Upload(ctx, companyID, driverID, req.FileName, contentType,
		bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return common.SendServiceError(c, err, "receipt")
	}
	return c.JSON(http.StatusCreated, receipt.View())
}

// ListDriverReceipts handles GET /api/drivers/:driverId/receipts
func (h *ReceiptHandlers) ListDriverReceipts(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	driverID, err := pathUUID(c, "driverId", "driver id")
	if err != nil {
		return err
	}

	receipts, err := h.receiptService.ListByDriver(ctx, companyID, driverID)
	if err != nil {
		return common.SendServiceError(c, err, "receipt")
	}
	return c.JSON(http.StatusOK, models.ReceiptViews(receipts))
}

// GetReceipt handles GET /api/receipts/:id
func (h *ReceiptHandlers) GetReceipt(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	receiptID, err := pathUUID(c, "id", "receipt id")
	if err != nil {
		return err
	}

	receipt, err := h.receiptService.GetByID(ctx, companyID, receiptID)
	if err != nil {
		return common.SendServiceError(c, err, "receipt")
	}
	if own, ok := common.GetDriverFromContext(ctx); ok && receipt.DriverID != own.ID {
		return common.SendForbidden(c, "Drivers may only access their own receipts")
	}
	return c.JSON(http.StatusOK, receipt.View())
}

// GetReceiptFileURL handles GET /api/receipts/:id/file and returns a
// short-lived presigned URL for the stored object.
func (h *ReceiptHandlers) GetReceiptFileURL(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	receiptID, err := pathUUID(c, "id", "receipt id")
	if err != nil {
		return err
	}

	if own, ok := common.GetDriverFromContext(ctx); ok {
		receipt, err := h.receiptService.GetByID(ctx, companyID, receiptID)
		if err != nil {
			return common.SendServiceError(c, err, "receipt")
		}
		if receipt.DriverID != own.ID {
			return common.SendForbidden(c, "Drivers may only access their own receipts")
		}
	}

	url, err := h.receiptService.FileURL(ctx, companyID, receiptID)
	if err != nil {
		return common.SendServiceError(c, err, "receipt")
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

// DeleteReceipt handles DELETE /api/receipts/:id
func (h *ReceiptHandlers) DeleteReceipt(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	receiptID, err := pathUUID(c, "id", "receipt id")
	if err != nil {
		return err
	}

	if own, ok := common.GetDriverFromContext(ctx); ok {
		receipt, err := h.receiptService.GetByID(ctx, companyID, receiptID)
		if err != nil {
			return common.SendServiceError(c, err, "receipt")
		}
		if receipt.DriverID != own.ID {
			return common.SendForbidden(c, "Drivers may only delete their own receipts")
		}
	}

	if err := h.receiptService.Delete(ctx, companyID, receiptID); err != nil {
		return common.SendServiceError(c, err, "receipt")
	}
	return c.NoContent(http.StatusNoContent)
}
