package common

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
)

// Sentinel errors services return; handlers map them to HTTP statuses.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
)

// NotFoundf wraps ErrNotFound with a resource name.
func NotFoundf(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// Forbiddenf wraps ErrForbidden with a reason.
func Forbiddenf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrForbidden)...)
}

// Validationf wraps ErrValidation with a field-level message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// SendUnauthorized responds 401 {message}.
func SendUnauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, messageResponse{Message: message})
}

// SendForbidden responds 403 {message}.
func SendForbidden(c echo.Context, message string) error {
	return c.JSON(http.StatusForbidden, messageResponse{Message: message})
}

// SendNotFound responds 404 {message}.
func SendNotFound(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, messageResponse{Message: fmt.Sprintf("%s not found", resource)})
}

// SendValidationError responds 400 {message}.
func SendValidationError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, messageResponse{Message: message})
}

// SendServerError responds 500 {message}; the underlying error detail is
// included only outside production.
func SendServerError(c echo.Context, message string, err error) error {
	resp := messageResponse{Message: message}
	if err != nil && os.Getenv("APP_ENV") != "production" {
		resp.Error = err.Error()
	}
	return c.JSON(http.StatusInternalServerError, resp)
}

// SendServiceError maps a service-layer error to the wire contract.
func SendServiceError(c echo.Context, err error, resource string) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return SendNotFound(c, resource)
	case errors.Is(err, ErrForbidden):
		return SendForbidden(c, err.Error())
	case errors.Is(err, ErrValidation):
		return SendValidationError(c, err.Error())
	default:
		return SendServerError(c, fmt.Sprintf("Failed to process %s request", resource), err)
	}
}
