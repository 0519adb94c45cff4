package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/geraud82/NeoPay-sub000/internal/common"
)

// resolveCompanyID yields the company scope for the request. Regular callers
// are bound to their token's company claim; company-agnostic administrative
// accounts name the target company with the companyId query parameter.
func resolveCompanyID(c echo.Context) (uuid.UUID, error) {
	ctx := c.Request().Context()
	if companyID, ok := common.GetCompanyIDFromContext(ctx); ok {
		return companyID, nil
	}

	queryID := c.QueryParam("companyId")
	if queryID == "" {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "companyId query parameter is required for company-agnostic accounts")
	}
	companyID, err := common.ValidateUUID(queryID, "companyId")
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return companyID, nil
}

func pathUUID(c echo.Context, param, fieldName string) (uuid.UUID, error) {
	id, err := common.ValidateUUID(c.Param(param), fieldName)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return id, nil
}
