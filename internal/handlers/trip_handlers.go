package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
	"github.com/geraud82/NeoPay-sub000/internal/services"
)

type TripHandlers struct {
	tripService services.TripService
}

func NewTripHandlers(tripService services.TripService) *TripHandlers {
	return &TripHandlers{tripService: tripService}
}

type tripRequest struct {
	DriverID    string   `json:"driverId"`
	LoadID      *string  `json:"loadId"`
	Date        string   `json:"date"`
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Distance    float64  `json:"distance"`
	Rate        float64  `json:"rate"`
	RateType    string   `json:"rateType"`
	HoursWorked *float64 `json:"hoursWorked"`
	Amount      *float64 `json:"amount"`
	Status      string   `json:"status"`
}

func (r *tripRequest) toModel(companyID uuid.UUID) (*models.Trip, error) {
	driverID, err := common.ValidateUUID(r.DriverID, "driverId")
	if err != nil {
		return nil, err
	}
	tripDate, err := common.ValidateDate(r.Date, "date")
	if err != nil {
		return nil, err
	}

	trip := &models.Trip{
		CompanyID:   companyID,
		DriverID:    driverID,
		TripDate:    tripDate,
		Origin:      r.Origin,
		Destination: r.Destination,
		Distance:    r.Distance,
		Rate:        r.Rate,
		RateType:    r.RateType,
		HoursWorked: r.HoursWorked,
		Status:      r.Status,
	}
	if r.LoadID != nil && *r.LoadID != "" {
		loadID, err := common.ValidateUUID(*r.LoadID, "loadId")
		if err != nil {
			return nil, err
		}
		trip.LoadID = &loadID
	}
	return trip, nil
}

// CreateTrip handles POST /api/trips
func (h *TripHandlers) CreateTrip(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}

	var req tripRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	trip, err := req.toModel(companyID)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	created, err := h.tripService.Create(ctx, trip)
	if err != nil {
		return common.SendServiceError(c, err, "trip")
	}
	return c.JSON(http.StatusCreated, created.View())
}

// ListTrips handles GET /api/trips
func (h *TripHandlers) ListTrips(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}

	// Driver-role callers only ever see their own trips.
	if own, ok := common.GetDriverFromContext(ctx); ok {
		trips, err := h.tripService.ListByDriver(ctx, companyID, own.ID)
		if err != nil {
			return common.SendServiceError(c, err, "trip")
		}
		return c.JSON(http.StatusOK, models.TripViews(trips))
	}

	trips, err := h.tripService.ListByCompany(ctx, companyID)
	if err != nil {
		return common.SendServiceError(c, err, "trip")
	}
	return c.JSON(http.StatusOK, models.TripViews(trips))
}

// ListDriverTrips handles GET /api/drivers/:driverId/trips
func (h *TripHandlers) ListDriverTrips(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	driverID, err := pathUUID(c, "driverId", "driver id")
	if err != nil {
		return err
	}

	trips, err := h.tripService.ListByDriver(ctx, companyID, driverID)
	if err != nil {
		return common.SendServiceError(c, err, "trip")
	}
	return c.JSON(http.StatusOK, models.TripViews(trips))
}

// GetTrip handles GET /api/trips/:id
func (h *TripHandlers) GetTrip(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	tripID, err := pathUUID(c, "id", "trip id")
	if err != nil {
		return err
	}

	trip, err := h.tripService.GetByID(ctx, companyID, tripID)
	if err != nil {
		return common.SendServiceError(c, err, "trip")
	}
	if own, ok := common.GetDriverFromContext(ctx); ok && trip.DriverID != own.ID {
		return common.SendForbidden(c, "Drivers may only access their own trips")
	}
	return c.JSON(http.StatusOK, trip.View())
}

// UpdateTrip handles PUT /api/trips/:id
func (h *TripHandlers) UpdateTrip(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	tripID, err := pathUUID(c, "id", "trip id")
	if err != nil {
		return err
	}

	var req tripRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	trip, err := req.toModel(companyID)
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}
	trip.ID = tripID

	updated, err := h.tripService.Update(ctx, trip, req.Amount)
	if err != nil {
		return common.SendServiceError(c, err, "trip")
	}
	return c.JSON(http.StatusOK, updated.View())
}

// DeleteTrip handles DELETE /api/trips/:id
func (h *TripHandlers) DeleteTrip(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}
	tripID, err := pathUUID(c, "id", "trip id")
	if err != nil {
		return err
	}

	if err := h.tripService.Delete(ctx, companyID, tripID); err != nil {
		return common.SendServiceError(c, err, "trip")
	}
	return c.NoContent(http.StatusNoContent)
}
