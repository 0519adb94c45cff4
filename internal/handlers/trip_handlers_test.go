package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/geraud82/NeoPay-sub000/internal/models"
)

func TestGetTrip_DriverReadingAnotherDriversTrip(t *testing.T) {
	e := echo.New()
	companyID := uuid.New()
	tripID := uuid.New()
	own := &models.Driver{ID: uuid.New(), CompanyID: companyID, Name: "Alex Carter"}

	tripSvc := &MockTripService{}
	tripSvc.Test(t)
	tripSvc.On("GetByID", mock.Anything, companyID, tripID).Return(&models.Trip{
		ID:        tripID,
		CompanyID: companyID,
		DriverID:  uuid.New(), // someone else's trip
		Rate:      0.55,
		Amount:    110.00,
	}, nil)

	c, rec := driverContext(e, http.MethodGet, "/api/trips/"+tripID.String(), "", companyID, own)
	c.SetPath("/api/trips/:id")
	c.SetParamNames("id")
	c.SetParamValues(tripID.String())

	h := NewTripHandlers(tripSvc)
	assert.NoError(t, h.GetTrip(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), "amount")
}

func TestGetTrip_DriverReadingOwnTrip(t *testing.T) {
	e := echo.New()
	companyID := uuid.New()
	tripID := uuid.New()
	own := &models.Driver{ID: uuid.New(), CompanyID: companyID, Name: "Alex Carter"}

	tripSvc := &MockTripService{}
	tripSvc.Test(t)
	tripSvc.On("GetByID", mock.Anything, companyID, tripID).Return(&models.Trip{
		ID:        tripID,
		CompanyID: companyID,
		DriverID:  own.ID,
		Amount:    110.00,
	}, nil)

	c, rec := driverContext(e, http.MethodGet, "/api/trips/"+tripID.String(), "", companyID, own)
	c.SetPath("/api/trips/:id")
	c.SetParamNames("id")
	c.SetParamValues(tripID.String())

	h := NewTripHandlers(tripSvc)
	assert.NoError(t, h.GetTrip(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListTrips_DriverSeesOwnTripsOnly(t *testing.T) {
	e := echo.New()
	companyID := uuid.New()
	own := &models.Driver{ID: uuid.New(), CompanyID: companyID, Name: "Alex Carter"}

	tripSvc := &MockTripService{}
	tripSvc.Test(t)
	tripSvc.On("ListByDriver", mock.Anything, companyID, own.ID).Return([]*models.Trip{
		{ID: uuid.New(), CompanyID: companyID, DriverID: own.ID},
	}, nil)

	c, rec := driverContext(e, http.MethodGet, "/api/trips", "", companyID, own)

	h := NewTripHandlers(tripSvc)
	assert.NoError(t, h.ListTrips(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	tripSvc.AssertNotCalled(t, "ListByCompany", mock.Anything, companyID)
	tripSvc.AssertExpectations(t)
}
