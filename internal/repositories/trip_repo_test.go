package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
)

type TripRepoTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	repo      TripRepository
	companyID uuid.UUID
	driverID  uuid.UUID
	context   context.Context
}

func (suite *TripRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewTripRepository(mock)
	suite.companyID = uuid.New()
	suite.driverID = uuid.New()
	suite.context = context.Background()
}

func (suite *TripRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestTripRepoTestSuite(t *testing.T) {
	suite.Run(t, new(TripRepoTestSuite))
}

var tripColumnNames = []string{"id", "company_id", "driver_id", "load_id", "trip_date",
	"origin", "destination", "distance", "rate", "rate_type", "hours_worked", "amount",
	"status", "created_at", "updated_at"}

func (suite *TripRepoTestSuite) testTrip() *models.Trip {
	return &models.Trip{
		ID:          uuid.New(),
		CompanyID:   suite.companyID,
		DriverID:    suite.driverID,
		TripDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Origin:      "Dallas, TX",
		Destination: "Memphis, TN",
		Distance:    452,
		Rate:        0.55,
		RateType:    models.RateTypePerMile,
		Amount:      248.60,
		Status:      models.TripStatusCompleted,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func addTripRow(rows *pgxmock.Rows, t *models.Trip) *pgxmock.Rows {
	return rows.AddRow(t.ID, t.CompanyID, t.DriverID, t.LoadID, t.TripDate, t.Origin,
		t.Destination, t.Distance, t.Rate, t.RateType, t.HoursWorked, t.Amount,
		t.Status, t.CreatedAt, t.UpdatedAt)
}

func (suite *TripRepoTestSuite) TestCreate_Success() {
	trip := suite.testTrip()

	suite.mock.ExpectExec(`INSERT INTO trips`).
		WithArgs(trip.ID, trip.CompanyID, trip.DriverID, trip.LoadID, trip.TripDate,
			trip.Origin, trip.Destination, trip.Distance, trip.Rate, trip.RateType,
			trip.HoursWorked, trip.Amount, trip.Status).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, trip)
	assert.NoError(suite.T(), err)
}

func (suite *TripRepoTestSuite) TestGetByID_Success() {
	trip := suite.testTrip()

	suite.mock.ExpectQuery(`SELECT (.+) FROM trips WHERE id = \$1`).
		WithArgs(trip.ID).
		WillReturnRows(addTripRow(pgxmock.NewRows(tripColumnNames), trip))

	result, err := suite.repo.GetByID(suite.context, trip.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), trip.ID, result.ID)
	assert.Equal(suite.T(), trip.Amount, result.Amount)
	assert.Equal(suite.T(), trip.RateType, result.RateType)
}

func (suite *TripRepoTestSuite) TestGetByID_NotFound() {
	tripID := uuid.New()

	suite.mock.ExpectQuery(`SELECT (.+) FROM trips WHERE id = \$1`).
		WithArgs(tripID).
		WillReturnError(pgx.ErrNoRows)

	result, err := suite.repo.GetByID(suite.context, tripID)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), result)
}

func (suite *TripRepoTestSuite) TestListByDriverBetween_BoundsInclusive() {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	onStart := suite.testTrip()
	onStart.TripDate = start
	onEnd := suite.testTrip()
	onEnd.ID = uuid.New()
	onEnd.TripDate = end

	rows := pgxmock.NewRows(tripColumnNames)
	addTripRow(rows, onStart)
	addTripRow(rows, onEnd)

	suite.mock.ExpectQuery(`SELECT (.+) FROM trips\s+WHERE driver_id = \$1 AND trip_date >= \$2 AND trip_date <= \$3`).
		WithArgs(suite.driverID, start, end).
		WillReturnRows(rows)

	result, err := suite.repo.ListByDriverBetween(suite.context, suite.driverID, start, end)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 2)
	assert.True(suite.T(), result[0].TripDate.Equal(start))
	assert.True(suite.T(), result[1].TripDate.Equal(end))
}

func (suite *TripRepoTestSuite) TestListByDriverBetween_EmptyPeriod() {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(`SELECT (.+) FROM trips\s+WHERE driver_id = \$1 AND trip_date >= \$2 AND trip_date <= \$3`).
		WithArgs(suite.driverID, start, end).
		WillReturnRows(pgxmock.NewRows(tripColumnNames))

	result, err := suite.repo.ListByDriverBetween(suite.context, suite.driverID, start, end)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), result)
}

func (suite *TripRepoTestSuite) TestListByCompany_Success() {
	trip := suite.testTrip()

	suite.mock.ExpectQuery(`SELECT (.+) FROM trips WHERE company_id = \$1 ORDER BY trip_date DESC`).
		WithArgs(suite.companyID).
		WillReturnRows(addTripRow(pgxmock.NewRows(tripColumnNames), trip))

	result, err := suite.repo.ListByCompany(suite.context, suite.companyID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 1)
	assert.Equal(suite.T(), suite.companyID, result[0].CompanyID)
}

func (suite *TripRepoTestSuite) TestUpdate_WrongCompany() {
	trip := suite.testTrip()
	trip.CompanyID = uuid.New()

	suite.mock.ExpectExec(`UPDATE trips`).
		WithArgs(trip.DriverID, trip.LoadID, trip.TripDate, trip.Origin, trip.Destination,
			trip.Distance, trip.Rate, trip.RateType, trip.HoursWorked, trip.Amount,
			trip.Status, trip.ID, trip.CompanyID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.Update(suite.context, trip)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *TripRepoTestSuite) TestDelete_Success() {
	tripID := uuid.New()

	suite.mock.ExpectExec(`DELETE FROM trips WHERE id = \$1`).
		WithArgs(tripID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, tripID)
	assert.NoError(suite.T(), err)
}
