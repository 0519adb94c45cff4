package repositories

import (
	"context"
	"errors"
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

type DriverRepoTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	repo      DriverRepository
	companyID uuid.UUID
	driverID  uuid.UUID
	context   context.Context
}

func (suite *DriverRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewDriverRepository(mock)
	suite.companyID = uuid.New()
	suite.driverID = uuid.New()
	suite.context = context.Background()
}

func (suite *DriverRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestDriverRepoTestSuite(t *testing.T) {
	suite.Run(t, new(DriverRepoTestSuite))
}

func driverRow(d *models.Driver) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "company_id", "name", "email", "phone", "license",
		"status", "type", "employment_type", "pay_rate", "pay_rate_type",
		"tax_withholding_percent", "user_id", "created_at", "updated_at"}).
		AddRow(d.ID, d.CompanyID, d.Name, d.Email, d.Phone, d.License, d.Status, d.Type,
			d.EmploymentType, d.PayRate, d.PayRateType, d.TaxWithholdingPercent, d.UserID,
			d.CreatedAt, d.UpdatedAt)
}

func (suite *DriverRepoTestSuite) testDriver() *models.Driver {
	return &models.Driver{
		ID:                    suite.driverID,
		CompanyID:             suite.companyID,
		Name:                  "Maria Santos",
		Email:                 "maria@example.com",
		Phone:                 "555-0100",
		License:               "CDL-A-12345",
		Status:                "active",
		Type:                  models.DriverTypeCompany,
		EmploymentType:        models.EmploymentW2,
		PayRate:               0.55,
		PayRateType:           models.RateTypePerMile,
		TaxWithholdingPercent: 10,
		CreatedAt:             time.Now(),
		UpdatedAt:             time.Now(),
	}
}

func (suite *DriverRepoTestSuite) TestCreate_Success() {
	driver := suite.testDriver()

	suite.mock.ExpectExec(`INSERT INTO drivers \(id, company_id, name, email, phone, license, status, type, employment_type, pay_rate, pay_rate_type, tax_withholding_percent, user_id, created_at, updated_at\)`).
		WithArgs(driver.ID, driver.CompanyID, driver.Name, driver.Email, driver.Phone,
			driver.License, driver.Status, driver.Type, driver.EmploymentType,
			driver.PayRate, driver.PayRateType, driver.TaxWithholdingPercent, driver.UserID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, driver)
	assert.NoError(suite.T(), err)
}

func (suite *DriverRepoTestSuite) TestCreate_DatabaseError() {
	driver := suite.testDriver()

	suite.mock.ExpectExec(`INSERT INTO drivers`).
		WithArgs(driver.ID, driver.CompanyID, driver.Name, driver.Email, driver.Phone,
			driver.License, driver.Status, driver.Type, driver.EmploymentType,
			driver.PayRate, driver.PayRateType, driver.TaxWithholdingPercent, driver.UserID).
		WillReturnError(errors.New("database connection failed"))

	err := suite.repo.Create(suite.context, driver)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "database connection failed")
}

func (suite *DriverRepoTestSuite) TestGetByID_Success() {
	driver := suite.testDriver()

	suite.mock.ExpectQuery(`SELECT (.+) FROM drivers WHERE id = \$1`).
		WithArgs(suite.driverID).
		WillReturnRows(driverRow(driver))

	result, err := suite.repo.GetByID(suite.context, suite.driverID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), driver.ID, result.ID)
	assert.Equal(suite.T(), driver.CompanyID, result.CompanyID)
	assert.Equal(suite.T(), driver.Name, result.Name)
	assert.Equal(suite.T(), driver.PayRateType, result.PayRateType)
}

func (suite *DriverRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM drivers WHERE id = \$1`).
		WithArgs(suite.driverID).
		WillReturnError(pgx.ErrNoRows)

	result, err := suite.repo.GetByID(suite.context, suite.driverID)
	assert.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), result)
}

func (suite *DriverRepoTestSuite) TestGetByUserID_Success() {
	userID := uuid.New()
	driver := suite.testDriver()
	driver.UserID = &userID

	suite.mock.ExpectQuery(`SELECT (.+) FROM drivers WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(driverRow(driver))

	result, err := suite.repo.GetByUserID(suite.context, userID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), driver.ID, result.ID)
	assert.Equal(suite.T(), userID, *result.UserID)
}

func (suite *DriverRepoTestSuite) TestGetByUserID_NoDriverRecord() {
	userID := uuid.New()

	suite.mock.ExpectQuery(`SELECT (.+) FROM drivers WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnError(pgx.ErrNoRows)

	result, err := suite.repo.GetByUserID(suite.context, userID)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), result)
}

func (suite *DriverRepoTestSuite) TestListByCompany_Success() {
	d1 := suite.testDriver()
	d2 := suite.testDriver()
	d2.ID = uuid.New()
	d2.Name = "Pavel Novak"

	rows := pgxmock.NewRows([]string{"id", "company_id", "name", "email", "phone", "license",
		"status", "type", "employment_type", "pay_rate", "pay_rate_type",
		"tax_withholding_percent", "user_id", "created_at", "updated_at"}).
		AddRow(d1.ID, d1.CompanyID, d1.Name, d1.Email, d1.Phone, d1.License, d1.Status, d1.Type,
			d1.EmploymentType, d1.PayRate, d1.PayRateType, d1.TaxWithholdingPercent, d1.UserID,
			d1.CreatedAt, d1.UpdatedAt).
		AddRow(d2.ID, d2.CompanyID, d2.Name, d2.Email, d2.Phone, d2.License, d2.Status, d2.Type,
			d2.EmploymentType, d2.PayRate, d2.PayRateType, d2.TaxWithholdingPercent, d2.UserID,
			d2.CreatedAt, d2.UpdatedAt)

	suite.mock.ExpectQuery(`SELECT (.+) FROM drivers WHERE company_id = \$1 ORDER BY name`).
		WithArgs(suite.companyID).
		WillReturnRows(rows)

	result, err := suite.repo.ListByCompany(suite.context, suite.companyID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 2)
	assert.Equal(suite.T(), "Maria Santos", result[0].Name)
	assert.Equal(suite.T(), "Pavel Novak", result[1].Name)
}

func (suite *DriverRepoTestSuite) TestListByCompany_Empty() {
	rows := pgxmock.NewRows([]string{"id", "company_id", "name", "email", "phone", "license",
		"status", "type", "employment_type", "pay_rate", "pay_rate_type",
		"tax_withholding_percent", "user_id", "created_at", "updated_at"})

	suite.mock.ExpectQuery(`SELECT (.+) FROM drivers WHERE company_id = \$1 ORDER BY name`).
		WithArgs(suite.companyID).
		WillReturnRows(rows)

	result, err := suite.repo.ListByCompany(suite.context, suite.companyID)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), result)
}

func (suite *DriverRepoTestSuite) TestUpdate_ScopedToCompany() {
	driver := suite.testDriver()

	suite.mock.ExpectExec(`UPDATE drivers`).
		WithArgs(driver.Name, driver.Email, driver.Phone, driver.License, driver.Status,
			driver.Type, driver.EmploymentType, driver.PayRate, driver.PayRateType,
			driver.TaxWithholdingPercent, driver.UserID, driver.ID, driver.CompanyID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.context, driver)
	assert.NoError(suite.T(), err)
}

func (suite *DriverRepoTestSuite) TestUpdate_WrongCompany() {
	driver := suite.testDriver()
	driver.CompanyID = uuid.New()

	suite.mock.ExpectExec(`UPDATE drivers`).
		WithArgs(driver.Name, driver.Email, driver.Phone, driver.License, driver.Status,
			driver.Type, driver.EmploymentType, driver.PayRate, driver.PayRateType,
			driver.TaxWithholdingPercent, driver.UserID, driver.ID, driver.CompanyID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.Update(suite.context, driver)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *DriverRepoTestSuite) TestDelete_Success() {
	suite.mock.ExpectExec(`DELETE FROM drivers WHERE id = \$1`).
		WithArgs(suite.driverID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, suite.driverID)
	assert.NoError(suite.T(), err)
}

func (suite *DriverRepoTestSuite) TestDelete_NotFound() {
	suite.mock.ExpectExec(`DELETE FROM drivers WHERE id = \$1`).
		WithArgs(suite.driverID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.Delete(suite.context, suite.driverID)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}
