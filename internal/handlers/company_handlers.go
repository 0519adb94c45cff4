package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
	"github.com/geraud82/NeoPay-sub000/internal/services"
)

type CompanyHandlers struct {
	companyService services.CompanyService
}

func NewCompanyHandlers(companyService services.CompanyService) *CompanyHandlers {
	return &CompanyHandlers{companyService: companyService}
}

// CreateCompany handles POST /api/companies
func (h *CompanyHandlers) CreateCompany(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c, "User not authenticated")
	}

	var req struct {
		Name               string `json:"name"`
		SubscriptionTier   string `json:"subscriptionTier"`
		SubscriptionStatus string `json:"subscriptionStatus"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	company := &models.Company{
		Name:               req.Name,
		SubscriptionTier:   req.SubscriptionTier,
		SubscriptionStatus: req.SubscriptionStatus,
		OwnerID:            userID,
	}

	created, err := h.companyService.Create(ctx, company)
	if err != nil {
		return common.SendServiceError(c, err, "company")
	}
	return c.JSON(http.StatusCreated, created.View())
}

// ListCompanies handles GET /api/companies. Company-agnostic administrators
// see every company; everyone else sees their memberships.
func (h *CompanyHandlers) ListCompanies(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c, "User not authenticated")
	}

	var (
		companies []*models.Company
		err       error
	)
	if _, scoped := common.GetCompanyIDFromContext(ctx); !scoped && common.GetRoleFromContext(ctx) == models.RoleAdmin {
		companies, err = h.companyService.List(ctx)
	} else {
		companies, err = h.companyService.ListByUser(ctx, userID)
	}
	if err != nil {
		return common.SendServiceError(c, err, "company")
	}

	views := make([]models.CompanyView, 0, len(companies))
	for _, company := range companies {
		views = append(views, company.View())
	}
	return c.JSON(http.StatusOK, views)
}

// GetCompany handles GET /api/companies/:id
func (h *CompanyHandlers) GetCompany(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := pathUUID(c, "id", "company id")
	if err != nil {
		return err
	}
	if !common.CompanyScopeAllows(ctx, companyID) {
		return common.SendForbidden(c, "Access to this company is not permitted")
	}

	company, err := h.companyService.GetByID(ctx, companyID)
	if err != nil {
		return common.SendServiceError(c, err, "company")
	}
	return c.JSON(http.StatusOK, company.View())
}

// UpdateCompany handles PUT /api/companies/:id
func (h *CompanyHandlers) UpdateCompany(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := pathUUID(c, "id", "company id")
	if err != nil {
		return err
	}
	if !common.CompanyScopeAllows(ctx, companyID) {
		return common.SendForbidden(c, "Access to this company is not permitted")
	}

	var req struct {
		Name               string `json:"name"`
		Status             string `json:"status"`
		SubscriptionTier   string `json:"subscriptionTier"`
		SubscriptionStatus string `json:"subscriptionStatus"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	company := &models.Company{
		ID:                 companyID,
		Name:               req.Name,
		Status:             req.Status,
		SubscriptionTier:   req.SubscriptionTier,
		SubscriptionStatus: req.SubscriptionStatus,
	}

	updated, err := h.companyService.Update(ctx, company)
	if err != nil {
		return common.SendServiceError(c, err, "company")
	}
	return c.JSON(http.StatusOK, updated.View())
}

// DeleteCompany handles DELETE /api/companies/:id
func (h *CompanyHandlers) DeleteCompany(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := pathUUID(c, "id", "company id")
	if err != nil {
		return err
	}
	if !common.CompanyScopeAllows(ctx, companyID) {
		return common.SendForbidden(c, "Access to this company is not permitted")
	}

	if err := h.companyService.Delete(ctx, companyID); err != nil {
		return common.SendServiceError(c, err, "company")
	}
	return c.NoContent(http.StatusNoContent)
}

// AddMember handles POST /api/companies/:id/members
func (h *CompanyHandlers) AddMember(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := pathUUID(c, "id", "company id")
	if err != nil {
		return err
	}
	if !common.CompanyScopeAllows(ctx, companyID) {
		return common.SendForbidden(c, "Access to this company is not permitted")
	}

	var req struct {
		UserID string `json:"userId"`
		Role   string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	userID, err := common.ValidateUUID(req.UserID, "userId")
	if err != nil {
		return common.SendValidationError(c, err.Error())
	}

	if err := h.companyService.AddMember(ctx, companyID, userID, models.ParseRole(req.Role)); err != nil {
		return common.SendServiceError(c, err, "company member")
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Member added"})
}

// ListMembers handles GET /api/companies/:id/members
func (h *CompanyHandlers) ListMembers(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := pathUUID(c, "id", "company id")
	if err != nil {
		return err
	}
	if !common.CompanyScopeAllows(ctx, companyID) {
		return common.SendForbidden(c, "Access to this company is not permitted")
	}

	members, err := h.companyService.ListMembers(ctx, companyID)
	if err != nil {
		return common.SendServiceError(c, err, "company member")
	}
	return c.JSON(http.StatusOK, members)
}

// RemoveMember handles DELETE /api/companies/:id/members/:userId
func (h *CompanyHandlers) RemoveMember(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, err := pathUUID(c, "id", "company id")
	if err != nil {
		return err
	}
	if !common.CompanyScopeAllows(ctx, companyID) {
		return common.SendForbidden(c, "Access to this company is not permitted")
	}

	userID, err := pathUUID(c, "userId", "user id")
	if err != nil {
		return err
	}

	if err := h.companyService.RemoveMember(ctx, companyID, userID); err != nil {
		return common.SendServiceError(c, err, "company member")
	}
	return c.NoContent(http.StatusNoContent)
}
