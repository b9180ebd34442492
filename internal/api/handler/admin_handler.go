package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
	"github.com/bhargav3929/myacademydask-sub000/internal/core/ports"
)

// AdminHandler serves the super-admin's owner provisioning endpoints.
type AdminHandler struct {
	accounts ports.AccountService
}

func NewAdminHandler(accounts ports.AccountService) *AdminHandler {
	return &AdminHandler{accounts: accounts}
}

// GrantOwner handles POST /api/super-admin/grant-owner.
//
// @Summary      Grant the owner role
// @Tags         super-admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      grantOwnerRequest  true  "Target user and organization"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/super-admin/grant-owner [post]
func (h *AdminHandler) GrantOwner(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req grantOwnerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return observe("grant-owner-role", err)
	}

	err = h.accounts.GrantOwnerRole(c.Request().Context(), caller, ports.GrantOwnerRoleInput{
		TargetUID:      req.TargetUID,
		OrganizationID: req.OrganizationID,
	})
	if err := observe("grant-owner-role", err); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "owner role granted"})
}

// CreateOwner handles POST /api/super-admin/owners.
//
// @Summary      Provision a stadium owner
// @Tags         super-admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOwnerRequest  true  "Owner details"
// @Success      201   {object}  createOwnerResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/super-admin/owners [post]
func (h *AdminHandler) CreateOwner(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req createOwnerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return observe("create-stadium-owner", err)
	}

	created, err := h.accounts.CreateStadiumOwner(c.Request().Context(), caller, ports.CreateStadiumOwnerInput{
		FullName: req.FullName,
		Username: req.Username,
		Password: req.Password,
	})
	if err := observe("create-stadium-owner", err); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createOwnerResponse{
		Success:        true,
		OwnerDocID:     created.OwnerDocID,
		UID:            created.UID,
		Email:          created.Email,
		OrganizationID: created.OrganizationID,
	})
}

// ListOwners handles GET /api/super-admin/owners.
//
// @Summary      List stadium owners
// @Tags         super-admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ownerListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/super-admin/owners [get]
func (h *AdminHandler) ListOwners(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	owners, err := h.accounts.ListOwners(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ownerListResponse{Success: true, Owners: owners})
}

// UpdateOwnerPassword handles POST /api/super-admin/owners/password.
//
// @Summary      Set an owner's password
// @Tags         super-admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateOwnerPasswordRequest  true  "Target and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/super-admin/owners/password [post]
func (h *AdminHandler) UpdateOwnerPassword(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req updateOwnerPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return observe("update-owner-password", err)
	}

	err = h.accounts.UpdateOwnerPassword(c.Request().Context(), caller, ports.UpdateOwnerPasswordInput{
		TargetUID:   req.TargetUID,
		NewPassword: req.NewPassword,
	})
	if err := observe("update-owner-password", err); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "password updated"})
}

// ToggleOwnerStatus handles POST /api/super-admin/owners/status.
//
// @Summary      Change an owner's status
// @Description  Deactivating or suspending an owner disables the account and revokes the sessions of the owner and all of their coaches.
// @Tags         super-admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      toggleOwnerStatusRequest  true  "Target, owner record and status"
// @Success      200   {object}  toggleOwnerStatusResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/super-admin/owners/status [post]
func (h *AdminHandler) ToggleOwnerStatus(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req toggleOwnerStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return observe("toggle-owner-status", err)
	}

	status := domain.OwnerStatus(req.Status)
	err = h.accounts.ToggleOwnerStatus(c.Request().Context(), caller, ports.ToggleOwnerStatusInput{
		TargetUID:  req.TargetUID,
		OwnerDocID: req.OwnerDocID,
		Status:     status,
	})
	if err := observe("toggle-owner-status", err); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toggleOwnerStatusResponse{
		Success: true,
		Status:  string(status),
		Message: "owner status set to " + string(status),
	})
}

// UpdateOwnerCredentials handles POST /api/super-admin/owners/credentials.
//
// @Summary      Change an owner's username and password
// @Tags         super-admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateOwnerCredentialsRequest  true  "Target, owner record and credentials"
// @Success      200   {object}  updateOwnerCredentialsResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/super-admin/owners/credentials [post]
func (h *AdminHandler) UpdateOwnerCredentials(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req updateOwnerCredentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return observe("update-owner-credentials", err)
	}

	res, err := h.accounts.UpdateOwnerCredentials(c.Request().Context(), caller, ports.UpdateOwnerCredentialsInput{
		TargetUID:   req.TargetUID,
		OwnerDocID:  req.OwnerDocID,
		NewUsername: req.NewUsername,
		NewPassword: req.NewPassword,
	})
	if err := observe("update-owner-credentials", err); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updateOwnerCredentialsResponse{
		Success:         true,
		Email:           res.Email,
		Username:        res.Username,
		PasswordUpdated: res.PasswordUpdated,
	})
}
