package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/ports"
)

// OwnerHandler serves the owner's stadium and coach management endpoints.
type OwnerHandler struct {
	accounts ports.AccountService
}

func NewOwnerHandler(accounts ports.AccountService) *OwnerHandler {
	return &OwnerHandler{accounts: accounts}
}

// CreateStadium handles POST /api/owner/stadiums.
//
// @Summary      Create a stadium and its coach
// @Tags         owner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createStadiumRequest  true  "Stadium and coach details"
// @Success      201   {object}  createStadiumResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      412   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/owner/stadiums [post]
func (h *OwnerHandler) CreateStadium(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req createStadiumRequest
	if err := bindAndValidate(c, &req); err != nil {
		return observe("create-stadium-and-coach", err)
	}

	created, err := h.accounts.CreateStadiumAndCoach(c.Request().Context(), caller, ports.CreateStadiumAndCoachInput{
		StadiumName:   req.StadiumName,
		Location:      req.Location,
		CoachFullName: req.CoachFullName,
		CoachEmail:    req.CoachEmail,
		CoachPhone:    req.CoachPhone,
		CoachUsername: req.CoachUsername,
		CoachPassword: req.CoachPassword,
	})
	if err := observe("create-stadium-and-coach", err); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createStadiumResponse{
		Success:   true,
		Message:   "stadium and coach created",
		StadiumID: created.StadiumID,
		CoachUID:  created.CoachUID,
	})
}

// ListStadiums handles GET /api/owner/stadiums.
//
// @Summary      List the organization's stadiums
// @Tags         owner
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  stadiumListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      412  {object}  errorResponse
// @Router       /api/owner/stadiums [get]
func (h *OwnerHandler) ListStadiums(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	stadiums, err := h.accounts.ListStadiums(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stadiumListResponse{Success: true, Stadiums: stadiums})
}

// CreateCoach handles POST /api/owner/coaches.
//
// @Summary      Create a coach account
// @Tags         owner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCoachRequest  true  "Coach details"
// @Success      201   {object}  createCoachResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      412   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/owner/coaches [post]
func (h *OwnerHandler) CreateCoach(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req createCoachRequest
	if err := bindAndValidate(c, &req); err != nil {
		return observe("create-coach-user", err)
	}

	uid, err := h.accounts.CreateCoachUser(c.Request().Context(), caller, ports.CreateCoachUserInput{
		Email:         req.Email,
		Password:      req.Password,
		DisplayName:   req.DisplayName,
		CoachUsername: req.CoachUsername,
	})
	if err := observe("create-coach-user", err); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createCoachResponse{Success: true, UID: uid})
}
