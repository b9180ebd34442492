package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bhargav3929/myacademydask-sub000/internal/api/middleware"
	"github.com/bhargav3929/myacademydask-sub000/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	cookieSecure bool
}

func NewAuthHandler(authService ports.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{authService: authService, cookieSecure: cookieSecure}
}

// Signup registers a new owner with their own organization.
//
// @Summary      Owner self-signup
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Owner details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	tok, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Username: req.Username,
	})
	if err != nil {
		return err
	}

	return h.writeSession(c, http.StatusCreated, tok)
}

// Login authenticates with an email or owner username and starts a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	tok, err := h.authService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return err
	}

	return h.writeSession(c, http.StatusOK, tok)
}

// Logout clears the session cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearSessionCookie(c, h.cookieSecure)
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "signed out"})
}

// Refresh re-issues the session token so claims written since login apply.
//
// @Summary      Refresh session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	session, err := sessionFrom(c)
	if err != nil {
		return err
	}

	tok, err := h.authService.Refresh(c.Request().Context(), *session)
	if err != nil {
		return err
	}

	return h.writeSession(c, http.StatusOK, tok)
}

// Me returns the caller's profile and stored claims.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	session, err := sessionFrom(c)
	if err != nil {
		return err
	}

	me, err := h.authService.Me(c.Request().Context(), *session)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, meResponse{Success: true, Profile: me.Profile, Claims: me.Claims})
}

// SyncRole reconciles the caller's claims with their profile.
//
// @Summary      Sync role claims
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  syncRoleResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/auth/sync-role [post]
func (h *AuthHandler) SyncRole(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	res, err := h.authService.SyncRole(c.Request().Context(), caller.UID)
	if err := observe("sync-user-role", err); err != nil {
		return err
	}

	msg := "role already in sync"
	if res.Changed {
		msg = "role updated, refresh your session to apply it"
	}
	return c.JSON(http.StatusOK, syncRoleResponse{
		Success:        true,
		Role:           res.Role,
		OrganizationID: res.OrganizationID,
		Changed:        res.Changed,
		Message:        msg,
	})
}

func (h *AuthHandler) writeSession(c echo.Context, status int, tok *ports.SessionToken) error {
	middleware.SetSessionCookie(c, tok.Token, tok.Session.ExpiresAt, h.cookieSecure)
	return c.JSON(status, sessionResponse{
		Success:        true,
		UID:            tok.Session.UID,
		Email:          tok.Session.Email,
		Role:           tok.Session.Claims.Role,
		OrganizationID: tok.Session.Claims.OrganizationID,
		Token:          tok.Token,
		ExpiresAt:      tok.Session.ExpiresAt,
	})
}
