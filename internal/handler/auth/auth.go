package auth

import (
	"net/http"
	"strings"
	"time"

	"portfolio-api/internal/api"
	"portfolio-api/internal/database"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/service"
	"portfolio-api/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	getUserByEmail      = store.GetUserByEmail
	getUserByID         = store.GetUserByID
	authenticateUser    = service.AuthenticateUser
	issueAccessToken    = service.IssueAccessToken
	hashPassword        = service.HashPassword
	validateNewPassword = service.ValidateNewPassword
	updateUserPassword  = store.UpdateUserPassword
)

const tokenTTL = 24 * time.Hour

// @Summary     Log in
// @Description Verifies email and password and returns a signed access token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body api.LoginRequest true "credentials"
// @Success     200 {object} api.LoginResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /login [post]
func LoginHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Email and password required"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := getUserByEmail(c.Request().Context(), db, strings.ToLower(req.Email))
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "User not found"})
		}

		if err := authenticateUser(c.Request().Context(), *user, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid credentials"})
		}

		token, err := issueAccessToken(*user, tokenTTL)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Internal server error", Error: err.Error()})
		}

		return c.JSON(http.StatusOK, api.LoginResponse{Success: true, Token: token})
	}
}

// @Summary     Current identity
// @Description Returns the public profile of the authenticated user
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.MeResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /me [get]
func MeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		if !ok || claims.UserID == 0 {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		user, err := getUserByID(c.Request().Context(), db, claims.UserID)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Internal server error", Error: err.Error()})
		}

		return c.JSON(http.StatusOK, api.MeResponse{
			Success: true,
			User: api.UserProfile{
				ID:    user.ID,
				Email: user.Email,
				Role:  user.Role,
				Name:  user.Name,
			},
		})
	}
}

// @Summary     Reset own password
// @Description Verifies the current password and sets a policy-checked new one
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body api.ResetPasswordRequest true "current and new password"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /reset-password [post]
func ResetPasswordHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.ResetPasswordRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Current and new password required"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		claims, ok := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		if !ok || claims.UserID == 0 {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		user, err := getUserByID(c.Request().Context(), db, claims.UserID)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Internal server error", Error: err.Error()})
		}

		if err := authenticateUser(c.Request().Context(), *user, req.CurrentPassword); err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid current password"})
		}

		if err := validateNewPassword(req.NewPassword); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		hash, err := hashPassword(req.NewPassword)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Internal server error", Error: err.Error()})
		}

		if err := updateUserPassword(c.Request().Context(), db, user.ID, hash); err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Internal server error", Error: err.Error()})
		}

		return c.JSON(http.StatusOK, api.MessageResponse{Success: true, Message: "Password updated successfully"})
	}
}
