package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"portfolio-api/internal/database"
	"portfolio-api/internal/service"
	"portfolio-api/internal/store"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

var getUserByID = store.GetUserByID

func extractClaims(c echo.Context) (*service.CustomClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	claims, err := service.VerifyAccessToken(parts[1])
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("invalid token: %v", err))
	}
	return claims, nil
}

// RequireAuth verifies the bearer token, resolves it to a live user record
// and attaches the identity to the request context. The token may be older
// than the user's last role change, so id/email/role come from the current
// database row, not the token payload.
func RequireAuth(db database.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if os.Getenv("JWT_SECRET") == "" {
				return echo.NewHTTPError(http.StatusInternalServerError, "server token secret not configured")
			}
			claims, err := extractClaims(c)
			if err != nil {
				return err
			}
			user, err := getUserByID(c.Request().Context(), db, claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token: user not found")
			}
			claims.UserID = user.ID
			claims.Email = user.Email
			claims.Role = user.Role
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

// RequireAdmin is RequireAuth plus an ADMIN role check.
func RequireAdmin(db database.DB) echo.MiddlewareFunc {
	requireAuth := RequireAuth(db)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return requireAuth(func(c echo.Context) error {
			claims := c.Get(ContextUserKey).(*service.CustomClaims)
			if !claims.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
			}
			return next(c)
		})
	}
}
