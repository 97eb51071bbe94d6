// Package middleware holds the reference backend's authentication and
// authorization middleware.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/core/domain"
)

// Context keys set by this package.
const (
	KeyUserID = "user_id"
	KeyRole   = "role"
	KeyUser   = "user"
)

// Auth validates the JWT and injects its subject and role into the context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, invalid header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
			}

			sub, _ := claims.GetSubject()
			if sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
			}
			c.Set(KeyUserID, sub)
			c.Set(KeyRole, claims["role"])

			return next(c)
		}
	}
}

// Resolver looks up the current profile of a token subject.
type Resolver interface {
	Resolve(ctx context.Context, userID string) (*domain.User, error)
}

// LoadUser replaces the token's role with the stored one so role upgrades
// apply without a new token. Must run after Auth.
func LoadUser(r Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, _ := c.Get(KeyUserID).(string)
			user, err := r.Resolve(c.Request().Context(), id)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, user not found")
			}
			c.Set(KeyUser, user)
			c.Set(KeyRole, string(user.Role))
			return next(c)
		}
	}
}

// CurrentUser returns the profile set by LoadUser.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(KeyUser).(*domain.User)
	return u
}
