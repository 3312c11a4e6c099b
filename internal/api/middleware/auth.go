package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/prysm/crm-system/internal/core/domain"
)

// Context keys populated by Auth and read by handlers via ctxIdentity.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// Auth validates the bearer JWT and injects the caller's identity claims
// into the request context. A token whose role claim is not a known role is
// rejected: such a token is a configuration error, not a valid identity.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			userID, ok := claims[CtxUserID].(float64)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
			}
			role, _ := claims[CtxRole].(string)
			if !domain.ValidRole(domain.Role(role)) {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown role in token")
			}
			email, _ := claims[CtxEmail].(string)

			c.Set(CtxUserID, int64(userID))
			c.Set(CtxEmail, email)
			c.Set(CtxRole, role)

			return next(c)
		}
	}
}
