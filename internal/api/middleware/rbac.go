package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prysm/crm-system/internal/api/metrics"
	"github.com/prysm/crm-system/internal/core/domain"
)

// Authorize enforces the per-operation role policy. It consults the static
// allow-list for op before the handler runs, so unauthorized roles are
// rejected without any data access.
func Authorize(op domain.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if !domain.IsRoleAllowed(op, domain.Role(role)) {
				metrics.AuthDenialsTotal.WithLabelValues("role").Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
