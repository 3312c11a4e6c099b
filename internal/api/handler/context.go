package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prysm/crm-system/internal/api/middleware"
	"github.com/prysm/crm-system/internal/core/domain"
)

// ctxIdentity rebuilds the caller's identity from the claims injected by the
// Auth middleware and performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - user_id must be present; a token without it cannot be attributed to
//     any account, so it is rejected with 401.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	role, _ := c.Get(middleware.CtxRole).(string)
	if role == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ := c.Get(middleware.CtxUserID).(int64)
	if userID == 0 {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}

	email, _ := c.Get(middleware.CtxEmail).(string)

	return domain.Identity{UserID: userID, Email: email, Role: domain.Role(role)}, nil
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := parseInt64(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
