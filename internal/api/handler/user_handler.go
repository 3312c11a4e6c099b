package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prysm/crm-system/internal/core/domain"
	"github.com/prysm/crm-system/internal/core/ports"
)

// UserHandler is the admin-only users surface.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN EMPLOYEE"`
}

// List handles GET /api/users.
//
// @Summary      List users (ADMIN only)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user by id (ADMIN only)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateRole handles PATCH /api/users/:id.
//
// @Summary      Change a user's role (ADMIN only)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{id} [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.UpdateRole(c.Request().Context(), id, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
