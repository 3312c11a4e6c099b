package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prysm/crm-system/internal/core/domain"
	"github.com/prysm/crm-system/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task (ADMIN only)
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	detail, err := h.service.Create(c.Request().Context(), identity, ports.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       domain.TaskStatus(req.Status),
		AssignedToID: req.AssignedToID,
		CustomerID:   req.CustomerID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toTaskResponse(detail))
}

// List handles GET /api/tasks. ADMIN sees all tasks, EMPLOYEE only their own.
//
// @Summary      List tasks (ADMIN sees all, EMPLOYEE sees assigned tasks)
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  taskResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	details, err := h.service.List(c.Request().Context(), identity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTaskListResponse(details))
}

// Get handles GET /api/tasks/:id.
//
// @Summary      Get task by id
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task id"
// @Success      200  {object}  taskResponse
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), identity, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTaskResponse(detail))
}

// UpdateStatus handles PATCH /api/tasks/:id/status.
//
// @Summary      Update task status (EMPLOYEE only for own task)
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                      true  "Task id"
// @Param        body  body      updateTaskStatusRequest  true  "New status"
// @Success      200   {object}  taskResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	detail, err := h.service.UpdateStatus(c.Request().Context(), identity, id, domain.TaskStatus(req.Status))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTaskResponse(detail))
}

// Activity handles GET /api/tasks/:id/activity.
//
// @Summary      Get a task's activity trail, newest first
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     int  true  "Task id"
// @Success      200  {array}  taskActivityResponse
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id}/activity [get]
func (h *TaskHandler) Activity(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	entries, err := h.service.Activity(c.Request().Context(), identity, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toActivityResponse(entries))
}
