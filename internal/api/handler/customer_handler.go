package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prysm/crm-system/internal/core/ports"
)

// CustomerHandler handles HTTP requests for customer operations.
type CustomerHandler struct {
	service ports.CustomerService
}

func NewCustomerHandler(service ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// Create handles POST /api/customers.
//
// @Summary      Create a customer (ADMIN only)
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCustomerRequest  true  "Customer details"
// @Success      201   {object}  customerResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	customer, err := h.service.Create(c.Request().Context(), ports.CreateCustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toCustomerResponse(customer))
}

// List handles GET /api/customers with pagination and search.
//
// @Summary      List customers with pagination and search
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Param        search  query     string  false  "Substring match on name/email (case-insensitive) or phone"
// @Success      200     {object}  listCustomersResponse
// @Router       /customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	result, err := h.service.List(c.Request().Context(), ports.ListCustomersInput{
		Page:   queryInt(c.QueryParam("page")),
		Limit:  queryInt(c.QueryParam("limit")),
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return err
	}

	data := make([]customerResponse, len(result.Data))
	for i, customer := range result.Data {
		data[i] = toCustomerResponse(customer)
	}

	return c.JSON(http.StatusOK, listCustomersResponse{
		Page:         result.Page,
		Limit:        result.Limit,
		TotalRecords: result.TotalRecords,
		TotalPages:   result.TotalPages,
		Data:         data,
	})
}

// Get handles GET /api/customers/:id.
//
// @Summary      Get a customer by id
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Customer id"
// @Success      200  {object}  customerResponse
// @Failure      404  {object}  errorResponse
// @Router       /customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	customer, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCustomerResponse(customer))
}

// Delete handles DELETE /api/customers/:id.
//
// @Summary      Delete a customer (ADMIN only)
// @Tags         customers
// @Security     BearerAuth
// @Param        id  path  int  true  "Customer id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
