package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/epwerk/field-service/internal/api/dto"
	"github.com/epwerk/field-service/internal/domain"
	"github.com/epwerk/field-service/internal/service"
	apperrors "github.com/epwerk/field-service/pkg/util"
)

// CustomersHandler manages customer endpoints.
type CustomersHandler struct {
	service *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customerService *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{service: customerService}
}

// ListCustomers GET /customers.
func (h *CustomersHandler) ListCustomers(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	customers, err := h.service.ListCustomers(c.Context(), c.Query("search"), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, customerResponse(&customers[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetCustomer GET /customers/:id.
func (h *CustomersHandler) GetCustomer(c *fiber.Ctx) error {
	customer, err := h.service.GetCustomer(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

// CreateCustomer POST /customers.
func (h *CustomersHandler) CreateCustomer(c *fiber.Ctx) error {
	var req dto.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	customer, err := h.service.CreateCustomer(c.Context(), customerInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": customerResponse(customer)})
}

// UpdateCustomer PATCH /customers/:id.
func (h *CustomersHandler) UpdateCustomer(c *fiber.Ctx) error {
	var req dto.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	customer, err := h.service.UpdateCustomer(c.Context(), c.Params("id"), customerInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

// DeleteCustomer DELETE /customers/:id.
func (h *CustomersHandler) DeleteCustomer(c *fiber.Ctx) error {
	if err := h.service.DeleteCustomer(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func customerInput(req dto.CustomerRequest) service.CustomerInput {
	return service.CustomerInput{
		Type:          req.Type,
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		ZipCode:       req.ZipCode,
		City:          req.City,
		Notes:         req.Notes,
		Status:        req.Status,
	}
}

func customerResponse(customer *domain.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:            customer.ID,
		Type:          customer.Type,
		CompanyName:   customer.CompanyName,
		ContactPerson: customer.ContactPerson,
		Email:         customer.Email,
		Phone:         customer.Phone,
		Address:       customer.Address,
		ZipCode:       customer.ZipCode,
		City:          customer.City,
		Notes:         customer.Notes,
		Status:        customer.Status,
		CreatedAt:     customer.CreatedAt,
		UpdatedAt:     customer.UpdatedAt,
	}
}
