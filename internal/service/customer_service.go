package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/epwerk/field-service/internal/domain"
	"github.com/epwerk/field-service/internal/repository"
	apperrors "github.com/epwerk/field-service/pkg/util"
)

// CustomerService handles office-facing customer records.
type CustomerService struct {
	customers repository.CustomerRepository
}

// NewCustomerService constructs the service.
func NewCustomerService(customers repository.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// CustomerInput describes create/update payloads.
type CustomerInput struct {
	Type          domain.CustomerType
	CompanyName   string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	ZipCode       string
	City          string
	Notes         string
	Status        string
}

// CreateCustomer stores a new customer record.
func (s *CustomerService) CreateCustomer(ctx context.Context, input CustomerInput) (*domain.Customer, error) {
	if input.CompanyName == "" && input.ContactPerson == "" {
		return nil, apperrors.NewValidationError("company name or contact person required", nil)
	}
	customer := &domain.Customer{
		Type:          input.Type,
		CompanyName:   input.CompanyName,
		ContactPerson: input.ContactPerson,
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:         input.Phone,
		Address:       input.Address,
		ZipCode:       input.ZipCode,
		City:          input.City,
		Notes:         input.Notes,
		Status:        input.Status,
	}
	if customer.Type == "" {
		customer.Type = domain.CustomerTypeCompany
	}
	if customer.Status == "" {
		customer.Status = "Active"
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, apperrors.MapStorageError("customer", err)
	}
	return customer, nil
}

// GetCustomer fetches one customer.
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("customer", map[string]any{"id": id})
		}
		return nil, err
	}
	return customer, nil
}

// ListCustomers returns customers matching the search term.
func (s *CustomerService) ListCustomers(ctx context.Context, searchTerm string, limit, offset int) ([]domain.Customer, error) {
	return s.customers.List(ctx, searchTerm, limit, offset)
}

// UpdateCustomer overwrites customer fields.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, input CustomerInput) (*domain.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Type != "" {
		customer.Type = input.Type
	}
	customer.CompanyName = input.CompanyName
	customer.ContactPerson = input.ContactPerson
	if input.Email != "" {
		customer.Email = strings.ToLower(strings.TrimSpace(input.Email))
	}
	customer.Phone = input.Phone
	customer.Address = input.Address
	customer.ZipCode = input.ZipCode
	customer.City = input.City
	customer.Notes = input.Notes
	if input.Status != "" {
		customer.Status = input.Status
	}
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, apperrors.MapStorageError("customer", err)
	}
	return customer, nil
}

// DeleteCustomer removes a customer record.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("customer", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
