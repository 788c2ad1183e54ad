package dto

import (
	"time"

	"github.com/epwerk/field-service/internal/domain"
)

// CustomerRequest is the create/update payload.
type CustomerRequest struct {
	Type          domain.CustomerType `json:"type"`
	CompanyName   string              `json:"company_name"`
	ContactPerson string              `json:"contact_person"`
	Email         string              `json:"email"`
	Phone         string              `json:"phone"`
	Address       string              `json:"address"`
	ZipCode       string              `json:"zip_code"`
	City          string              `json:"city"`
	Notes         string              `json:"notes"`
	Status        string              `json:"status"`
}

// CustomerResponse represents a customer.
type CustomerResponse struct {
	ID            string              `json:"id"`
	Type          domain.CustomerType `json:"type"`
	CompanyName   string              `json:"company_name,omitempty"`
	ContactPerson string              `json:"contact_person,omitempty"`
	Email         string              `json:"email,omitempty"`
	Phone         string              `json:"phone,omitempty"`
	Address       string              `json:"address,omitempty"`
	ZipCode       string              `json:"zip_code,omitempty"`
	City          string              `json:"city,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}
