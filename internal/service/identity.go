package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/epwerk/field-service/internal/domain"
	"github.com/epwerk/field-service/internal/repository"
	apperrors "github.com/epwerk/field-service/pkg/util"
)

// resolveCustomerByEmail finds the customer owning the given email or
// creates one. Lookups normalize case, so two tickets from the same address
// always land on the same record. A concurrent insert of the same email
// trips the unique index; that surfaces as CONFLICT and the enclosing
// transaction is retried, at which point the lookup finds the winner's row.
func resolveCustomerByEmail(ctx context.Context, customers repository.CustomerRepository, email, name, phone string) (*domain.Customer, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil, apperrors.NewValidationError("ticket has no sender email", nil)
	}

	existing, err := customers.GetByEmail(ctx, normalized)
	if err == nil {
		return existing, nil
	}
	if err != pgx.ErrNoRows && !apperrors.IsNotFound(err) {
		return nil, err
	}

	customer := &domain.Customer{
		Type:          domain.CustomerTypePrivate,
		ContactPerson: strings.TrimSpace(name),
		Email:         normalized,
		Phone:         strings.TrimSpace(phone),
		Status:        "Active",
	}
	if err := customers.Create(ctx, customer); err != nil {
		return nil, apperrors.MapStorageError("customer", err)
	}
	return customer, nil
}
