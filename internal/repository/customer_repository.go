package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/epwerk/field-service/internal/domain"
)

const customerColumns = `id, type, company_name, contact_person, email, phone,
               address, zip_code, city, notes, status, created_at, updated_at`

// CustomerRepository encapsulates customer persistence.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	// GetByEmail matches on the lowercased address.
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	List(ctx context.Context, searchTerm string, limit, offset int) ([]domain.Customer, error)
}

type customerRepository struct {
	db DB
}

// NewCustomerRepository instantiates repository.
func NewCustomerRepository(db DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	const query = `
        INSERT INTO customers (type, company_name, contact_person, email, phone, address, zip_code, city, notes, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		customer.Type,
		customer.CompanyName,
		customer.ContactPerson,
		customer.Email,
		customer.Phone,
		customer.Address,
		customer.ZipCode,
		customer.City,
		customer.Notes,
		customer.Status,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	const query = `
        UPDATE customers SET type=$1, company_name=$2, contact_person=$3, email=$4, phone=$5,
            address=$6, zip_code=$7, city=$8, notes=$9, status=$10, updated_at=NOW()
        WHERE id=$11`
	cmd, err := r.db.Exec(ctx, query,
		customer.Type,
		customer.CompanyName,
		customer.ContactPerson,
		customer.Email,
		customer.Phone,
		customer.Address,
		customer.ZipCode,
		customer.City,
		customer.Notes,
		customer.Status,
		customer.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE LOWER(email)=LOWER($1)`
	return r.fetchSingle(ctx, query, email)
}

func (r *customerRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Customer, error) {
	var customer domain.Customer
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&customer.ID,
		&customer.Type,
		&customer.CompanyName,
		&customer.ContactPerson,
		&customer.Email,
		&customer.Phone,
		&customer.Address,
		&customer.ZipCode,
		&customer.City,
		&customer.Notes,
		&customer.Status,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, searchTerm string, limit, offset int) ([]domain.Customer, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if term := strings.TrimSpace(searchTerm); term != "" {
		args = append(args, "%"+strings.ToLower(term)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(company_name) LIKE %s OR LOWER(contact_person) LIKE %s OR LOWER(email) LIKE %s)",
			placeholder, placeholder, placeholder))
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		customerColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(
			&customer.ID,
			&customer.Type,
			&customer.CompanyName,
			&customer.ContactPerson,
			&customer.Email,
			&customer.Phone,
			&customer.Address,
			&customer.ZipCode,
			&customer.City,
			&customer.Notes,
			&customer.Status,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, customer)
	}
	return result, rows.Err()
}
