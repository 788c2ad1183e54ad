package domain

import "time"

// CustomerType distinguishes business and private customers.
type CustomerType string

const (
	CustomerTypeCompany CustomerType = "COMPANY"
	CustomerTypePrivate CustomerType = "PRIVATE"
)

// Customer owns projects. Customers are created either by office staff or
// lazily during ticket conversion, keyed by normalized email.
type Customer struct {
	ID            string
	Type          CustomerType
	CompanyName   string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	ZipCode       string
	City          string
	Notes         string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
