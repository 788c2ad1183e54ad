package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the querying surface repositories run against. Both *pgxpool.Pool
// and pgx.Tx satisfy it, so the same repository code serves pooled reads and
// transactional writes.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Stores bundles the repositories the conversion workflow touches, all bound
// to the same DB handle.
type Stores struct {
	Tickets    TicketRepository
	Customers  CustomerRepository
	Categories CategoryRepository
	Projects   ProjectRepository
	Stages     ProjectStageRepository
	Sequences  SequenceRepository
}

// NewStores binds every repository to the given handle.
func NewStores(db DB) Stores {
	return Stores{
		Tickets:    NewTicketRepository(db),
		Customers:  NewCustomerRepository(db),
		Categories: NewCategoryRepository(db),
		Projects:   NewProjectRepository(db),
		Stages:     NewProjectStageRepository(db),
		Sequences:  NewSequenceRepository(db),
	}
}

// UnitOfWork runs a function against transaction-bound stores. Either every
// write inside fn commits or none do.
type UnitOfWork interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}

type pgxUnitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork creates a Postgres-backed unit of work.
func NewUnitOfWork(pool *pgxpool.Pool) UnitOfWork {
	return &pgxUnitOfWork{pool: pool}
}

func (u *pgxUnitOfWork) InTransaction(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	if err := fn(ctx, NewStores(tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
