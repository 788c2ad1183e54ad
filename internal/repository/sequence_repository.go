package repository

import (
	"context"
	"fmt"
)

// projectSequenceName keys the project counter row; projectNumberFloor is the
// first number ever handed out.
const (
	projectSequenceName = "project"
	projectNumberFloor  = 1000
)

// SequenceRepository hands out unique, strictly increasing project numbers.
// The high-water mark lives in its own table row, moved forward atomically by
// the allocating statement, so two concurrent allocations can never observe
// the same value. Numbers allocated inside a transaction that later rolls
// back are burned, never reused.
type SequenceRepository interface {
	NextProjectNumber(ctx context.Context) (string, error)
}

type sequenceRepository struct {
	db DB
}

// NewSequenceRepository instantiates repository.
func NewSequenceRepository(db DB) SequenceRepository {
	return &sequenceRepository{db: db}
}

func (r *sequenceRepository) NextProjectNumber(ctx context.Context) (string, error) {
	var next int64
	row := r.db.QueryRow(ctx, `
        INSERT INTO project_sequences (name, next_number)
        VALUES ($1, $2)
        ON CONFLICT (name)
        DO UPDATE SET next_number = project_sequences.next_number + 1
        RETURNING next_number
    `, projectSequenceName, projectNumberFloor)
	if err := row.Scan(&next); err != nil {
		return "", err
	}
	return FormatProjectNumber(next), nil
}

// FormatProjectNumber renders the canonical EP-<n> form.
func FormatProjectNumber(n int64) string {
	return fmt.Sprintf("EP-%d", n)
}
