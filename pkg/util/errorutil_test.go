package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapStorageError(t *testing.T) {
	if MapStorageError("ticket", nil) != nil {
		t.Fatal("nil error must map to nil")
	}

	err := MapStorageError("ticket", pgx.ErrNoRows)
	if !IsNotFound(err) {
		t.Fatalf("ErrNoRows must map to NOT_FOUND, got %v", err)
	}

	err = MapStorageError("customer", &pgconn.PgError{Code: "23505", ConstraintName: "customers_email_unique"})
	if !IsConflict(err) {
		t.Fatalf("unique violation must map to CONFLICT, got %v", err)
	}

	plain := errors.New("connection reset")
	if got := MapStorageError("ticket", plain); got != plain {
		t.Fatalf("unrelated errors must pass through, got %v", got)
	}
}

func TestToDomainError(t *testing.T) {
	validation := NewValidationError("bad input", map[string]any{"field": "name"})
	de := ToDomainError(validation)
	if de.Code != "VALIDATION_FAILED" || de.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("unexpected mapping: %+v", de)
	}

	de = ToDomainError(errors.New("boom"))
	if de.Code != "INTERNAL_ERROR" || de.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("generic errors must become INTERNAL_ERROR, got %+v", de)
	}

	de = ToDomainError(pgx.ErrNoRows)
	if de.Code != "NOT_FOUND" {
		t.Fatalf("ErrNoRows must become NOT_FOUND, got %+v", de)
	}
}

func TestUnavailableWrapsCause(t *testing.T) {
	cause := NewConflict("number already taken", nil)
	err := NewUnavailable("conversion could not be committed", cause)

	var de *DomainError
	if !errors.As(err, &de) || de.Code != "UNAVAILABLE" {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsConflict(errors.Unwrap(err)) {
		t.Fatal("cause must remain reachable via Unwrap")
	}
}
