// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// invalidError marks a caller-fault condition. Its message is written
// by the service and is safe to return to the client.
type invalidError struct{ msg string }

func (e *invalidError) Error() string { return e.msg }

// Invalid builds a caller-fault error with a client-facing message.
// The error handler maps it to a 4xx carrying the message intact, so
// it must never embed driver or infrastructure details.
func Invalid(format string, args ...any) error {
	return &invalidError{msg: fmt.Sprintf(format, args...)}
}

// IsInvalid reports whether err was built with Invalid.
func IsInvalid(err error) bool {
	var ie *invalidError
	return errors.As(err, &ie)
}

// Sentinel errors shared across services. Handlers map these to HTTP
// statuses; anything unclassified becomes a generic 500.
var (
	// ErrNotFound covers both genuinely absent rows and rows excluded by
	// the row-level isolation policy. Callers must never distinguish
	// "forbidden" from "absent" for tenant-scoped data.
	ErrNotFound = errors.New("registro no encontrado")

	// ErrProcedureNotInstalled means the tenant bootstrap procedure is
	// missing from the database. Recoverable only by an operator running
	// cmd/migrate, then retrying.
	ErrProcedureNotInstalled = errors.New("la funcion initialize_tenant_for_user no esta instalada; ejecute cmd/migrate y reintente")

	// ErrSeedInProgress rejects a duplicate demo-seeding trigger while
	// one is already outstanding for the tenant.
	ErrSeedInProgress = errors.New("la carga de datos demo ya esta en curso")
)
