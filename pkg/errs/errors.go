// Package errs is the typed error taxonomy surfaced by the mutation
// pipeline and its collaborators, grounded on the shape of
// common/errors.go (EntityType/Title/Message/Code/Err, an Error() and an
// Unwrap()) but closed over exactly the seven kinds the control plane
// needs.
package errs

import (
	"fmt"
	"strings"
)

// NameConflictError records that a sibling with the same composite key
// already exists. Surfaced as HTTP 409.
type NameConflictError struct {
	EntityType string
	Name       string
	Code       string
	Err        error
}

func (e NameConflictError) Error() string {
	return fmt.Sprintf("%s with name %q already exists", e.EntityType, e.Name)
}

func (e NameConflictError) Unwrap() error { return e.Err }

// NotFoundError records that a referenced entity is missing. Surfaced as
// HTTP 404.
type NotFoundError struct {
	EntityType string
	ID         string
	Code       string
	Err        error
}

func (e NotFoundError) Error() string {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Sprintf("%s not found", e.EntityType)
	}

	return fmt.Sprintf("%s %s not found", e.EntityType, e.ID)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// UnauthorizedError records that the requested Context is not dominated by
// the caller's Context. Surfaced as HTTP 401.
type UnauthorizedError struct {
	Message string
	Code    string
	Err     error
}

func (e UnauthorizedError) Error() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}

	return "unauthorized"
}

func (e UnauthorizedError) Unwrap() error { return e.Err }

// BadRequestError records invalid input: an unparsable id, or a missing
// context required by an access level. Surfaced as HTTP 400.
type BadRequestError struct {
	Field   string
	Message string
	Code    string
	Err     error
}

func (e BadRequestError) Error() string {
	if strings.TrimSpace(e.Field) == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e BadRequestError) Unwrap() error { return e.Err }

// LockUnavailableError records that the distributed lock exhausted its
// retry budget.
type LockUnavailableError struct {
	Key  string
	Code string
	Err  error
}

func (e LockUnavailableError) Error() string {
	return fmt.Sprintf("lock unavailable for key %q", e.Key)
}

func (e LockUnavailableError) Unwrap() error { return e.Err }

// StoreFailureError records a transport error from SQL, the IdP, or the KV
// store. Surfaced as HTTP 500.
type StoreFailureError struct {
	Store   string
	Message string
	Code    string
	Err     error
}

func (e StoreFailureError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("%s store failure", e.Store)
	}

	return fmt.Sprintf("%s store failure: %s", e.Store, e.Message)
}

func (e StoreFailureError) Unwrap() error { return e.Err }

// InternalError records an invariant violation — a bug, not a client
// mistake.
type InternalError struct {
	Message string
	Code    string
	Err     error
}

func (e InternalError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return "internal error"
	}

	return e.Message
}

func (e InternalError) Unwrap() error { return e.Err }

// HTTPStatus maps an error produced by this package to the status code
// spec.md §7 assigns it. Errors outside this taxonomy map to 500, matching
// the "no stack traces, structured code" client-visible contract.
func HTTPStatus(err error) int {
	switch err.(type) {
	case NameConflictError:
		return 409
	case NotFoundError:
		return 404
	case UnauthorizedError:
		return 401
	case BadRequestError:
		return 400
	case LockUnavailableError, StoreFailureError, InternalError:
		return 500
	default:
		return 500
	}
}
