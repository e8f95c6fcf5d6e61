package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NameConflictError{EntityType: "Customer", Name: "Acme"}, 409},
		{NotFoundError{EntityType: "Organization", ID: "T0101"}, 404},
		{UnauthorizedError{Message: "no access"}, 401},
		{BadRequestError{Field: "name", Message: "required"}, 400},
		{LockUnavailableError{Key: "v1_customer_lock_Acme"}, 500},
		{StoreFailureError{Store: "postgres"}, 500},
		{InternalError{Message: "invariant violated"}, 500},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, HTTPStatus(c.err))
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("connection reset")
	wrapped := StoreFailureError{Store: "redis", Err: inner}
	assert.ErrorIs(t, wrapped, inner)
}

func TestNotFoundErrorMessageWithoutID(t *testing.T) {
	err := NotFoundError{EntityType: "Institution"}
	assert.Equal(t, "Institution not found", err.Error())
}
