package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/lattice-sh/control-plane/pkg/errs"
)

func TestWrapErrorNil(t *testing.T) {
	assert.NoError(t, wrapError(nil, "customer", "acme"))
}

func TestWrapErrorUniqueViolation(t *testing.T) {
	err := wrapError(&pgconn.PgError{Code: sqlStateUniqueViolation}, "customer", "acme")

	var conflict errs.NameConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, "acme", conflict.Name)
}

func TestWrapErrorForeignKeyViolation(t *testing.T) {
	err := wrapError(&pgconn.PgError{Code: sqlStateForeignKeyViolation}, "organization", "42")

	var notFound errs.NotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, "42", notFound.EntityType)
}

func TestWrapErrorOpaque(t *testing.T) {
	err := wrapError(errors.New("connection reset"), "customer", "acme")
	assert.Error(t, err)

	var conflict errs.NameConflictError
	assert.False(t, errors.As(err, &conflict))
}
