// Package postgres implements the four hierarchy.*Repository interfaces
// against the customers/organizations/institutions/organization_units
// tables (plus organization_units' organization_unit_members join table),
// grounded on
// components/ledger/internal/adapters/database/postgres/organization.postgresql.go's
// manual-SQL CRUD shape. Unlike that teacher file there is no ByID/FindAll
// pagination here: the hierarchy never reads through Postgres directly,
// every lookup goes through InfraCache, so FindAll exists only to prime
// and resync that cache.
package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lattice-sh/control-plane/pkg/errs"
)

// sqlStateUniqueViolation and sqlStateForeignKeyViolation are the two
// Postgres error codes the mutation pipeline cares about distinguishing;
// everything else is an opaque store failure.
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
)

// wrapError classifies a Postgres driver error into the package's error
// taxonomy, grounded on
// components/ledger/internal/app/errors.go's ValidatePGError, but
// switching on SQLSTATE rather than a per-table constraint-name table
// since every hierarchy table shares the same two constraint shapes.
func wrapError(err error, entityType, constraintField string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateUniqueViolation:
			return errs.NameConflictError{EntityType: entityType, Name: constraintField, Err: pgErr}
		case sqlStateForeignKeyViolation:
			return errs.NotFoundError{EntityType: constraintField, Err: pgErr}
		}
	}

	return fmt.Errorf("%s: %w", entityType, err)
}
