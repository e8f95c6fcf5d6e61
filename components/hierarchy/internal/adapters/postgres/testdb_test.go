package postgres

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bxcodec/dbresolver/v2"

	"github.com/lattice-sh/control-plane/common/mpostgres"
)

// newTestConnection wires a sqlmock-backed *sql.DB straight into a
// mpostgres.PostgresConnection with ConnectionDB already set, so GetDB
// returns it without ever calling Connect (which would dial a real
// Postgres and run migrations), grounded on
// components/reconciliation/internal/adapters/postgres/counts_test.go's
// sqlmock usage.
func newTestConnection(t *testing.T) (*mpostgres.PostgresConnection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	connDB := dbresolver.New(dbresolver.WithPrimaryDBs(db))

	return &mpostgres.PostgresConnection{ConnectionDB: &connDB, Connected: true}, mock
}
