package keycloakdb

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bxcodec/dbresolver/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-sh/control-plane/common/mpostgres"
)

func newTestConnection(t *testing.T) (*mpostgres.PostgresConnection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	connDB := dbresolver.New(dbresolver.WithPrimaryDBs(db))

	return &mpostgres.PostgresConnection{ConnectionDB: &connDB, Connected: true}, mock
}

func TestReaderLoadAllResolvesUsers(t *testing.T) {
	conn, mock := newTestConnection(t)
	r := &Reader{connection: conn}

	mock.ExpectQuery("SELECT id FROM realm").
		WithArgs("hierarchy").
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("realm-1"))

	mock.ExpectQuery("SELECT id, name FROM keycloak_role").
		WithArgs("realm-1").
		WillReturnRows(mock.NewRows([]string{"id", "name"}).AddRow("role-1", "admin"))

	mock.ExpectQuery("SELECT id, name FROM keycloak_group").
		WithArgs("realm-1").
		WillReturnRows(mock.NewRows([]string{"id", "name"}).AddRow("group-1", "ops"))

	mock.ExpectQuery("SELECT group_id, name, value FROM group_attribute").
		WithArgs("realm-1").
		WillReturnRows(mock.NewRows([]string{"group_id", "name", "value"}).AddRow("group-1", "display_name", "Ops"))

	mock.ExpectQuery("SELECT user_id, role_id FROM user_role_mapping").
		WithArgs("realm-1").
		WillReturnRows(mock.NewRows([]string{"user_id", "role_id"}).AddRow("user-1", "role-1"))

	mock.ExpectQuery("SELECT user_id, group_id FROM user_group_membership").
		WithArgs("realm-1").
		WillReturnRows(mock.NewRows([]string{"user_id", "group_id"}).AddRow("user-1", "group-1"))

	mock.ExpectQuery("SELECT id, username, email, first_name, last_name, enabled FROM user_entity").
		WithArgs("realm-1").
		WillReturnRows(mock.NewRows([]string{"id", "username", "email", "first_name", "last_name", "enabled"}).
			AddRow("user-1", "alice", "alice@example.com", "Alice", "A", true))

	snap, err := r.LoadAll(context.Background(), "hierarchy")
	require.NoError(t, err)

	require.Len(t, snap.Users, 1)
	u := snap.Users[0]
	assert.Equal(t, "alice", u.Username)
	require.Len(t, u.Roles, 1)
	assert.Equal(t, "admin", u.Roles[0].Name)
	require.Len(t, u.Groups, 1)
	assert.Equal(t, "/ops", u.Groups[0].Path)
	assert.NoError(t, mock.ExpectationsWereMet())
}
