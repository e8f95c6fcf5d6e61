package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/hierarchy"
)

func customerColumns() []string {
	return []string{"cid", "name", "type", "created_at", "created_by", "updated_at", "updated_by", "deleted_at"}
}

func TestCustomerRepositoryCreate(t *testing.T) {
	conn, mock := newTestConnection(t)
	r := &CustomerRepository{connection: conn, tableName: "customers"}

	now := time.Now()
	mock.ExpectQuery("INSERT INTO customers").
		WillReturnRows(mock.NewRows(customerColumns()).
			AddRow(int64(1), "acme", nil, now, "alice", now, "alice", nil))

	c, err := r.Create(context.Background(), hierarchy.CreateCustomerInput{Name: "acme", CreatedBy: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.CID)
	assert.Equal(t, "acme", c.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepositoryCreateNameConflict(t *testing.T) {
	conn, mock := newTestConnection(t)
	r := &CustomerRepository{connection: conn, tableName: "customers"}

	mock.ExpectQuery("INSERT INTO customers").
		WillReturnError(&pgconn.PgError{Code: sqlStateUniqueViolation})

	_, err := r.Create(context.Background(), hierarchy.CreateCustomerInput{Name: "acme", CreatedBy: "alice"})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepositoryUpdate(t *testing.T) {
	conn, mock := newTestConnection(t)
	r := &CustomerRepository{connection: conn, tableName: "customers"}

	now := time.Now()
	mock.ExpectQuery("UPDATE customers SET").
		WillReturnRows(mock.NewRows(customerColumns()).
			AddRow(int64(1), "acme-renamed", nil, now, "alice", now, "bob", nil))

	newName := "acme-renamed"
	c, err := r.Update(context.Background(), 1, hierarchy.UpdateCustomerInput{Name: &newName, UpdatedBy: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "acme-renamed", c.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepositoryDelete(t *testing.T) {
	conn, mock := newTestConnection(t)
	r := &CustomerRepository{connection: conn, tableName: "customers"}

	mock.ExpectExec("UPDATE customers SET deleted_at").
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := r.Delete(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepositoryFindAll(t *testing.T) {
	conn, mock := newTestConnection(t)
	r := &CustomerRepository{connection: conn, tableName: "customers"}

	now := time.Now()
	mock.ExpectQuery("SELECT cid, name, type").
		WillReturnRows(mock.NewRows(customerColumns()).
			AddRow(int64(1), "acme", nil, now, "alice", now, "alice", nil).
			AddRow(int64(2), "globex", nil, now, "alice", now, "alice", nil))

	customers, err := r.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "acme", customers[0].Name)
	assert.Equal(t, "globex", customers[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
