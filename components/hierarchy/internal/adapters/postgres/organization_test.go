package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/hierarchy"
)

func organizationColumns() []string {
	return []string{"oid", "cid", "name", "type", "created_at", "created_by", "updated_at", "updated_by", "deleted_at"}
}

func TestOrganizationRepositoryCreate(t *testing.T) {
	conn, mock := newTestConnection(t)
	r := &OrganizationRepository{connection: conn, tableName: "organizations"}

	now := time.Now()
	mock.ExpectQuery("INSERT INTO organizations").
		WillReturnRows(mock.NewRows(organizationColumns()).
			AddRow(int64(1), int64(7), "treasury", nil, now, "alice", now, "alice", nil))

	o, err := r.Create(context.Background(), hierarchy.CreateOrganizationInput{CID: 7, Name: "treasury", CreatedBy: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), o.OID)
	assert.Equal(t, int64(7), o.CID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationRepositoryFindAll(t *testing.T) {
	conn, mock := newTestConnection(t)
	r := &OrganizationRepository{connection: conn, tableName: "organizations"}

	now := time.Now()
	mock.ExpectQuery("SELECT oid, cid, name, type").
		WillReturnRows(mock.NewRows(organizationColumns()).
			AddRow(int64(1), int64(7), "treasury", nil, now, "alice", now, "alice", nil))

	orgs, err := r.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, "treasury", orgs[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
