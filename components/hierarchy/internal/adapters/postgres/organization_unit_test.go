package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/hierarchy"
)

func unitColumns() []string {
	return []string{"uid", "cid", "oid", "name", "created_at", "created_by", "updated_at", "updated_by", "deleted_at"}
}

func TestOrganizationUnitRepositoryFindAllPopulatesMembers(t *testing.T) {
	conn, mock := newTestConnection(t)
	r := &OrganizationUnitRepository{connection: conn, tableName: "organization_units"}

	now := time.Now()
	oid := int64(7)

	mock.ExpectQuery("SELECT uid, cid, oid, name").
		WillReturnRows(mock.NewRows(unitColumns()).
			AddRow(int64(1), int64(3), &oid, "branch-ops", now, "alice", now, "alice", nil))

	mock.ExpectQuery("SELECT uid, cid, oid, iid FROM organization_unit_members").
		WillReturnRows(mock.NewRows([]string{"uid", "cid", "oid", "iid"}).
			AddRow(int64(1), int64(3), int64(7), int64(42)))

	units, err := r.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, units, 1)
	require.Len(t, units[0].Members, 1)
	assert.Equal(t, hierarchy.InstitutionRef{CID: 3, OID: 7, IID: 42}, units[0].Members[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationUnitRepositoryAddMember(t *testing.T) {
	conn, mock := newTestConnection(t)
	r := &OrganizationUnitRepository{connection: conn, tableName: "organization_units"}

	mock.ExpectExec("INSERT INTO organization_unit_members").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := r.AddMember(context.Background(), 1, hierarchy.InstitutionRef{CID: 3, OID: 7, IID: 42})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationUnitRepositoryRemoveInstitutionFromAllUnits(t *testing.T) {
	conn, mock := newTestConnection(t)
	r := &OrganizationUnitRepository{connection: conn, tableName: "organization_units"}

	mock.ExpectExec("DELETE FROM organization_unit_members WHERE cid").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := r.RemoveInstitutionFromAllUnits(context.Background(), hierarchy.InstitutionRef{CID: 3, OID: 7, IID: 42})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
