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

func institutionColumns() []string {
	return []string{"iid", "oid", "cid", "name", "type", "created_at", "created_by", "updated_at", "updated_by", "deleted_at"}
}

func TestInstitutionRepositoryCreate(t *testing.T) {
	conn, mock := newTestConnection(t)
	r := &InstitutionRepository{connection: conn, tableName: "institutions"}

	now := time.Now()
	mock.ExpectQuery("INSERT INTO institutions").
		WillReturnRows(mock.NewRows(institutionColumns()).
			AddRow(int64(1), int64(1), int64(7), "branch-a", nil, now, "alice", now, "alice", nil))

	i, err := r.Create(context.Background(), hierarchy.CreateInstitutionInput{CID: 7, OID: 1, Name: "branch-a", CreatedBy: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), i.IID)
	assert.Equal(t, int64(1), i.OID)
	assert.Equal(t, int64(7), i.CID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstitutionRepositoryDeleteNoRows(t *testing.T) {
	conn, mock := newTestConnection(t)
	r := &InstitutionRepository{connection: conn, tableName: "institutions"}

	mock.ExpectExec("UPDATE institutions SET deleted_at").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := r.Delete(context.Background(), []int64{99})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
