package postgres

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/lattice-sh/control-plane/common"
	"github.com/lattice-sh/control-plane/common/mpostgres"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/hierarchy"
)

// InstitutionRepository is a Postgresql-backed
// hierarchy.InstitutionRepository.
type InstitutionRepository struct {
	connection *mpostgres.PostgresConnection
	tableName  string
}

// NewInstitutionRepository returns an InstitutionRepository using the
// given Postgres connection.
func NewInstitutionRepository(pc *mpostgres.PostgresConnection) *InstitutionRepository {
	r := &InstitutionRepository{connection: pc, tableName: "institutions"}

	if _, err := r.connection.GetDB(context.Background()); err != nil {
		panic("failed to connect to institutions table database")
	}

	return r
}

func scanInstitution(scan func(...any) error) (hierarchy.Institution, error) {
	var i hierarchy.Institution

	err := scan(&i.IID, &i.OID, &i.CID, &i.Name, &i.Type, &i.CreatedAt, &i.CreatedBy, &i.UpdatedAt, &i.UpdatedBy, &i.DeletedAt)

	return i, err
}

// Create inserts a new institution row under (in.CID, in.OID).
func (r *InstitutionRepository) Create(ctx context.Context, in hierarchy.CreateInstitutionInput) (hierarchy.Institution, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return hierarchy.Institution{}, err
	}

	now := time.Now()

	row := db.QueryRowContext(ctx, `INSERT INTO institutions (oid, cid, name, type, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $5, $6)
		RETURNING iid, oid, cid, name, type, created_at, created_by, updated_at, updated_by, deleted_at`,
		in.OID, in.CID, in.Name, in.Type, now, in.CreatedBy)

	i, err := scanInstitution(row.Scan)
	if err != nil {
		return hierarchy.Institution{}, wrapError(err, "institution", in.Name)
	}

	return i, nil
}

// Update applies a partial rename/retype to the institution identified by
// iid.
func (r *InstitutionRepository) Update(ctx context.Context, iid int64, in hierarchy.UpdateInstitutionInput) (hierarchy.Institution, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return hierarchy.Institution{}, err
	}

	var sets []string

	var args []any

	if !common.IsNilOrEmpty(in.Name) {
		args = append(args, *in.Name)
		sets = append(sets, "name = $"+strconv.Itoa(len(args)))
	}

	if in.Type != nil {
		args = append(args, *in.Type)
		sets = append(sets, "type = $"+strconv.Itoa(len(args)))
	}

	args = append(args, time.Now())
	sets = append(sets, "updated_at = $"+strconv.Itoa(len(args)))

	args = append(args, in.UpdatedBy)
	sets = append(sets, "updated_by = $"+strconv.Itoa(len(args)))

	args = append(args, iid)

	query := `UPDATE institutions SET ` + strings.Join(sets, ", ") +
		` WHERE iid = $` + strconv.Itoa(len(args)) + ` AND deleted_at IS NULL
		RETURNING iid, oid, cid, name, type, created_at, created_by, updated_at, updated_by, deleted_at`

	row := db.QueryRowContext(ctx, query, args...)

	i, err := scanInstitution(row.Scan)
	if err != nil {
		return hierarchy.Institution{}, wrapError(err, "institution", strconv.FormatInt(iid, 10))
	}

	return i, nil
}

// Delete soft-deletes the given institutions.
func (r *InstitutionRepository) Delete(ctx context.Context, iids []int64) (int64, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return 0, err
	}

	result, err := db.ExecContext(ctx,
		`UPDATE institutions SET deleted_at = now() WHERE iid = ANY($1) AND deleted_at IS NULL`, pq.Array(iids))
	if err != nil {
		return 0, wrapError(err, "institution", "")
	}

	return result.RowsAffected()
}

// FindAll returns every non-deleted institution.
func (r *InstitutionRepository) FindAll(ctx context.Context) ([]hierarchy.Institution, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT iid, oid, cid, name, type, created_at, created_by, updated_at, updated_by, deleted_at
		 FROM institutions WHERE deleted_at IS NULL ORDER BY iid`)
	if err != nil {
		return nil, wrapError(err, "institution", "")
	}
	defer rows.Close()

	var out []hierarchy.Institution

	for rows.Next() {
		i, err := scanInstitution(rows.Scan)
		if err != nil {
			return nil, err
		}

		out = append(out, i)
	}

	return out, rows.Err()
}
