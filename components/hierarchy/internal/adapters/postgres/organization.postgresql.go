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

// OrganizationRepository is a Postgresql-backed
// hierarchy.OrganizationRepository.
type OrganizationRepository struct {
	connection *mpostgres.PostgresConnection
	tableName  string
}

// NewOrganizationRepository returns an OrganizationRepository using the
// given Postgres connection.
func NewOrganizationRepository(pc *mpostgres.PostgresConnection) *OrganizationRepository {
	r := &OrganizationRepository{connection: pc, tableName: "organizations"}

	if _, err := r.connection.GetDB(context.Background()); err != nil {
		panic("failed to connect to organizations table database")
	}

	return r
}

func scanOrganization(scan func(...any) error) (hierarchy.Organization, error) {
	var o hierarchy.Organization

	err := scan(&o.OID, &o.CID, &o.Name, &o.Type, &o.CreatedAt, &o.CreatedBy, &o.UpdatedAt, &o.UpdatedBy, &o.DeletedAt)

	return o, err
}

// Create inserts a new organization row under in.CID, relying on the
// organizations_cid_fkey foreign key to surface a missing customer as a
// NotFoundError via wrapError.
func (r *OrganizationRepository) Create(ctx context.Context, in hierarchy.CreateOrganizationInput) (hierarchy.Organization, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return hierarchy.Organization{}, err
	}

	now := time.Now()

	row := db.QueryRowContext(ctx, `INSERT INTO organizations (cid, name, type, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $4, $5)
		RETURNING oid, cid, name, type, created_at, created_by, updated_at, updated_by, deleted_at`,
		in.CID, in.Name, in.Type, now, in.CreatedBy)

	o, err := scanOrganization(row.Scan)
	if err != nil {
		return hierarchy.Organization{}, wrapError(err, "organization", in.Name)
	}

	return o, nil
}

// Update applies a partial rename/retype to the organization identified
// by oid.
func (r *OrganizationRepository) Update(ctx context.Context, oid int64, in hierarchy.UpdateOrganizationInput) (hierarchy.Organization, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return hierarchy.Organization{}, err
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

	args = append(args, oid)

	query := `UPDATE organizations SET ` + strings.Join(sets, ", ") +
		` WHERE oid = $` + strconv.Itoa(len(args)) + ` AND deleted_at IS NULL
		RETURNING oid, cid, name, type, created_at, created_by, updated_at, updated_by, deleted_at`

	row := db.QueryRowContext(ctx, query, args...)

	o, err := scanOrganization(row.Scan)
	if err != nil {
		return hierarchy.Organization{}, wrapError(err, "organization", strconv.FormatInt(oid, 10))
	}

	return o, nil
}

// Delete soft-deletes the given organizations.
func (r *OrganizationRepository) Delete(ctx context.Context, oids []int64) (int64, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return 0, err
	}

	result, err := db.ExecContext(ctx,
		`UPDATE organizations SET deleted_at = now() WHERE oid = ANY($1) AND deleted_at IS NULL`, pq.Array(oids))
	if err != nil {
		return 0, wrapError(err, "organization", "")
	}

	return result.RowsAffected()
}

// FindAll returns every non-deleted organization.
func (r *OrganizationRepository) FindAll(ctx context.Context) ([]hierarchy.Organization, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT oid, cid, name, type, created_at, created_by, updated_at, updated_by, deleted_at
		 FROM organizations WHERE deleted_at IS NULL ORDER BY oid`)
	if err != nil {
		return nil, wrapError(err, "organization", "")
	}
	defer rows.Close()

	var out []hierarchy.Organization

	for rows.Next() {
		o, err := scanOrganization(rows.Scan)
		if err != nil {
			return nil, err
		}

		out = append(out, o)
	}

	return out, rows.Err()
}
