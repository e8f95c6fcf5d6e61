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

// OrganizationUnitRepository is a Postgresql-backed
// hierarchy.OrganizationUnitRepository. It owns both the organization_units
// table and its organization_unit_members join table, which has no teacher
// precedent and is modeled after a plain many-to-many association table.
type OrganizationUnitRepository struct {
	connection *mpostgres.PostgresConnection
	tableName  string
}

// NewOrganizationUnitRepository returns an OrganizationUnitRepository
// using the given Postgres connection.
func NewOrganizationUnitRepository(pc *mpostgres.PostgresConnection) *OrganizationUnitRepository {
	r := &OrganizationUnitRepository{connection: pc, tableName: "organization_units"}

	if _, err := r.connection.GetDB(context.Background()); err != nil {
		panic("failed to connect to organization_units table database")
	}

	return r
}

func scanOrganizationUnit(scan func(...any) error) (hierarchy.OrganizationUnit, error) {
	var u hierarchy.OrganizationUnit

	err := scan(&u.UID, &u.CID, &u.OID, &u.Name, &u.CreatedAt, &u.CreatedBy, &u.UpdatedAt, &u.UpdatedBy, &u.DeletedAt)

	return u, err
}

// Create inserts a new organization_units row. It does not accept member
// institutions: a freshly created unit always starts empty, and members
// are attached afterward through AddMember.
func (r *OrganizationUnitRepository) Create(ctx context.Context, in hierarchy.CreateOrganizationUnitInput) (hierarchy.OrganizationUnit, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return hierarchy.OrganizationUnit{}, err
	}

	now := time.Now()

	row := db.QueryRowContext(ctx, `INSERT INTO organization_units (cid, oid, name, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $4, $5)
		RETURNING uid, cid, oid, name, created_at, created_by, updated_at, updated_by, deleted_at`,
		in.CID, in.OID, in.Name, now, in.CreatedBy)

	u, err := scanOrganizationUnit(row.Scan)
	if err != nil {
		return hierarchy.OrganizationUnit{}, wrapError(err, "organization_unit", in.Name)
	}

	return u, nil
}

// Update applies a rename to the organization unit identified by uid.
// Members are not part of the returned row; callers reattach the cached
// Members slice, since this table's update never touches membership.
func (r *OrganizationUnitRepository) Update(ctx context.Context, uid int64, in hierarchy.UpdateOrganizationUnitInput) (hierarchy.OrganizationUnit, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return hierarchy.OrganizationUnit{}, err
	}

	var sets []string

	var args []any

	if !common.IsNilOrEmpty(in.Name) {
		args = append(args, *in.Name)
		sets = append(sets, "name = $"+strconv.Itoa(len(args)))
	}

	args = append(args, time.Now())
	sets = append(sets, "updated_at = $"+strconv.Itoa(len(args)))

	args = append(args, in.UpdatedBy)
	sets = append(sets, "updated_by = $"+strconv.Itoa(len(args)))

	args = append(args, uid)

	query := `UPDATE organization_units SET ` + strings.Join(sets, ", ") +
		` WHERE uid = $` + strconv.Itoa(len(args)) + ` AND deleted_at IS NULL
		RETURNING uid, cid, oid, name, created_at, created_by, updated_at, updated_by, deleted_at`

	row := db.QueryRowContext(ctx, query, args...)

	u, err := scanOrganizationUnit(row.Scan)
	if err != nil {
		return hierarchy.OrganizationUnit{}, wrapError(err, "organization_unit", strconv.FormatInt(uid, 10))
	}

	return u, nil
}

// Delete soft-deletes the given organization units. It leaves
// organization_unit_members rows in place and nothing removes them later;
// FindAll skips them, since it attaches members only to units that are not
// deleted.
func (r *OrganizationUnitRepository) Delete(ctx context.Context, uids []int64) (int64, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return 0, err
	}

	result, err := db.ExecContext(ctx,
		`UPDATE organization_units SET deleted_at = now() WHERE uid = ANY($1) AND deleted_at IS NULL`, pq.Array(uids))
	if err != nil {
		return 0, wrapError(err, "organization_unit", "")
	}

	return result.RowsAffected()
}

// FindAll returns every non-deleted organization unit with its member
// institutions populated, since this is the only path that feeds
// InfraCache and the cache needs Members up front.
func (r *OrganizationUnitRepository) FindAll(ctx context.Context) ([]hierarchy.OrganizationUnit, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT uid, cid, oid, name, created_at, created_by, updated_at, updated_by, deleted_at
		 FROM organization_units WHERE deleted_at IS NULL ORDER BY uid`)
	if err != nil {
		return nil, wrapError(err, "organization_unit", "")
	}

	var out []hierarchy.OrganizationUnit

	byUID := make(map[int64]int, 0)

	for rows.Next() {
		u, err := scanOrganizationUnit(rows.Scan)
		if err != nil {
			rows.Close()
			return nil, err
		}

		byUID[u.UID] = len(out)
		out = append(out, u)
	}

	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}

	rows.Close()

	memberRows, err := db.QueryContext(ctx, `SELECT uid, cid, oid, iid FROM organization_unit_members ORDER BY uid`)
	if err != nil {
		return nil, wrapError(err, "organization_unit", "")
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var uid int64

		var ref hierarchy.InstitutionRef

		if err := memberRows.Scan(&uid, &ref.CID, &ref.OID, &ref.IID); err != nil {
			return nil, err
		}

		if idx, ok := byUID[uid]; ok {
			out[idx].Members = append(out[idx].Members, ref)
		}
	}

	return out, memberRows.Err()
}

// AddMember inserts a row into organization_unit_members, tolerating a
// duplicate add as a no-op the way spec.md §4.8 requires membership
// mutations to be idempotent.
func (r *OrganizationUnitRepository) AddMember(ctx context.Context, uid int64, ref hierarchy.InstitutionRef) error {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO organization_unit_members (uid, cid, oid, iid) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (uid, cid, oid, iid) DO NOTHING`,
		uid, ref.CID, ref.OID, ref.IID)
	if err != nil {
		return wrapError(err, "organization_unit_member", strconv.FormatInt(uid, 10))
	}

	return nil
}

// RemoveMember deletes a row from organization_unit_members.
func (r *OrganizationUnitRepository) RemoveMember(ctx context.Context, uid int64, ref hierarchy.InstitutionRef) error {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`DELETE FROM organization_unit_members WHERE uid = $1 AND cid = $2 AND oid = $3 AND iid = $4`,
		uid, ref.CID, ref.OID, ref.IID)
	if err != nil {
		return wrapError(err, "organization_unit_member", strconv.FormatInt(uid, 10))
	}

	return nil
}

// RemoveInstitutionFromAllUnits deletes every membership row referencing
// ref, regardless of which unit holds it. Called by the institution
// cleanup cascade once the institution itself is gone.
func (r *OrganizationUnitRepository) RemoveInstitutionFromAllUnits(ctx context.Context, ref hierarchy.InstitutionRef) error {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`DELETE FROM organization_unit_members WHERE cid = $1 AND oid = $2 AND iid = $3`,
		ref.CID, ref.OID, ref.IID)
	if err != nil {
		return wrapError(err, "organization_unit_member", "")
	}

	return nil
}
