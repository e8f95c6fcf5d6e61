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

// CustomerRepository is a Postgresql-backed hierarchy.CustomerRepository.
type CustomerRepository struct {
	connection *mpostgres.PostgresConnection
	tableName  string
}

// NewCustomerRepository returns a CustomerRepository using the given
// Postgres connection, eagerly establishing the connection as the teacher
// does in NewOrganizationPostgreSQLRepository.
func NewCustomerRepository(pc *mpostgres.PostgresConnection) *CustomerRepository {
	r := &CustomerRepository{connection: pc, tableName: "customers"}

	if _, err := r.connection.GetDB(context.Background()); err != nil {
		panic("failed to connect to customers table database")
	}

	return r
}

func scanCustomer(scan func(...any) error) (hierarchy.Customer, error) {
	var c hierarchy.Customer

	err := scan(&c.CID, &c.Name, &c.Type, &c.CreatedAt, &c.CreatedBy, &c.UpdatedAt, &c.UpdatedBy, &c.DeletedAt)

	return c, err
}

// Create inserts a new customer row and returns the row with its
// database-assigned cid.
func (r *CustomerRepository) Create(ctx context.Context, in hierarchy.CreateCustomerInput) (hierarchy.Customer, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return hierarchy.Customer{}, err
	}

	now := time.Now()

	row := db.QueryRowContext(ctx, `INSERT INTO customers (name, type, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $3, $4)
		RETURNING cid, name, type, created_at, created_by, updated_at, updated_by, deleted_at`,
		in.Name, in.Type, now, in.CreatedBy)

	c, err := scanCustomer(row.Scan)
	if err != nil {
		return hierarchy.Customer{}, wrapError(err, "customer", in.Name)
	}

	return c, nil
}

// Update applies a partial rename/retype to the customer identified by
// cid, rebuilding the SET clause from whichever fields are non-nil, the
// way the teacher's Organization.Update does.
func (r *CustomerRepository) Update(ctx context.Context, cid int64, in hierarchy.UpdateCustomerInput) (hierarchy.Customer, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return hierarchy.Customer{}, err
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

	args = append(args, cid)

	query := `UPDATE customers SET ` + strings.Join(sets, ", ") +
		` WHERE cid = $` + strconv.Itoa(len(args)) + ` AND deleted_at IS NULL
		RETURNING cid, name, type, created_at, created_by, updated_at, updated_by, deleted_at`

	row := db.QueryRowContext(ctx, query, args...)

	c, err := scanCustomer(row.Scan)
	if err != nil {
		return hierarchy.Customer{}, wrapError(err, "customer", strconv.FormatInt(cid, 10))
	}

	return c, nil
}

// Delete soft-deletes the given customers and returns how many rows were
// affected.
func (r *CustomerRepository) Delete(ctx context.Context, cids []int64) (int64, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return 0, err
	}

	result, err := db.ExecContext(ctx,
		`UPDATE customers SET deleted_at = now() WHERE cid = ANY($1) AND deleted_at IS NULL`, pq.Array(cids))
	if err != nil {
		return 0, wrapError(err, "customer", "")
	}

	return result.RowsAffected()
}

// FindAll returns every non-deleted customer, used to prime and resync
// InfraCache in full; there is no pagination because reads never go
// through this repository directly.
func (r *CustomerRepository) FindAll(ctx context.Context) ([]hierarchy.Customer, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT cid, name, type, created_at, created_by, updated_at, updated_by, deleted_at
		 FROM customers WHERE deleted_at IS NULL ORDER BY cid`)
	if err != nil {
		return nil, wrapError(err, "customer", "")
	}
	defer rows.Close()

	var out []hierarchy.Customer

	for rows.Next() {
		c, err := scanCustomer(rows.Scan)
		if err != nil {
			return nil, err
		}

		out = append(out, c)
	}

	return out, rows.Err()
}
