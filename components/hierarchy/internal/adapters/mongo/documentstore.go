// Package mongo implements internal/services/cleanup.DocumentStore over
// go.mongodb.org/mongo-driver, the only generic-document store anywhere in
// the teacher's own stack (components/audit/internal/adapters/mongodb).
// spec.md §1 keeps non-hierarchy collection schemas opaque: every document
// this package touches is assumed to carry an "owner" sub-document shaped
// like original_source/crates/entity/src/lib.rs and
// crates/customer/src/worker.rs build their delete filters against --
// owner.entityId.cid / owner.entityId.oid / owner.entityId.iid -- so a
// cascade delete never needs to know anything else about the collection.
package mongo

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/lattice-sh/control-plane/common/mmongo"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/services/cleanup"
	"github.com/lattice-sh/control-plane/pkg/errs"
)

// Filter is an alias for cleanup.Filter, kept local so this file reads the
// way the rest of the package does.
type Filter = cleanup.Filter

// usersCollection is the distinguished collection worker.rs's remove_users
// deletes from directly, scoped by the same owner filter as every other
// generic collection.
const usersCollection = "users"

// DocumentStore is a MongoDB-backed cleanup.DocumentStore.
type DocumentStore struct {
	connection *mmongo.MongoConnection
	database   string
}

// New returns a DocumentStore using the given Mongo connection, eagerly
// establishing the connection the way NewAuditMongoDBRepository does.
func New(mc *mmongo.MongoConnection) *DocumentStore {
	s := &DocumentStore{connection: mc, database: mc.Database}

	if _, err := s.connection.GetDB(context.Background()); err != nil {
		panic("failed to connect to mongodb")
	}

	return s
}

// Collections lists every collection in the database except the
// distinguished users collection, which DeleteUsers handles separately.
func (s *DocumentStore) Collections(ctx context.Context) ([]string, error) {
	client, err := s.connection.GetDB(ctx)
	if err != nil {
		return nil, errs.StoreFailureError{Store: "mongo", Message: "get connection", Err: err}
	}

	names, err := client.Database(strings.ToLower(s.database)).ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, errs.StoreFailureError{Store: "mongo", Message: "list collections", Err: err}
	}

	out := names[:0]

	for _, name := range names {
		if name != usersCollection {
			out = append(out, name)
		}
	}

	return out, nil
}

// DeleteMany removes every document in collection owned by any id named in
// filter.
func (s *DocumentStore) DeleteMany(ctx context.Context, collection string, filter Filter) (int64, error) {
	client, err := s.connection.GetDB(ctx)
	if err != nil {
		return 0, errs.StoreFailureError{Store: "mongo", Message: "get connection", Err: err}
	}

	coll := client.Database(strings.ToLower(s.database)).Collection(strings.ToLower(collection))

	result, err := coll.DeleteMany(ctx, ownerQuery(filter))
	if err != nil {
		return 0, errs.StoreFailureError{Store: "mongo", Message: "delete many from " + collection, Err: err}
	}

	return result.DeletedCount, nil
}

// DeleteUsers removes every user document owned by any id named in filter,
// mirroring worker.rs's remove_users against the distinguished collection.
func (s *DocumentStore) DeleteUsers(ctx context.Context, filter Filter) (int64, error) {
	client, err := s.connection.GetDB(ctx)
	if err != nil {
		return 0, errs.StoreFailureError{Store: "mongo", Message: "get connection", Err: err}
	}

	coll := client.Database(strings.ToLower(s.database)).Collection(usersCollection)

	result, err := coll.DeleteMany(ctx, ownerQuery(filter))
	if err != nil {
		return 0, errs.StoreFailureError{Store: "mongo", Message: "delete users", Err: err}
	}

	return result.DeletedCount, nil
}

// ownerQuery builds the conjunction of owner.entityId.{cid,oid,iid}
// membership tests named by filter's non-empty fields, matching the doc!
// path filters worker.rs's cleanup_* functions build (cid alone; cid+oid;
// cid+oid+iid). Bson treats sibling top-level keys as an implicit $and, so
// no explicit operator is needed. A wholly empty filter yields a query
// that matches no document.
func ownerQuery(filter Filter) bson.M {
	query := bson.M{}

	if len(filter.CIDs) > 0 {
		query["owner.entityId.cid"] = bson.M{"$in": filter.CIDs}
	}

	if len(filter.OIDs) > 0 {
		query["owner.entityId.oid"] = bson.M{"$in": filter.OIDs}
	}

	if len(filter.IIDs) > 0 {
		query["owner.entityId.iid"] = bson.M{"$in": filter.IIDs}
	}

	if len(query) == 0 {
		return bson.M{"_id": bson.M{"$exists": false}}
	}

	return query
}
