package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestOwnerQuerySingleField(t *testing.T) {
	query := ownerQuery(Filter{CIDs: []int64{1, 2}})

	assert.Equal(t, bson.M{"owner.entityId.cid": bson.M{"$in": []int64{1, 2}}}, query)
}

func TestOwnerQueryCombinesEveryPopulatedFieldConjunctively(t *testing.T) {
	query := ownerQuery(Filter{
		CIDs: []int64{1},
		OIDs: []int64{2},
		IIDs: []int64{3},
	})

	assert.Equal(t, bson.M{
		"owner.entityId.cid": bson.M{"$in": []int64{1}},
		"owner.entityId.oid": bson.M{"$in": []int64{2}},
		"owner.entityId.iid": bson.M{"$in": []int64{3}},
	}, query)
}

func TestOwnerQueryEmptyFilterMatchesNothing(t *testing.T) {
	query := ownerQuery(Filter{})

	assert.Equal(t, bson.M{"_id": bson.M{"$exists": false}}, query)
}

func TestOwnerQuerySkipsEmptySlices(t *testing.T) {
	query := ownerQuery(Filter{OIDs: []int64{5}})

	_, hasCID := query["owner.entityId.cid"]
	assert.False(t, hasCID)
	assert.Equal(t, bson.M{"$in": []int64{5}}, query["owner.entityId.oid"])
}
