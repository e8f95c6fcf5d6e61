package infracache

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/changefeed"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/hierarchy"
)

func hierarchyRefSample() hierarchy.InstitutionRef {
	return hierarchy.InstitutionRef{CID: 1, OID: 2, IID: 5}
}

func TestStoreInvariantsHoldAcrossOperations(t *testing.T) {
	c := New()

	emptyVer := c.Customers.Version()
	assert.Equal(t, emptyVersion(), emptyVer)

	insert := changefeed.Notification{
		Op:  changefeed.OpInsert,
		New: json.RawMessage(`{"id":1,"name":"acme","ty":null,"created_at":"2026-01-01T00:00:00","created_by":"root","updated_at":null,"updated_by":"root"}`),
	}
	require.NoError(t, c.handleCustomers(context.Background(), insert))

	assert.Equal(t, 1, c.Customers.Count())
	assert.NotEqual(t, emptyVer, c.Customers.Version())

	byKey, ok := c.Customers.ByKey("acme")
	require.True(t, ok)
	assert.Equal(t, int64(1), byKey.CID)

	byID, ok := c.Customers.ByID("1")
	require.True(t, ok)
	assert.Equal(t, "acme", byID.Name)

	assert.Len(t, c.Customers.List(), 1)
}

func TestStoreUpdateMovesCompositeAndIDKeys(t *testing.T) {
	c := New()

	require.NoError(t, c.handleCustomers(context.Background(), changefeed.Notification{
		Op:  changefeed.OpInsert,
		New: json.RawMessage(`{"id":7,"name":"old-name","ty":null,"created_at":"2026-01-01T00:00:00","created_by":"root","updated_at":null,"updated_by":"root"}`),
	}))

	require.NoError(t, c.handleCustomers(context.Background(), changefeed.Notification{
		Op:  changefeed.OpUpdate,
		New: json.RawMessage(`{"id":7,"name":"new-name","ty":null,"created_at":"2026-01-01T00:00:00","created_by":"root","updated_at":"2026-01-02T00:00:00","updated_by":"root"}`),
		Old: json.RawMessage(`{"id":7,"name":"old-name","ty":null,"created_at":"2026-01-01T00:00:00","created_by":"root","updated_at":null,"updated_by":"root"}`),
	}))

	_, ok := c.Customers.ByKey("old-name")
	assert.False(t, ok)

	renamed, ok := c.Customers.ByKey("new-name")
	require.True(t, ok)
	assert.Equal(t, int64(7), renamed.CID)
	assert.Equal(t, 1, c.Customers.Count())
}

func TestStoreDeleteRemovesBothIndexes(t *testing.T) {
	c := New()

	require.NoError(t, c.handleCustomers(context.Background(), changefeed.Notification{
		Op:  changefeed.OpInsert,
		New: json.RawMessage(`{"id":3,"name":"gone","ty":null,"created_at":"2026-01-01T00:00:00","created_by":"root","updated_at":null,"updated_by":"root"}`),
	}))

	require.NoError(t, c.handleCustomers(context.Background(), changefeed.Notification{
		Op:  changefeed.OpDelete,
		Old: json.RawMessage(`{"id":3,"name":"gone","ty":null,"created_at":"2026-01-01T00:00:00","created_by":"root","updated_at":null,"updated_by":"root"}`),
	}))

	assert.Equal(t, 0, c.Customers.Count())

	_, ok := c.Customers.ByKey("gone")
	assert.False(t, ok)
	_, ok = c.Customers.ByID("3")
	assert.False(t, ok)
}

func TestStoreVersionIndependentOfInsertOrder(t *testing.T) {
	a, b := New(), New()

	rowX := json.RawMessage(`{"id":1,"name":"x","ty":null,"created_at":"2026-01-01T00:00:00","created_by":"u","updated_at":null,"updated_by":"u"}`)
	rowY := json.RawMessage(`{"id":2,"name":"y","ty":null,"created_at":"2026-01-01T00:00:00","created_by":"u","updated_at":null,"updated_by":"u"}`)

	require.NoError(t, a.handleCustomers(context.Background(), changefeed.Notification{Op: changefeed.OpInsert, New: rowX}))
	require.NoError(t, a.handleCustomers(context.Background(), changefeed.Notification{Op: changefeed.OpInsert, New: rowY}))

	require.NoError(t, b.handleCustomers(context.Background(), changefeed.Notification{Op: changefeed.OpInsert, New: rowY}))
	require.NoError(t, b.handleCustomers(context.Background(), changefeed.Notification{Op: changefeed.OpInsert, New: rowX}))

	assert.Equal(t, a.Customers.Version(), b.Customers.Version())
}

func TestOrganizationUnitUpdatePreservesMembers(t *testing.T) {
	c := New()

	require.NoError(t, c.handleOrganizationUnits(context.Background(), changefeed.Notification{
		Op:  changefeed.OpInsert,
		New: json.RawMessage(`{"id":9,"customer_id":1,"organization_id":2,"name":"unit-a","created_at":"2026-01-01T00:00:00","created_by":"u","updated_at":null,"updated_by":"u"}`),
	}))

	before, ok := c.OrganizationUnits.ByID("9")
	require.True(t, ok)
	before.Members = append(before.Members, hierarchyRefSample())
	c.OrganizationUnits.Insert(before)

	require.NoError(t, c.handleOrganizationUnits(context.Background(), changefeed.Notification{
		Op:  changefeed.OpUpdate,
		New: json.RawMessage(`{"id":9,"customer_id":1,"organization_id":2,"name":"unit-a-renamed","created_at":"2026-01-01T00:00:00","created_by":"u","updated_at":"2026-01-02T00:00:00","updated_by":"u"}`),
		Old: json.RawMessage(`{"id":9,"customer_id":1,"organization_id":2,"name":"unit-a","created_at":"2026-01-01T00:00:00","created_by":"u","updated_at":null,"updated_by":"u"}`),
	}))

	after, ok := c.OrganizationUnits.ByID("9")
	require.True(t, ok)
	assert.Len(t, after.Members, 1)
	assert.Equal(t, "unit-a-renamed", after.Name)
}
