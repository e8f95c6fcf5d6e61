package hierarchyctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessEncodingScenario(t *testing.T) {
	ctx := Institution(1, 1, 1)
	role := AccessRoleName("institution", &ctx)
	assert.Equal(t, "institution:access_R010101", role)

	resource, parsedCtx, ok := ParseAccessRoleName(role)
	require.True(t, ok)
	assert.Equal(t, "institution", resource)
	require.NotNil(t, parsedCtx)
	assert.Equal(t, ctx, *parsedCtx)
}

func TestAccessRoleNameWithoutContext(t *testing.T) {
	assert.Equal(t, "customer:access", AccessRoleName("customer", nil))

	resource, ctx, ok := ParseAccessRoleName("customer:access")
	require.True(t, ok)
	assert.Equal(t, "customer", resource)
	assert.Nil(t, ctx)
}

func TestDominatesAndCombine(t *testing.T) {
	customerCtx := Customer(1)
	orgCtx := Organization(1, 1)
	instCtx := Institution(1, 1, 1)
	otherCustomer := Customer(2)

	assert.True(t, customerCtx.Dominates(orgCtx))
	assert.True(t, customerCtx.Dominates(instCtx))
	assert.False(t, orgCtx.Dominates(customerCtx))
	assert.False(t, otherCustomer.Dominates(instCtx))

	assert.Equal(t, instCtx, Combine(customerCtx, instCtx))
	assert.Equal(t, customerCtx, Combine(customerCtx, Institution(2, 1, 1)))
}

func TestOrganizationUnitAncestryBothShapes(t *testing.T) {
	oid := int64(1)
	scoped := OrganizationUnit(1, &oid, 5)
	root := OrganizationUnit(1, nil, 5)

	assert.True(t, Customer(1).Dominates(scoped))
	assert.True(t, Customer(1).Dominates(root))
	assert.False(t, Organization(1, 2).Dominates(scoped))
	assert.True(t, Organization(1, 1).Dominates(scoped))
}

func TestContextStringRoundTrip(t *testing.T) {
	oid := int64(3)

	for _, c := range []Context{
		Customer(7),
		Organization(1, 2),
		Institution(1, 2, 3),
		OrganizationUnit(1, nil, 9),
		OrganizationUnit(1, &oid, 9),
	} {
		got, err := ParseContext(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestParseAccessRoleNameRejectsGarbage(t *testing.T) {
	_, _, ok := ParseAccessRoleName("not-a-role-name")
	assert.False(t, ok)

	_, _, ok = ParseAccessRoleName("customer:access_notavalidcontext")
	assert.False(t, ok)
}
