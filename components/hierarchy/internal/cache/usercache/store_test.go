package usercache

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/changefeed"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/identity"
)

type fakeSource struct {
	roles  map[string][]string
	groups map[string][]string
}

func (f fakeSource) UserRoleIDs(_ context.Context, userID string) ([]string, error) {
	return f.roles[userID], nil
}

func (f fakeSource) UserGroupIDs(_ context.Context, userID string) ([]string, error) {
	return f.groups[userID], nil
}

func TestUserEntityUpsertDerivesContext(t *testing.T) {
	c := New()
	c.InsertRole(identity.Role{ID: "r1", Name: "institution:access_R010101"})

	src := fakeSource{roles: map[string][]string{"u1": {"r1"}}}
	handler := c.handleUserEntity(src)

	err := handler(context.Background(), changefeed.Notification{
		Op:  changefeed.OpInsert,
		New: json.RawMessage(`{"id":"u1","realm_id":"","username":"alice","email":"alice@example.com","first_name":"A","last_name":"L","enabled":true}`),
	})
	require.NoError(t, err)

	u, ok := c.UserByID("u1")
	require.True(t, ok)
	require.NotNil(t, u.Context)
	assert.True(t, u.Context.HasInstitution())

	byUsername, ok := c.UserByUsername("alice")
	require.True(t, ok)
	assert.Equal(t, "u1", byUsername.ID)

	byEmail, ok := c.UserByEmail("alice@example.com")
	require.True(t, ok)
	assert.Equal(t, "u1", byEmail.ID)
}

func TestRoleDeletionRewritesUsersAndClearsContext(t *testing.T) {
	c := New()
	c.InsertRole(identity.Role{ID: "r1", Name: "institution:access_R010101"})
	c.UpsertUser(identity.User{
		ID:      "u1",
		Roles:   []identity.Role{{ID: "r1", Name: "institution:access_R010101"}},
		Context: identity.DeriveContext([]identity.Role{{ID: "r1", Name: "institution:access_R010101"}}),
	})
	c.AddUserRole("u1", "r1")

	err := c.handleRole(context.Background(), changefeed.Notification{
		Op:  changefeed.OpDelete,
		Old: json.RawMessage(`{"id":"r1","realm_id":"","name":"institution:access_R010101"}`),
	})
	require.NoError(t, err)

	u, ok := c.UserByID("u1")
	require.True(t, ok)
	assert.Empty(t, u.Roles)
	assert.Nil(t, u.Context)

	_, ok = c.RoleByID("r1")
	assert.False(t, ok)
}

func TestGroupAttributeUpsertAndDelete(t *testing.T) {
	c := New()

	err := c.handleGroupAttribute(context.Background(), changefeed.Notification{
		Op:  changefeed.OpInsert,
		New: json.RawMessage(`{"group_id":"g1","name":"display_name","values":["Treasury"]}`),
	})
	require.NoError(t, err)

	attrs, ok := c.GroupAttributes("g1")
	require.True(t, ok)
	assert.Equal(t, []string{"Treasury"}, attrs["display_name"])

	err = c.handleGroupAttribute(context.Background(), changefeed.Notification{
		Op:  changefeed.OpDelete,
		Old: json.RawMessage(`{"group_id":"g1","name":"display_name"}`),
	})
	require.NoError(t, err)

	attrs, _ = c.GroupAttributes("g1")
	_, present := attrs["display_name"]
	assert.False(t, present)
}

func TestRealmScopedEventsAreSkippedOnMismatch(t *testing.T) {
	c := New()
	c.SetRealm("realm-a")

	err := c.handleRole(context.Background(), changefeed.Notification{
		Op:  changefeed.OpInsert,
		New: json.RawMessage(`{"id":"r9","realm_id":"realm-b","name":"x:access"}`),
	})
	require.NoError(t, err)

	_, ok := c.RoleByID("r9")
	assert.False(t, ok)
}
