package usercache

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/changefeed"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/identity"
)

// Handlers returns the changefeed.Handler set for the identity channels,
// ready to register on a changefeed.Listener. source hydrates a changed
// user's role/group ids on user_entity_update.
func (c *Cache) Handlers(source IdentitySource) map[string]changefeed.Handler {
	return map[string]changefeed.Handler{
		"realm_update":                 c.handleRealm,
		"user_entity_update":           c.handleUserEntity(source),
		"keycloak_role_update":         c.handleRole,
		"keycloak_group_update":        c.handleGroup,
		"user_role_mapping_update":     c.handleUserRoleMapping,
		"user_group_membership_update": c.handleUserGroupMembership,
		"group_attribute_update":       c.handleGroupAttribute,
	}
}

// realmMatches reports whether realmID belongs to the active realm. Before
// the active realm is known (startup race), every event passes.
func (c *Cache) realmMatches(realmID string) bool {
	active, ok := c.RealmID()
	if !ok {
		return true
	}

	return active == realmID
}

func (c *Cache) handleRealm(_ context.Context, n changefeed.Notification) error {
	if n.Op != changefeed.OpInsert && n.Op != changefeed.OpUpdate {
		return nil
	}

	var row realmRow
	if err := json.Unmarshal(n.New, &row); err != nil {
		return err
	}

	c.SetRealm(row.ID)

	return nil
}

func (c *Cache) handleUserEntity(source IdentitySource) changefeed.Handler {
	return func(ctx context.Context, n changefeed.Notification) error {
		switch n.Op {
		case changefeed.OpInsert, changefeed.OpUpdate:
			var row userEntityRow
			if err := json.Unmarshal(n.New, &row); err != nil {
				return err
			}

			if !c.realmMatches(row.RealmID) {
				return nil
			}

			roleIDs, err := source.UserRoleIDs(ctx, row.ID)
			if err != nil {
				return err
			}

			sort.Strings(roleIDs)

			groupIDs, err := source.UserGroupIDs(ctx, row.ID)
			if err != nil {
				return err
			}

			roles := make([]identity.Role, 0, len(roleIDs))

			for _, rid := range roleIDs {
				if r, ok := c.RoleByID(rid); ok {
					roles = append(roles, r)
				}

				c.AddUserRole(row.ID, rid)
			}

			groups := make([]identity.Group, 0, len(groupIDs))

			for _, gid := range groupIDs {
				if g, ok := c.GroupByID(gid); ok {
					groups = append(groups, g)
				}

				c.AddUserGroup(row.ID, gid)
			}

			c.UpsertUser(identity.User{
				ID:        row.ID,
				Username:  row.Username,
				Email:     row.Email,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				Enabled:   row.Enabled,
				Roles:     roles,
				Groups:    groups,
				Context:   identity.DeriveContext(roles),
			})
		case changefeed.OpDelete:
			var row userEntityRow
			if err := json.Unmarshal(n.Old, &row); err != nil {
				return err
			}

			if !c.realmMatches(row.RealmID) {
				return nil
			}

			c.RemoveUser(row.ID)
		}

		return nil
	}
}

func (c *Cache) handleRole(_ context.Context, n changefeed.Notification) error {
	switch n.Op {
	case changefeed.OpInsert:
		var row roleRow
		if err := json.Unmarshal(n.New, &row); err != nil {
			return err
		}

		if !c.realmMatches(row.RealmID) {
			return nil
		}

		c.InsertRole(identity.Role{ID: row.ID, Name: row.Name})
	case changefeed.OpDelete:
		var row roleRow
		if err := json.Unmarshal(n.Old, &row); err != nil {
			return err
		}

		if !c.realmMatches(row.RealmID) {
			return nil
		}

		if removed, ok := c.RemoveRole(row.ID); ok {
			c.rewriteUsersWithoutRole(removed.ID)
		}
	}

	return nil
}

func (c *Cache) handleGroup(_ context.Context, n changefeed.Notification) error {
	switch n.Op {
	case changefeed.OpInsert:
		var row groupRow
		if err := json.Unmarshal(n.New, &row); err != nil {
			return err
		}

		if !c.realmMatches(row.RealmID) {
			return nil
		}

		c.InsertGroup(identity.Group{ID: row.ID, Path: row.path()})
	case changefeed.OpDelete:
		var row groupRow
		if err := json.Unmarshal(n.Old, &row); err != nil {
			return err
		}

		if !c.realmMatches(row.RealmID) {
			return nil
		}

		if removed, ok := c.RemoveGroup(row.ID); ok {
			c.rewriteUsersWithoutGroup(removed.ID)
		}
	}

	return nil
}

func (c *Cache) handleUserRoleMapping(_ context.Context, n changefeed.Notification) error {
	switch n.Op {
	case changefeed.OpInsert:
		var row userRoleMappingRow
		if err := json.Unmarshal(n.New, &row); err != nil {
			return err
		}

		if !c.realmMatches(row.RealmID) {
			return nil
		}

		c.AddUserRole(row.UserID, row.RoleID)
		c.recomputeUserRoles(row.UserID)
	case changefeed.OpDelete:
		var row userRoleMappingRow
		if err := json.Unmarshal(n.Old, &row); err != nil {
			return err
		}

		if !c.realmMatches(row.RealmID) {
			return nil
		}

		c.RemoveUserRole(row.UserID, row.RoleID)
		c.recomputeUserRoles(row.UserID)
	}

	return nil
}

func (c *Cache) handleUserGroupMembership(_ context.Context, n changefeed.Notification) error {
	switch n.Op {
	case changefeed.OpInsert:
		var row userGroupMembershipRow
		if err := json.Unmarshal(n.New, &row); err != nil {
			return err
		}

		if !c.realmMatches(row.RealmID) {
			return nil
		}

		c.AddUserGroup(row.UserID, row.GroupID)
		c.recomputeUserGroups(row.UserID)
	case changefeed.OpDelete:
		var row userGroupMembershipRow
		if err := json.Unmarshal(n.Old, &row); err != nil {
			return err
		}

		if !c.realmMatches(row.RealmID) {
			return nil
		}

		c.RemoveUserGroup(row.UserID, row.GroupID)
		c.recomputeUserGroups(row.UserID)
	}

	return nil
}

func (c *Cache) handleGroupAttribute(_ context.Context, n changefeed.Notification) error {
	switch n.Op {
	case changefeed.OpInsert, changefeed.OpUpdate:
		var row groupAttributeRow
		if err := json.Unmarshal(n.New, &row); err != nil {
			return err
		}

		c.SetGroupAttribute(row.GroupID, row.Name, row.Values)
	case changefeed.OpDelete:
		var row groupAttributeRow
		if err := json.Unmarshal(n.Old, &row); err != nil {
			return err
		}

		c.attrsMu.Lock()
		if m, ok := c.attrs[row.GroupID]; ok {
			delete(m, row.Name)
		}
		c.attrsMu.Unlock()
	}

	return nil
}

// rewriteUsersWithoutRole drops roleID from every user that holds it and
// recomputes their derived Context, per spec.md §4.6's keycloak_role_update
// DELETE rule.
func (c *Cache) rewriteUsersWithoutRole(roleID string) {
	for _, u := range c.Users() {
		filtered := make([]identity.Role, 0, len(u.Roles))
		changed := false

		for _, r := range u.Roles {
			if r.ID == roleID {
				changed = true
				continue
			}

			filtered = append(filtered, r)
		}

		if !changed {
			continue
		}

		u.Roles = filtered
		u.Context = identity.DeriveContext(filtered)
		c.RewriteUser(u)
		c.RemoveUserRole(u.ID, roleID)
	}
}

// rewriteUsersWithoutGroup drops groupID from every user that holds it.
// Context is unaffected by group membership.
func (c *Cache) rewriteUsersWithoutGroup(groupID string) {
	for _, u := range c.Users() {
		filtered := make([]identity.Group, 0, len(u.Groups))
		changed := false

		for _, g := range u.Groups {
			if g.ID == groupID {
				changed = true
				continue
			}

			filtered = append(filtered, g)
		}

		if !changed {
			continue
		}

		u.Groups = filtered
		c.RewriteUser(u)
		c.RemoveUserGroup(u.ID, groupID)
	}
}

func (c *Cache) recomputeUserRoles(userID string) {
	u, ok := c.UserByID(userID)
	if !ok {
		return
	}

	roleIDs := c.UserRoleIDs(userID)
	roles := make([]identity.Role, 0, len(roleIDs))

	for _, rid := range roleIDs {
		if r, ok := c.RoleByID(rid); ok {
			roles = append(roles, r)
		}
	}

	u.Roles = roles
	u.Context = identity.DeriveContext(roles)
	c.RewriteUser(u)
}

func (c *Cache) recomputeUserGroups(userID string) {
	u, ok := c.UserByID(userID)
	if !ok {
		return
	}

	groupIDs := c.UserGroupIDs(userID)
	groups := make([]identity.Group, 0, len(groupIDs))

	for _, gid := range groupIDs {
		if g, ok := c.GroupByID(gid); ok {
			groups = append(groups, g)
		}
	}

	u.Groups = groups
	c.RewriteUser(u)
}
