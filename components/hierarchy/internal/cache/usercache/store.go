// Package usercache is the identity half of THE CORE's materialized cache
// (C6): realm, roles, groups, group attributes, the user⇄role and
// user⇄group association tables, and the users store itself, each
// independently lock-guarded, grounded on spec.md §4.6 and the same
// InfraDB shape internal/cache/infracache follows for the hierarchy half.
package usercache

import (
	"sort"
	"sync"

	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/identity"
)

// Cache is the identity materialized cache.
type Cache struct {
	realmMu sync.RWMutex
	realmID *string

	rolesMu     sync.RWMutex
	rolesByName map[string]identity.Role
	rolesByID   map[string]identity.Role

	groupsMu     sync.RWMutex
	groupsByPath map[string]identity.Group
	groupsByID   map[string]identity.Group

	attrsMu sync.RWMutex
	attrs   map[string]identity.GroupAttributes // keyed by group id

	assocMu    sync.RWMutex
	userRoles  map[string]map[string]struct{} // user id -> role id set
	userGroups map[string]map[string]struct{} // user id -> group id set

	usersMu         sync.RWMutex
	usersByID       map[string]identity.User
	usersByUsername map[string]identity.User
	usersByEmail    map[string]identity.User
}

// New builds an empty Cache.
func New() *Cache {
	return &Cache{
		rolesByName: make(map[string]identity.Role),
		rolesByID:   make(map[string]identity.Role),

		groupsByPath: make(map[string]identity.Group),
		groupsByID:   make(map[string]identity.Group),

		attrs: make(map[string]identity.GroupAttributes),

		userRoles:  make(map[string]map[string]struct{}),
		userGroups: make(map[string]map[string]struct{}),

		usersByID:       make(map[string]identity.User),
		usersByUsername: make(map[string]identity.User),
		usersByEmail:    make(map[string]identity.User),
	}
}

// SetRealm records the active realm id, set on startup and on
// realm_update.
func (c *Cache) SetRealm(id string) {
	c.realmMu.Lock()
	defer c.realmMu.Unlock()

	c.realmID = &id
}

// RealmID reports the active realm, if known.
func (c *Cache) RealmID() (string, bool) {
	c.realmMu.RLock()
	defer c.realmMu.RUnlock()

	if c.realmID == nil {
		return "", false
	}

	return *c.realmID, true
}

// NewRoles bulk-inserts roles with no removal, used for the initial load.
func (c *Cache) NewRoles(roles []identity.Role) {
	c.rolesMu.Lock()
	defer c.rolesMu.Unlock()

	for _, r := range roles {
		c.rolesByName[r.Name] = r
		c.rolesByID[r.ID] = r
	}
}

// InsertRole upserts a single role.
func (c *Cache) InsertRole(r identity.Role) {
	c.rolesMu.Lock()
	defer c.rolesMu.Unlock()

	c.rolesByName[r.Name] = r
	c.rolesByID[r.ID] = r
}

// RemoveRole deletes a role by id and returns it for callers that need to
// rewrite affected users.
func (c *Cache) RemoveRole(id string) (identity.Role, bool) {
	c.rolesMu.Lock()
	defer c.rolesMu.Unlock()

	r, ok := c.rolesByID[id]
	if !ok {
		return identity.Role{}, false
	}

	delete(c.rolesByID, id)
	delete(c.rolesByName, r.Name)

	return r, true
}

func (c *Cache) RoleByName(name string) (identity.Role, bool) {
	c.rolesMu.RLock()
	defer c.rolesMu.RUnlock()

	r, ok := c.rolesByName[name]

	return r, ok
}

func (c *Cache) RoleByID(id string) (identity.Role, bool) {
	c.rolesMu.RLock()
	defer c.rolesMu.RUnlock()

	r, ok := c.rolesByID[id]

	return r, ok
}

// InsertGroup upserts a group keyed by its slash-prefixed path and id.
func (c *Cache) InsertGroup(g identity.Group) {
	c.groupsMu.Lock()
	defer c.groupsMu.Unlock()

	c.groupsByPath[g.Path] = g
	c.groupsByID[g.ID] = g
}

func (c *Cache) RemoveGroup(id string) (identity.Group, bool) {
	c.groupsMu.Lock()
	defer c.groupsMu.Unlock()

	g, ok := c.groupsByID[id]
	if !ok {
		return identity.Group{}, false
	}

	delete(c.groupsByID, id)
	delete(c.groupsByPath, g.Path)

	return g, true
}

func (c *Cache) GroupByPath(path string) (identity.Group, bool) {
	c.groupsMu.RLock()
	defer c.groupsMu.RUnlock()

	g, ok := c.groupsByPath[path]

	return g, ok
}

func (c *Cache) GroupByID(id string) (identity.Group, bool) {
	c.groupsMu.RLock()
	defer c.groupsMu.RUnlock()

	g, ok := c.groupsByID[id]

	return g, ok
}

// SetGroupAttributes replaces the attribute multi-map for a group.
func (c *Cache) SetGroupAttributes(groupID string, attrs identity.GroupAttributes) {
	c.attrsMu.Lock()
	defer c.attrsMu.Unlock()

	c.attrs[groupID] = attrs
}

// SetGroupAttribute upserts a single attribute key within a group's
// multi-map, used by the group_attribute_update handler which carries one
// key/value pair per notification.
func (c *Cache) SetGroupAttribute(groupID, key string, values []string) {
	c.attrsMu.Lock()
	defer c.attrsMu.Unlock()

	if c.attrs[groupID] == nil {
		c.attrs[groupID] = make(identity.GroupAttributes)
	}

	c.attrs[groupID][key] = values
}

func (c *Cache) GroupAttributes(groupID string) (identity.GroupAttributes, bool) {
	c.attrsMu.RLock()
	defer c.attrsMu.RUnlock()

	a, ok := c.attrs[groupID]

	return a, ok
}

// AddUserRole records a user→role association.
func (c *Cache) AddUserRole(userID, roleID string) {
	c.assocMu.Lock()
	defer c.assocMu.Unlock()

	if c.userRoles[userID] == nil {
		c.userRoles[userID] = make(map[string]struct{})
	}

	c.userRoles[userID][roleID] = struct{}{}
}

// RemoveUserRole deletes a user→role association.
func (c *Cache) RemoveUserRole(userID, roleID string) {
	c.assocMu.Lock()
	defer c.assocMu.Unlock()

	delete(c.userRoles[userID], roleID)
}

// UserRoleIDs returns a caller's role ids in ascending order, the
// canonical tiebreak internal/domain/identity.DeriveContext relies on.
func (c *Cache) UserRoleIDs(userID string) []string {
	c.assocMu.RLock()
	defer c.assocMu.RUnlock()

	ids := make([]string, 0, len(c.userRoles[userID]))
	for id := range c.userRoles[userID] {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

func (c *Cache) AddUserGroup(userID, groupID string) {
	c.assocMu.Lock()
	defer c.assocMu.Unlock()

	if c.userGroups[userID] == nil {
		c.userGroups[userID] = make(map[string]struct{})
	}

	c.userGroups[userID][groupID] = struct{}{}
}

func (c *Cache) RemoveUserGroup(userID, groupID string) {
	c.assocMu.Lock()
	defer c.assocMu.Unlock()

	delete(c.userGroups[userID], groupID)
}

func (c *Cache) UserGroupIDs(userID string) []string {
	c.assocMu.RLock()
	defer c.assocMu.RUnlock()

	ids := make([]string, 0, len(c.userGroups[userID]))
	for id := range c.userGroups[userID] {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// UpsertUser writes u into all applicable indexes; the email index is
// skipped when Email is empty.
func (c *Cache) UpsertUser(u identity.User) {
	c.usersMu.Lock()
	defer c.usersMu.Unlock()

	c.upsertUserLocked(u)
}

func (c *Cache) upsertUserLocked(u identity.User) {
	c.usersByID[u.ID] = u
	c.usersByUsername[u.Username] = u

	if u.Email != "" {
		c.usersByEmail[u.Email] = u
	}
}

// RemoveUser deletes a user from every index.
func (c *Cache) RemoveUser(id string) {
	c.usersMu.Lock()
	defer c.usersMu.Unlock()

	u, ok := c.usersByID[id]
	if !ok {
		return
	}

	delete(c.usersByID, id)
	delete(c.usersByUsername, u.Username)

	if u.Email != "" {
		delete(c.usersByEmail, u.Email)
	}
}

func (c *Cache) UserByID(id string) (identity.User, bool) {
	c.usersMu.RLock()
	defer c.usersMu.RUnlock()

	u, ok := c.usersByID[id]

	return u, ok
}

func (c *Cache) UserByUsername(username string) (identity.User, bool) {
	c.usersMu.RLock()
	defer c.usersMu.RUnlock()

	u, ok := c.usersByUsername[username]

	return u, ok
}

func (c *Cache) UserByEmail(email string) (identity.User, bool) {
	c.usersMu.RLock()
	defer c.usersMu.RUnlock()

	u, ok := c.usersByEmail[email]

	return u, ok
}

// Users returns every user currently cached, for callers that need to
// rewrite all users referencing a removed role or group.
func (c *Cache) Users() []identity.User {
	c.usersMu.RLock()
	defer c.usersMu.RUnlock()

	out := make([]identity.User, 0, len(c.usersByID))
	for _, u := range c.usersByID {
		out = append(out, u)
	}

	return out
}

// RewriteUser atomically replaces a cached user in place, used when a
// role or group deletion requires recomputing a user's Roles/Groups and
// derived Context without disturbing other readers' handles.
func (c *Cache) RewriteUser(u identity.User) {
	c.usersMu.Lock()
	defer c.usersMu.Unlock()

	c.upsertUserLocked(u)
}

// LoadAll replaces every index wholesale from a full read of the IdP's own
// schema (internal/adapters/keycloakdb), used by the startup load and by
// internal/adapters/reload after a cascade. Users are expected to already
// carry resolved Roles/Groups/Context, the way keycloakdb.Reader.LoadAll
// builds them.
func (c *Cache) LoadAll(realmID string, roles []identity.Role, groups []identity.Group, attrs map[string]identity.GroupAttributes, users []identity.User) {
	c.SetRealm(realmID)

	c.rolesMu.Lock()
	c.rolesByName = make(map[string]identity.Role, len(roles))
	c.rolesByID = make(map[string]identity.Role, len(roles))

	for _, r := range roles {
		c.rolesByName[r.Name] = r
		c.rolesByID[r.ID] = r
	}
	c.rolesMu.Unlock()

	c.groupsMu.Lock()
	c.groupsByPath = make(map[string]identity.Group, len(groups))
	c.groupsByID = make(map[string]identity.Group, len(groups))

	for _, g := range groups {
		c.groupsByPath[g.Path] = g
		c.groupsByID[g.ID] = g
	}
	c.groupsMu.Unlock()

	c.attrsMu.Lock()
	c.attrs = make(map[string]identity.GroupAttributes, len(attrs))
	for id, a := range attrs {
		c.attrs[id] = a
	}
	c.attrsMu.Unlock()

	c.assocMu.Lock()
	c.userRoles = make(map[string]map[string]struct{}, len(users))
	c.userGroups = make(map[string]map[string]struct{}, len(users))

	for _, u := range users {
		roleSet := make(map[string]struct{}, len(u.Roles))
		for _, r := range u.Roles {
			roleSet[r.ID] = struct{}{}
		}

		c.userRoles[u.ID] = roleSet

		groupSet := make(map[string]struct{}, len(u.Groups))
		for _, g := range u.Groups {
			groupSet[g.ID] = struct{}{}
		}

		c.userGroups[u.ID] = groupSet
	}
	c.assocMu.Unlock()

	c.usersMu.Lock()
	c.usersByID = make(map[string]identity.User, len(users))
	c.usersByUsername = make(map[string]identity.User, len(users))
	c.usersByEmail = make(map[string]identity.User, len(users))

	for _, u := range users {
		c.upsertUserLocked(u)
	}
	c.usersMu.Unlock()
}
