// Package keycloakdb rebuilds usercache.Cache from Keycloak's own
// relational tables (realm, user_entity, keycloak_role, keycloak_group,
// user_role_mapping, user_group_membership, group_attribute) -- the same
// tables internal/adapters/changefeed listens on for incremental updates,
// read here in bulk for the startup load and the post-cascade full
// reload, grounded on internal/adapters/postgres's query shape adapted to
// a schema this module does not own or migrate.
package keycloakdb

import (
	"context"

	"github.com/lattice-sh/control-plane/common/mpostgres"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/identity"
)

// Snapshot is everything a full load of usercache.Cache needs, already
// resolved the way the change-feed handlers resolve it incrementally:
// each User's Roles/Groups/Context are populated, not left as bare ids.
type Snapshot struct {
	RealmID    string
	Roles      []identity.Role
	Groups     []identity.Group
	Attributes map[string]identity.GroupAttributes // keyed by group id
	Users      []identity.User
}

// Reader reads Keycloak's schema directly; it never writes to it.
type Reader struct {
	connection *mpostgres.PostgresConnection
}

// NewReader returns a Reader bound to pc, eagerly establishing the
// connection the way the hierarchy repositories in
// internal/adapters/postgres do.
func NewReader(pc *mpostgres.PostgresConnection) *Reader {
	r := &Reader{connection: pc}

	if _, err := r.connection.GetDB(context.Background()); err != nil {
		panic("failed to connect to keycloak database")
	}

	return r
}

// LoadAll reads every row belonging to realm and returns a fully resolved
// Snapshot. realm is matched by name against the realm table to recover
// its id, mirroring spec.md §4.6's startup realm query.
func (r *Reader) LoadAll(ctx context.Context, realm string) (Snapshot, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	var realmID string

	err = db.QueryRowContext(ctx, `SELECT id FROM realm WHERE name = $1`, realm).Scan(&realmID)
	if err != nil {
		return Snapshot{}, err
	}

	roles := []identity.Role{}

	roleRows, err := db.QueryContext(ctx, `SELECT id, name FROM keycloak_role WHERE realm_id = $1`, realmID)
	if err != nil {
		return Snapshot{}, err
	}

	for roleRows.Next() {
		var role identity.Role
		if err := roleRows.Scan(&role.ID, &role.Name); err != nil {
			roleRows.Close()
			return Snapshot{}, err
		}

		roles = append(roles, role)
	}

	if err := roleRows.Err(); err != nil {
		roleRows.Close()
		return Snapshot{}, err
	}

	roleRows.Close()

	groups := []identity.Group{}

	groupRows, err := db.QueryContext(ctx, `SELECT id, name FROM keycloak_group WHERE realm_id = $1`, realmID)
	if err != nil {
		return Snapshot{}, err
	}

	for groupRows.Next() {
		var id, name string
		if err := groupRows.Scan(&id, &name); err != nil {
			groupRows.Close()
			return Snapshot{}, err
		}

		groups = append(groups, identity.Group{ID: id, Path: "/" + name})
	}

	if err := groupRows.Err(); err != nil {
		groupRows.Close()
		return Snapshot{}, err
	}

	groupRows.Close()

	attrs := make(map[string]identity.GroupAttributes, len(groups))

	attrRows, err := db.QueryContext(ctx,
		`SELECT group_id, name, value FROM group_attribute WHERE group_id IN (SELECT id FROM keycloak_group WHERE realm_id = $1)`,
		realmID)
	if err != nil {
		return Snapshot{}, err
	}

	for attrRows.Next() {
		var groupID, name, value string
		if err := attrRows.Scan(&groupID, &name, &value); err != nil {
			attrRows.Close()
			return Snapshot{}, err
		}

		if attrs[groupID] == nil {
			attrs[groupID] = identity.GroupAttributes{}
		}

		attrs[groupID][name] = append(attrs[groupID][name], value)
	}

	if err := attrRows.Err(); err != nil {
		attrRows.Close()
		return Snapshot{}, err
	}

	attrRows.Close()

	userRoleIDs := make(map[string][]string)

	urmRows, err := db.QueryContext(ctx, `SELECT user_id, role_id FROM user_role_mapping WHERE realm_id = $1 ORDER BY role_id`, realmID)
	if err != nil {
		return Snapshot{}, err
	}

	for urmRows.Next() {
		var userID, roleID string
		if err := urmRows.Scan(&userID, &roleID); err != nil {
			urmRows.Close()
			return Snapshot{}, err
		}

		userRoleIDs[userID] = append(userRoleIDs[userID], roleID)
	}

	if err := urmRows.Err(); err != nil {
		urmRows.Close()
		return Snapshot{}, err
	}

	urmRows.Close()

	userGroupIDs := make(map[string][]string)

	ugmRows, err := db.QueryContext(ctx, `SELECT user_id, group_id FROM user_group_membership WHERE realm_id = $1`, realmID)
	if err != nil {
		return Snapshot{}, err
	}

	for ugmRows.Next() {
		var userID, groupID string
		if err := ugmRows.Scan(&userID, &groupID); err != nil {
			ugmRows.Close()
			return Snapshot{}, err
		}

		userGroupIDs[userID] = append(userGroupIDs[userID], groupID)
	}

	if err := ugmRows.Err(); err != nil {
		ugmRows.Close()
		return Snapshot{}, err
	}

	ugmRows.Close()

	rolesByID := make(map[string]identity.Role, len(roles))
	for _, role := range roles {
		rolesByID[role.ID] = role
	}

	groupsByID := make(map[string]identity.Group, len(groups))
	for _, group := range groups {
		groupsByID[group.ID] = group
	}

	users := []identity.User{}

	userRows, err := db.QueryContext(ctx,
		`SELECT id, username, email, first_name, last_name, enabled FROM user_entity WHERE realm_id = $1`, realmID)
	if err != nil {
		return Snapshot{}, err
	}

	for userRows.Next() {
		var u identity.User
		if err := userRows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Enabled); err != nil {
			userRows.Close()
			return Snapshot{}, err
		}

		for _, rid := range userRoleIDs[u.ID] {
			if role, ok := rolesByID[rid]; ok {
				u.Roles = append(u.Roles, role)
			}
		}

		for _, gid := range userGroupIDs[u.ID] {
			if group, ok := groupsByID[gid]; ok {
				u.Groups = append(u.Groups, group)
			}
		}

		u.Context = identity.DeriveContext(u.Roles)

		users = append(users, u)
	}

	if err := userRows.Err(); err != nil {
		userRows.Close()
		return Snapshot{}, err
	}

	userRows.Close()

	return Snapshot{
		RealmID:    realmID,
		Roles:      roles,
		Groups:     groups,
		Attributes: attrs,
		Users:      users,
	}, nil
}
