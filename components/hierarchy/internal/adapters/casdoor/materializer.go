// Package casdoor implements the Role/Group Materializer (C7) against
// Casdoor, the IdP already wired into the teacher tree via
// common/mcasdoor.CasdoorConnection. Casdoor's Group object carries no
// direct role list, so group-to-role binding is expressed through its
// generic Permission object (Roles + Groups + resource + actions).
//
// spec.md §1 explicitly treats the IdP as an abstract collaborator with
// an opaque schema; the shapes below are this package's concrete binding
// to that abstraction, documented in DESIGN.md rather than pretended away.
package casdoor

import (
	"context"
	"fmt"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"

	"github.com/lattice-sh/control-plane/common/mcasdoor"
	"github.com/lattice-sh/control-plane/pkg/errs"
)

// GroupDescriptor is one desired group node in a materialization request.
type GroupDescriptor struct {
	Path      string
	Resources []string
}

// Materializer ensures the IdP contains the roles and group hierarchy a
// set of access levels implies (spec.md §4.7).
type Materializer struct {
	conn  *mcasdoor.CasdoorConnection
	realm string
}

// New builds a Materializer targeting the given realm (Casdoor
// organization name).
func New(conn *mcasdoor.CasdoorConnection, realm string) *Materializer {
	return &Materializer{conn: conn, realm: realm}
}

// EnsureRoles ensures every named role exists, creating missing ones. A
// losing race against a concurrent creator (AddRole reporting no rows
// affected) is treated as success and resolved by re-fetching.
func (m *Materializer) EnsureRoles(_ context.Context, names []string) (map[string]*casdoorsdk.Role, error) {
	client := m.conn.GetClient()
	out := make(map[string]*casdoorsdk.Role, len(names))

	for _, name := range names {
		role, err := client.GetRole(name)
		if err != nil {
			return nil, errs.StoreFailureError{Store: "idp", Message: "get role " + name, Err: err}
		}

		if role == nil {
			role, err = m.createRole(name)
			if err != nil {
				return nil, err
			}
		}

		out[name] = role
	}

	return out, nil
}

func (m *Materializer) createRole(name string) (*casdoorsdk.Role, error) {
	client := m.conn.GetClient()

	created := &casdoorsdk.Role{Owner: m.realm, Name: name, IsEnabled: true}

	ok, err := client.AddRole(created)
	if err != nil {
		return nil, errs.StoreFailureError{Store: "idp", Message: "add role " + name, Err: err}
	}

	if ok {
		return created, nil
	}

	role, err := client.GetRole(name)
	if err != nil || role == nil {
		return nil, errs.StoreFailureError{Store: "idp", Message: "re-fetch role " + name, Err: err}
	}

	return role, nil
}

// RemoveRoles deletes the named roles from the IdP. A role that no longer
// exists is treated as already removed (spec.md §4.9's handler must
// tolerate NotFound so the cascade stays idempotent across retries).
func (m *Materializer) RemoveRoles(_ context.Context, names []string) error {
	client := m.conn.GetClient()

	for _, name := range names {
		role, err := client.GetRole(name)
		if err != nil {
			return errs.StoreFailureError{Store: "idp", Message: "get role " + name, Err: err}
		}

		if role == nil {
			continue
		}

		if _, err := client.DeleteRole(role); err != nil {
			return errs.StoreFailureError{Store: "idp", Message: "delete role " + name, Err: err}
		}
	}

	return nil
}

// EnsureGroupPath walks path's segments left-to-right, creating any
// missing intermediate group under its accumulated parent, and returns
// the leaf group.
func (m *Materializer) EnsureGroupPath(_ context.Context, path string) (*casdoorsdk.Group, error) {
	client := m.conn.GetClient()

	segments := strings.Split(strings.Trim(path, "/"), "/")

	var parentID string
	var leaf *casdoorsdk.Group

	accumulated := ""

	for _, seg := range segments {
		if seg == "" {
			continue
		}

		accumulated += "/" + seg

		group, err := client.GetGroup(seg)
		if err != nil {
			return nil, errs.StoreFailureError{Store: "idp", Message: "get group " + accumulated, Err: err}
		}

		if group == nil {
			group, err = m.createGroup(seg, parentID, accumulated)
			if err != nil {
				return nil, err
			}
		}

		parentID = fmt.Sprintf("%s/%s", group.Owner, group.Name)
		leaf = group
	}

	if leaf == nil {
		return nil, errs.BadRequestError{Field: "path", Message: "empty group path"}
	}

	return leaf, nil
}

func (m *Materializer) createGroup(name, parentID, accumulatedPath string) (*casdoorsdk.Group, error) {
	client := m.conn.GetClient()

	created := &casdoorsdk.Group{
		Owner:      m.realm,
		Name:       name,
		ParentId:   parentID,
		IsTopGroup: parentID == "",
	}

	ok, err := client.AddGroup(created)
	if err != nil {
		return nil, errs.StoreFailureError{Store: "idp", Message: "add group " + accumulatedPath, Err: err}
	}

	if ok {
		return created, nil
	}

	group, err := client.GetGroup(name)
	if err != nil || group == nil {
		return nil, errs.StoreFailureError{Store: "idp", Message: "re-fetch group " + accumulatedPath, Err: err}
	}

	return group, nil
}

// AttachGroupRoles binds the subset of roles whose names appear in
// resources to group, via a Casdoor Permission scoped to that group. A
// concurrent materializer run attaching the same binding is idempotent.
func (m *Materializer) AttachGroupRoles(_ context.Context, group *casdoorsdk.Group, roles map[string]*casdoorsdk.Role, resources []string) error {
	client := m.conn.GetClient()

	var roleNames []string

	for _, name := range resources {
		if _, ok := roles[name]; ok {
			roleNames = append(roleNames, name)
		}
	}

	if len(roleNames) == 0 {
		return nil
	}

	perm := &casdoorsdk.Permission{
		Owner:        m.realm,
		Name:         "group-roles-" + group.Name,
		Groups:       []string{fmt.Sprintf("%s/%s", group.Owner, group.Name)},
		Roles:        roleNames,
		ResourceType: "Group",
		Actions:      []string{"Read"},
		Effect:       "Allow",
		IsEnabled:    true,
	}

	if _, err := client.AddPermission(perm); err != nil {
		return errs.StoreFailureError{Store: "idp", Message: "attach roles to group " + group.Name, Err: err}
	}

	return nil
}

// UserRoleIDs satisfies usercache.IdentitySource: it returns the ids of
// every role Casdoor currently has bound to userID, used by the
// user_entity_update handler to re-hydrate a changed user's role set since
// the notification payload itself only carries the bare user row.
func (m *Materializer) UserRoleIDs(_ context.Context, userID string) ([]string, error) {
	client := m.conn.GetClient()

	user, err := client.GetUser(userID)
	if err != nil {
		return nil, errs.StoreFailureError{Store: "idp", Message: "get user " + userID, Err: err}
	}

	if user == nil {
		return nil, nil
	}

	ids := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		ids = append(ids, r.Name)
	}

	return ids, nil
}

// UserGroupIDs satisfies usercache.IdentitySource: it returns the ids of
// every group userID currently belongs to.
func (m *Materializer) UserGroupIDs(_ context.Context, userID string) ([]string, error) {
	client := m.conn.GetClient()

	user, err := client.GetUser(userID)
	if err != nil {
		return nil, errs.StoreFailureError{Store: "idp", Message: "get user " + userID, Err: err}
	}

	if user == nil {
		return nil, nil
	}

	return user.Groups, nil
}

// Materialize runs the full algorithm: ensure every access role, ensure
// every group's path, then attach each group's resource roles.
func (m *Materializer) Materialize(ctx context.Context, roleNames []string, groups []GroupDescriptor) error {
	roles, err := m.EnsureRoles(ctx, roleNames)
	if err != nil {
		return err
	}

	for _, g := range groups {
		group, err := m.EnsureGroupPath(ctx, g.Path)
		if err != nil {
			return err
		}

		if err := m.AttachGroupRoles(ctx, group, roles, g.Resources); err != nil {
			return err
		}
	}

	return nil
}
