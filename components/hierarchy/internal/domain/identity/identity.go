// Package identity holds the User/Group/Role entities of the identity
// graph and the role-name grammar they share with the IdP, grounded on
// spec.md §3's data model and the Access/Role display grammar confirmed in
// original_source/crates/role/src/lib.rs.
package identity

import "github.com/lattice-sh/control-plane/pkg/hierarchyctx"

// Role is an IdP role. Its Name follows one of two grammars:
// "<resource>:<permission>" (a capability role) or
// "<resource>:access_<context-id>" (an access role binding a Context).
type Role struct {
	ID   string
	Name string
}

// AccessContext parses this role's Context suffix, when it has one.
func (r Role) AccessContext() (resource string, ctx *hierarchyctx.Context, ok bool) {
	return hierarchyctx.ParseAccessRoleName(r.Name)
}

// Group is an IdP group. Path is slash-prefixed, typically
// "/app/<snake_case_name>".
type Group struct {
	ID           string
	Path         string
	DisplayName  string
	BuiltIn      bool
	AllowedLevel []string
}

// GroupAttributes is the per-group key/value multi-map carrying display
// name, allowed access levels (CSV), and the built-in flag, as loaded off
// the IdP's generic group-attribute store.
type GroupAttributes map[string][]string

// User is a member of the identity graph: resolved role and group handles
// plus a Context derived from the first access role that names one.
type User struct {
	ID        string
	Username  string
	Email     string
	FirstName string
	LastName  string
	Enabled   bool
	Roles     []Role
	Groups    []Group
	Context   *hierarchyctx.Context
}

// DeriveContext implements the "first access role wins" rule (spec.md §4.6,
// §9): iterate the user's roles in the given canonical order and assign the
// Context of the first role whose name parses as an access role with a
// context suffix. Roles must be pre-sorted by the caller (internal/cache/
// usercache sorts by ascending role id, resolving the source's
// implementation-defined iteration order into a deterministic one).
func DeriveContext(roles []Role) *hierarchyctx.Context {
	for _, r := range roles {
		if _, ctx, ok := r.AccessContext(); ok && ctx != nil {
			return ctx
		}
	}

	return nil
}
