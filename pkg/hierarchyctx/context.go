// Package hierarchyctx implements the Context sum type — a position in the
// Customer/Organization/Institution/OrganizationUnit hierarchy — together
// with the ancestry predicates and narrowing operation used to authorize
// mutations, and the access-role-name grammar that embeds a Context as the
// suffix of an IdP role name.
//
// This is a distinct type from the request-scoped logger/tracer carrier in
// common/context.go; the two are unrelated and never confused in this
// package.
package hierarchyctx

import (
	"fmt"
	"strings"

	"github.com/lattice-sh/control-plane/pkg/hierarchyid"
)

// Kind discriminates which levels of Context are populated.
type Kind int

const (
	KindCustomer Kind = iota
	KindOrganization
	KindInstitution
	KindOrganizationUnit
)

// Context is a position in the hierarchy. The zero value is not a valid
// Context; construct one with Customer, Organization, Institution, or
// OrganizationUnit.
type Context struct {
	kind Kind
	cid  int64
	oid  *int64
	iid  *int64
	uid  *int64
}

// Customer returns a Context scoped to an entire customer.
func Customer(cid int64) Context {
	return Context{kind: KindCustomer, cid: cid}
}

// Organization returns a Context scoped to an organization.
func Organization(cid, oid int64) Context {
	return Context{kind: KindOrganization, cid: cid, oid: &oid}
}

// Institution returns a Context scoped to an institution.
func Institution(cid, oid, iid int64) Context {
	return Context{kind: KindInstitution, cid: cid, oid: &oid, iid: &iid}
}

// OrganizationUnit returns a Context scoped to an organization unit. oid is
// nil when the unit hangs directly off the customer.
func OrganizationUnit(cid int64, oid *int64, uid int64) Context {
	var oidCopy *int64
	if oid != nil {
		v := *oid
		oidCopy = &v
	}

	return Context{kind: KindOrganizationUnit, cid: cid, oid: oidCopy, uid: &uid}
}

// Kind reports which case of the sum type this Context holds.
func (c Context) Kind() Kind { return c.kind }

// CustomerID projects the customer level, present on every Context.
func (c Context) CustomerID() int64 { return c.cid }

// OrganizationID projects the organization level, when present.
func (c Context) OrganizationID() (int64, bool) {
	if c.oid != nil {
		return *c.oid, true
	}

	return 0, false
}

// InstitutionID projects the institution level, when present.
func (c Context) InstitutionID() (int64, bool) {
	if c.iid != nil {
		return *c.iid, true
	}

	return 0, false
}

// OrganizationUnitID projects the organization-unit level, when present.
func (c Context) OrganizationUnitID() (int64, bool) {
	if c.uid != nil && c.kind == KindOrganizationUnit {
		return *c.uid, true
	}

	return 0, false
}

// HasCustomer reports whether this Context's customer level matches cid.
func (c Context) HasCustomer(cid int64) bool {
	return c.cid == cid
}

// HasOrganization reports whether this Context lies at or below the
// organization position (cid, oid): it must itself carry an organization
// level equal to the query.
func (c Context) HasOrganization(cid, oid int64) bool {
	selfOID, ok := c.OrganizationID()
	return ok && c.cid == cid && selfOID == oid
}

// HasInstitution reports whether this Context lies at or below the
// institution position (cid, oid, iid).
func (c Context) HasInstitution(cid, oid, iid int64) bool {
	selfIID, ok := c.InstitutionID()
	if !ok {
		return false
	}

	selfOID, _ := c.OrganizationID()

	return c.cid == cid && selfOID == oid && selfIID == iid
}

// HasOrganizationUnit reports whether this Context is the
// organization-unit position (cid, oid, uid); oid may be nil for a
// root-level unit.
func (c Context) HasOrganizationUnit(cid int64, oid *int64, uid int64) bool {
	selfUID, ok := c.OrganizationUnitID()
	if !ok || c.cid != cid || selfUID != uid {
		return false
	}

	switch {
	case oid == nil && c.oid == nil:
		return true
	case oid != nil && c.oid != nil:
		return *oid == *c.oid
	default:
		return false
	}
}

// Dominates reports whether c is the same as or an ancestor of query: c's
// own level must be present in (and match) query.
func (c Context) Dominates(query Context) bool {
	switch c.kind {
	case KindCustomer:
		return query.HasCustomer(c.cid)
	case KindOrganization:
		oid, _ := c.OrganizationID()
		return query.HasOrganization(c.cid, oid)
	case KindInstitution:
		oid, _ := c.OrganizationID()
		iid, _ := c.InstitutionID()

		return query.HasInstitution(c.cid, oid, iid)
	case KindOrganizationUnit:
		uid, _ := c.OrganizationUnitID()
		return query.HasOrganizationUnit(c.cid, c.oid, uid)
	default:
		return false
	}
}

// Combine narrows userCtx to queryCtx without ever escalating: it returns
// queryCtx when userCtx dominates it, otherwise userCtx itself. This is the
// sole mechanism for scoping an authenticated user's view to a requested
// sub-position.
func Combine(userCtx, queryCtx Context) Context {
	if userCtx.Dominates(queryCtx) {
		return queryCtx
	}

	return userCtx
}

// String renders the canonical identifier form of this Context, reusing the
// non-resource hierarchyid shapes (V/T/R/P/N).
func (c Context) String() string {
	switch c.kind {
	case KindCustomer:
		return hierarchyid.CustomerID{CID: c.cid}.Format()
	case KindOrganization:
		oid, _ := c.OrganizationID()
		return hierarchyid.OrganizationID{CID: c.cid, OID: oid}.Format()
	case KindInstitution:
		oid, _ := c.OrganizationID()
		iid, _ := c.InstitutionID()

		return hierarchyid.InstitutionID{CID: c.cid, OID: oid, IID: iid}.Format()
	case KindOrganizationUnit:
		uid, _ := c.OrganizationUnitID()
		return hierarchyid.OrganizationUnitID{CID: c.cid, OID: c.oid, UID: uid}.Format()
	default:
		return ""
	}
}

// ParseContext recovers a Context from its canonical identifier form.
func ParseContext(s string) (Context, error) {
	if len(s) == 0 {
		return Context{}, fmt.Errorf("hierarchyctx: empty context string")
	}

	switch s[0] {
	case 'V':
		id, err := hierarchyid.ParseCustomerID(s)
		if err != nil {
			return Context{}, err
		}

		return Customer(id.CID), nil
	case 'T':
		id, err := hierarchyid.ParseOrganizationID(s)
		if err != nil {
			return Context{}, err
		}

		return Organization(id.CID, id.OID), nil
	case 'R':
		id, err := hierarchyid.ParseInstitutionID(s)
		if err != nil {
			return Context{}, err
		}

		return Institution(id.CID, id.OID, id.IID), nil
	case 'P', 'N':
		id, err := hierarchyid.ParseOrganizationUnitID(s)
		if err != nil {
			return Context{}, err
		}

		return OrganizationUnit(id.CID, id.OID, id.UID), nil
	default:
		return Context{}, fmt.Errorf("hierarchyctx: unrecognized context prefix in %q", s)
	}
}

// AccessRoleName formats the IdP access-role name binding resource to ctx,
// following the "<resource>:access_<context-id>" grammar (or bare
// "<resource>:access" when ctx is nil).
func AccessRoleName(resource string, ctx *Context) string {
	if ctx == nil {
		return resource + ":access"
	}

	return resource + ":access_" + ctx.String()
}

// ParseAccessRoleName splits an access-role name into its resource and
// Context (nil when the role carries no context suffix). ok is false when
// name does not follow the access-role grammar at all.
func ParseAccessRoleName(name string) (resource string, ctx *Context, ok bool) {
	const marker = ":access"

	idx := strings.Index(name, marker)
	if idx < 0 {
		return "", nil, false
	}

	resource = name[:idx]
	rest := name[idx+len(marker):]

	if rest == "" {
		return resource, nil, true
	}

	if !strings.HasPrefix(rest, "_") {
		return "", nil, false
	}

	parsed, err := ParseContext(rest[1:])
	if err != nil {
		return "", nil, false
	}

	return resource, &parsed, true
}
