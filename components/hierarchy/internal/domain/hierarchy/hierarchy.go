// Package hierarchy holds the four hierarchy entities (Customer,
// Organization, Institution, OrganizationUnit) and their create/update
// input shapes, grounded on common/mmodel/organization.go's
// input/response/stamps layout but reshaped around the integer ids and
// parent-chain invariants of spec.md §3.
package hierarchy

import (
	"strconv"
	"time"

	"github.com/lattice-sh/control-plane/pkg/hierarchyctx"
	"github.com/lattice-sh/control-plane/pkg/hierarchyid"
)

// Stamps carries the modification metadata every entity records: who
// created/updated it and when.
type Stamps struct {
	CreatedAt time.Time
	CreatedBy string
	UpdatedAt time.Time
	UpdatedBy string
	DeletedAt *time.Time
}

// Customer is the root of the hierarchy.
type Customer struct {
	CID  int64
	Name string
	Type *string
	Stamps
}

// ID returns the C1 identifier for this customer.
func (c Customer) ID() hierarchyid.CustomerID { return hierarchyid.CustomerID{CID: c.CID} }

// Context returns the position this customer occupies in the hierarchy.
func (c Customer) Context() hierarchyctx.Context { return hierarchyctx.Customer(c.CID) }

// CompositeKey is the uniqueness scope for Customer: name alone, since the
// customer is the top of the tree.
func (c Customer) CompositeKey() string { return c.Name }

// CreateCustomerInput is the payload accepted by the create-Customer
// mutation.
type CreateCustomerInput struct {
	Name      string
	Type      *string
	CreatedBy string
}

// UpdateCustomerInput is the payload accepted by the update-Customer
// mutation.
type UpdateCustomerInput struct {
	Name      *string
	Type      *string
	UpdatedBy string
}

// Organization hangs off a Customer.
type Organization struct {
	OID  int64
	CID  int64
	Name string
	Type *string
	Stamps
}

func (o Organization) ID() hierarchyid.OrganizationID {
	return hierarchyid.OrganizationID{CID: o.CID, OID: o.OID}
}

func (o Organization) Context() hierarchyctx.Context {
	return hierarchyctx.Organization(o.CID, o.OID)
}

// CompositeKey is the uniqueness scope for Organization: (name, cid).
func (o Organization) CompositeKey() string { return o.Name + "\x00" + strconv.FormatInt(o.CID, 10) }

type CreateOrganizationInput struct {
	CID       int64
	Name      string
	Type      *string
	CreatedBy string
}

type UpdateOrganizationInput struct {
	Name      *string
	Type      *string
	UpdatedBy string
}

// Institution hangs off an Organization, which hangs off a Customer.
type Institution struct {
	IID  int64
	OID  int64
	CID  int64
	Name string
	Type *string
	Stamps
}

func (i Institution) ID() hierarchyid.InstitutionID {
	return hierarchyid.InstitutionID{CID: i.CID, OID: i.OID, IID: i.IID}
}

func (i Institution) Context() hierarchyctx.Context {
	return hierarchyctx.Institution(i.CID, i.OID, i.IID)
}

// CompositeKey is the uniqueness scope for Institution: (name, cid, oid).
func (i Institution) CompositeKey() string {
	return i.Name + "\x00" + strconv.FormatInt(i.CID, 10) + "\x00" + strconv.FormatInt(i.OID, 10)
}

type CreateInstitutionInput struct {
	CID       int64
	OID       int64
	Name      string
	Type      *string
	CreatedBy string
}

type UpdateInstitutionInput struct {
	Name      *string
	Type      *string
	UpdatedBy string
}

// InstitutionRef is a lightweight pointer to an Institution, used as a
// member entry inside an OrganizationUnit.
type InstitutionRef struct {
	CID int64
	OID int64
	IID int64
}

// OrganizationUnit hangs directly off a Customer (OID nil) or off an
// Organization (OID set), and carries a set of member Institution
// references that must share its own cid and, when set, oid.
type OrganizationUnit struct {
	UID     int64
	CID     int64
	OID     *int64
	Name    string
	Members []InstitutionRef
	Stamps
}

func (u OrganizationUnit) ID() hierarchyid.OrganizationUnitID {
	return hierarchyid.OrganizationUnitID{CID: u.CID, OID: u.OID, UID: u.UID}
}

func (u OrganizationUnit) Context() hierarchyctx.Context {
	return hierarchyctx.OrganizationUnit(u.CID, u.OID, u.UID)
}

// CompositeKey scopes OrganizationUnit uniqueness by (name, cid, oid);
// oid is the empty string when the unit hangs directly off the customer.
func (u OrganizationUnit) CompositeKey() string {
	oid := ""
	if u.OID != nil {
		oid = strconv.FormatInt(*u.OID, 10)
	}

	return u.Name + "\x00" + strconv.FormatInt(u.CID, 10) + "\x00" + oid
}

// ValidMember reports whether ref may legally belong to this unit: it must
// share the unit's customer and, when the unit is organization-scoped, its
// organization too.
func (u OrganizationUnit) ValidMember(ref InstitutionRef) bool {
	if ref.CID != u.CID {
		return false
	}

	if u.OID != nil && *u.OID != ref.OID {
		return false
	}

	return true
}

type CreateOrganizationUnitInput struct {
	CID       int64
	OID       *int64
	Name      string
	CreatedBy string
}

type UpdateOrganizationUnitInput struct {
	Name      *string
	UpdatedBy string
}

