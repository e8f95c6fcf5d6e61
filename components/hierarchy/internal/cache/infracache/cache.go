package infracache

import (
	"strconv"

	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/hierarchy"
)

// Cache is the hierarchy materialized cache: one store per entity type.
type Cache struct {
	Customers         *store[hierarchy.Customer]
	Organizations     *store[hierarchy.Organization]
	Institutions      *store[hierarchy.Institution]
	OrganizationUnits *store[hierarchy.OrganizationUnit]
}

// New builds an empty Cache; each store starts at emptyVersion() until
// LoadAll or the change-feed populates it.
func New() *Cache {
	return &Cache{
		Customers: newStore(
			func(c hierarchy.Customer) string { return c.CompositeKey() },
			func(c hierarchy.Customer) string { return strconv.FormatInt(c.CID, 10) },
			func(c hierarchy.Customer) string { return c.Name },
		),
		Organizations: newStore(
			func(o hierarchy.Organization) string { return o.CompositeKey() },
			func(o hierarchy.Organization) string { return strconv.FormatInt(o.OID, 10) },
			func(o hierarchy.Organization) string { return o.Name },
		),
		Institutions: newStore(
			func(i hierarchy.Institution) string { return i.CompositeKey() },
			func(i hierarchy.Institution) string { return strconv.FormatInt(i.IID, 10) },
			func(i hierarchy.Institution) string { return i.Name },
		),
		OrganizationUnits: newStore(
			func(u hierarchy.OrganizationUnit) string { return u.CompositeKey() },
			func(u hierarchy.OrganizationUnit) string { return strconv.FormatInt(u.UID, 10) },
			func(u hierarchy.OrganizationUnit) string { return u.Name },
		),
	}
}

// LoadAll replaces every store's contents from a full read of the
// relational store. Each slice is expected pre-fetched by the caller's
// repository layer (internal/adapters/postgres), keeping this package
// free of a direct SQL dependency.
func (c *Cache) LoadAll(
	customers []hierarchy.Customer,
	organizations []hierarchy.Organization,
	institutions []hierarchy.Institution,
	organizationUnits []hierarchy.OrganizationUnit,
) {
	c.Customers.Load(customers)
	c.Organizations.Load(organizations)
	c.Institutions.Load(institutions)
	c.OrganizationUnits.Load(organizationUnits)
}
