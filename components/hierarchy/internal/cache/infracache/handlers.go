package infracache

import (
	"context"
	"encoding/json"

	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/changefeed"
)

// Handlers returns the changefeed.Handler set for the four hierarchy
// channels, ready to register on a changefeed.Listener.
func (c *Cache) Handlers() map[string]changefeed.Handler {
	return map[string]changefeed.Handler{
		"customers_update":          c.handleCustomers,
		"organizations_update":      c.handleOrganizations,
		"institutions_update":       c.handleInstitutions,
		"organization_units_update": c.handleOrganizationUnits,
	}
}

func (c *Cache) handleCustomers(_ context.Context, n changefeed.Notification) error {
	switch n.Op {
	case changefeed.OpInsert:
		var row customerRow
		if err := json.Unmarshal(n.New, &row); err != nil {
			return err
		}

		if e, ok := row.toEntity(); ok {
			c.Customers.Insert(e)
		}
	case changefeed.OpUpdate:
		var newRow, oldRow customerRow
		if err := json.Unmarshal(n.New, &newRow); err != nil {
			return err
		}

		if err := json.Unmarshal(n.Old, &oldRow); err != nil {
			return err
		}

		if e, ok := newRow.toEntity(); ok {
			c.Customers.Update(e, oldRow.compositeKey(), oldRow.idKey())
		}
	case changefeed.OpDelete:
		var oldRow customerRow
		if err := json.Unmarshal(n.Old, &oldRow); err != nil {
			return err
		}

		c.Customers.Remove(oldRow.compositeKey(), oldRow.idKey())
	}

	return nil
}

func (c *Cache) handleOrganizations(_ context.Context, n changefeed.Notification) error {
	switch n.Op {
	case changefeed.OpInsert:
		var row organizationRow
		if err := json.Unmarshal(n.New, &row); err != nil {
			return err
		}

		if e, ok := row.toEntity(); ok {
			c.Organizations.Insert(e)
		}
	case changefeed.OpUpdate:
		var newRow, oldRow organizationRow
		if err := json.Unmarshal(n.New, &newRow); err != nil {
			return err
		}

		if err := json.Unmarshal(n.Old, &oldRow); err != nil {
			return err
		}

		if e, ok := newRow.toEntity(); ok {
			c.Organizations.Update(e, oldRow.compositeKey(), oldRow.idKey())
		}
	case changefeed.OpDelete:
		var oldRow organizationRow
		if err := json.Unmarshal(n.Old, &oldRow); err != nil {
			return err
		}

		c.Organizations.Remove(oldRow.compositeKey(), oldRow.idKey())
	}

	return nil
}

func (c *Cache) handleInstitutions(_ context.Context, n changefeed.Notification) error {
	switch n.Op {
	case changefeed.OpInsert:
		var row institutionRow
		if err := json.Unmarshal(n.New, &row); err != nil {
			return err
		}

		if e, ok := row.toEntity(); ok {
			c.Institutions.Insert(e)
		}
	case changefeed.OpUpdate:
		var newRow, oldRow institutionRow
		if err := json.Unmarshal(n.New, &newRow); err != nil {
			return err
		}

		if err := json.Unmarshal(n.Old, &oldRow); err != nil {
			return err
		}

		if e, ok := newRow.toEntity(); ok {
			c.Institutions.Update(e, oldRow.compositeKey(), oldRow.idKey())
		}
	case changefeed.OpDelete:
		var oldRow institutionRow
		if err := json.Unmarshal(n.Old, &oldRow); err != nil {
			return err
		}

		c.Institutions.Remove(oldRow.compositeKey(), oldRow.idKey())
	}

	return nil
}

func (c *Cache) handleOrganizationUnits(_ context.Context, n changefeed.Notification) error {
	switch n.Op {
	case changefeed.OpInsert:
		var row organizationUnitRow
		if err := json.Unmarshal(n.New, &row); err != nil {
			return err
		}

		if e, ok := row.toEntity(); ok {
			c.OrganizationUnits.Insert(e)
		}
	case changefeed.OpUpdate:
		var newRow, oldRow organizationUnitRow
		if err := json.Unmarshal(n.New, &newRow); err != nil {
			return err
		}

		if err := json.Unmarshal(n.Old, &oldRow); err != nil {
			return err
		}

		if e, ok := newRow.toEntity(); ok {
			// A changed row keeps its existing members; the pipeline's
			// own cache-apply step (not the change-feed path) is what
			// mutates OrganizationUnit.Members.
			if existing, ok := c.OrganizationUnits.ByID(oldRow.idKey()); ok {
				e.Members = existing.Members
			}

			c.OrganizationUnits.Update(e, oldRow.compositeKey(), oldRow.idKey())
		}
	case changefeed.OpDelete:
		var oldRow organizationUnitRow
		if err := json.Unmarshal(n.Old, &oldRow); err != nil {
			return err
		}

		c.OrganizationUnits.Remove(oldRow.compositeKey(), oldRow.idKey())
	}

	return nil
}
