// Package cleanup implements the per-kind cascade (C9's second half): once
// a CleanupTask is leased off the workqueue, it computes the affected
// access roles and ids, deletes dependents from every generic collection
// and the distinguished user collection, pulls deleted institutions out of
// OrganizationUnit membership, removes the roles from the IdP and
// UserCache, triggers a full cache reload, and emits a delete event,
// grounded on original_source/crates/customer/src/worker.rs's
// cleanup_customers/cleanup_organizations/cleanup_institutions/
// cleanup_organization_units ordering.
package cleanup

import (
	"context"
	"encoding/json"

	"github.com/lattice-sh/control-plane/common"
	"github.com/lattice-sh/control-plane/common/mopentelemetry"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/casdoor"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/cache/infracache"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/cache/usercache"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/hierarchy"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/services/command"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/workqueue"
	"github.com/lattice-sh/control-plane/pkg/hierarchyctx"
)

// Filter scopes a generic-collection delete to the conjunction of path
// segments named by its non-empty fields, mirroring the doc! path filters
// worker.rs builds per cascade kind (cid only; cid+oid; cid+oid+iid). An
// organization unit's own id lives in the iid slot, not a separate field,
// since original_source/crates/entity/src/ctx.rs never writes one.
type Filter struct {
	CIDs []int64
	OIDs []int64
	IIDs []int64
}

// DocumentStore is the cleanup cascade's generic non-hierarchy collection
// store (spec.md §1 keeps these schemas opaque; the cascade only needs
// enumeration and filtered delete).
type DocumentStore interface {
	Collections(ctx context.Context) ([]string, error)
	DeleteMany(ctx context.Context, collection string, filter Filter) (int64, error)
	DeleteUsers(ctx context.Context, filter Filter) (int64, error)
}

// Reloader triggers a full reload of InfraCache and UserCache and
// broadcasts it to other instances over the pub/sub bus, so every
// process's cache converges after a cascade.
type Reloader interface {
	ReloadAll(ctx context.Context) error
}

// Processor drains the workqueue and runs the per-kind cascade for each
// leased CleanupTask.
type Processor struct {
	Queue        *workqueue.Queue
	Cache        *infracache.Cache
	Users        *usercache.Cache
	Materializer *casdoor.Materializer
	Docs         DocumentStore
	Units        hierarchy.OrganizationUnitRepository
	Reload       Reloader
	Events       command.EventPublisher
}

func (p *Processor) publish(ctx context.Context, e command.Event) {
	if p.Events == nil {
		return
	}

	if err := p.Events.Publish(ctx, e); err != nil {
		common.NewLoggerFromContext(ctx).Errorf("failed to publish %s.%s event: %v", e.Type, e.Event, err)
	}
}

// Process runs the full nine-step cascade for one task. A non-nil error
// leaves the item leased; recovery will retry it, which is safe because
// every step here is idempotent (delete-by-filter, NotFound-tolerant role
// removal, and a reload are all safely repeatable).
func (p *Processor) Process(ctx context.Context, task command.CleanupTask) error {
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "cleanup.process")
	defer span.End()

	switch task.Kind {
	case command.CleanupCustomers:
		return p.cascadeCustomers(ctx, task.IDs)
	case command.CleanupOrganizations:
		return p.cascadeOrganizations(ctx, task.IDs)
	case command.CleanupInstitutions:
		return p.cascadeInstitutions(ctx, task.IDs)
	case command.CleanupOrganizationUnits:
		return p.cascadeOrganizationUnits(ctx, task.IDs)
	default:
		mopentelemetry.HandleSpanError(&span, "unknown cleanup kind", nil)
		return nil
	}
}

// DecodeTask unmarshals a workqueue.Item's payload back into a CleanupTask;
// the counterpart to how command.UseCase enqueues it.
func DecodeTask(item workqueue.Item) (command.CleanupTask, error) {
	var task command.CleanupTask

	err := json.Unmarshal(item.Data, &task)

	return task, err
}

// EncodeTask is the enqueue-side counterpart used by an Enqueuer
// implementation backed by this package's workqueue.Queue.
func EncodeTask(task command.CleanupTask) (workqueue.Item, error) {
	data, err := json.Marshal(task)
	if err != nil {
		return workqueue.Item{}, err
	}

	return workqueue.Item{ID: task.UUID, Data: data}, nil
}

func (p *Processor) cascadeCustomers(ctx context.Context, cids []int64) error {
	roleNames := []string{}

	for _, cid := range cids {
		roleNames = append(roleNames, hierarchyctx.AccessRoleName("customer", refPtr(hierarchyctx.Customer(cid))))
	}

	for _, o := range p.Cache.Organizations.List() {
		if containsInt64(cids, o.CID) {
			roleNames = append(roleNames, hierarchyctx.AccessRoleName("organization", refPtr(o.Context())))
		}
	}

	for _, i := range p.Cache.Institutions.List() {
		if containsInt64(cids, i.CID) {
			roleNames = append(roleNames, hierarchyctx.AccessRoleName("institution", refPtr(i.Context())))
		}
	}

	for _, u := range p.Cache.OrganizationUnits.List() {
		if containsInt64(cids, u.CID) {
			roleNames = append(roleNames, hierarchyctx.AccessRoleName("organization_unit", refPtr(u.Context())))
		}
	}

	filter := Filter{CIDs: cids}

	if err := p.deleteFiltered(ctx, filter); err != nil {
		return err
	}

	if err := p.removeRoles(ctx, roleNames); err != nil {
		return err
	}

	if err := p.Reload.ReloadAll(ctx); err != nil {
		return err
	}

	p.publish(ctx, command.Event{Event: "Delete", Type: "Customer", Object: cids})

	return nil
}

func (p *Processor) cascadeOrganizations(ctx context.Context, oids []int64) error {
	roleNames := []string{}
	cids := []int64{}

	for _, o := range p.Cache.Organizations.List() {
		if containsInt64(oids, o.OID) {
			roleNames = append(roleNames, hierarchyctx.AccessRoleName("organization", refPtr(o.Context())))
			cids = append(cids, o.CID)
		}
	}

	for _, i := range p.Cache.Institutions.List() {
		if containsInt64(oids, i.OID) {
			roleNames = append(roleNames, hierarchyctx.AccessRoleName("institution", refPtr(i.Context())))
		}
	}

	for _, u := range p.Cache.OrganizationUnits.List() {
		if u.OID != nil && containsInt64(oids, *u.OID) {
			roleNames = append(roleNames, hierarchyctx.AccessRoleName("organization_unit", refPtr(u.Context())))
		}
	}

	filter := Filter{CIDs: cids, OIDs: oids}

	if err := p.deleteFiltered(ctx, filter); err != nil {
		return err
	}

	if err := p.removeRoles(ctx, roleNames); err != nil {
		return err
	}

	if err := p.Reload.ReloadAll(ctx); err != nil {
		return err
	}

	p.publish(ctx, command.Event{Event: "Delete", Type: "Organization", Object: oids})

	return nil
}

func (p *Processor) cascadeInstitutions(ctx context.Context, iids []int64) error {
	roleNames := []string{}
	cids, oids := []int64{}, []int64{}

	var refs []hierarchy.InstitutionRef

	for _, i := range p.Cache.Institutions.List() {
		if containsInt64(iids, i.IID) {
			roleNames = append(roleNames, hierarchyctx.AccessRoleName("institution", refPtr(i.Context())))
			refs = append(refs, hierarchy.InstitutionRef{CID: i.CID, OID: i.OID, IID: i.IID})
			cids = append(cids, i.CID)
			oids = append(oids, i.OID)
		}
	}

	filter := Filter{CIDs: cids, OIDs: oids, IIDs: iids}

	if err := p.deleteFiltered(ctx, filter); err != nil {
		return err
	}

	for _, ref := range refs {
		if err := p.Units.RemoveInstitutionFromAllUnits(ctx, ref); err != nil {
			return err
		}
	}

	if err := p.removeRoles(ctx, roleNames); err != nil {
		return err
	}

	if err := p.Reload.ReloadAll(ctx); err != nil {
		return err
	}

	p.publish(ctx, command.Event{Event: "Delete", Type: "Institution", Object: iids})

	return nil
}

func (p *Processor) cascadeOrganizationUnits(ctx context.Context, uids []int64) error {
	roleNames := []string{}
	cids := []int64{}

	for _, u := range p.Cache.OrganizationUnits.List() {
		if containsInt64(uids, u.UID) {
			roleNames = append(roleNames, hierarchyctx.AccessRoleName("organization_unit", refPtr(u.Context())))
			cids = append(cids, u.CID)
		}
	}

	// The unit's own id occupies the iid path segment; no owner.entityId.uid
	// field is ever written.
	filter := Filter{CIDs: cids, IIDs: uids}

	if err := p.deleteFiltered(ctx, filter); err != nil {
		return err
	}

	if err := p.removeRoles(ctx, roleNames); err != nil {
		return err
	}

	if err := p.Reload.ReloadAll(ctx); err != nil {
		return err
	}

	p.publish(ctx, command.Event{Event: "Delete", Type: "OrganizationUnit", Object: uids})

	return nil
}

// deleteFiltered runs steps 2-4: delete matching documents from every known
// non-user collection, then from the distinguished user collection.
func (p *Processor) deleteFiltered(ctx context.Context, filter Filter) error {
	if p.Docs == nil {
		return nil
	}

	collections, err := p.Docs.Collections(ctx)
	if err != nil {
		return err
	}

	for _, collection := range collections {
		if _, err := p.Docs.DeleteMany(ctx, collection, filter); err != nil {
			return err
		}
	}

	if _, err := p.Docs.DeleteUsers(ctx, filter); err != nil {
		return err
	}

	return nil
}

// removeRoles runs step 6: drop each role from the IdP, tolerating
// NotFound, then drop it from the local UserCache (which rewrites every
// user referencing it).
func (p *Processor) removeRoles(ctx context.Context, roleNames []string) error {
	if p.Materializer != nil {
		if err := p.Materializer.RemoveRoles(ctx, roleNames); err != nil {
			return err
		}
	}

	for _, name := range roleNames {
		if role, ok := p.Users.RoleByName(name); ok {
			p.Users.RemoveRole(role.ID)
		}
	}

	return nil
}

func refPtr(c hierarchyctx.Context) *hierarchyctx.Context { return &c }

func containsInt64(haystack []int64, needle int64) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}

	return false
}
