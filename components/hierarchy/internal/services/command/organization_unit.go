package command

import (
	"context"

	"github.com/lattice-sh/control-plane/common"
	"github.com/lattice-sh/control-plane/common/mopentelemetry"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/hierarchy"
	"github.com/lattice-sh/control-plane/pkg/errs"
	"github.com/lattice-sh/control-plane/pkg/hierarchyctx"
)

const organizationUnitResource = "organization_unit"

// CreateOrganizationUnit runs the canonical create path. The parent check
// branches on whether the unit hangs off a Customer (OID nil) or an
// Organization (OID set).
func (uc *UseCase) CreateOrganizationUnit(ctx context.Context, in hierarchy.CreateOrganizationUnitInput) (hierarchy.OrganizationUnit, error) {
	logger := common.NewLoggerFromContext(ctx)
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.create_organization_unit")
	defer span.End()

	if _, ok := uc.Cache.Customers.ByID(formatID(in.CID)); !ok {
		return hierarchy.OrganizationUnit{}, errs.NotFoundError{EntityType: customerResource, ID: formatID(in.CID)}
	}

	oid := ""
	if in.OID != nil {
		if _, ok := uc.Cache.Organizations.ByID(formatID(*in.OID)); !ok {
			return hierarchy.OrganizationUnit{}, errs.NotFoundError{EntityType: organizationResource, ID: formatID(*in.OID)}
		}

		oid = formatID(*in.OID)
	}

	compositeKey := in.Name + "\x00" + formatID(in.CID) + "\x00" + oid
	key := lockKey(organizationUnitResource, compositeKey)

	handle, err := uc.Lock.Lock(ctx, key, lockTTL, lockRetries, lockBackoff)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to acquire organization unit lock", err)
		return hierarchy.OrganizationUnit{}, err
	}

	defer func() {
		if unlockErr := uc.Lock.Unlock(ctx, handle); unlockErr != nil {
			logger.Errorf("failed to release organization unit lock %q: %v", key, unlockErr)
		}
	}()

	if existing, ok := uc.Cache.OrganizationUnits.ByKey(compositeKey); ok {
		return existing, errs.NameConflictError{EntityType: organizationUnitResource, Name: in.Name}
	}

	created, err := uc.OrganizationUnitRepo.Create(ctx, in)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to create organization unit", err)
		return hierarchy.OrganizationUnit{}, errs.StoreFailureError{Store: "postgres", Message: "create organization unit", Err: err}
	}

	roleName := hierarchyctx.AccessRoleName(organizationUnitResource, ptrContext(created.Context()))

	if uc.Materializer != nil {
		roles, err := uc.Materializer.EnsureRoles(ctx, []string{roleName})
		if err != nil {
			mopentelemetry.HandleSpanError(&span, "failed to materialize organization unit access role", err)
			return hierarchy.OrganizationUnit{}, err
		}

		if role, ok := roles[roleName]; ok {
			uc.Users.InsertRole(roleFromCasdoor(role))
		}
	}

	uc.Cache.OrganizationUnits.Insert(created)

	uc.publish(ctx, Event{Event: "Create", Type: "OrganizationUnit", Object: created})

	return created, nil
}

// UpdateOrganizationUnit applies a rename.
func (uc *UseCase) UpdateOrganizationUnit(ctx context.Context, uid int64, in hierarchy.UpdateOrganizationUnitInput) (hierarchy.OrganizationUnit, error) {
	logger := common.NewLoggerFromContext(ctx)
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.update_organization_unit")
	defer span.End()

	current, ok := uc.Cache.OrganizationUnits.ByID(formatID(uid))
	if !ok {
		return hierarchy.OrganizationUnit{}, errs.NotFoundError{EntityType: organizationUnitResource, ID: formatID(uid)}
	}

	key := lockKey(organizationUnitResource, current.CompositeKey())

	handle, err := uc.Lock.Lock(ctx, key, lockTTL, lockRetries, lockBackoff)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to acquire organization unit lock", err)
		return hierarchy.OrganizationUnit{}, err
	}

	defer func() {
		if unlockErr := uc.Lock.Unlock(ctx, handle); unlockErr != nil {
			logger.Errorf("failed to release organization unit lock %q: %v", key, unlockErr)
		}
	}()

	oldKey := current.CompositeKey()

	updated, err := uc.OrganizationUnitRepo.Update(ctx, uid, in)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to update organization unit", err)
		return hierarchy.OrganizationUnit{}, errs.StoreFailureError{Store: "postgres", Message: "update organization unit", Err: err}
	}

	// change-feed payloads never carry Members, so the store's update
	// handler grafts them back on; here we hold the repo's source of truth
	// and must do the same before indexing the cache copy.
	updated.Members = current.Members

	uc.Cache.OrganizationUnits.Update(updated, oldKey, formatID(uid))

	uc.publish(ctx, Event{Event: "Update", Type: "OrganizationUnit", Object: updated})

	return updated, nil
}

// DeleteOrganizationUnit deletes the given organization units and enqueues
// the cascading cleanup when any rows were removed.
func (uc *UseCase) DeleteOrganizationUnit(ctx context.Context, uids []int64) (int64, error) {
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.delete_organization_unit")
	defer span.End()

	deleted, err := uc.OrganizationUnitRepo.Delete(ctx, uids)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to delete organization units", err)
		return 0, errs.StoreFailureError{Store: "postgres", Message: "delete organization units", Err: err}
	}

	if deleted > 0 {
		if err := uc.Workqueue.Enqueue(ctx, CleanupTask{UUID: newTaskID(), Kind: CleanupOrganizationUnits, IDs: uids}); err != nil {
			mopentelemetry.HandleSpanError(&span, "failed to enqueue organization unit cleanup", err)
			return deleted, errs.StoreFailureError{Store: "workqueue", Message: "enqueue organization unit cleanup", Err: err}
		}
	}

	return deleted, nil
}

// AddMember attaches an Institution to an OrganizationUnit's member set,
// rejecting refs that don't share the unit's customer (and organization,
// when the unit is organization-scoped).
func (uc *UseCase) AddMember(ctx context.Context, uid int64, ref hierarchy.InstitutionRef) (hierarchy.OrganizationUnit, error) {
	logger := common.NewLoggerFromContext(ctx)
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.add_organization_unit_member")
	defer span.End()

	current, ok := uc.Cache.OrganizationUnits.ByID(formatID(uid))
	if !ok {
		return hierarchy.OrganizationUnit{}, errs.NotFoundError{EntityType: organizationUnitResource, ID: formatID(uid)}
	}

	if !current.ValidMember(ref) {
		return hierarchy.OrganizationUnit{}, errs.BadRequestError{Field: "institution", Message: "institution does not share this unit's customer/organization scope"}
	}

	if _, ok := uc.Cache.Institutions.ByID(formatID(ref.IID)); !ok {
		return hierarchy.OrganizationUnit{}, errs.NotFoundError{EntityType: institutionResource, ID: formatID(ref.IID)}
	}

	key := lockKey(organizationUnitResource, current.CompositeKey())

	handle, err := uc.Lock.Lock(ctx, key, lockTTL, lockRetries, lockBackoff)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to acquire organization unit lock", err)
		return hierarchy.OrganizationUnit{}, err
	}

	defer func() {
		if unlockErr := uc.Lock.Unlock(ctx, handle); unlockErr != nil {
			logger.Errorf("failed to release organization unit lock %q: %v", key, unlockErr)
		}
	}()

	if err := uc.OrganizationUnitRepo.AddMember(ctx, uid, ref); err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to add organization unit member", err)
		return hierarchy.OrganizationUnit{}, errs.StoreFailureError{Store: "postgres", Message: "add organization unit member", Err: err}
	}

	current.Members = append(append([]hierarchy.InstitutionRef{}, current.Members...), ref)
	uc.Cache.OrganizationUnits.Update(current, current.CompositeKey(), formatID(uid))

	uc.publish(ctx, Event{Event: "Update", Type: "OrganizationUnit", Object: current})

	return current, nil
}

// RemoveMember detaches an Institution from an OrganizationUnit's member
// set. Removing a ref that isn't a member is a no-op.
func (uc *UseCase) RemoveMember(ctx context.Context, uid int64, ref hierarchy.InstitutionRef) (hierarchy.OrganizationUnit, error) {
	logger := common.NewLoggerFromContext(ctx)
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.remove_organization_unit_member")
	defer span.End()

	current, ok := uc.Cache.OrganizationUnits.ByID(formatID(uid))
	if !ok {
		return hierarchy.OrganizationUnit{}, errs.NotFoundError{EntityType: organizationUnitResource, ID: formatID(uid)}
	}

	key := lockKey(organizationUnitResource, current.CompositeKey())

	handle, err := uc.Lock.Lock(ctx, key, lockTTL, lockRetries, lockBackoff)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to acquire organization unit lock", err)
		return hierarchy.OrganizationUnit{}, err
	}

	defer func() {
		if unlockErr := uc.Lock.Unlock(ctx, handle); unlockErr != nil {
			logger.Errorf("failed to release organization unit lock %q: %v", key, unlockErr)
		}
	}()

	if err := uc.OrganizationUnitRepo.RemoveMember(ctx, uid, ref); err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to remove organization unit member", err)
		return hierarchy.OrganizationUnit{}, errs.StoreFailureError{Store: "postgres", Message: "remove organization unit member", Err: err}
	}

	remaining := make([]hierarchy.InstitutionRef, 0, len(current.Members))

	for _, m := range current.Members {
		if m != ref {
			remaining = append(remaining, m)
		}
	}

	current.Members = remaining
	uc.Cache.OrganizationUnits.Update(current, current.CompositeKey(), formatID(uid))

	uc.publish(ctx, Event{Event: "Update", Type: "OrganizationUnit", Object: current})

	return current, nil
}
