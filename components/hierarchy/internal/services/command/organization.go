package command

import (
	"context"

	"github.com/lattice-sh/control-plane/common"
	"github.com/lattice-sh/control-plane/common/mopentelemetry"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/hierarchy"
	"github.com/lattice-sh/control-plane/pkg/errs"
	"github.com/lattice-sh/control-plane/pkg/hierarchyctx"
)

const organizationResource = "organization"

// CreateOrganization runs the canonical create path, analogous to
// CreateCustomer but with a parent-existence check against the cache.
func (uc *UseCase) CreateOrganization(ctx context.Context, in hierarchy.CreateOrganizationInput) (hierarchy.Organization, error) {
	logger := common.NewLoggerFromContext(ctx)
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.create_organization")
	defer span.End()

	if _, ok := uc.Cache.Customers.ByID(formatID(in.CID)); !ok {
		return hierarchy.Organization{}, errs.NotFoundError{EntityType: customerResource, ID: formatID(in.CID)}
	}

	compositeKey := in.Name + "\x00" + formatID(in.CID)
	key := lockKey(organizationResource, compositeKey)

	handle, err := uc.Lock.Lock(ctx, key, lockTTL, lockRetries, lockBackoff)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to acquire organization lock", err)
		return hierarchy.Organization{}, err
	}

	defer func() {
		if unlockErr := uc.Lock.Unlock(ctx, handle); unlockErr != nil {
			logger.Errorf("failed to release organization lock %q: %v", key, unlockErr)
		}
	}()

	if existing, ok := uc.Cache.Organizations.ByKey(compositeKey); ok {
		return existing, errs.NameConflictError{EntityType: organizationResource, Name: in.Name}
	}

	created, err := uc.OrganizationRepo.Create(ctx, in)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to create organization", err)
		return hierarchy.Organization{}, errs.StoreFailureError{Store: "postgres", Message: "create organization", Err: err}
	}

	roleName := hierarchyctx.AccessRoleName(organizationResource, ptrContext(created.Context()))

	if uc.Materializer != nil {
		roles, err := uc.Materializer.EnsureRoles(ctx, []string{roleName})
		if err != nil {
			mopentelemetry.HandleSpanError(&span, "failed to materialize organization access role", err)
			return hierarchy.Organization{}, err
		}

		if role, ok := roles[roleName]; ok {
			uc.Users.InsertRole(roleFromCasdoor(role))
		}
	}

	uc.Cache.Organizations.Insert(created)

	uc.publish(ctx, Event{Event: "Create", Type: "Organization", Object: created})

	return created, nil
}

// UpdateOrganization applies a rename/retype.
func (uc *UseCase) UpdateOrganization(ctx context.Context, oid int64, in hierarchy.UpdateOrganizationInput) (hierarchy.Organization, error) {
	logger := common.NewLoggerFromContext(ctx)
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.update_organization")
	defer span.End()

	current, ok := uc.Cache.Organizations.ByID(formatID(oid))
	if !ok {
		return hierarchy.Organization{}, errs.NotFoundError{EntityType: organizationResource, ID: formatID(oid)}
	}

	key := lockKey(organizationResource, current.CompositeKey())

	handle, err := uc.Lock.Lock(ctx, key, lockTTL, lockRetries, lockBackoff)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to acquire organization lock", err)
		return hierarchy.Organization{}, err
	}

	defer func() {
		if unlockErr := uc.Lock.Unlock(ctx, handle); unlockErr != nil {
			logger.Errorf("failed to release organization lock %q: %v", key, unlockErr)
		}
	}()

	oldKey := current.CompositeKey()

	updated, err := uc.OrganizationRepo.Update(ctx, oid, in)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to update organization", err)
		return hierarchy.Organization{}, errs.StoreFailureError{Store: "postgres", Message: "update organization", Err: err}
	}

	uc.Cache.Organizations.Update(updated, oldKey, formatID(oid))

	uc.publish(ctx, Event{Event: "Update", Type: "Organization", Object: updated})

	return updated, nil
}

// DeleteOrganization deletes the given organizations and enqueues the
// cascading cleanup when any rows were removed.
func (uc *UseCase) DeleteOrganization(ctx context.Context, oids []int64) (int64, error) {
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.delete_organization")
	defer span.End()

	deleted, err := uc.OrganizationRepo.Delete(ctx, oids)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to delete organizations", err)
		return 0, errs.StoreFailureError{Store: "postgres", Message: "delete organizations", Err: err}
	}

	if deleted > 0 {
		if err := uc.Workqueue.Enqueue(ctx, CleanupTask{UUID: newTaskID(), Kind: CleanupOrganizations, IDs: oids}); err != nil {
			mopentelemetry.HandleSpanError(&span, "failed to enqueue organization cleanup", err)
			return deleted, errs.StoreFailureError{Store: "workqueue", Message: "enqueue organization cleanup", Err: err}
		}
	}

	return deleted, nil
}
