package command

import (
	"context"

	"github.com/lattice-sh/control-plane/common"
	"github.com/lattice-sh/control-plane/common/mopentelemetry"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/hierarchy"
	"github.com/lattice-sh/control-plane/pkg/errs"
	"github.com/lattice-sh/control-plane/pkg/hierarchyctx"
)

const institutionResource = "institution"

// CreateInstitution runs the canonical create path, checking the parent
// organization exists before acquiring the lock.
func (uc *UseCase) CreateInstitution(ctx context.Context, in hierarchy.CreateInstitutionInput) (hierarchy.Institution, error) {
	logger := common.NewLoggerFromContext(ctx)
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.create_institution")
	defer span.End()

	if _, ok := uc.Cache.Organizations.ByID(formatID(in.OID)); !ok {
		return hierarchy.Institution{}, errs.NotFoundError{EntityType: organizationResource, ID: formatID(in.OID)}
	}

	compositeKey := in.Name + "\x00" + formatID(in.CID) + "\x00" + formatID(in.OID)
	key := lockKey(institutionResource, compositeKey)

	handle, err := uc.Lock.Lock(ctx, key, lockTTL, lockRetries, lockBackoff)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to acquire institution lock", err)
		return hierarchy.Institution{}, err
	}

	defer func() {
		if unlockErr := uc.Lock.Unlock(ctx, handle); unlockErr != nil {
			logger.Errorf("failed to release institution lock %q: %v", key, unlockErr)
		}
	}()

	if existing, ok := uc.Cache.Institutions.ByKey(compositeKey); ok {
		return existing, errs.NameConflictError{EntityType: institutionResource, Name: in.Name}
	}

	created, err := uc.InstitutionRepo.Create(ctx, in)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to create institution", err)
		return hierarchy.Institution{}, errs.StoreFailureError{Store: "postgres", Message: "create institution", Err: err}
	}

	roleName := hierarchyctx.AccessRoleName(institutionResource, ptrContext(created.Context()))

	if uc.Materializer != nil {
		roles, err := uc.Materializer.EnsureRoles(ctx, []string{roleName})
		if err != nil {
			mopentelemetry.HandleSpanError(&span, "failed to materialize institution access role", err)
			return hierarchy.Institution{}, err
		}

		if role, ok := roles[roleName]; ok {
			uc.Users.InsertRole(roleFromCasdoor(role))
		}
	}

	uc.Cache.Institutions.Insert(created)

	uc.publish(ctx, Event{Event: "Create", Type: "Institution", Object: created})

	return created, nil
}

// UpdateInstitution applies a rename/retype.
func (uc *UseCase) UpdateInstitution(ctx context.Context, iid int64, in hierarchy.UpdateInstitutionInput) (hierarchy.Institution, error) {
	logger := common.NewLoggerFromContext(ctx)
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.update_institution")
	defer span.End()

	current, ok := uc.Cache.Institutions.ByID(formatID(iid))
	if !ok {
		return hierarchy.Institution{}, errs.NotFoundError{EntityType: institutionResource, ID: formatID(iid)}
	}

	key := lockKey(institutionResource, current.CompositeKey())

	handle, err := uc.Lock.Lock(ctx, key, lockTTL, lockRetries, lockBackoff)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to acquire institution lock", err)
		return hierarchy.Institution{}, err
	}

	defer func() {
		if unlockErr := uc.Lock.Unlock(ctx, handle); unlockErr != nil {
			logger.Errorf("failed to release institution lock %q: %v", key, unlockErr)
		}
	}()

	oldKey := current.CompositeKey()

	updated, err := uc.InstitutionRepo.Update(ctx, iid, in)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to update institution", err)
		return hierarchy.Institution{}, errs.StoreFailureError{Store: "postgres", Message: "update institution", Err: err}
	}

	uc.Cache.Institutions.Update(updated, oldKey, formatID(iid))

	uc.publish(ctx, Event{Event: "Update", Type: "Institution", Object: updated})

	return updated, nil
}

// DeleteInstitution deletes the given institutions and enqueues the
// cascading cleanup when any rows were removed. It does not touch
// OrganizationUnit.Members itself: the cleanup cascade pulls the deleted
// institutions out of unit membership in the store (spec.md §4.9 step 5),
// and the cache copy follows on the reload that cascade triggers.
func (uc *UseCase) DeleteInstitution(ctx context.Context, iids []int64) (int64, error) {
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.delete_institution")
	defer span.End()

	deleted, err := uc.InstitutionRepo.Delete(ctx, iids)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to delete institutions", err)
		return 0, errs.StoreFailureError{Store: "postgres", Message: "delete institutions", Err: err}
	}

	if deleted > 0 {
		if err := uc.Workqueue.Enqueue(ctx, CleanupTask{UUID: newTaskID(), Kind: CleanupInstitutions, IDs: iids}); err != nil {
			mopentelemetry.HandleSpanError(&span, "failed to enqueue institution cleanup", err)
			return deleted, errs.StoreFailureError{Store: "workqueue", Message: "enqueue institution cleanup", Err: err}
		}
	}

	return deleted, nil
}
