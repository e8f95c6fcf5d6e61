package command

import (
	"context"

	"github.com/lattice-sh/control-plane/common"
	"github.com/lattice-sh/control-plane/common/mopentelemetry"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/hierarchy"
	"github.com/lattice-sh/control-plane/pkg/errs"
	"github.com/lattice-sh/control-plane/pkg/hierarchyctx"
)

const customerResource = "customer"

// CreateCustomer runs the canonical 8-step create path for the root of the
// hierarchy (spec.md §4.8).
func (uc *UseCase) CreateCustomer(ctx context.Context, in hierarchy.CreateCustomerInput) (hierarchy.Customer, error) {
	logger := common.NewLoggerFromContext(ctx)
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.create_customer")
	defer span.End()

	logger.Infof("creating customer %q", in.Name)

	key := lockKey(customerResource, in.Name)

	handle, err := uc.Lock.Lock(ctx, key, lockTTL, lockRetries, lockBackoff)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to acquire customer lock", err)
		return hierarchy.Customer{}, err
	}

	defer func() {
		if unlockErr := uc.Lock.Unlock(ctx, handle); unlockErr != nil {
			logger.Errorf("failed to release customer lock %q: %v", key, unlockErr)
		}
	}()

	if existing, ok := uc.Cache.Customers.ByKey(in.Name); ok {
		return existing, errs.NameConflictError{EntityType: customerResource, Name: in.Name}
	}

	created, err := uc.CustomerRepo.Create(ctx, in)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to create customer", err)
		return hierarchy.Customer{}, errs.StoreFailureError{Store: "postgres", Message: "create customer", Err: err}
	}

	roleName := hierarchyctx.AccessRoleName(customerResource, ptrContext(created.Context()))

	if uc.Materializer != nil {
		roles, err := uc.Materializer.EnsureRoles(ctx, []string{roleName})
		if err != nil {
			mopentelemetry.HandleSpanError(&span, "failed to materialize customer access role", err)
			return hierarchy.Customer{}, err
		}

		if role, ok := roles[roleName]; ok {
			uc.Users.InsertRole(roleFromCasdoor(role))
		}
	}

	uc.Cache.Customers.Insert(created)

	uc.publish(ctx, Event{Event: "Create", Type: "Customer", Object: created})

	return created, nil
}

// UpdateCustomer applies a rename/retype, keeping the cache's by-key index
// consistent with the new name.
func (uc *UseCase) UpdateCustomer(ctx context.Context, cid int64, in hierarchy.UpdateCustomerInput) (hierarchy.Customer, error) {
	logger := common.NewLoggerFromContext(ctx)
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.update_customer")
	defer span.End()

	current, ok := uc.Cache.Customers.ByID(formatID(cid))
	if !ok {
		return hierarchy.Customer{}, errs.NotFoundError{EntityType: customerResource, ID: formatID(cid)}
	}

	key := lockKey(customerResource, current.Name)

	handle, err := uc.Lock.Lock(ctx, key, lockTTL, lockRetries, lockBackoff)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to acquire customer lock", err)
		return hierarchy.Customer{}, err
	}

	defer func() {
		if unlockErr := uc.Lock.Unlock(ctx, handle); unlockErr != nil {
			logger.Errorf("failed to release customer lock %q: %v", key, unlockErr)
		}
	}()

	oldKey := current.CompositeKey()

	updated, err := uc.CustomerRepo.Update(ctx, cid, in)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to update customer", err)
		return hierarchy.Customer{}, errs.StoreFailureError{Store: "postgres", Message: "update customer", Err: err}
	}

	uc.Cache.Customers.Update(updated, oldKey, formatID(cid))

	uc.publish(ctx, Event{Event: "Update", Type: "Customer", Object: updated})

	return updated, nil
}

// DeleteCustomer deletes the given customers and, if any rows were
// removed, enqueues the cascading cleanup.
func (uc *UseCase) DeleteCustomer(ctx context.Context, cids []int64) (int64, error) {
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.delete_customer")
	defer span.End()

	deleted, err := uc.CustomerRepo.Delete(ctx, cids)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to delete customers", err)
		return 0, errs.StoreFailureError{Store: "postgres", Message: "delete customers", Err: err}
	}

	if deleted > 0 {
		if err := uc.Workqueue.Enqueue(ctx, CleanupTask{UUID: newTaskID(), Kind: CleanupCustomers, IDs: cids}); err != nil {
			mopentelemetry.HandleSpanError(&span, "failed to enqueue customer cleanup", err)
			return deleted, errs.StoreFailureError{Store: "workqueue", Message: "enqueue customer cleanup", Err: err}
		}
	}

	return deleted, nil
}
