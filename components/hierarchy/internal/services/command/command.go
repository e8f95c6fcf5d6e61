// Package command implements the Mutation Pipeline (C8): lock acquisition,
// existence check, relational write, IdP role materialization, cache
// application, and event emission, structured the way
// components/ledger/internal/services/command's UseCase wires its
// repositories — one exported method per operation, otel spans per step,
// structured logger calls throughout.
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/lattice-sh/control-plane/common"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/casdoor"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/lock"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/cache/infracache"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/cache/usercache"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/hierarchy"
)

// Locker is the named-mutex contract the mutation pipeline depends on;
// *lock.Locker satisfies it. Accepting the interface rather than the
// concrete adapter keeps this package testable against a fake.
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration, retries int, backoff time.Duration) (lock.Handle, error)
	Unlock(ctx context.Context, h lock.Handle) error
}

// lockTTL, lockRetries, and lockBackoff are the acquisition discipline
// spec.md §4.8 fixes for every mutation: 5s ttl, 20 retries, 250ms backoff.
const (
	lockTTL     = 5000 * time.Millisecond
	lockRetries = 20
	lockBackoff = 250 * time.Millisecond
)

// Event is a typed mutation notification published on the event bus.
type Event struct {
	Event  string // "Create" | "Update" | "Delete" | "Link"
	Type   string // namespace: "Customer" | "Organization" | "Institution" | "OrganizationUnit"
	Object any
}

// EventPublisher is the optional event-bus producer; a nil EventPublisher
// on UseCase disables event emission entirely (spec.md §6 "Optional").
type EventPublisher interface {
	Publish(ctx context.Context, e Event) error
}

// CleanupKind names which collection a cleanup cascade targets.
type CleanupKind string

const (
	CleanupCustomers         CleanupKind = "Customers"
	CleanupOrganizations     CleanupKind = "Organizations"
	CleanupInstitutions      CleanupKind = "Institutions"
	CleanupOrganizationUnits CleanupKind = "OrganizationUnits"
)

// CleanupTask is the payload the delete path enqueues onto the workqueue
// when rows were actually deleted.
type CleanupTask struct {
	UUID string
	Kind CleanupKind
	IDs  []int64
}

// Enqueuer is the workqueue's producer side.
type Enqueuer interface {
	Enqueue(ctx context.Context, task CleanupTask) error
}

// UseCase orchestrates the mutation pipeline across every hierarchy
// entity. Materializer and Events may be nil, which skips role
// materialization and event emission; Workqueue must not be, since every
// delete path depends on it.
type UseCase struct {
	CustomerRepo         hierarchy.CustomerRepository
	OrganizationRepo     hierarchy.OrganizationRepository
	InstitutionRepo      hierarchy.InstitutionRepository
	OrganizationUnitRepo hierarchy.OrganizationUnitRepository

	Lock         Locker
	Cache        *infracache.Cache
	Users        *usercache.Cache
	Materializer *casdoor.Materializer
	Events       EventPublisher
	Workqueue    Enqueuer
}

func lockKey(kind, name string) string {
	return fmt.Sprintf("v1_%s_lock_%s", kind, name)
}

func (uc *UseCase) publish(ctx context.Context, e Event) {
	if uc.Events == nil {
		return
	}

	if err := uc.Events.Publish(ctx, e); err != nil {
		common.NewLoggerFromContext(ctx).Errorf("failed to publish %s.%s event: %v", e.Type, e.Event, err)
	}
}
