package command

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/lock"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/cache/infracache"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/cache/usercache"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/hierarchy"
	mock "github.com/lattice-sh/control-plane/components/hierarchy/internal/gen/mock/hierarchy"
	"github.com/lattice-sh/control-plane/pkg/errs"
)

// fakeLocker grants a free key immediately and refuses one that is already
// held (or every key when failLock is set); it exists so the mutation
// pipeline can be exercised without a real Redis instance.
type fakeLocker struct {
	mu       sync.Mutex
	held     map[string]bool
	failLock bool
}

func newFakeLocker() *fakeLocker { return &fakeLocker{held: map[string]bool{}} }

func (f *fakeLocker) Lock(_ context.Context, key string, _ time.Duration, _ int, _ time.Duration) (lock.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failLock {
		return lock.Handle{}, errs.LockUnavailableError{Key: key}
	}

	if f.held[key] {
		return lock.Handle{}, errs.LockUnavailableError{Key: key}
	}

	f.held[key] = true

	return lock.Handle{Key: key, OwnerID: "fake"}, nil
}

func (f *fakeLocker) Unlock(_ context.Context, h lock.Handle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.held, h.Key)

	return nil
}

// fakeEnqueuer records every enqueued cleanup task.
type fakeEnqueuer struct {
	tasks []CleanupTask
}

func (f *fakeEnqueuer) Enqueue(_ context.Context, task CleanupTask) error {
	f.tasks = append(f.tasks, task)
	return nil
}

// fakePublisher records every published event.
type fakePublisher struct {
	events []Event
}

func (f *fakePublisher) Publish(_ context.Context, e Event) error {
	f.events = append(f.events, e)
	return nil
}

func newTestUseCase(t *testing.T) (*UseCase, *mock.MockCustomerRepository, *mock.MockOrganizationRepository, *mock.MockInstitutionRepository, *mock.MockOrganizationUnitRepository, *fakeEnqueuer, *fakePublisher) {
	ctrl := gomock.NewController(t)

	customers := mock.NewMockCustomerRepository(ctrl)
	organizations := mock.NewMockOrganizationRepository(ctrl)
	institutions := mock.NewMockInstitutionRepository(ctrl)
	units := mock.NewMockOrganizationUnitRepository(ctrl)
	enqueuer := &fakeEnqueuer{}
	publisher := &fakePublisher{}

	uc := &UseCase{
		CustomerRepo:         customers,
		OrganizationRepo:     organizations,
		InstitutionRepo:      institutions,
		OrganizationUnitRepo: units,
		Lock:                 newFakeLocker(),
		Cache:                infracache.New(),
		Users:                usercache.New(),
		Materializer:         nil,
		Events:               publisher,
		Workqueue:            enqueuer,
	}

	return uc, customers, organizations, institutions, units, enqueuer, publisher
}

func TestCreateCustomerSucceeds(t *testing.T) {
	uc, customers, _, _, _, _, publisher := newTestUseCase(t)

	in := hierarchy.CreateCustomerInput{Name: "acme", CreatedBy: "tester"}
	want := hierarchy.Customer{CID: 1, Name: "acme"}

	customers.EXPECT().Create(gomock.Any(), in).Return(want, nil)

	got, err := uc.CreateCustomer(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Len(t, publisher.events, 1)
	assert.Equal(t, "Create", publisher.events[0].Event)

	_, ok := uc.Cache.Customers.ByKey("acme")
	assert.True(t, ok)
}

func TestCreateCustomerNameConflict(t *testing.T) {
	uc, _, _, _, _, _, _ := newTestUseCase(t)

	existing := hierarchy.Customer{CID: 1, Name: "acme"}
	uc.Cache.Customers.Insert(existing)

	_, err := uc.CreateCustomer(context.Background(), hierarchy.CreateCustomerInput{Name: "acme"})
	require.Error(t, err)
	assert.IsType(t, errs.NameConflictError{}, err)
}

func TestCreateOrganizationRequiresExistingCustomer(t *testing.T) {
	uc, _, _, _, _, _, _ := newTestUseCase(t)

	_, err := uc.CreateOrganization(context.Background(), hierarchy.CreateOrganizationInput{CID: 99, Name: "org"})
	require.Error(t, err)
	assert.IsType(t, errs.NotFoundError{}, err)
}

func TestCreateOrganizationSucceeds(t *testing.T) {
	uc, _, organizations, _, _, _, _ := newTestUseCase(t)

	uc.Cache.Customers.Insert(hierarchy.Customer{CID: 1, Name: "acme"})

	in := hierarchy.CreateOrganizationInput{CID: 1, Name: "org"}
	want := hierarchy.Organization{OID: 1, CID: 1, Name: "org"}

	organizations.EXPECT().Create(gomock.Any(), in).Return(want, nil)

	got, err := uc.CreateOrganization(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestUpdateCustomerNotFound(t *testing.T) {
	uc, _, _, _, _, _, _ := newTestUseCase(t)

	_, err := uc.UpdateCustomer(context.Background(), 42, hierarchy.UpdateCustomerInput{})
	require.Error(t, err)
	assert.IsType(t, errs.NotFoundError{}, err)
}

func TestDeleteCustomerEnqueuesCleanupOnlyWhenRowsRemoved(t *testing.T) {
	uc, customers, _, _, _, enqueuer, _ := newTestUseCase(t)

	customers.EXPECT().Delete(gomock.Any(), []int64{1, 2}).Return(int64(2), nil)

	deleted, err := uc.DeleteCustomer(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	require.Len(t, enqueuer.tasks, 1)
	assert.Equal(t, CleanupCustomers, enqueuer.tasks[0].Kind)

	customers.EXPECT().Delete(gomock.Any(), []int64{3}).Return(int64(0), nil)

	deleted, err = uc.DeleteCustomer(context.Background(), []int64{3})
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
	assert.Len(t, enqueuer.tasks, 1)
}

func TestCreateOrganizationUnitCustomerScoped(t *testing.T) {
	uc, _, _, _, units, _, _ := newTestUseCase(t)

	uc.Cache.Customers.Insert(hierarchy.Customer{CID: 1, Name: "acme"})

	in := hierarchy.CreateOrganizationUnitInput{CID: 1, Name: "unit"}
	want := hierarchy.OrganizationUnit{UID: 1, CID: 1, Name: "unit"}

	units.EXPECT().Create(gomock.Any(), in).Return(want, nil)

	got, err := uc.CreateOrganizationUnit(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCreateOrganizationUnitOrgScopedRequiresOrganization(t *testing.T) {
	uc, _, _, _, _, _, _ := newTestUseCase(t)

	uc.Cache.Customers.Insert(hierarchy.Customer{CID: 1, Name: "acme"})

	oid := int64(7)
	_, err := uc.CreateOrganizationUnit(context.Background(), hierarchy.CreateOrganizationUnitInput{CID: 1, OID: &oid, Name: "unit"})
	require.Error(t, err)
	assert.IsType(t, errs.NotFoundError{}, err)
}

func TestAddMemberRejectsMismatchedScope(t *testing.T) {
	uc, _, _, _, _, _, _ := newTestUseCase(t)

	unit := hierarchy.OrganizationUnit{UID: 1, CID: 1, Name: "unit"}
	uc.Cache.OrganizationUnits.Insert(unit)

	_, err := uc.AddMember(context.Background(), 1, hierarchy.InstitutionRef{CID: 2, OID: 9, IID: 5})
	require.Error(t, err)
	assert.IsType(t, errs.BadRequestError{}, err)
}

func TestAddMemberSucceeds(t *testing.T) {
	uc, _, _, _, units, _, _ := newTestUseCase(t)

	unit := hierarchy.OrganizationUnit{UID: 1, CID: 1, Name: "unit"}
	uc.Cache.OrganizationUnits.Insert(unit)
	uc.Cache.Institutions.Insert(hierarchy.Institution{IID: 5, CID: 1, OID: 9, Name: "inst"})

	ref := hierarchy.InstitutionRef{CID: 1, OID: 9, IID: 5}

	units.EXPECT().AddMember(gomock.Any(), int64(1), ref).Return(nil)

	got, err := uc.AddMember(context.Background(), 1, ref)
	require.NoError(t, err)
	assert.Contains(t, got.Members, ref)

	cached, ok := uc.Cache.OrganizationUnits.ByID("1")
	require.True(t, ok)
	assert.Contains(t, cached.Members, ref)
}

func TestUpdateOrganizationUnitPreservesMembers(t *testing.T) {
	uc, _, _, _, units, _, _ := newTestUseCase(t)

	ref := hierarchy.InstitutionRef{CID: 1, IID: 5}
	existing := hierarchy.OrganizationUnit{UID: 1, CID: 1, Name: "unit", Members: []hierarchy.InstitutionRef{ref}}
	uc.Cache.OrganizationUnits.Insert(existing)

	renamed := hierarchy.OrganizationUnit{UID: 1, CID: 1, Name: "unit-renamed"}

	units.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).Return(renamed, nil)

	got, err := uc.UpdateOrganizationUnit(context.Background(), 1, hierarchy.UpdateOrganizationUnitInput{})
	require.NoError(t, err)
	assert.Equal(t, []hierarchy.InstitutionRef{ref}, got.Members)
}
