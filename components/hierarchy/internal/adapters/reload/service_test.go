package reload

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-sh/control-plane/common/mlog"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/adapters/keycloakdb"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/cache/infracache"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/cache/usercache"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/hierarchy"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/identity"
)

type fakeCustomerRepo struct{ rows []hierarchy.Customer }

func (f *fakeCustomerRepo) Create(context.Context, hierarchy.CreateCustomerInput) (hierarchy.Customer, error) {
	return hierarchy.Customer{}, nil
}
func (f *fakeCustomerRepo) Update(context.Context, int64, hierarchy.UpdateCustomerInput) (hierarchy.Customer, error) {
	return hierarchy.Customer{}, nil
}
func (f *fakeCustomerRepo) Delete(context.Context, []int64) (int64, error) { return 0, nil }
func (f *fakeCustomerRepo) FindAll(context.Context) ([]hierarchy.Customer, error) {
	return f.rows, nil
}

type fakeOrganizationRepo struct{}

func (f *fakeOrganizationRepo) Create(context.Context, hierarchy.CreateOrganizationInput) (hierarchy.Organization, error) {
	return hierarchy.Organization{}, nil
}
func (f *fakeOrganizationRepo) Update(context.Context, int64, hierarchy.UpdateOrganizationInput) (hierarchy.Organization, error) {
	return hierarchy.Organization{}, nil
}
func (f *fakeOrganizationRepo) Delete(context.Context, []int64) (int64, error) { return 0, nil }
func (f *fakeOrganizationRepo) FindAll(context.Context) ([]hierarchy.Organization, error) {
	return nil, nil
}

type fakeInstitutionRepo struct{}

func (f *fakeInstitutionRepo) Create(context.Context, hierarchy.CreateInstitutionInput) (hierarchy.Institution, error) {
	return hierarchy.Institution{}, nil
}
func (f *fakeInstitutionRepo) Update(context.Context, int64, hierarchy.UpdateInstitutionInput) (hierarchy.Institution, error) {
	return hierarchy.Institution{}, nil
}
func (f *fakeInstitutionRepo) Delete(context.Context, []int64) (int64, error) { return 0, nil }
func (f *fakeInstitutionRepo) FindAll(context.Context) ([]hierarchy.Institution, error) {
	return nil, nil
}

type fakeOrganizationUnitRepo struct{}

func (f *fakeOrganizationUnitRepo) Create(context.Context, hierarchy.CreateOrganizationUnitInput) (hierarchy.OrganizationUnit, error) {
	return hierarchy.OrganizationUnit{}, nil
}
func (f *fakeOrganizationUnitRepo) Update(context.Context, int64, hierarchy.UpdateOrganizationUnitInput) (hierarchy.OrganizationUnit, error) {
	return hierarchy.OrganizationUnit{}, nil
}
func (f *fakeOrganizationUnitRepo) Delete(context.Context, []int64) (int64, error) { return 0, nil }
func (f *fakeOrganizationUnitRepo) FindAll(context.Context) ([]hierarchy.OrganizationUnit, error) {
	return nil, nil
}
func (f *fakeOrganizationUnitRepo) AddMember(context.Context, int64, hierarchy.InstitutionRef) error {
	return nil
}
func (f *fakeOrganizationUnitRepo) RemoveMember(context.Context, int64, hierarchy.InstitutionRef) error {
	return nil
}
func (f *fakeOrganizationUnitRepo) RemoveInstitutionFromAllUnits(context.Context, hierarchy.InstitutionRef) error {
	return nil
}

type fakeIdentityLoader struct {
	snapshot keycloakdb.Snapshot
	calls    int
}

func (f *fakeIdentityLoader) LoadAll(context.Context, string) (keycloakdb.Snapshot, error) {
	f.calls++
	return f.snapshot, nil
}

func newTestService(t *testing.T, customers *fakeCustomerRepo, identity *fakeIdentityLoader) (*Service, *redis.Client, string) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc := New(client, "hierarchy_reload", "hierarchy", HierarchyRepos{
		Customers:         customers,
		Organizations:     &fakeOrganizationRepo{},
		Institutions:      &fakeInstitutionRepo{},
		OrganizationUnits: &fakeOrganizationUnitRepo{},
	}, infracache.New(), usercache.New(), identity, &mlog.NoneLogger{})

	return svc, client, mr.Addr()
}

func TestServiceReloadAllRebuildsCaches(t *testing.T) {
	customers := &fakeCustomerRepo{rows: []hierarchy.Customer{{CID: 1, Name: "acme"}}}
	idLoader := &fakeIdentityLoader{snapshot: keycloakdb.Snapshot{
		RealmID: "realm-1",
		Users:   []identity.User{{ID: "u1", Username: "alice"}},
	}}

	svc, _, _ := newTestService(t, customers, idLoader)

	require.NoError(t, svc.ReloadAll(context.Background()))

	_, ok := svc.infra.Customers.ByID("1")
	assert.True(t, ok)

	_, ok = svc.users.UserByID("u1")
	assert.True(t, ok)
	assert.Equal(t, 1, idLoader.calls)
}

func TestHandleMessageSkipsSelfPublished(t *testing.T) {
	customers := &fakeCustomerRepo{}
	idLoader := &fakeIdentityLoader{}

	svc, _, _ := newTestService(t, customers, idLoader)

	svc.handleMessage(context.Background(), svc.instanceID+"|"+string(ReloadAll))
	assert.Equal(t, 0, idLoader.calls)
}

func TestHandleMessageAppliesPeerBroadcast(t *testing.T) {
	customers := &fakeCustomerRepo{}
	idLoader := &fakeIdentityLoader{}

	svc, _, _ := newTestService(t, customers, idLoader)

	svc.handleMessage(context.Background(), "some-other-instance|"+string(ReloadCustomers))
	assert.Equal(t, 1, idLoader.calls)
}

func TestHandleMessageIgnoresMalformedPayload(t *testing.T) {
	customers := &fakeCustomerRepo{}
	idLoader := &fakeIdentityLoader{}

	svc, _, _ := newTestService(t, customers, idLoader)

	svc.handleMessage(context.Background(), "not-a-valid-payload")
	assert.Equal(t, 0, idLoader.calls)
}
