package cleanup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-sh/control-plane/components/hierarchy/internal/cache/infracache"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/cache/usercache"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/hierarchy"
	"github.com/lattice-sh/control-plane/components/hierarchy/internal/services/command"
)

type fakeDocs struct {
	collections []string
	deletes     []Filter
	userDeletes []Filter
}

func (f *fakeDocs) Collections(context.Context) ([]string, error) { return f.collections, nil }

func (f *fakeDocs) DeleteMany(_ context.Context, _ string, filter Filter) (int64, error) {
	f.deletes = append(f.deletes, filter)
	return 1, nil
}

func (f *fakeDocs) DeleteUsers(_ context.Context, filter Filter) (int64, error) {
	f.userDeletes = append(f.userDeletes, filter)
	return 1, nil
}

type fakeUnitsRepo struct {
	hierarchy.OrganizationUnitRepository
	pulled []hierarchy.InstitutionRef
}

func (f *fakeUnitsRepo) RemoveInstitutionFromAllUnits(_ context.Context, ref hierarchy.InstitutionRef) error {
	f.pulled = append(f.pulled, ref)
	return nil
}

type fakeReloader struct{ calls int }

func (f *fakeReloader) ReloadAll(context.Context) error {
	f.calls++
	return nil
}

type fakeEvents struct{ events []command.Event }

func (f *fakeEvents) Publish(_ context.Context, e command.Event) error {
	f.events = append(f.events, e)
	return nil
}

func newTestProcessor() (*Processor, *fakeDocs, *fakeUnitsRepo, *fakeReloader, *fakeEvents) {
	docs := &fakeDocs{collections: []string{"documents"}}
	units := &fakeUnitsRepo{}
	reload := &fakeReloader{}
	events := &fakeEvents{}

	p := &Processor{
		Cache:  infracache.New(),
		Users:  usercache.New(),
		Docs:   docs,
		Units:  units,
		Reload: reload,
		Events: events,
	}

	return p, docs, units, reload, events
}

func TestCascadeCustomersDeletesDependentsAndReloads(t *testing.T) {
	p, docs, _, reload, events := newTestProcessor()

	p.Cache.Organizations.Insert(hierarchy.Organization{OID: 1, CID: 1, Name: "org"})
	p.Cache.Institutions.Insert(hierarchy.Institution{IID: 1, OID: 1, CID: 1, Name: "inst"})

	err := p.Process(context.Background(), command.CleanupTask{UUID: "t1", Kind: command.CleanupCustomers, IDs: []int64{1}})
	require.NoError(t, err)

	assert.Len(t, docs.deletes, 1)
	assert.Equal(t, []int64{1}, docs.deletes[0].CIDs)
	assert.Empty(t, docs.deletes[0].OIDs)
	assert.Empty(t, docs.deletes[0].IIDs)
	assert.Len(t, docs.userDeletes, 1)
	assert.Equal(t, 1, reload.calls)
	require.Len(t, events.events, 1)
	assert.Equal(t, "Delete", events.events[0].Event)
}

func TestCascadeInstitutionsPullsFromOrganizationUnitMembers(t *testing.T) {
	p, _, units, _, _ := newTestProcessor()

	p.Cache.Institutions.Insert(hierarchy.Institution{IID: 5, OID: 1, CID: 1, Name: "inst"})

	err := p.Process(context.Background(), command.CleanupTask{UUID: "t2", Kind: command.CleanupInstitutions, IDs: []int64{5}})
	require.NoError(t, err)

	require.Len(t, units.pulled, 1)
	assert.Equal(t, hierarchy.InstitutionRef{CID: 1, OID: 1, IID: 5}, units.pulled[0])
}

func TestCascadeOrganizationsBuildsConjunctiveFilter(t *testing.T) {
	p, docs, _, _, _ := newTestProcessor()

	p.Cache.Organizations.Insert(hierarchy.Organization{OID: 1, CID: 9, Name: "org"})

	err := p.Process(context.Background(), command.CleanupTask{UUID: "t3", Kind: command.CleanupOrganizations, IDs: []int64{1}})
	require.NoError(t, err)

	require.Len(t, docs.deletes, 1)
	assert.Equal(t, []int64{9}, docs.deletes[0].CIDs)
	assert.Equal(t, []int64{1}, docs.deletes[0].OIDs)
	assert.Empty(t, docs.deletes[0].IIDs)
}

func TestCascadeInstitutionsBuildsConjunctiveFilter(t *testing.T) {
	p, docs, _, _, _ := newTestProcessor()

	p.Cache.Institutions.Insert(hierarchy.Institution{IID: 5, OID: 2, CID: 9, Name: "inst"})

	err := p.Process(context.Background(), command.CleanupTask{UUID: "t4", Kind: command.CleanupInstitutions, IDs: []int64{5}})
	require.NoError(t, err)

	require.Len(t, docs.deletes, 1)
	assert.Equal(t, []int64{9}, docs.deletes[0].CIDs)
	assert.Equal(t, []int64{2}, docs.deletes[0].OIDs)
	assert.Equal(t, []int64{5}, docs.deletes[0].IIDs)
}

func TestCascadeOrganizationUnitsRoutesUnitIDThroughIIDSlot(t *testing.T) {
	p, docs, _, _, _ := newTestProcessor()

	oid := int64(2)
	p.Cache.OrganizationUnits.Insert(hierarchy.OrganizationUnit{UID: 7, CID: 9, OID: &oid, Name: "unit"})

	err := p.Process(context.Background(), command.CleanupTask{UUID: "t5", Kind: command.CleanupOrganizationUnits, IDs: []int64{7}})
	require.NoError(t, err)

	require.Len(t, docs.deletes, 1)
	assert.Equal(t, []int64{9}, docs.deletes[0].CIDs)
	assert.Equal(t, []int64{7}, docs.deletes[0].IIDs)
	assert.Empty(t, docs.deletes[0].OIDs)
}

func TestEncodeDecodeTaskRoundTrips(t *testing.T) {
	task := command.CleanupTask{UUID: "abc", Kind: command.CleanupOrganizationUnits, IDs: []int64{1, 2, 3}}

	item, err := EncodeTask(task)
	require.NoError(t, err)
	assert.Equal(t, "abc", item.ID)

	got, err := DecodeTask(item)
	require.NoError(t, err)
	assert.Equal(t, task, got)
}
