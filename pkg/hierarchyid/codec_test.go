package hierarchyid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerIDFormatFixtures(t *testing.T) {
	assert.Equal(t, "V01", CustomerID{CID: 1}.Format())
	assert.Equal(t, "V120", CustomerID{CID: 0x20}.Format())
	assert.Equal(t, "V2500", CustomerID{CID: 0x500}.Format())
}

func TestCustomerIDParseFixtures(t *testing.T) {
	id, err := ParseCustomerID("V01")
	require.NoError(t, err)
	assert.Equal(t, CustomerID{CID: 1}, id)

	id, err = ParseCustomerID("V120")
	require.NoError(t, err)
	assert.Equal(t, CustomerID{CID: 0x20}, id)

	id, err = ParseCustomerID("V2500")
	require.NoError(t, err)
	assert.Equal(t, CustomerID{CID: 0x500}, id)
}

func TestCustomerIDRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, 15, 16, 255, 4096, math.MaxInt32, math.MaxInt64} {
		id := CustomerID{CID: v}

		got, err := ParseCustomerID(id.Format())
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestOrganizationIDRoundTrip(t *testing.T) {
	id := OrganizationID{CID: 1, OID: 1}
	assert.Equal(t, "T0101", id.Format())

	got, err := ParseOrganizationID(id.Format())
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestInstitutionIDRoundTrip(t *testing.T) {
	id := InstitutionID{CID: 1, OID: 1, IID: 1}
	assert.Equal(t, "R010101", id.Format())

	got, err := ParseInstitutionID(id.Format())
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestOrganizationUnitIDBothShapes(t *testing.T) {
	root := OrganizationUnitID{CID: 1, UID: 7}
	assert.Equal(t, "N", root.Format()[:1])
	assert.False(t, root.HasOrganization())

	gotRoot, err := ParseOrganizationUnitID(root.Format())
	require.NoError(t, err)
	assert.Equal(t, root, gotRoot)

	oid := int64(3)
	scoped := OrganizationUnitID{CID: 1, OID: &oid, UID: 7}
	assert.Equal(t, "P", scoped.Format()[:1])
	assert.True(t, scoped.HasOrganization())

	gotScoped, err := ParseOrganizationUnitID(scoped.Format())
	require.NoError(t, err)
	assert.Equal(t, scoped, gotScoped)
}

func TestResourceIDsCarryOpaqueSuffix(t *testing.T) {
	opaque := "abcdef0123456789abcdef01"
	require.Len(t, opaque, 24)

	cr := CustomerResourceID{CID: 1, Opaque: opaque}
	got, err := ParseCustomerResourceID(cr.Format())
	require.NoError(t, err)
	assert.Equal(t, cr, got)

	ir := InstitutionResourceID{CID: 1, OID: 2, IID: 3, Opaque: opaque}
	gotIR, err := ParseInstitutionResourceID(ir.Format())
	require.NoError(t, err)
	assert.Equal(t, ir, gotIR)
}

func TestParseRejectsWrongPrefix(t *testing.T) {
	_, err := ParseCustomerID("T01")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseRejectsResidualCharacters(t *testing.T) {
	_, err := ParseCustomerID("V01X")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseRejectsTruncatedValue(t *testing.T) {
	_, err := ParseCustomerID("V5")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseRejectsWrongOpaqueLength(t *testing.T) {
	_, err := ParseCustomerResourceID("U01tooshort")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestEncodeRejectsNegativeLevel(t *testing.T) {
	_, err := encodeLevel(-1)
	assert.ErrorIs(t, err, ErrMalformed)
}
