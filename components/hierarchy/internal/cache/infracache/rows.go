package infracache

import (
	"strconv"
	"time"

	"github.com/lattice-sh/control-plane/components/hierarchy/internal/domain/hierarchy"
)

// timestampLayout matches the wire format change-feed payloads carry
// timestamps in: no zone, fractional seconds optional.
const timestampLayout = "2006-01-02T15:04:05.999999"

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

func parseTimestampPtr(s *string) *time.Time {
	if s == nil {
		return nil
	}

	t, ok := parseTimestamp(*s)
	if !ok {
		return nil
	}

	return &t
}

// customerRow is the shape of customers_update's new/old JSON payload.
type customerRow struct {
	CID       int64   `json:"id"`
	Name      string  `json:"name"`
	Type      *string `json:"ty"`
	CreatedAt string  `json:"created_at"`
	CreatedBy string  `json:"created_by"`
	UpdatedAt *string `json:"updated_at"`
	UpdatedBy string  `json:"updated_by"`
}

func (r customerRow) compositeKey() string { return r.Name }
func (r customerRow) idKey() string        { return strconv.FormatInt(r.CID, 10) }

func (r customerRow) toEntity() (hierarchy.Customer, bool) {
	createdAt, ok := parseTimestamp(r.CreatedAt)
	if !ok {
		return hierarchy.Customer{}, false
	}

	updatedAt := createdAt
	if t := parseTimestampPtr(r.UpdatedAt); t != nil {
		updatedAt = *t
	}

	return hierarchy.Customer{
		CID:  r.CID,
		Name: r.Name,
		Type: r.Type,
		Stamps: hierarchy.Stamps{
			CreatedAt: createdAt,
			CreatedBy: r.CreatedBy,
			UpdatedAt: updatedAt,
			UpdatedBy: r.UpdatedBy,
		},
	}, true
}

// organizationRow is the shape of organizations_update's new/old payload.
type organizationRow struct {
	OID       int64   `json:"id"`
	CID       int64   `json:"customer_id"`
	Name      string  `json:"name"`
	Type      *string `json:"ty"`
	CreatedAt string  `json:"created_at"`
	CreatedBy string  `json:"created_by"`
	UpdatedAt *string `json:"updated_at"`
	UpdatedBy string  `json:"updated_by"`
}

func (r organizationRow) compositeKey() string {
	return r.Name + "\x00" + strconv.FormatInt(r.CID, 10)
}

func (r organizationRow) idKey() string { return strconv.FormatInt(r.OID, 10) }

func (r organizationRow) toEntity() (hierarchy.Organization, bool) {
	createdAt, ok := parseTimestamp(r.CreatedAt)
	if !ok {
		return hierarchy.Organization{}, false
	}

	updatedAt := createdAt
	if t := parseTimestampPtr(r.UpdatedAt); t != nil {
		updatedAt = *t
	}

	return hierarchy.Organization{
		OID:  r.OID,
		CID:  r.CID,
		Name: r.Name,
		Type: r.Type,
		Stamps: hierarchy.Stamps{
			CreatedAt: createdAt,
			CreatedBy: r.CreatedBy,
			UpdatedAt: updatedAt,
			UpdatedBy: r.UpdatedBy,
		},
	}, true
}

// institutionRow is the shape of institutions_update's new/old payload.
type institutionRow struct {
	IID       int64   `json:"id"`
	OID       int64   `json:"organization_id"`
	CID       int64   `json:"customer_id"`
	Name      string  `json:"name"`
	Type      *string `json:"ty"`
	CreatedAt string  `json:"created_at"`
	CreatedBy string  `json:"created_by"`
	UpdatedAt *string `json:"updated_at"`
	UpdatedBy string  `json:"updated_by"`
}

func (r institutionRow) compositeKey() string {
	return r.Name + "\x00" + strconv.FormatInt(r.CID, 10) + "\x00" + strconv.FormatInt(r.OID, 10)
}

func (r institutionRow) idKey() string { return strconv.FormatInt(r.IID, 10) }

func (r institutionRow) toEntity() (hierarchy.Institution, bool) {
	createdAt, ok := parseTimestamp(r.CreatedAt)
	if !ok {
		return hierarchy.Institution{}, false
	}

	updatedAt := createdAt
	if t := parseTimestampPtr(r.UpdatedAt); t != nil {
		updatedAt = *t
	}

	return hierarchy.Institution{
		IID:  r.IID,
		OID:  r.OID,
		CID:  r.CID,
		Name: r.Name,
		Type: r.Type,
		Stamps: hierarchy.Stamps{
			CreatedAt: createdAt,
			CreatedBy: r.CreatedBy,
			UpdatedAt: updatedAt,
			UpdatedBy: r.UpdatedBy,
		},
	}, true
}

// organizationUnitRow is the shape of organization_units_update's
// new/old payload. A change-feed-driven insert carries no member list —
// members are populated by the repository's own join query on full
// reload, matching the teacher's new_organization_unit(members: vec![]).
type organizationUnitRow struct {
	UID       int64   `json:"id"`
	CID       int64   `json:"customer_id"`
	OID       *int64  `json:"organization_id"`
	Name      string  `json:"name"`
	CreatedAt string  `json:"created_at"`
	CreatedBy string  `json:"created_by"`
	UpdatedAt *string `json:"updated_at"`
	UpdatedBy string  `json:"updated_by"`
}

func (r organizationUnitRow) compositeKey() string {
	oid := ""
	if r.OID != nil {
		oid = strconv.FormatInt(*r.OID, 10)
	}

	return r.Name + "\x00" + strconv.FormatInt(r.CID, 10) + "\x00" + oid
}

func (r organizationUnitRow) idKey() string { return strconv.FormatInt(r.UID, 10) }

func (r organizationUnitRow) toEntity() (hierarchy.OrganizationUnit, bool) {
	createdAt, ok := parseTimestamp(r.CreatedAt)
	if !ok {
		return hierarchy.OrganizationUnit{}, false
	}

	updatedAt := createdAt
	if t := parseTimestampPtr(r.UpdatedAt); t != nil {
		updatedAt = *t
	}

	return hierarchy.OrganizationUnit{
		UID:  r.UID,
		CID:  r.CID,
		OID:  r.OID,
		Name: r.Name,
		Stamps: hierarchy.Stamps{
			CreatedAt: createdAt,
			CreatedBy: r.CreatedBy,
			UpdatedAt: updatedAt,
			UpdatedBy: r.UpdatedBy,
		},
	}, true
}
