package hierarchy

import "context"

// CustomerRepository provides an interface for operations on the
// customers table.
//
//go:generate mockgen --destination=../../gen/mock/hierarchy/hierarchy_mock.go --package=mock . CustomerRepository,OrganizationRepository,InstitutionRepository,OrganizationUnitRepository
type CustomerRepository interface {
	Create(ctx context.Context, in CreateCustomerInput) (Customer, error)
	Update(ctx context.Context, cid int64, in UpdateCustomerInput) (Customer, error)
	Delete(ctx context.Context, cids []int64) (int64, error)
	FindAll(ctx context.Context) ([]Customer, error)
}

// OrganizationRepository provides an interface for operations on the
// organizations table.
type OrganizationRepository interface {
	Create(ctx context.Context, in CreateOrganizationInput) (Organization, error)
	Update(ctx context.Context, oid int64, in UpdateOrganizationInput) (Organization, error)
	Delete(ctx context.Context, oids []int64) (int64, error)
	FindAll(ctx context.Context) ([]Organization, error)
}

// InstitutionRepository provides an interface for operations on the
// institutions table.
type InstitutionRepository interface {
	Create(ctx context.Context, in CreateInstitutionInput) (Institution, error)
	Update(ctx context.Context, iid int64, in UpdateInstitutionInput) (Institution, error)
	Delete(ctx context.Context, iids []int64) (int64, error)
	FindAll(ctx context.Context) ([]Institution, error)
}

// OrganizationUnitRepository provides an interface for operations on the
// organization_units table and its organization_unit_members join table.
type OrganizationUnitRepository interface {
	Create(ctx context.Context, in CreateOrganizationUnitInput) (OrganizationUnit, error)
	Update(ctx context.Context, uid int64, in UpdateOrganizationUnitInput) (OrganizationUnit, error)
	Delete(ctx context.Context, uids []int64) (int64, error)
	FindAll(ctx context.Context) ([]OrganizationUnit, error)
	AddMember(ctx context.Context, uid int64, ref InstitutionRef) error
	RemoveMember(ctx context.Context, uid int64, ref InstitutionRef) error
	RemoveInstitutionFromAllUnits(ctx context.Context, ref InstitutionRef) error
}
