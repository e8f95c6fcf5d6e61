package hierarchyid

// CustomerID identifies a customer by its store-assigned integer id.
type CustomerID struct {
	CID int64
}

// Format renders the "V"-prefixed wire form.
func (id CustomerID) Format() string {
	enc, _ := encodeLevels(id.CID)
	return "V" + enc
}

func (id CustomerID) String() string { return id.Format() }

// ParseCustomerID parses a "V"-prefixed identifier.
func ParseCustomerID(s string) (CustomerID, error) {
	rest, err := splitPrefix(s, 'V')
	if err != nil {
		return CustomerID{}, err
	}

	vs, i, err := decodeLevels(rest, 1)
	if err != nil {
		return CustomerID{}, err
	}

	if err := requireEnd(rest, i); err != nil {
		return CustomerID{}, err
	}

	return CustomerID{CID: vs[0]}, nil
}

// CustomerResourceID is a Customer id paired with a 24-character opaque
// document id ("U" prefix).
type CustomerResourceID struct {
	CID    int64
	Opaque string
}

func (id CustomerResourceID) Format() string {
	enc, _ := encodeLevels(id.CID)
	return "U" + enc + id.Opaque
}

func (id CustomerResourceID) String() string { return id.Format() }

func ParseCustomerResourceID(s string) (CustomerResourceID, error) {
	rest, err := splitPrefix(s, 'U')
	if err != nil {
		return CustomerResourceID{}, err
	}

	vs, i, err := decodeLevels(rest, 1)
	if err != nil {
		return CustomerResourceID{}, err
	}

	opaque, err := requireOpaque(rest, i)
	if err != nil {
		return CustomerResourceID{}, err
	}

	return CustomerResourceID{CID: vs[0], Opaque: opaque}, nil
}

// OrganizationID identifies an organization under its parent customer
// ("T" prefix).
type OrganizationID struct {
	CID int64
	OID int64
}

func (id OrganizationID) Format() string {
	enc, _ := encodeLevels(id.CID, id.OID)
	return "T" + enc
}

func (id OrganizationID) String() string { return id.Format() }

func ParseOrganizationID(s string) (OrganizationID, error) {
	rest, err := splitPrefix(s, 'T')
	if err != nil {
		return OrganizationID{}, err
	}

	vs, i, err := decodeLevels(rest, 2)
	if err != nil {
		return OrganizationID{}, err
	}

	if err := requireEnd(rest, i); err != nil {
		return OrganizationID{}, err
	}

	return OrganizationID{CID: vs[0], OID: vs[1]}, nil
}

// OrganizationResourceID is an Organization id with an opaque suffix
// ("S" prefix).
type OrganizationResourceID struct {
	CID    int64
	OID    int64
	Opaque string
}

func (id OrganizationResourceID) Format() string {
	enc, _ := encodeLevels(id.CID, id.OID)
	return "S" + enc + id.Opaque
}

func (id OrganizationResourceID) String() string { return id.Format() }

func ParseOrganizationResourceID(s string) (OrganizationResourceID, error) {
	rest, err := splitPrefix(s, 'S')
	if err != nil {
		return OrganizationResourceID{}, err
	}

	vs, i, err := decodeLevels(rest, 2)
	if err != nil {
		return OrganizationResourceID{}, err
	}

	opaque, err := requireOpaque(rest, i)
	if err != nil {
		return OrganizationResourceID{}, err
	}

	return OrganizationResourceID{CID: vs[0], OID: vs[1], Opaque: opaque}, nil
}

// InstitutionID identifies an institution under organization/customer
// ("R" prefix).
type InstitutionID struct {
	CID int64
	OID int64
	IID int64
}

func (id InstitutionID) Format() string {
	enc, _ := encodeLevels(id.CID, id.OID, id.IID)
	return "R" + enc
}

func (id InstitutionID) String() string { return id.Format() }

func ParseInstitutionID(s string) (InstitutionID, error) {
	rest, err := splitPrefix(s, 'R')
	if err != nil {
		return InstitutionID{}, err
	}

	vs, i, err := decodeLevels(rest, 3)
	if err != nil {
		return InstitutionID{}, err
	}

	if err := requireEnd(rest, i); err != nil {
		return InstitutionID{}, err
	}

	return InstitutionID{CID: vs[0], OID: vs[1], IID: vs[2]}, nil
}

// InstitutionResourceID is an Institution id with an opaque suffix
// ("Q" prefix).
type InstitutionResourceID struct {
	CID    int64
	OID    int64
	IID    int64
	Opaque string
}

func (id InstitutionResourceID) Format() string {
	enc, _ := encodeLevels(id.CID, id.OID, id.IID)
	return "Q" + enc + id.Opaque
}

func (id InstitutionResourceID) String() string { return id.Format() }

func ParseInstitutionResourceID(s string) (InstitutionResourceID, error) {
	rest, err := splitPrefix(s, 'Q')
	if err != nil {
		return InstitutionResourceID{}, err
	}

	vs, i, err := decodeLevels(rest, 3)
	if err != nil {
		return InstitutionResourceID{}, err
	}

	opaque, err := requireOpaque(rest, i)
	if err != nil {
		return InstitutionResourceID{}, err
	}

	return InstitutionResourceID{CID: vs[0], OID: vs[1], IID: vs[2], Opaque: opaque}, nil
}

// OrganizationUnitID identifies an organization unit, which hangs either
// directly off a customer ("N" prefix, OID absent) or off an organization
// ("P" prefix, OID present).
type OrganizationUnitID struct {
	CID int64
	OID *int64
	UID int64
}

func (id OrganizationUnitID) Format() string {
	if id.OID != nil {
		enc, _ := encodeLevels(id.CID, *id.OID, id.UID)
		return "P" + enc
	}

	enc, _ := encodeLevels(id.CID, id.UID)

	return "N" + enc
}

func (id OrganizationUnitID) String() string { return id.Format() }

// HasOrganization reports whether the unit is scoped under an organization
// rather than directly under its customer.
func (id OrganizationUnitID) HasOrganization() bool { return id.OID != nil }

func ParseOrganizationUnitID(s string) (OrganizationUnitID, error) {
	if len(s) == 0 {
		return OrganizationUnitID{}, malformed("empty organization unit id")
	}

	switch s[0] {
	case 'P':
		rest := s[1:]

		vs, i, err := decodeLevels(rest, 3)
		if err != nil {
			return OrganizationUnitID{}, err
		}

		if err := requireEnd(rest, i); err != nil {
			return OrganizationUnitID{}, err
		}

		oid := vs[1]

		return OrganizationUnitID{CID: vs[0], OID: &oid, UID: vs[2]}, nil
	case 'N':
		rest := s[1:]

		vs, i, err := decodeLevels(rest, 2)
		if err != nil {
			return OrganizationUnitID{}, err
		}

		if err := requireEnd(rest, i); err != nil {
			return OrganizationUnitID{}, err
		}

		return OrganizationUnitID{CID: vs[0], UID: vs[1]}, nil
	default:
		return OrganizationUnitID{}, malformed("expected prefix \"P\" or \"N\" in %q", s)
	}
}

// OrganizationUnitResourceID is an OrganizationUnit id with an opaque
// suffix ("O" prefix under an organization, "M" prefix directly under a
// customer).
type OrganizationUnitResourceID struct {
	CID    int64
	OID    *int64
	UID    int64
	Opaque string
}

func (id OrganizationUnitResourceID) Format() string {
	if id.OID != nil {
		enc, _ := encodeLevels(id.CID, *id.OID, id.UID)
		return "O" + enc + id.Opaque
	}

	enc, _ := encodeLevels(id.CID, id.UID)

	return "M" + enc + id.Opaque
}

func (id OrganizationUnitResourceID) String() string { return id.Format() }

func ParseOrganizationUnitResourceID(s string) (OrganizationUnitResourceID, error) {
	if len(s) == 0 {
		return OrganizationUnitResourceID{}, malformed("empty organization unit resource id")
	}

	switch s[0] {
	case 'O':
		rest := s[1:]

		vs, i, err := decodeLevels(rest, 3)
		if err != nil {
			return OrganizationUnitResourceID{}, err
		}

		opaque, err := requireOpaque(rest, i)
		if err != nil {
			return OrganizationUnitResourceID{}, err
		}

		oid := vs[1]

		return OrganizationUnitResourceID{CID: vs[0], OID: &oid, UID: vs[2], Opaque: opaque}, nil
	case 'M':
		rest := s[1:]

		vs, i, err := decodeLevels(rest, 2)
		if err != nil {
			return OrganizationUnitResourceID{}, err
		}

		opaque, err := requireOpaque(rest, i)
		if err != nil {
			return OrganizationUnitResourceID{}, err
		}

		return OrganizationUnitResourceID{CID: vs[0], UID: vs[1], Opaque: opaque}, nil
	default:
		return OrganizationUnitResourceID{}, malformed("expected prefix \"O\" or \"M\" in %q", s)
	}
}
