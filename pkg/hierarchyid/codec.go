// Package hierarchyid implements the bidirectional codec between hierarchical
// integer identifiers (customer/organization/institution/organization-unit,
// each optionally paired with a 24-character opaque resource id) and the
// prefixed hex strings used on the wire and as IdP role-name suffixes.
//
// Ten shapes are recognized, one per prefix letter:
//
//	V  Customer                 cid
//	U  CustomerResource         cid + opaque
//	T  Organization             cid, oid
//	S  OrganizationResource     cid, oid + opaque
//	R  Institution              cid, oid, iid
//	Q  InstitutionResource      cid, oid, iid + opaque
//	P  OrganizationUnit (org)   cid, oid, uid
//	O  OrganizationUnitResource (org)   cid, oid, uid + opaque
//	N  OrganizationUnit (root)  cid, uid
//	M  OrganizationUnitResource (root)  cid, uid + opaque
//
// Each integer level is encoded as one hex digit carrying (digit-count-1) of
// the value's uppercase hex representation, followed by that many hex
// digits of the value itself. Levels concatenate in hierarchy order; an
// opaque suffix, when present, is exactly 24 characters appended verbatim.
package hierarchyid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const opaqueLen = 24

// ErrMalformed is returned for any input that does not parse as a well-formed
// identifier of the shape being parsed: wrong prefix, truncated levels,
// unparsable hex, or residual characters beyond an optional opaque suffix.
var ErrMalformed = errors.New("hierarchyid: malformed identifier")

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// encodeLevel writes the length-prefixed hex form of a single non-negative
// level value. v must fit in the 64 value bits a single hex nibble can
// describe as a length (digit count 1..16), which holds for all int64.
func encodeLevel(v int64) (string, error) {
	if v < 0 {
		return "", malformed("negative level value %d", v)
	}

	hex := strings.ToUpper(strconv.FormatInt(v, 16))
	if len(hex) > 16 {
		return "", malformed("value %d requires more than 16 hex digits", v)
	}

	lenDigit := strings.ToUpper(strconv.FormatInt(int64(len(hex)-1), 16))

	return lenDigit + hex, nil
}

// decodeLevel reads one length-prefixed level starting at s[i] and returns
// the value and the index just past it.
func decodeLevel(s string, i int) (int64, int, error) {
	if i >= len(s) {
		return 0, 0, malformed("truncated level at offset %d in %q", i, s)
	}

	l, err := strconv.ParseInt(string(s[i]), 16, 64)
	if err != nil {
		return 0, 0, malformed("invalid length digit %q in %q", s[i], s)
	}

	n := int(l) + 1
	if i+1+n > len(s) {
		return 0, 0, malformed("truncated value (want %d hex digits) in %q", n, s)
	}

	v, err := strconv.ParseInt(s[i+1:i+1+n], 16, 64)
	if err != nil {
		return 0, 0, malformed("invalid hex value in %q: %v", s, err)
	}

	return v, i + 1 + n, nil
}

func encodeLevels(vs ...int64) (string, error) {
	var b strings.Builder

	for _, v := range vs {
		enc, err := encodeLevel(v)
		if err != nil {
			return "", err
		}

		b.WriteString(enc)
	}

	return b.String(), nil
}

// decodeLevels reads exactly n levels and returns them plus the offset where
// parsing stopped (so callers can check for a residual opaque id or reject
// trailing garbage).
func decodeLevels(s string, n int) ([]int64, int, error) {
	out := make([]int64, 0, n)
	i := 0

	for range n {
		v, next, err := decodeLevel(s, i)
		if err != nil {
			return nil, 0, err
		}

		out = append(out, v)
		i = next
	}

	return out, i, nil
}

func splitPrefix(s string, want byte) (string, error) {
	if len(s) == 0 || s[0] != want {
		return "", malformed("expected prefix %q in %q", string(want), s)
	}

	return s[1:], nil
}

func requireEnd(s string, i int) error {
	if i != len(s) {
		return malformed("residual characters %q after parsing", s[i:])
	}

	return nil
}

func requireOpaque(s string, i int) (string, error) {
	rest := s[i:]
	if len(rest) != opaqueLen {
		return "", malformed("expected %d-character opaque id, got %d in %q", opaqueLen, len(rest), s)
	}

	return rest, nil
}
