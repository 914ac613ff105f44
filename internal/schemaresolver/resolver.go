package schemaresolver

import (
	"strings"

	"golang.org/x/text/cases"
)

// SchemaResolver adapts attribute-type-aware comparison and canonicalization
// into the dn and filter packages. A nil SchemaResolver is always valid:
// callers that omit one get byte-for-byte (schema-naive) comparison.
type SchemaResolver interface {
	// CanonicalOID returns the object identifier for the given attribute
	// type name, and whether the type is known to the resolver.
	CanonicalOID(attributeType string) (oid string, ok bool)

	// Equal reports whether two values of the given attribute type are
	// equal under that attribute's equality matching rule.
	Equal(attributeType, a, b string) bool

	// Normalize returns the canonical form of a value under the given
	// attribute type's equality matching rule.
	Normalize(attributeType, value string) string
}

// CaseIgnoreResolver implements the caseIgnoreMatch / caseIgnoreSubstringsMatch
// family (RFC 4517 §4.2.11) that the majority of directory attribute types
// use for equality: values are compared after Unicode case folding and
// collapsing leading, trailing, and repeated interior whitespace.
//
// OIDs is an optional attribute-type-name to OID table, keyed by lowercase
// name; CanonicalOID reports attribute types not present in it as unknown.
type CaseIgnoreResolver struct {
	OIDs map[string]string
	fold cases.Caser
}

// NewCaseIgnoreResolver returns a CaseIgnoreResolver with an empty OID table.
func NewCaseIgnoreResolver() *CaseIgnoreResolver {
	return &CaseIgnoreResolver{
		OIDs: make(map[string]string),
		fold: cases.Fold(),
	}
}

// CanonicalOID implements SchemaResolver.
func (r *CaseIgnoreResolver) CanonicalOID(attributeType string) (string, bool) {
	if r.OIDs == nil {
		return "", false
	}
	oid, ok := r.OIDs[strings.ToLower(attributeType)]
	return oid, ok
}

// Equal implements SchemaResolver.
func (r *CaseIgnoreResolver) Equal(attributeType, a, b string) bool {
	return r.Normalize(attributeType, a) == r.Normalize(attributeType, b)
}

// Normalize implements SchemaResolver.
func (r *CaseIgnoreResolver) Normalize(attributeType, value string) string {
	folded := r.fold.String(value)
	return collapseSpace(strings.TrimSpace(folded))
}

// collapseSpace replaces every run of whitespace with a single space, per
// the "insignificant space handling" rule shared by the caseIgnore family.
func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
