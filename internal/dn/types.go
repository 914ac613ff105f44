package dn

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dirwire/ldapcodec/internal/schemaresolver"
)

// AVA is a single attribute/value pair within an RDN.
type AVA struct {
	// AttributeType is the attribute type as the caller wrote it, e.g. "CN"
	// or "2.5.4.3". Case and OID-prefix form are preserved here; only the
	// normalized form lowercases and strips the "oid."/"OID." prefix.
	AttributeType string

	// Value is the unescaped, raw attribute value.
	Value string

	// HexValue is true when the value was written in "#HHHH..." form. Such
	// values normalize byte-for-byte rather than through the escape rules.
	HexValue bool
}

// RDN is a relative distinguished name: one or more AVAs joined by "+".
// Parsing preserves the order AVAs appeared in.
type RDN struct {
	AVAs []AVA
}

// DN is a parsed distinguished name.
type DN struct {
	RDNs []RDN
	raw  string
}

// String returns the original, byte-preserving user-provided form.
func (d *DN) String() string {
	if d == nil {
		return ""
	}
	return d.raw
}

// IsEmpty reports whether the DN has zero RDNs. The empty DN (the root) is
// a valid DN, distinct from a DN that failed to parse.
func (d *DN) IsEmpty() bool {
	return d == nil || len(d.RDNs) == 0
}

// Normalized returns the canonical string form used for equality: attribute
// types lowercased, values unescaped and then minimally re-escaped, AVAs
// within an RDN sorted by normalized attribute type then normalized value,
// RDNs separated by ",", AVAs within an RDN separated by "+".
func (d *DN) Normalized() string {
	return d.normalizedWith(nil)
}

// NormalizedWithSchema returns the normalized form using resolver to
// canonicalize and fold attribute values whose type it recognizes. Attribute
// types the resolver does not know fall back to the schema-naive rules used
// by Normalized.
func (d *DN) NormalizedWithSchema(resolver schemaresolver.SchemaResolver) string {
	return d.normalizedWith(resolver)
}

func (d *DN) normalizedWith(resolver schemaresolver.SchemaResolver) string {
	if d == nil || len(d.RDNs) == 0 {
		return ""
	}

	parts := make([]string, len(d.RDNs))
	for i, rdn := range d.RDNs {
		parts[i] = rdn.normalizedWith(resolver)
	}
	return strings.Join(parts, ",")
}

func (r RDN) normalizedWith(resolver schemaresolver.SchemaResolver) string {
	type normAVA struct {
		typ, val, rendered string
	}

	normed := make([]normAVA, len(r.AVAs))
	for i, ava := range r.AVAs {
		typ := normalizeAttributeType(ava.AttributeType)
		val := normalizeValue(typ, ava.Value, ava.HexValue, resolver)
		normed[i] = normAVA{typ: typ, val: val, rendered: typ + "=" + escapeValue(val)}
	}

	sort.SliceStable(normed, func(i, j int) bool {
		if normed[i].typ != normed[j].typ {
			return normed[i].typ < normed[j].typ
		}
		return normed[i].val < normed[j].val
	})

	rendered := make([]string, len(normed))
	for i, n := range normed {
		rendered[i] = n.rendered
	}
	return strings.Join(rendered, "+")
}

// normalizeAttributeType lowercases an attribute type and strips a leading
// "oid."/"OID." prefix, as RFC 4514 permits for numeric OIDs in input.
func normalizeAttributeType(t string) string {
	lower := strings.ToLower(t)
	lower = strings.TrimPrefix(lower, "oid.")
	return lower
}

func normalizeValue(attrType, value string, hex bool, resolver schemaresolver.SchemaResolver) string {
	if hex {
		return value
	}
	if resolver != nil {
		if _, ok := resolver.CanonicalOID(attrType); ok {
			return resolver.Normalize(attrType, value)
		}
	}
	return value
}

// Equals reports whether two DNs are equal under schema-naive normalization:
// same number of RDNs, each RDN's normalized rendering identical.
func (d *DN) Equals(other *DN) bool {
	return d.EqualsWithSchema(other, nil)
}

// EqualsWithSchema reports whether two DNs are equal, using resolver for
// attribute types it recognizes and falling back to schema-naive comparison
// for the rest.
func (d *DN) EqualsWithSchema(other *DN, resolver schemaresolver.SchemaResolver) bool {
	if d == nil || other == nil {
		return d.IsEmpty() && other.IsEmpty()
	}
	return d.normalizedWith(resolver) == other.normalizedWith(resolver)
}

// ParseError reports a DN syntax failure and the byte offset in the input
// where it was detected.
type ParseError struct {
	Offset int
	Kind   ErrorKind
	Err    error
}

// ErrorKind enumerates the ways a DN string can fail to parse.
type ErrorKind int

const (
	// EmptyAttributeType is returned when an AVA has a "=" with nothing
	// (or only whitespace) before it.
	EmptyAttributeType ErrorKind = iota
	// UnterminatedEscape is returned when a trailing backslash has no
	// following character, or a backslash is followed by a character that
	// is neither a hex digit nor an escapable character.
	UnterminatedEscape
	// InvalidHexPair is returned when a hex digit after a backslash is not
	// followed by a second hex digit (including at end of input).
	InvalidHexPair
	// UnexpectedCharacter is returned when the scanner encounters a
	// character that cannot appear at that grammar position.
	UnexpectedCharacter
	// InvalidHexString is returned when a "#HHHH..." value has no hex
	// digits or an odd number of them.
	InvalidHexString
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyAttributeType:
		return "empty attribute type"
	case UnterminatedEscape:
		return "unterminated escape"
	case InvalidHexPair:
		return "invalid hex pair"
	case UnexpectedCharacter:
		return "unexpected character"
	case InvalidHexString:
		return "invalid hex string"
	default:
		return "unknown error"
	}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("dn: %s at offset %d", e.Kind, e.Offset)
}

// Unwrap returns the underlying error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(offset int, kind ErrorKind) *ParseError {
	return &ParseError{Offset: offset, Kind: kind}
}
