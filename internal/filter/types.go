package filter

import "github.com/dirwire/ldapcodec/internal/schemaresolver"

// FilterType identifies the kind of node in a parsed Filter tree.
type FilterType int

const (
	// FilterAnd represents an AND filter (&).
	FilterAnd FilterType = iota
	// FilterOr represents an OR filter (|).
	FilterOr
	// FilterNot represents a NOT filter (!).
	FilterNot
	// FilterEquality represents an equality filter (attr=value).
	FilterEquality
	// FilterSubstring represents a substring filter (attr=init*any*final).
	FilterSubstring
	// FilterGreaterOrEqual represents a greater-or-equal filter (attr>=value).
	FilterGreaterOrEqual
	// FilterLessOrEqual represents a less-or-equal filter (attr<=value).
	FilterLessOrEqual
	// FilterPresent represents a presence filter (attr=*).
	FilterPresent
	// FilterApproxMatch represents an approximate match filter (attr~=value).
	FilterApproxMatch
	// FilterExtensibleMatch represents an extensible match filter.
	FilterExtensibleMatch
	// FilterUndefined is produced by AttachSchema in place of a node whose
	// attribute type the resolver does not recognize. It carries no
	// semantic content; RFC 4511 requires it evaluate to false without
	// failing the enclosing filter.
	FilterUndefined
)

// String returns the name of the FilterType.
func (ft FilterType) String() string {
	switch ft {
	case FilterAnd:
		return "AND"
	case FilterOr:
		return "OR"
	case FilterNot:
		return "NOT"
	case FilterEquality:
		return "EQUALITY"
	case FilterSubstring:
		return "SUBSTRING"
	case FilterGreaterOrEqual:
		return "GREATER_OR_EQUAL"
	case FilterLessOrEqual:
		return "LESS_OR_EQUAL"
	case FilterPresent:
		return "PRESENT"
	case FilterApproxMatch:
		return "APPROX_MATCH"
	case FilterExtensibleMatch:
		return "EXTENSIBLE_MATCH"
	case FilterUndefined:
		return "UNDEFINED"
	default:
		return "UNKNOWN"
	}
}

// Filter is a node in a parsed RFC 4515 filter tree.
type Filter struct {
	Type       FilterType
	Attribute  string
	Value      []byte           // for Equality/GreaterOrEqual/LessOrEqual/ApproxMatch
	Children   []*Filter        // for And/Or
	Child      *Filter          // for Not
	Substring  *SubstringFilter // for Substring
	Extensible *ExtensibleMatch // for ExtensibleMatch
}

// SubstringFilter holds the initial, any, and final components of a
// substring filter. At least one of Initial, Any, Final is populated; per
// RFC 4515, a bare "(attr=*)" is always Presence, never an empty Substring.
type SubstringFilter struct {
	Attribute string
	Initial   []byte
	Any       [][]byte
	Final     []byte
}

// ExtensibleMatch holds the components of an extensible match filter:
//
//	(attr[:dn][:matchingRule]:=value) | ([:dn]:matchingRule:=value)
type ExtensibleMatch struct {
	Attribute    string // optional; empty when the filter is rule-only
	MatchingRule string // optional OID or name
	Value        []byte
	DNAttributes bool
}

// NewAndFilter creates an AND filter with the given children.
func NewAndFilter(children ...*Filter) *Filter {
	return &Filter{Type: FilterAnd, Children: children}
}

// NewOrFilter creates an OR filter with the given children.
func NewOrFilter(children ...*Filter) *Filter {
	return &Filter{Type: FilterOr, Children: children}
}

// NewNotFilter creates a NOT filter wrapping child.
func NewNotFilter(child *Filter) *Filter {
	return &Filter{Type: FilterNot, Child: child}
}

// NewEqualityFilter creates an equality filter.
func NewEqualityFilter(attribute string, value []byte) *Filter {
	return &Filter{Type: FilterEquality, Attribute: attribute, Value: value}
}

// NewSubstringFilter creates a substring filter.
func NewSubstringFilter(sf *SubstringFilter) *Filter {
	return &Filter{Type: FilterSubstring, Attribute: sf.Attribute, Substring: sf}
}

// NewPresentFilter creates a presence filter.
func NewPresentFilter(attribute string) *Filter {
	return &Filter{Type: FilterPresent, Attribute: attribute}
}

// NewGreaterOrEqualFilter creates a greater-or-equal filter.
func NewGreaterOrEqualFilter(attribute string, value []byte) *Filter {
	return &Filter{Type: FilterGreaterOrEqual, Attribute: attribute, Value: value}
}

// NewLessOrEqualFilter creates a less-or-equal filter.
func NewLessOrEqualFilter(attribute string, value []byte) *Filter {
	return &Filter{Type: FilterLessOrEqual, Attribute: attribute, Value: value}
}

// NewApproxMatchFilter creates an approximate match filter.
func NewApproxMatchFilter(attribute string, value []byte) *Filter {
	return &Filter{Type: FilterApproxMatch, Attribute: attribute, Value: value}
}

// NewExtensibleMatchFilter creates an extensible match filter.
func NewExtensibleMatchFilter(em *ExtensibleMatch) *Filter {
	return &Filter{Type: FilterExtensibleMatch, Attribute: em.Attribute, Extensible: em}
}

// undefinedFilter is the single shared Undefined sentinel node.
var undefinedFilter = &Filter{Type: FilterUndefined}

// AttachSchema walks the tree and replaces any node whose attribute is not
// known to resolver with the Undefined sentinel. A nil resolver, or a nil
// receiver, returns the tree unchanged. The original tree is not mutated;
// AttachSchema returns a new tree sharing unaffected subtrees.
func (f *Filter) AttachSchema(resolver schemaresolver.SchemaResolver) *Filter {
	if f == nil || resolver == nil {
		return f
	}

	switch f.Type {
	case FilterAnd, FilterOr:
		children := make([]*Filter, len(f.Children))
		for i, c := range f.Children {
			children[i] = c.AttachSchema(resolver)
		}
		return &Filter{Type: f.Type, Children: children}
	case FilterNot:
		return &Filter{Type: FilterNot, Child: f.Child.AttachSchema(resolver)}
	case FilterEquality, FilterGreaterOrEqual, FilterLessOrEqual, FilterApproxMatch, FilterSubstring, FilterPresent:
		if _, ok := resolver.CanonicalOID(f.Attribute); !ok {
			return undefinedFilter
		}
		return f
	case FilterExtensibleMatch:
		if f.Extensible != nil && f.Extensible.Attribute != "" {
			if _, ok := resolver.CanonicalOID(f.Extensible.Attribute); !ok {
				return undefinedFilter
			}
		}
		return f
	default:
		return f
	}
}
