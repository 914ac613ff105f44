package ldap

import (
	"github.com/dirwire/ldapcodec/internal/filter"
)

// FilterFromText parses an RFC 4515 filter string and converts it to the
// BER wire representation used by SearchRequest.Filter.
func FilterFromText(s string) (*SearchFilter, error) {
	f, err := filter.Parse(s)
	if err != nil {
		return nil, err
	}
	return textFilterToWire(f), nil
}

// FilterToText converts a SearchRequest's wire filter back into an RFC 4515
// filter string.
func FilterToText(f *SearchFilter) (string, error) {
	tf, err := wireFilterToText(f)
	if err != nil {
		return "", err
	}
	return tf.ToRFC4515(), nil
}

func textFilterToWire(f *filter.Filter) *SearchFilter {
	switch f.Type {
	case filter.FilterAnd, filter.FilterOr:
		children := make([]*SearchFilter, len(f.Children))
		for i, c := range f.Children {
			children[i] = textFilterToWire(c)
		}
		tag := FilterTagAnd
		if f.Type == filter.FilterOr {
			tag = FilterTagOr
		}
		return &SearchFilter{Type: tag, Children: children}
	case filter.FilterNot:
		return &SearchFilter{Type: FilterTagNot, Child: textFilterToWire(f.Child)}
	case filter.FilterEquality:
		return &SearchFilter{Type: FilterTagEquality, Attribute: f.Attribute, Value: f.Value}
	case filter.FilterGreaterOrEqual:
		return &SearchFilter{Type: FilterTagGreaterOrEqual, Attribute: f.Attribute, Value: f.Value}
	case filter.FilterLessOrEqual:
		return &SearchFilter{Type: FilterTagLessOrEqual, Attribute: f.Attribute, Value: f.Value}
	case filter.FilterApproxMatch:
		return &SearchFilter{Type: FilterTagApproxMatch, Attribute: f.Attribute, Value: f.Value}
	case filter.FilterPresent:
		return &SearchFilter{Type: FilterTagPresent, Attribute: f.Attribute}
	case filter.FilterSubstring:
		return &SearchFilter{
			Type:      FilterTagSubstrings,
			Attribute: f.Attribute,
			Substrings: &SubstringComponents{
				Initial: f.Substring.Initial,
				Any:     f.Substring.Any,
				Final:   f.Substring.Final,
			},
		}
	case filter.FilterExtensibleMatch:
		return &SearchFilter{
			Type:      FilterTagExtensibleMatch,
			Attribute: f.Extensible.Attribute,
			ExtensibleMatch: &ExtensibleMatchComponents{
				MatchingRule: f.Extensible.MatchingRule,
				Type:         f.Extensible.Attribute,
				MatchValue:   f.Extensible.Value,
				DNAttributes: f.Extensible.DNAttributes,
			},
		}
	default:
		return &SearchFilter{Type: FilterTagPresent, Attribute: f.Attribute}
	}
}

func wireFilterToText(f *SearchFilter) (*filter.Filter, error) {
	if f == nil {
		return nil, ErrInvalidFilter
	}

	switch f.Type {
	case FilterTagAnd, FilterTagOr:
		children := make([]*filter.Filter, len(f.Children))
		for i, c := range f.Children {
			tf, err := wireFilterToText(c)
			if err != nil {
				return nil, err
			}
			children[i] = tf
		}
		if f.Type == FilterTagAnd {
			return filter.NewAndFilter(children...), nil
		}
		return filter.NewOrFilter(children...), nil
	case FilterTagNot:
		child, err := wireFilterToText(f.Child)
		if err != nil {
			return nil, err
		}
		return filter.NewNotFilter(child), nil
	case FilterTagEquality:
		return filter.NewEqualityFilter(f.Attribute, f.Value), nil
	case FilterTagGreaterOrEqual:
		return filter.NewGreaterOrEqualFilter(f.Attribute, f.Value), nil
	case FilterTagLessOrEqual:
		return filter.NewLessOrEqualFilter(f.Attribute, f.Value), nil
	case FilterTagApproxMatch:
		return filter.NewApproxMatchFilter(f.Attribute, f.Value), nil
	case FilterTagPresent:
		return filter.NewPresentFilter(f.Attribute), nil
	case FilterTagSubstrings:
		if f.Substrings == nil {
			return nil, ErrInvalidSubstringFilter
		}
		return filter.NewSubstringFilter(&filter.SubstringFilter{
			Attribute: f.Attribute,
			Initial:   f.Substrings.Initial,
			Any:       f.Substrings.Any,
			Final:     f.Substrings.Final,
		}), nil
	case FilterTagExtensibleMatch:
		if f.ExtensibleMatch == nil {
			return nil, ErrInvalidFilter
		}
		return filter.NewExtensibleMatchFilter(&filter.ExtensibleMatch{
			Attribute:    f.Attribute,
			MatchingRule: f.ExtensibleMatch.MatchingRule,
			Value:        f.ExtensibleMatch.MatchValue,
			DNAttributes: f.ExtensibleMatch.DNAttributes,
		}), nil
	default:
		return nil, ErrInvalidFilter
	}
}
