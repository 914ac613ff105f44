package filter

import "strings"

// ToRFC4515 renders the filter tree back into RFC 4515 text. Re-parsing the
// result with Parse reproduces an equivalent tree; for filters produced by
// Parse with minimal original escaping, the output matches the input
// verbatim.
func (f *Filter) ToRFC4515() string {
	if f == nil {
		return ""
	}

	var b strings.Builder
	f.render(&b)
	return b.String()
}

func (f *Filter) render(b *strings.Builder) {
	b.WriteByte('(')

	switch f.Type {
	case FilterAnd:
		b.WriteByte('&')
		for _, c := range f.Children {
			c.render(b)
		}
	case FilterOr:
		b.WriteByte('|')
		for _, c := range f.Children {
			c.render(b)
		}
	case FilterNot:
		b.WriteByte('!')
		f.Child.render(b)
	case FilterEquality:
		b.WriteString(f.Attribute)
		b.WriteByte('=')
		b.WriteString(escapeAssertionValue(f.Value))
	case FilterGreaterOrEqual:
		b.WriteString(f.Attribute)
		b.WriteString(">=")
		b.WriteString(escapeAssertionValue(f.Value))
	case FilterLessOrEqual:
		b.WriteString(f.Attribute)
		b.WriteString("<=")
		b.WriteString(escapeAssertionValue(f.Value))
	case FilterApproxMatch:
		b.WriteString(f.Attribute)
		b.WriteString("~=")
		b.WriteString(escapeAssertionValue(f.Value))
	case FilterPresent:
		b.WriteString(f.Attribute)
		b.WriteString("=*")
	case FilterSubstring:
		b.WriteString(f.Attribute)
		b.WriteByte('=')
		sf := f.Substring
		if len(sf.Initial) > 0 {
			b.WriteString(escapeAssertionValue(sf.Initial))
		}
		b.WriteByte('*')
		for _, any := range sf.Any {
			b.WriteString(escapeAssertionValue(any))
			b.WriteByte('*')
		}
		if len(sf.Final) > 0 {
			b.WriteString(escapeAssertionValue(sf.Final))
		}
	case FilterExtensibleMatch:
		em := f.Extensible
		if em.Attribute != "" {
			b.WriteString(em.Attribute)
		}
		if em.DNAttributes {
			b.WriteString(":dn")
		}
		if em.MatchingRule != "" {
			b.WriteByte(':')
			b.WriteString(em.MatchingRule)
		}
		b.WriteString(":=")
		b.WriteString(escapeAssertionValue(em.Value))
	case FilterUndefined:
		b.WriteString("undefined")
	}

	b.WriteByte(')')
}

// escapeAssertionValue re-escapes an assertion value's bytes per RFC 4515
// §3: NUL, "*", "(", ")", and "\" become "\HH"; everything else passes
// through unescaped.
func escapeAssertionValue(value []byte) string {
	var b strings.Builder
	const hex = "0123456789abcdef"

	for _, c := range value {
		switch c {
		case 0x00, '*', '(', ')', '\\':
			b.WriteByte('\\')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}
