package dn

import "strings"

// escapeValue renders value for the normalized DN form: the special
// characters other than "#" are backslash-escaped wherever they occur, a
// "#" is escaped only as the first character, a leading or trailing space
// is escaped, and control bytes (below 0x20, and 0x7f) become "\hh".
func escapeValue(value string) string {
	if value == "" {
		return ""
	}

	var b strings.Builder
	runes := []byte(value)

	for i, c := range runes {
		switch {
		case c == '#' && i == 0:
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '#':
			b.WriteByte(c)
		case isSpecialChar(c):
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == ' ' && (i == 0 || i == len(runes)-1):
			b.WriteByte('\\')
			b.WriteByte(c)
		case c < 0x20 || c == 0x7f:
			writeHexEscape(&b, c)
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

func writeHexEscape(b *strings.Builder, c byte) {
	const hex = "0123456789abcdef"
	b.WriteByte('\\')
	b.WriteByte(hex[c>>4])
	b.WriteByte(hex[c&0x0f])
}
