package kdl

import (
	"fmt"
	"strings"
)

// FormatIdentifier returns s as a bare identifier when KDL allows it and as
// a quoted string otherwise.
func FormatIdentifier(s string) string {
	if isBareIdentifier(s) {
		return s
	}
	return Quote(s)
}

func isBareIdentifier(s string) bool {
	if s == "" {
		return false
	}
	switch s {
	case "true", "false", "null":
		return false
	}
	if looksNumeric(s) || strings.HasPrefix(s, ".") && len(s) > 1 && s[1] >= '0' && s[1] <= '9' {
		return false
	}
	if strings.HasPrefix(s, "r#") || strings.HasPrefix(s, "#") {
		return false
	}
	for _, r := range s {
		if !isIdentifierChar(r) {
			return false
		}
	}
	return true
}

// Quote returns s as a KDL string literal.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u{%x}`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
