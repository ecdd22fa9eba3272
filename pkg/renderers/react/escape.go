package react

import "strings"

// escapeTemplateLiteral makes a string safe inside a JS template literal.
// Backslashes, backticks, and the ${ interpolation marker are escaped so
// definition text can never terminate the literal or inject code into the
// generated source.
func escapeTemplateLiteral(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '`':
			b.WriteString("\\`")
		case '$':
			if i+1 < len(value) && value[i+1] == '{' {
				b.WriteString(`\$`)
			} else {
				b.WriteByte(c)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// tpl wraps a value as a brace-enclosed template literal expression, the
// quoting used for every piece of definition text embedded in JSX.
func tpl(value string) string {
	return "{`" + escapeTemplateLiteral(value) + "`}"
}
