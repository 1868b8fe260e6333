package markdown

import "strings"

// Slugify derives a record id from a display name: ASCII letters and digits
// are lowercased, runs of spaces, hyphens and underscores collapse to a single
// '_', everything else is dropped, and the result never starts or ends with
// '_'.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	pending := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		case c == ' ' || c == '-' || c == '_':
			pending = b.Len() > 0
			continue
		default:
			continue
		}
		if pending {
			b.WriteByte('_')
			pending = false
		}
		b.WriteByte(c)
	}
	return b.String()
}
