// Package wire is a minimal single-pass JSON codec used for request bodies,
// the history file and loosely formatted model output.
//
// It is deliberately not a JSON parser. Lookups scan for the first textual
// occurrence of `"key":` anywhere in the blob, with no notion of nesting, and
// return raw spans. Absence and structural failure both yield the zero value;
// nothing in this package returns an error or panics.
package wire

import "strings"

// MaxKeyLength is the longest key the extractors will search for. Longer keys
// are reported as not found.
const MaxKeyLength = 120

func keyPattern(key string) (string, bool) {
	if len(key) > MaxKeyLength {
		return "", false
	}
	return `"` + key + `":`, true
}

// valueStart returns the offset of the first byte after the key pattern,
// skipping the given whitespace set.
func valueStart(blob, key, space string) (int, bool) {
	pattern, ok := keyPattern(key)
	if !ok {
		return 0, false
	}
	pos := strings.Index(blob, pattern)
	if pos < 0 {
		return 0, false
	}
	vs := pos + len(pattern)
	for vs < len(blob) && strings.IndexByte(space, blob[vs]) >= 0 {
		vs++
	}
	return vs, true
}

// ExtractString returns the raw (still escaped) text of the string value
// following the first `"key":`. Escapes are skipped, not validated.
func ExtractString(blob, key string) string {
	vs, ok := valueStart(blob, key, " \t")
	if !ok || vs >= len(blob) || blob[vs] != '"' {
		return ""
	}
	vs++
	ve := vs
	for ve < len(blob) && blob[ve] != '"' {
		if blob[ve] == '\\' && ve+1 < len(blob) {
			ve += 2
			continue
		}
		ve++
	}
	if ve >= len(blob) {
		// unterminated
		return ""
	}
	return blob[vs:ve]
}

// ExtractInt parses the integer following the first `"key":`. It returns def
// when the key is missing or no digits follow it.
func ExtractInt(blob, key string, def int64) int64 {
	vs, ok := valueStart(blob, key, " \t")
	if !ok {
		return def
	}
	neg := false
	if vs < len(blob) && (blob[vs] == '-' || blob[vs] == '+') {
		neg = blob[vs] == '-'
		vs++
	}
	var n int64
	digits := 0
	for vs < len(blob) && blob[vs] >= '0' && blob[vs] <= '9' {
		d := int64(blob[vs] - '0')
		if n > (1<<63-1-d)/10 {
			return def
		}
		n = n*10 + d
		digits++
		vs++
	}
	if digits == 0 {
		return def
	}
	if neg {
		return -n
	}
	return n
}

// ExtractObject returns the raw span of the object or array following the
// first `"key":`, from the opening bracket to its matching close inclusive.
// Brackets inside strings are ignored. An unbalanced value yields "".
func ExtractObject(blob, key string) string {
	vs, ok := valueStart(blob, key, " \t\r\n")
	if !ok || vs >= len(blob) {
		return ""
	}
	open := blob[vs]
	var closer byte
	switch open {
	case '{':
		closer = '}'
	case '[':
		closer = ']'
	default:
		return ""
	}

	depth := 1
	inStr, esc := false, false
	ve := vs + 1
	for ; ve < len(blob) && depth > 0; ve++ {
		c := blob[ve]
		switch {
		case esc:
			esc = false
		case c == '\\' && inStr:
			esc = true
		case c == '"':
			inStr = !inStr
		case !inStr && c == open:
			depth++
		case !inStr && c == closer:
			depth--
		}
	}
	if depth != 0 {
		return ""
	}
	return blob[vs:ve]
}

// Unescape reverses the escapes the Builder writes plus \/ and \". A \uXXXX
// sequence becomes '?'; surrogate pairs are not decoded.
func Unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			if i+4 < len(s) {
				i += 4
			}
			b.WriteByte('?')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
