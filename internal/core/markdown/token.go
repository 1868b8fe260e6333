// Package markdown reads and writes the campaign documents.
//
// Documents are tokenized line by line into headers, field lines, image
// links, rules and text, then projected into typed records. Serialization
// emits only constructs the tokenizer recognises, so a serialized record
// parses back to the same fields.
package markdown

import "strings"

type Kind int

const (
	Text Kind = iota
	Header1
	Header2
	Header3 // depth 3 or deeper; see Token.Depth
	FieldLine
	ImageLink
	Rule
)

func (k Kind) String() string {
	switch k {
	case Header1:
		return "header1"
	case Header2:
		return "header2"
	case Header3:
		return "header3"
	case FieldLine:
		return "field"
	case ImageLink:
		return "image"
	case Rule:
		return "rule"
	default:
		return "text"
	}
}

// Token is one classified line.
type Token struct {
	Kind  Kind
	Depth int    // header depth, 0 for non-headers
	Title string // header title
	Field string // field name for FieldLine
	Value string // field value for FieldLine, path for ImageLink
	Line  string // raw line without the trailing newline
}

func (t Token) IsHeader() bool { return t.Depth > 0 }

// Tokenize splits text into lines and classifies each one. A line starting
// with "# " is a level-1 header; a line starting with "##" is a header whose
// depth is the length of its run of '#'. "#foo" is plain text.
func Tokenize(text string) []Token {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	tokens := make([]Token, 0, len(lines))
	for _, line := range lines {
		tokens = append(tokens, classify(line))
	}
	return tokens
}

func classify(line string) Token {
	tok := Token{Kind: Text, Line: line}

	switch {
	case strings.HasPrefix(line, "##"):
		depth := len(line) - len(strings.TrimLeft(line, "#"))
		tok.Depth = depth
		tok.Title = strings.TrimSpace(line[depth:])
		if depth == 2 {
			tok.Kind = Header2
		} else {
			tok.Kind = Header3
		}
		return tok
	case strings.HasPrefix(line, "# "):
		tok.Kind = Header1
		tok.Depth = 1
		tok.Title = strings.TrimSpace(line[2:])
		return tok
	case strings.TrimSpace(line) == "---":
		tok.Kind = Rule
		return tok
	}

	if name, value, ok := parseFieldLine(line); ok {
		tok.Kind = FieldLine
		tok.Field = name
		tok.Value = value
		return tok
	}
	if path, ok := parseImageLink(line); ok {
		tok.Kind = ImageLink
		tok.Value = path
	}
	return tok
}

// parseFieldLine recognises "- **Field**: value".
func parseFieldLine(line string) (string, string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimLeft(line, " "), "- **")
	if !ok {
		return "", "", false
	}
	name, value, ok := strings.Cut(rest, "**:")
	if !ok || name == "" {
		return "", "", false
	}
	return name, strings.TrimRight(strings.TrimLeft(value, " "), " \t"), true
}

// parseImageLink returns the path of the first ![alt](path) on the line.
func parseImageLink(line string) (string, bool) {
	start := strings.Index(line, "![")
	if start < 0 {
		return "", false
	}
	mid := strings.Index(line[start:], "](")
	if mid < 0 {
		return "", false
	}
	pathStart := start + mid + 2
	end := strings.IndexByte(line[pathStart:], ')')
	if end < 0 {
		return "", false
	}
	return line[pathStart : pathStart+end], true
}

// Section is a header together with the tokens of its body.
type Section struct {
	Header Token
	Body   []Token
}

// Sections groups tokens under every header of the given depth. A body runs
// until the next header that closes it: for depth 1 only another level-1
// header, for depth 2 any header of depth 1 or 2, and for depth 3 any header
// at all (a "####" line ends a subsection without starting one). Tokens
// before the first matching header are discarded.
func Sections(tokens []Token, depth int) []Section {
	var out []Section
	var cur *Section
	for _, tok := range tokens {
		if tok.IsHeader() && closes(tok, depth) {
			if cur != nil {
				out = append(out, *cur)
				cur = nil
			}
			if tok.Depth == depth {
				cur = &Section{Header: tok}
			}
			continue
		}
		if cur != nil {
			cur.Body = append(cur.Body, tok)
		}
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out
}

func closes(tok Token, depth int) bool {
	switch depth {
	case 1:
		return tok.Depth == 1
	case 2:
		return tok.Depth <= 2
	default:
		return true
	}
}

// Find returns the first section whose title matches.
func Find(sections []Section, title string) (Section, bool) {
	for _, s := range sections {
		if s.Header.Title == title {
			return s, true
		}
	}
	return Section{}, false
}

// Text joins a body back into text, dropping leading blank lines and trailing
// whitespace.
func (s Section) Text() string {
	return joinBody(s.Body)
}

func joinBody(body []Token) string {
	start := 0
	for start < len(body) && strings.TrimSpace(body[start].Line) == "" {
		start++
	}
	lines := make([]string, 0, len(body)-start)
	for _, tok := range body[start:] {
		lines = append(lines, unescapeLine(tok.Line))
	}
	return strings.TrimRight(strings.Join(lines, "\n"), " \t\r\n")
}

// isMarkup reports whether line, ignoring leading backslashes, would be read
// as a header or a rule.
func isMarkup(line string) bool {
	s := strings.TrimLeft(line, `\`)
	return strings.HasPrefix(s, "##") || strings.HasPrefix(s, "# ") || strings.TrimSpace(s) == "---"
}

// escapeLine prefixes a backslash to body lines that would otherwise end the
// section they belong to. unescapeLine reverses it.
func escapeLine(line string) string {
	if isMarkup(line) {
		return `\` + line
	}
	return line
}

func unescapeLine(line string) string {
	if strings.HasPrefix(line, `\`) && isMarkup(line) {
		return line[1:]
	}
	return line
}

// Field returns the value of the first field line with the given name.
func (s Section) Field(name string) string {
	for _, tok := range s.Body {
		if tok.Kind == FieldLine && tok.Field == name {
			return tok.Value
		}
	}
	return ""
}

// Image returns the path of the first image link in the body.
func (s Section) Image() string {
	for _, tok := range s.Body {
		if tok.Kind == ImageLink {
			return tok.Value
		}
	}
	return ""
}

// trimTrailingRules drops blank lines and "---" rules at the end of a body.
func trimTrailingRules(body []Token) []Token {
	end := len(body)
	for end > 0 {
		tok := body[end-1]
		if tok.Kind == Rule || strings.TrimSpace(tok.Line) == "" {
			end--
			continue
		}
		break
	}
	return body[:end]
}
